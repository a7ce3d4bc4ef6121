// Package mesh turns a chunk's block array into a triangle surface made of the
// block faces that border non-solid space.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/blockgrid/pkg/block"
)

// Column dimensions. Kept here so the mesher does not depend on the chunk
// package, which holds meshes.
const (
	width  = 16
	depth  = 16
	height = 64
)

// Source is a column of blocks addressed by local coordinates. Reads outside
// the column return air.
type Source interface {
	Block(x, y, z int) block.ID
}

// Neighbors are the lateral columns around the one being meshed. A nil entry
// is an unloaded column and reads as air.
type Neighbors struct {
	PX, NX, PZ, NZ Source
}

// Mesh is an indexed triangle list in chunk-local space. Every visible face
// contributes four vertices and six indices.
type Mesh struct {
	Positions []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32

	released bool
}

// Faces returns the number of quads in the mesh.
func (m *Mesh) Faces() int { return len(m.Indices) / 6 }

// Release drops the mesh buffers. A released mesh must not be drawn.
func (m *Mesh) Release() {
	m.Positions, m.UVs, m.Indices = nil, nil, nil
	m.released = true
}

func (m *Mesh) Released() bool { return m.released }

type face struct {
	dir     [3]int
	corners [4][3]float32
	uvs     [4][2]float32
	tile    block.Face
}

var faces = [6]face{
	{ // +Y
		dir:     [3]int{0, 1, 0},
		corners: [4][3]float32{{0, 1, 1}, {1, 1, 1}, {1, 1, 0}, {0, 1, 0}},
		uvs:     [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		tile:    block.FaceTop,
	},
	{ // -Y
		dir:     [3]int{0, -1, 0},
		corners: [4][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
		uvs:     [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		tile:    block.FaceBottom,
	},
	{ // +X
		dir:     [3]int{1, 0, 0},
		corners: [4][3]float32{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}},
		uvs:     [4][2]float32{{1, 0}, {1, 1}, {0, 1}, {0, 0}},
		tile:    block.FaceSide,
	},
	{ // -X
		dir:     [3]int{-1, 0, 0},
		corners: [4][3]float32{{0, 0, 1}, {0, 1, 1}, {0, 1, 0}, {0, 0, 0}},
		uvs:     [4][2]float32{{1, 0}, {1, 1}, {0, 1}, {0, 0}},
		tile:    block.FaceSide,
	},
	{ // +Z
		dir:     [3]int{0, 0, 1},
		corners: [4][3]float32{{1, 0, 1}, {1, 1, 1}, {0, 1, 1}, {0, 0, 1}},
		uvs:     [4][2]float32{{0, 0}, {0, 1}, {1, 1}, {1, 0}},
		tile:    block.FaceSide,
	},
	{ // -Z
		dir:     [3]int{0, 0, -1},
		corners: [4][3]float32{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}},
		uvs:     [4][2]float32{{0, 0}, {0, 1}, {1, 1}, {1, 0}},
		tile:    block.FaceSide,
	},
}

// neighbor returns the block at a local coordinate that may lie one step
// outside the column.
func (n Neighbors) neighbor(src Source, x, y, z int) block.ID {
	if y < 0 || y >= height {
		return block.Air
	}
	switch {
	case x < 0:
		return at(n.NX, width-1, y, z)
	case x >= width:
		return at(n.PX, 0, y, z)
	case z < 0:
		return at(n.NZ, x, y, depth-1)
	case z >= depth:
		return at(n.PZ, x, y, 0)
	}
	return src.Block(x, y, z)
}

func at(s Source, x, y, z int) block.ID {
	if s == nil {
		return block.Air
	}
	return s.Block(x, y, z)
}

// Build meshes src. A face is emitted when the block across it is not solid,
// except between two blocks of the same non-solid type. Unregistered ids are
// skipped. Build returns nil when the column has no visible faces.
func Build(src Source, n Neighbors, reg *block.Registry, atlas block.Atlas) *Mesh {
	m := &Mesh{}

	for y := 0; y < height; y++ {
		for z := 0; z < depth; z++ {
			for x := 0; x < width; x++ {
				id := src.Block(x, y, z)
				if id == block.Air {
					continue
				}
				props, ok := reg.Lookup(id)
				if !ok {
					continue
				}

				for i := range faces {
					f := &faces[i]
					nb := n.neighbor(src, x+f.dir[0], y+f.dir[1], z+f.dir[2])
					if reg.IsSolid(nb) {
						continue
					}
					if nb == id && !props.Solid {
						continue
					}
					m.addFace(f, x, y, z, props.Tile(f.tile), atlas)
				}
			}
		}
	}

	if len(m.Indices) == 0 {
		return nil
	}
	return m
}

func (m *Mesh) addFace(f *face, x, y, z int, tile block.Tile, atlas block.Atlas) {
	base := uint32(len(m.Positions))
	for i, c := range f.corners {
		m.Positions = append(m.Positions, mgl32.Vec3{
			float32(x) + c[0],
			float32(y) + c[1],
			float32(z) + c[2],
		})
		u, v := atlas.Remap(tile, f.uvs[i][0], f.uvs[i][1])
		m.UVs = append(m.UVs, mgl32.Vec2{u, v})
	}
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}
