package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/blockgrid/pkg/block"
)

type column map[[3]int]block.ID

func (c column) Block(x, y, z int) block.ID { return c[[3]int{x, y, z}] }

func build(src Source, n Neighbors) *Mesh {
	reg := block.Default()
	return Build(src, n, reg, reg.Atlas())
}

func TestBuildEmpty(t *testing.T) {
	assert.Nil(t, build(column{}, Neighbors{}))
	assert.Nil(t, build(column{{1, 1, 1}: 200}, Neighbors{}), "unregistered ids emit nothing")
}

func TestBuildSingleBlock(t *testing.T) {
	m := build(column{{5, 5, 5}: block.Stone}, Neighbors{})
	require.NotNil(t, m)

	assert.Equal(t, 6, m.Faces())
	assert.Len(t, m.Positions, 24)
	assert.Len(t, m.UVs, 24)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices[:6])
	for _, p := range m.Positions {
		for i := 0; i < 3; i++ {
			assert.True(t, p[i] == 5 || p[i] == 6, "corner %v outside block", p)
		}
	}
}

func TestBuildCullsSharedFaces(t *testing.T) {
	tests := []struct {
		name string
		src  column
		want int
	}{
		{"lateral", column{{1, 1, 1}: block.Stone, {2, 1, 1}: block.Stone}, 10},
		{"vertical", column{{1, 1, 1}: block.Stone, {1, 2, 1}: block.Dirt}, 10},
		{"same liquid", column{{1, 1, 1}: block.Water, {2, 1, 1}: block.Water}, 10},
		// The stone face toward the water is kept, the water face toward the stone is not.
		{"solid beside liquid", column{{1, 1, 1}: block.Stone, {2, 1, 1}: block.Water}, 11},
		{"two liquids", column{{1, 1, 1}: block.Water, {2, 1, 1}: block.EndPortal}, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := build(tt.src, Neighbors{})
			require.NotNil(t, m)
			assert.Equal(t, tt.want, m.Faces())
		})
	}
}

func TestBuildNeighborColumns(t *testing.T) {
	src := column{{15, 3, 7}: block.Stone, {0, 3, 7}: block.Stone}

	open := build(src, Neighbors{})
	require.NotNil(t, open)
	assert.Equal(t, 12, open.Faces(), "unloaded neighbors read as air")

	closed := build(src, Neighbors{
		PX: column{{0, 3, 7}: block.Stone},
		NX: column{{15, 3, 7}: block.Stone},
	})
	require.NotNil(t, closed)
	assert.Equal(t, 10, closed.Faces())
}

func TestBuildColumnEnds(t *testing.T) {
	m := build(column{{0, 0, 0}: block.Stone, {0, height - 1, 0}: block.Stone}, Neighbors{})
	require.NotNil(t, m)
	assert.Equal(t, 12, m.Faces(), "faces past the column top and bottom are visible")
}

func TestBuildIdempotent(t *testing.T) {
	src := column{
		{1, 1, 1}:  block.Grass,
		{1, 0, 1}:  block.Dirt,
		{4, 9, 2}:  block.Water,
		{15, 3, 0}: block.OakLog,
	}
	a := build(src, Neighbors{})
	b := build(src, Neighbors{})
	assert.Equal(t, a.Positions, b.Positions)
	assert.Equal(t, a.UVs, b.UVs)
	assert.Equal(t, a.Indices, b.Indices)
}

func TestBuildUVsInsideTile(t *testing.T) {
	reg := block.Default()
	atlas := reg.Atlas()
	m := Build(column{{3, 3, 3}: block.Grass}, Neighbors{}, reg, atlas)
	require.NotNil(t, m)

	props, _ := reg.Lookup(block.Grass)
	// Face order: +Y, -Y, then four sides.
	wantTiles := []block.Tile{props.Top, props.Bottom, props.Side, props.Side, props.Side, props.Side}
	for f, tile := range wantTiles {
		u0, v0, u1, v1 := atlas.UV(tile)
		for _, uv := range m.UVs[f*4 : f*4+4] {
			assert.True(t, uv[0] >= u0-1e-6 && uv[0] <= u1+1e-6, "face %d u=%v outside [%v,%v]", f, uv[0], u0, u1)
			assert.True(t, uv[1] >= v0-1e-6 && uv[1] <= v1+1e-6, "face %d v=%v outside [%v,%v]", f, uv[1], v0, v1)
		}
	}
}

func TestRelease(t *testing.T) {
	m := build(column{{0, 0, 0}: block.Stone}, Neighbors{})
	require.NotNil(t, m)
	m.Release()
	assert.True(t, m.Released())
	assert.Nil(t, m.Positions)
	assert.Equal(t, 0, m.Faces())
}
