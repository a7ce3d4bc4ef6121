// Package chunk implements the fixed-size block column that the world streams
// in and out around the viewer.
package chunk

import (
	"github.com/OCharnyshevich/blockgrid/pkg/block"
	"github.com/OCharnyshevich/blockgrid/pkg/world/mesh"
)

const (
	Width  = 16
	Depth  = 16
	Height = 64
	Volume = Width * Depth * Height
)

// Pos is a chunk column coordinate.
type Pos struct {
	X, Z int
}

// PosOf returns the column owning world block coordinate (x, z).
func PosOf(x, z int) Pos {
	return Pos{X: x >> 4, Z: z >> 4}
}

// Local returns the in-chunk coordinate of a world block coordinate.
func Local(v int) int {
	return v & (Width - 1)
}

// Blocks is the dense block array of one column.
type Blocks [Volume]block.ID

// Index returns the array index of local coordinate (x, y, z).
func Index(x, y, z int) int {
	return x + z*Width + y*Width*Depth
}

// InBounds reports whether (x, y, z) is a local coordinate of a chunk.
func InBounds(x, y, z int) bool {
	return x >= 0 && x < Width && z >= 0 && z < Depth && y >= 0 && y < Height
}

// Get returns the block at a local coordinate, or air outside the column.
func (b *Blocks) Get(x, y, z int) block.ID {
	if !InBounds(x, y, z) {
		return block.Air
	}
	return b[Index(x, y, z)]
}

// Set writes a block at a local coordinate. Out of range writes are dropped.
func (b *Blocks) Set(x, y, z int, id block.ID) {
	if InBounds(x, y, z) {
		b[Index(x, y, z)] = id
	}
}

// Chunk is a loaded column: its blocks, its current mesh and whether that
// mesh is stale.
type Chunk struct {
	pos    Pos
	blocks Blocks
	mesh   *mesh.Mesh
	dirty  bool
}

// New returns an empty chunk at pos. New chunks start dirty.
func New(pos Pos) *Chunk {
	return &Chunk{pos: pos, dirty: true}
}

func (c *Chunk) Pos() Pos { return c.pos }

// Blocks exposes the block array for generation.
func (c *Chunk) Blocks() *Blocks { return &c.blocks }

// Block returns the block at a local coordinate, air outside the column.
func (c *Chunk) Block(x, y, z int) block.ID {
	return c.blocks.Get(x, y, z)
}

// SetBlock writes a block at a local coordinate and marks the chunk dirty.
// It reports whether the write landed inside the column.
func (c *Chunk) SetBlock(x, y, z int, id block.ID) bool {
	if !InBounds(x, y, z) {
		return false
	}
	c.blocks[Index(x, y, z)] = id
	c.dirty = true
	return true
}

func (c *Chunk) Dirty() bool { return c.dirty }

func (c *Chunk) MarkDirty() { c.dirty = true }

func (c *Chunk) Mesh() *mesh.Mesh { return c.mesh }

// SetMesh installs m as the current mesh, releasing the previous one, and
// clears the dirty flag. m may be nil for a chunk with no visible faces.
func (c *Chunk) SetMesh(m *mesh.Mesh) {
	if c.mesh != nil && c.mesh != m {
		c.mesh.Release()
	}
	c.mesh = m
	c.dirty = false
}

// Release drops the chunk's mesh. Called when the chunk is unloaded.
func (c *Chunk) Release() {
	if c.mesh != nil {
		c.mesh.Release()
		c.mesh = nil
	}
}
