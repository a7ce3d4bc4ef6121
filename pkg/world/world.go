// Package world streams chunk columns around a viewer and keeps their meshes
// current within a per-tick rebuild budget.
//
// A World is not safe for concurrent use. It is driven from a single tick
// goroutine, and the meshes it hands out are read-only.
package world

import (
	"log/slog"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/OCharnyshevich/blockgrid/pkg/block"
	"github.com/OCharnyshevich/blockgrid/pkg/world/chunk"
	"github.com/OCharnyshevich/blockgrid/pkg/world/gen"
	"github.com/OCharnyshevich/blockgrid/pkg/world/mesh"
)

// BlockPos is a world block coordinate.
type BlockPos struct {
	X, Y, Z int
}

// LoadHook runs once for every chunk right after it is generated and before
// its first mesh is built.
type LoadHook func(cx, cz int, c *chunk.Chunk)

// Observer receives streaming events, for metrics.
type Observer interface {
	ChunkLoaded(took time.Duration)
	ChunkUnloaded()
	MeshBuilt(faces int, took time.Duration)
	Resident(chunks, dirty int)
}

type nopObserver struct{}

func (nopObserver) ChunkLoaded(time.Duration)    {}
func (nopObserver) ChunkUnloaded()               {}
func (nopObserver) MeshBuilt(int, time.Duration) {}
func (nopObserver) Resident(int, int)            {}

// Options configure a World.
type Options struct {
	// RenderDistance is the load radius in chunks. Chunks are unloaded once
	// they are more than RenderDistance+2 chunks away.
	RenderDistance int
	// MaxRebuilds caps mesh rebuilds per Update.
	MaxRebuilds int
	Logger      *slog.Logger
	Observer    Observer
}

// DefaultOptions returns the stock streaming settings.
func DefaultOptions() Options {
	return Options{
		RenderDistance: 6,
		MaxRebuilds:    2,
	}
}

// UpdateStats summarizes one Update call.
type UpdateStats struct {
	Loaded   int
	Unloaded int
	Rebuilt  int
	Dirty    int // dirty chunks left for later ticks
}

// World is the set of loaded chunk columns.
type World struct {
	gen      gen.Generator
	reg      *block.Registry
	atlas    block.Atlas
	opts     Options
	log      *slog.Logger
	obs      Observer
	chunks   map[chunk.Pos]*chunk.Chunk
	order    []chunk.Pos // insertion order, drives rebuild scheduling
	onLoaded []LoadHook
}

// New creates an empty World. Zero option fields take their defaults.
func New(g gen.Generator, reg *block.Registry, opts Options) *World {
	def := DefaultOptions()
	if opts.RenderDistance <= 0 {
		opts.RenderDistance = def.RenderDistance
	}
	if opts.MaxRebuilds <= 0 {
		opts.MaxRebuilds = def.MaxRebuilds
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}

	return &World{
		gen:    g,
		reg:    reg,
		atlas:  reg.Atlas(),
		opts:   opts,
		log:    opts.Logger,
		obs:    opts.Observer,
		chunks: make(map[chunk.Pos]*chunk.Chunk),
	}
}

// OnChunkLoaded registers a hook run for every newly generated chunk.
func (w *World) OnChunkLoaded(fn LoadHook) {
	w.onLoaded = append(w.onLoaded, fn)
}

// Registry returns the block table the world meshes with.
func (w *World) Registry() *block.Registry { return w.reg }

// HeightAt returns the generated surface height of a column.
func (w *World) HeightAt(x, z int) int {
	return w.gen.HeightAt(x, z)
}

// Chunk returns the loaded chunk at (cx, cz), or nil.
func (w *World) Chunk(cx, cz int) *chunk.Chunk {
	return w.chunks[chunk.Pos{X: cx, Z: cz}]
}

// Len returns the number of loaded chunks.
func (w *World) Len() int { return len(w.chunks) }

// Range calls fn for every loaded chunk in load order until fn returns false.
func (w *World) Range(fn func(c *chunk.Chunk) bool) {
	for _, p := range w.order {
		if !fn(w.chunks[p]) {
			return
		}
	}
}

// Block returns the block at a world coordinate. Unloaded chunks and heights
// outside the column read as air.
func (w *World) Block(x, y, z int) block.ID {
	if y < 0 || y >= chunk.Height {
		return block.Air
	}
	c, ok := w.chunks[chunk.PosOf(x, z)]
	if !ok {
		return block.Air
	}
	return c.Block(chunk.Local(x), y, chunk.Local(z))
}

// SetBlock writes a block at a world coordinate. The owning chunk is marked
// dirty, and so is every loaded neighbor sharing the face the block lies on.
// Writes to unloaded chunks or outside the column are dropped.
func (w *World) SetBlock(x, y, z int, id block.ID) {
	if y < 0 || y >= chunk.Height {
		return
	}
	p := chunk.PosOf(x, z)
	c, ok := w.chunks[p]
	if !ok {
		return
	}
	lx, lz := chunk.Local(x), chunk.Local(z)
	c.SetBlock(lx, y, lz, id)

	switch lx {
	case 0:
		w.markDirty(p.X-1, p.Z)
	case chunk.Width - 1:
		w.markDirty(p.X+1, p.Z)
	}
	switch lz {
	case 0:
		w.markDirty(p.X, p.Z-1)
	case chunk.Depth - 1:
		w.markDirty(p.X, p.Z+1)
	}
}

func (w *World) markDirty(cx, cz int) {
	if c, ok := w.chunks[chunk.Pos{X: cx, Z: cz}]; ok {
		c.MarkDirty()
	}
}

// Update streams chunks around viewer, then rebuilds up to MaxRebuilds dirty
// meshes.
func (w *World) Update(viewer mgl64.Vec3) UpdateStats {
	var st UpdateStats
	center := chunk.PosOf(int(math.Floor(viewer.X())), int(math.Floor(viewer.Z())))
	r := w.opts.RenderDistance

	for dx := -r; dx <= r; dx++ {
		for dz := -r; dz <= r; dz++ {
			if dx*dx+dz*dz > r*r {
				continue
			}
			p := chunk.Pos{X: center.X + dx, Z: center.Z + dz}
			if _, ok := w.chunks[p]; !ok {
				w.load(p)
				st.Loaded++
			}
		}
	}

	st.Unloaded = w.unloadFar(center, (r+2)*(r+2))
	st.Rebuilt, st.Dirty = w.rebuild(w.opts.MaxRebuilds)

	w.obs.Resident(len(w.chunks), st.Dirty)
	return st
}

func (w *World) load(p chunk.Pos) {
	start := time.Now()
	c := chunk.New(p)
	w.gen.Fill(c.Blocks(), p.X, p.Z)
	w.chunks[p] = c
	w.order = append(w.order, p)

	for _, fn := range w.onLoaded {
		fn(p.X, p.Z, c)
	}

	// Neighbors meshed against air on this side need another pass.
	w.markDirty(p.X-1, p.Z)
	w.markDirty(p.X+1, p.Z)
	w.markDirty(p.X, p.Z-1)
	w.markDirty(p.X, p.Z+1)

	took := time.Since(start)
	w.obs.ChunkLoaded(took)
	w.log.Debug("chunk loaded", "cx", p.X, "cz", p.Z, "took", took)
}

func (w *World) unloadFar(center chunk.Pos, limit int) int {
	kept := w.order[:0]
	n := 0
	for _, p := range w.order {
		dx, dz := p.X-center.X, p.Z-center.Z
		if dx*dx+dz*dz <= limit {
			kept = append(kept, p)
			continue
		}
		w.chunks[p].Release()
		delete(w.chunks, p)
		n++
		w.obs.ChunkUnloaded()
		w.log.Debug("chunk unloaded", "cx", p.X, "cz", p.Z)
	}
	clear(w.order[len(kept):])
	w.order = kept
	return n
}

// rebuild meshes up to budget dirty chunks in load order and reports how many
// it built and how many remain dirty.
func (w *World) rebuild(budget int) (built, left int) {
	for _, p := range w.order {
		c := w.chunks[p]
		if !c.Dirty() {
			continue
		}
		if built >= budget {
			left++
			continue
		}

		start := time.Now()
		m := mesh.Build(c, w.neighbors(p), w.reg, w.atlas)
		c.SetMesh(m)
		built++

		faces := 0
		if m != nil {
			faces = m.Faces()
		}
		w.obs.MeshBuilt(faces, time.Since(start))
	}
	return built, left
}

func (w *World) neighbors(p chunk.Pos) mesh.Neighbors {
	return mesh.Neighbors{
		PX: w.source(p.X+1, p.Z),
		NX: w.source(p.X-1, p.Z),
		PZ: w.source(p.X, p.Z+1),
		NZ: w.source(p.X, p.Z-1),
	}
}

// source returns a nil interface, not a nil *Chunk, for unloaded columns.
func (w *World) source(cx, cz int) mesh.Source {
	if c, ok := w.chunks[chunk.Pos{X: cx, Z: cz}]; ok {
		return c
	}
	return nil
}

// UnloadAll drops every chunk and releases its mesh.
func (w *World) UnloadAll() {
	for _, p := range w.order {
		w.chunks[p].Release()
		w.obs.ChunkUnloaded()
	}
	clear(w.chunks)
	w.order = nil
	w.obs.Resident(0, 0)
	w.log.Debug("all chunks unloaded")
}
