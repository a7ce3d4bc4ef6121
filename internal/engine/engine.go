// Package engine drives the world: it owns the dimensions and their edit
// journals, advances streaming once per frame and routes block interaction
// through the raycaster.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/OCharnyshevich/blockgrid/internal/config"
	"github.com/OCharnyshevich/blockgrid/internal/edits"
	"github.com/OCharnyshevich/blockgrid/internal/metrics"
	"github.com/OCharnyshevich/blockgrid/pkg/block"
	"github.com/OCharnyshevich/blockgrid/pkg/world"
	"github.com/OCharnyshevich/blockgrid/pkg/world/gen"
)

// Dimension names.
const (
	Overworld = "overworld"
	End       = "end"
	OuterEnd  = "outer_end"
)

// Reach is how far away a block can be broken or placed against.
const Reach = 6.0

// PortalX and PortalZ anchor the end portal built in the overworld.
const (
	PortalX = 50
	PortalZ = 50
)

// outerEndX is where the outer end spawn sits, well clear of the main island.
const outerEndX = 1024

var (
	ErrNoTarget     = errors.New("no block in reach")
	ErrUnbreakable  = errors.New("block cannot be broken")
	ErrUnknownBlock = errors.New("unknown block")
)

// Engine ties the worlds to the edit journals and the frame clock.
type Engine struct {
	cfg      *config.Config
	reg      *block.Registry
	log      *slog.Logger
	metrics  *metrics.World
	dims     *world.Dimensions
	journals map[string]edits.Journal
	viewer   mgl64.Vec3
	ticks    uint64
}

// New builds every dimension, opens its journal, anchors the portal and
// activates cfg.Dimension. m may be nil.
func New(cfg *config.Config, reg *block.Registry, log *slog.Logger, m *metrics.World) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	e := &Engine{
		cfg:      cfg,
		reg:      reg,
		log:      log,
		metrics:  m,
		dims:     world.NewDimensions(log),
		journals: make(map[string]edits.Journal),
	}

	kinds := []struct{ name, kind string }{
		{Overworld, cfg.Generator},
		{End, gen.KindEnd},
		{OuterEnd, gen.KindOuterEnd},
	}
	for _, k := range kinds {
		if err := e.addDimension(k.name, k.kind); err != nil {
			_ = e.Close()
			return nil, err
		}
	}

	if err := e.Switch(cfg.Dimension); err != nil {
		_ = e.Close()
		return nil, err
	}

	ow := e.lookup(Overworld).World
	world.PlaceEndPortal(e.setter(Overworld), PortalX, ow.HeightAt(PortalX, PortalZ)+1, PortalZ)
	return e, nil
}

func (e *Engine) addDimension(name, kind string) error {
	g, err := gen.New(kind, e.cfg.Seed)
	if err != nil {
		return fmt.Errorf("dimension %s: %w", name, err)
	}
	j, err := openJournal(e.cfg, name, e.log)
	if err != nil {
		return fmt.Errorf("dimension %s: %w", name, err)
	}
	e.journals[name] = j

	opts := world.Options{
		RenderDistance: e.cfg.RenderDistance,
		MaxRebuilds:    e.cfg.MaxRebuilds,
		Logger:         e.log.With("dimension", name),
	}
	if e.metrics != nil {
		opts.Observer = e.metrics
	}
	w := world.New(g, e.reg, opts)
	w.OnChunkLoaded(edits.Replay(j, e.log))

	e.dims.Register(name, w, spawnFor(name, g))
	return nil
}

func spawnFor(name string, g gen.Generator) mgl64.Vec3 {
	x, z := 0, 0
	switch name {
	case Overworld:
		// Beside the portal rather than on it.
		x, z = PortalX+4, PortalZ+4
	case OuterEnd:
		x = outerEndX
	}
	return mgl64.Vec3{float64(x) + 0.5, float64(g.HeightAt(x, z) + 1), float64(z) + 0.5}
}

func openJournal(cfg *config.Config, dim string, log *slog.Logger) (edits.Journal, error) {
	switch cfg.Journal {
	case config.JournalFile:
		name := dim + ".json"
		if cfg.CompressEdits {
			name += edits.CompressedExt
		}
		return edits.OpenFile(filepath.Join(cfg.DataDir, name), log)
	case config.JournalBadger:
		return edits.OpenBadger(filepath.Join(cfg.DataDir, dim))
	default:
		return edits.NewMemory(), nil
	}
}

func (e *Engine) lookup(name string) *world.Dimension {
	d, _ := e.dims.Lookup(name)
	return d
}

// dimSetter writes journaled edits into one dimension regardless of which is
// active.
type dimSetter struct {
	e   *Engine
	dim string
}

func (s dimSetter) SetBlock(x, y, z int, id block.ID) {
	if err := s.e.applyEdit(s.dim, x, y, z, id); err != nil {
		s.e.log.Error("apply edit", "dimension", s.dim, "x", x, "y", y, "z", z, "error", err)
	}
}

func (e *Engine) setter(dim string) world.BlockSetter { return dimSetter{e, dim} }

// World returns the active world.
func (e *Engine) World() *world.World {
	return e.dims.Active().World
}

// Dimension returns the active dimension's name.
func (e *Engine) Dimension() string {
	if d := e.dims.Active(); d != nil {
		return d.Name
	}
	return ""
}

// Switch activates a dimension and moves the viewer to its spawn.
func (e *Engine) Switch(name string) error {
	d, err := e.dims.Switch(name)
	if err != nil {
		return err
	}
	e.viewer = d.Spawn
	return nil
}

// Viewer returns the current viewer position.
func (e *Engine) Viewer() mgl64.Vec3 { return e.viewer }

// SetViewer moves the viewer. Streaming follows on the next Frame.
func (e *Engine) SetViewer(p mgl64.Vec3) { e.viewer = p }

// Ticks returns the number of frames run so far.
func (e *Engine) Ticks() uint64 { return e.ticks }

// ClampDelta limits a frame delta to max seconds. Negative and NaN deltas
// become zero. The second result reports whether dt was cut down.
func ClampDelta(dt, max float64) (float64, bool) {
	if dt < 0 || math.IsNaN(dt) {
		return 0, false
	}
	if dt > max {
		return max, true
	}
	return dt, false
}

// Frame advances the engine by dt seconds and streams the active world
// around the viewer. A viewer standing in an end portal is moved to the end
// first. It returns the clamped delta and the streaming stats.
func (e *Engine) Frame(dt float64) (float64, world.UpdateStats) {
	dt, clamped := ClampDelta(dt, e.cfg.MaxFrameDelta)
	if clamped {
		if e.metrics != nil {
			e.metrics.FrameClamped()
		}
		e.log.Debug("frame delta clamped", "max", e.cfg.MaxFrameDelta)
	}
	e.ticks++
	e.enterPortal()
	return dt, e.World().Update(e.viewer)
}

// Run ticks the engine at cfg.TickRate until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(e.cfg.TickRate))
	defer ticker.Stop()

	e.log.Info("engine running",
		"dimension", e.Dimension(),
		"tickRate", e.cfg.TickRate,
		"renderDistance", e.cfg.RenderDistance,
	)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			e.log.Info("engine stopped", "ticks", e.ticks)
			return nil
		case now := <-ticker.C:
			_, stats := e.Frame(now.Sub(last).Seconds())
			last = now
			if stats.Loaded > 0 || stats.Unloaded > 0 {
				e.log.Debug("streamed",
					"loaded", stats.Loaded,
					"unloaded", stats.Unloaded,
					"rebuilt", stats.Rebuilt,
					"dirty", stats.Dirty,
				)
			}
		}
	}
}

// ApplyEdit records a block change in the active dimension's journal and
// writes it to the world. Edits to unloaded columns take effect when the
// column streams in.
func (e *Engine) ApplyEdit(x, y, z int, id block.ID) error {
	return e.applyEdit(e.Dimension(), x, y, z, id)
}

func (e *Engine) applyEdit(dim string, x, y, z int, id block.ID) error {
	if err := e.journals[dim].Record(edits.Edit{X: x, Y: y, Z: z, ID: id}); err != nil {
		return fmt.Errorf("record edit: %w", err)
	}
	e.lookup(dim).World.SetBlock(x, y, z, id)
	return nil
}

// SetBlock is ApplyEdit for callers that cannot handle errors, such as
// structure placement. Journal failures are logged.
func (e *Engine) SetBlock(x, y, z int, id block.ID) {
	e.setter(e.Dimension()).SetBlock(x, y, z, id)
}

// Close flushes and closes every journal.
func (e *Engine) Close() error {
	var errs []error
	for name, j := range e.journals {
		if err := j.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s journal: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
