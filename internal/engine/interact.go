package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/OCharnyshevich/blockgrid/pkg/block"
	"github.com/OCharnyshevich/blockgrid/pkg/world"
	"github.com/OCharnyshevich/blockgrid/pkg/world/chunk"
	"github.com/OCharnyshevich/blockgrid/pkg/world/ray"
)

var ErrOutOfWorld = errors.New("position outside the world")

// Dig is the outcome of breaking a block.
type Dig struct {
	Hit   ray.Hit
	Block block.ID
	// Ticks is the expected time to break the block with the held tool.
	Ticks int
	// Drops reports whether the tool harvests the block.
	Drops bool
}

// Target returns the first solid block along the ray within Reach.
func (e *Engine) Target(origin, dir mgl64.Vec3) (ray.Hit, bool) {
	return ray.NewCaster(e.World(), e.reg).Cast(origin, dir, Reach)
}

// Break removes the block the ray hits and journals the change.
func (e *Engine) Break(origin, dir mgl64.Vec3, tool block.Tool, tier block.Tier) (Dig, error) {
	hit, ok := e.Target(origin, dir)
	if !ok {
		return Dig{}, ErrNoTarget
	}
	x, y, z := hit.Voxel[0], hit.Voxel[1], hit.Voxel[2]
	id := e.World().Block(x, y, z)

	props, _ := e.reg.Lookup(id)
	ticks := block.BreakTicks(props, tool, tier, block.TierSpeed(tier))
	if ticks < 0 {
		return Dig{}, fmt.Errorf("break %s at %d,%d,%d: %w", props.Name, x, y, z, ErrUnbreakable)
	}

	if err := e.ApplyEdit(x, y, z, block.Air); err != nil {
		return Dig{}, err
	}
	return Dig{
		Hit:   hit,
		Block: id,
		Ticks: ticks,
		Drops: block.CanHarvest(props, tool, tier),
	}, nil
}

// Place puts id against the face of the block the ray hits.
func (e *Engine) Place(origin, dir mgl64.Vec3, id block.ID) (world.BlockPos, error) {
	if !e.reg.Known(id) {
		return world.BlockPos{}, fmt.Errorf("place %d: %w", id, ErrUnknownBlock)
	}
	hit, ok := e.Target(origin, dir)
	if !ok {
		return world.BlockPos{}, ErrNoTarget
	}

	if hit.Normal == [3]int{} {
		// Started inside the block, there is no face to place against.
		return world.BlockPos{}, ErrNoTarget
	}
	adj := hit.Adjacent()
	pos := world.BlockPos{X: adj[0], Y: adj[1], Z: adj[2]}
	if pos.Y < 0 || pos.Y >= chunk.Height {
		return world.BlockPos{}, fmt.Errorf("place at y=%d: %w", pos.Y, ErrOutOfWorld)
	}
	if err := e.ApplyEdit(pos.X, pos.Y, pos.Z, id); err != nil {
		return world.BlockPos{}, err
	}
	return pos, nil
}

// enterPortal sends a viewer standing in an overworld end portal to the end.
func (e *Engine) enterPortal() bool {
	if e.Dimension() != Overworld {
		return false
	}
	p := e.viewer
	x, y, z := int(math.Floor(p[0])), int(math.Floor(p[1])), int(math.Floor(p[2]))
	if e.World().Block(x, y, z) != block.EndPortal {
		return false
	}
	if err := e.Switch(End); err != nil {
		e.log.Error("enter portal", "error", err)
		return false
	}
	e.log.Info("entered end portal", "x", x, "y", y, "z", z)
	return true
}
