package world

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrUnknownDimension = errors.New("unknown dimension")

// Dimension is a named world with its own spawn point.
type Dimension struct {
	Name  string
	World *World
	Spawn mgl64.Vec3
}

// Dimensions holds the registered worlds. Only the active one keeps chunks
// loaded.
type Dimensions struct {
	dims   map[string]*Dimension
	active *Dimension
	log    *slog.Logger
}

func NewDimensions(log *slog.Logger) *Dimensions {
	return &Dimensions{dims: make(map[string]*Dimension), log: log}
}

// Register adds a world under name, replacing any previous registration.
func (d *Dimensions) Register(name string, w *World, spawn mgl64.Vec3) {
	d.dims[name] = &Dimension{Name: name, World: w, Spawn: spawn}
}

// Lookup returns the dimension registered under name.
func (d *Dimensions) Lookup(name string) (*Dimension, bool) {
	dim, ok := d.dims[name]
	return dim, ok
}

// Active returns the current dimension, or nil before the first Switch.
func (d *Dimensions) Active() *Dimension {
	return d.active
}

// Switch makes name the active dimension and unloads the previous one.
// Switching to the active dimension is a no-op.
func (d *Dimensions) Switch(name string) (*Dimension, error) {
	next, ok := d.dims[name]
	if !ok {
		return nil, fmt.Errorf("switch to %q: %w", name, ErrUnknownDimension)
	}
	if next == d.active {
		return next, nil
	}

	if d.active != nil {
		d.active.World.UnloadAll()
	}
	prev := d.active
	d.active = next

	if prev != nil {
		d.log.Info("dimension switched", "from", prev.Name, "to", name)
	} else {
		d.log.Info("dimension activated", "name", name)
	}
	return next, nil
}
