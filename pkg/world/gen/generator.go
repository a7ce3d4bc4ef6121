// Package gen fills chunk columns with procedurally generated terrain.
package gen

import (
	"fmt"

	"github.com/OCharnyshevich/blockgrid/pkg/world/chunk"
)

// Generator fills chunk columns deterministically from a seed. Fill writes
// only into the given column and never reads other columns, so generators are
// safe for concurrent use.
type Generator interface {
	Fill(b *chunk.Blocks, cx, cz int)
	HeightAt(x, z int) int
}

// Generator names accepted by New.
const (
	KindOverworld = "overworld"
	KindFlat      = "flat"
	KindEnd       = "end"
	KindOuterEnd  = "outer_end"
)

// New returns the generator registered under kind.
func New(kind string, seed int64) (Generator, error) {
	switch kind {
	case KindOverworld, "":
		return NewOverworld(seed), nil
	case KindFlat:
		return NewFlat(), nil
	case KindEnd:
		return NewEnd(), nil
	case KindOuterEnd:
		return NewOuterEnd(seed), nil
	default:
		return nil, fmt.Errorf("unknown generator %q", kind)
	}
}
