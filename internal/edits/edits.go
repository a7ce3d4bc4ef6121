// Package edits records block changes made after generation and replays them
// onto chunks as they stream back in.
package edits

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/OCharnyshevich/blockgrid/pkg/block"
	"github.com/OCharnyshevich/blockgrid/pkg/world"
	"github.com/OCharnyshevich/blockgrid/pkg/world/chunk"
)

// Edit is a block written at a world coordinate.
type Edit struct {
	X  int      `json:"x"`
	Y  int      `json:"y"`
	Z  int      `json:"z"`
	ID block.ID `json:"id"`
}

func (e Edit) column() chunk.Pos { return chunk.PosOf(e.X, e.Z) }

// Journal stores the latest edit per block position.
type Journal interface {
	Record(e Edit) error
	// Column returns the edits inside chunk column (cx, cz).
	Column(cx, cz int) ([]Edit, error)
	Close() error
}

// Replay returns a load hook that applies the journal's edits to every
// freshly generated chunk. Journal errors are logged and the chunk is left
// as generated.
func Replay(j Journal, log *slog.Logger) world.LoadHook {
	return func(cx, cz int, c *chunk.Chunk) {
		es, err := j.Column(cx, cz)
		if err != nil {
			log.Error("replay edits", "cx", cx, "cz", cz, "error", err)
			return
		}
		for _, e := range es {
			c.SetBlock(chunk.Local(e.X), e.Y, chunk.Local(e.Z), e.ID)
		}
		if len(es) > 0 {
			log.Debug("replayed edits", "cx", cx, "cz", cz, "count", len(es))
		}
	}
}

// Memory is an in-process journal.
type Memory struct {
	cols map[chunk.Pos]map[world.BlockPos]block.ID
}

func NewMemory() *Memory {
	return &Memory{cols: make(map[chunk.Pos]map[world.BlockPos]block.ID)}
}

func (m *Memory) Record(e Edit) error {
	p := e.column()
	col, ok := m.cols[p]
	if !ok {
		col = make(map[world.BlockPos]block.ID)
		m.cols[p] = col
	}
	col[world.BlockPos{X: e.X, Y: e.Y, Z: e.Z}] = e.ID
	return nil
}

func (m *Memory) Column(cx, cz int) ([]Edit, error) {
	col := m.cols[chunk.Pos{X: cx, Z: cz}]
	out := make([]Edit, 0, len(col))
	for p, id := range col {
		out = append(out, Edit{X: p.X, Y: p.Y, Z: p.Z, ID: id})
	}
	sortEdits(out)
	return out, nil
}

// Len returns the number of recorded positions.
func (m *Memory) Len() int {
	n := 0
	for _, col := range m.cols {
		n += len(col)
	}
	return n
}

func (m *Memory) all() []Edit {
	out := make([]Edit, 0, m.Len())
	for _, col := range m.cols {
		for p, id := range col {
			out = append(out, Edit{X: p.X, Y: p.Y, Z: p.Z, ID: id})
		}
	}
	sortEdits(out)
	return out
}

func (m *Memory) Close() error { return nil }

func sortEdits(es []Edit) {
	slices.SortFunc(es, func(a, b Edit) int {
		return cmp.Or(cmp.Compare(a.Y, b.Y), cmp.Compare(a.Z, b.Z), cmp.Compare(a.X, b.X))
	})
}
