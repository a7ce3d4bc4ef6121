package gen

import (
	"github.com/OCharnyshevich/blockgrid/pkg/block"
	"github.com/OCharnyshevich/blockgrid/pkg/world/chunk"
)

// Flat generates a superflat world: bedrock at y=0, stone y=1..2, dirt y=3,
// grass y=4.
type Flat struct{}

func NewFlat() *Flat {
	return &Flat{}
}

var flatLayers = [...]block.ID{block.Bedrock, block.Stone, block.Stone, block.Dirt, block.Grass}

func (g *Flat) Fill(b *chunk.Blocks, _, _ int) {
	*b = chunk.Blocks{}
	for x := 0; x < chunk.Width; x++ {
		for z := 0; z < chunk.Depth; z++ {
			for y, id := range flatLayers {
				b.Set(x, y, z, id)
			}
		}
	}
}

func (g *Flat) HeightAt(_, _ int) int {
	return len(flatLayers) - 1
}
