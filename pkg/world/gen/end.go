package gen

import (
	"math"

	"github.com/OCharnyshevich/blockgrid/pkg/block"
	"github.com/OCharnyshevich/blockgrid/pkg/world/chunk"
)

const (
	endIslandY      = 40
	endIslandRadius = 50
	endTowerRing    = 40
	endTowerRadius  = 2
)

// Tower is an obsidian pillar standing on the end island.
type Tower struct {
	X, Z   int
	Height int
}

// EndTowers are the pillars ringing the island center.
var EndTowers = func() [8]Tower {
	var ts [8]Tower
	for i := range ts {
		angle := float64(i) / 8 * math.Pi * 2
		ts[i] = Tower{
			X:      int(math.Round(math.Cos(angle) * endTowerRing)),
			Z:      int(math.Round(math.Sin(angle) * endTowerRing)),
			Height: 25 + (i*7+3)%30 + (i%2)*10,
		}
	}
	return ts
}()

// End generates a single floating end stone island centered on the origin.
// The island is thickest at its center.
type End struct{}

func NewEnd() *End {
	return &End{}
}

func (g *End) Fill(b *chunk.Blocks, cx, cz int) {
	*b = chunk.Blocks{}
	for x := 0; x < chunk.Width; x++ {
		for z := 0; z < chunk.Depth; z++ {
			wx, wz := cx*chunk.Width+x, cz*chunk.Depth+z

			if t := islandThickness(wx, wz); t > 0 {
				for dy := 0; dy < t; dy++ {
					b.Set(x, endIslandY-dy, z, block.EndStone)
				}
			}

			for _, tw := range EndTowers {
				if abs(wx-tw.X) > endTowerRadius || abs(wz-tw.Z) > endTowerRadius {
					continue
				}
				for y := endIslandY; y <= endIslandY+tw.Height && y < chunk.Height; y++ {
					b.Set(x, y, z, block.Obsidian)
				}
			}
		}
	}
}

// islandThickness is 1..9 inside the island and 0 outside.
func islandThickness(x, z int) int {
	d2 := x*x + z*z
	r2 := endIslandRadius * endIslandRadius
	if d2 > r2 {
		return 0
	}
	edge := 1 - float64(d2)/float64(r2)
	return int(math.Floor(edge*8)) + 1
}

// HeightAt returns the top of the island or of a tower, or 0 over the void.
func (g *End) HeightAt(x, z int) int {
	h := 0
	if islandThickness(x, z) > 0 {
		h = endIslandY
	}
	for _, tw := range EndTowers {
		if abs(x-tw.X) <= endTowerRadius && abs(z-tw.Z) <= endTowerRadius {
			h = max(h, min(endIslandY+tw.Height, chunk.Height-1))
		}
	}
	return h
}
