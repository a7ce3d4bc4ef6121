package gen

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"

	"github.com/OCharnyshevich/blockgrid/pkg/block"
	"github.com/OCharnyshevich/blockgrid/pkg/world/chunk"
)

const (
	outerIslandY         = 40
	outerIslandScale     = 0.015
	outerIslandThreshold = 0.2
	outerDetailScale     = 0.05
	outerChorusNoise     = 0.3
	outerCityNoise       = 0.45
)

// OuterEnd generates scattered floating islands with chorus plants and
// occasional purpur towers.
type OuterEnd struct {
	islands opensimplex.Noise
	detail  *perlin.Perlin
}

func NewOuterEnd(seed int64) *OuterEnd {
	return &OuterEnd{
		islands: opensimplex.New(seed),
		detail:  perlin.NewPerlin(2, 2, 3, seed+1),
	}
}

func (g *OuterEnd) island(x, z int) float64 {
	return g.islands.Eval2(float64(x)*outerIslandScale, float64(z)*outerIslandScale)
}

// column returns the island surface and thickness at world (x, z). ok is
// false over the void.
func (g *OuterEnd) column(x, z int) (surface, thickness int, n float64, ok bool) {
	n = g.island(x, z)
	if n <= outerIslandThreshold {
		return 0, 0, n, false
	}
	d := g.detail.Noise2D(float64(x)*outerDetailScale, float64(z)*outerDetailScale)
	thickness = int(math.Floor((n-outerIslandThreshold)*15)) + 1
	surface = outerIslandY + int(math.Floor(d*3))
	return surface, thickness, n, true
}

func (g *OuterEnd) Fill(b *chunk.Blocks, cx, cz int) {
	*b = chunk.Blocks{}
	for x := 0; x < chunk.Width; x++ {
		for z := 0; z < chunk.Depth; z++ {
			wx, wz := cx*chunk.Width+x, cz*chunk.Depth+z
			surface, thickness, n, ok := g.column(wx, wz)
			if !ok {
				continue
			}
			for dy := 0; dy < thickness; dy++ {
				b.Set(x, surface-dy, z, block.EndStone)
			}

			if hashEnd(wx, wz)%100 < 8 && n > outerChorusNoise {
				h := 2 + hashEnd(wx+1, wz+1)%4
				for dy := 1; dy <= h; dy++ {
					b.Set(x, surface+dy, z, block.ChorusPlant)
				}
				b.Set(x, surface+h+1, z, block.ChorusFlower)
			}
		}
	}

	// Purpur tower: a hollow 5x5 shell, ten blocks tall with a roof.
	center := g.island(cx*chunk.Width+8, cz*chunk.Depth+8)
	if center <= outerCityNoise || hashEnd(cx, cz)%5 != 0 {
		return
	}
	const tx, tz, base = 6, 6, outerIslandY + 1
	for x := tx; x < tx+5; x++ {
		for z := tz; z < tz+5; z++ {
			for y := base; y < base+10; y++ {
				wall := x == tx || x == tx+4 || z == tz || z == tz+4 || y == base+9
				if wall {
					b.Set(x, y, z, block.Purpur)
				}
			}
		}
	}
}

func (g *OuterEnd) HeightAt(x, z int) int {
	surface, _, _, ok := g.column(x, z)
	if !ok {
		return 0
	}
	return min(max(surface, 0), chunk.Height-1)
}
