package gen

import (
	"math"

	"github.com/OCharnyshevich/blockgrid/pkg/block"
	"github.com/OCharnyshevich/blockgrid/pkg/world/chunk"
)

const (
	SeaLevel   = 20
	WaterLevel = 18

	terrainScale  = 0.02
	terrainHeight = 6.0
	fillerDepth   = 3
)

// Overworld produces biome terrain with ores and trees.
type Overworld struct {
	seed    uint32
	terrain *Simplex
	climate *Climate
}

func NewOverworld(seed int64) *Overworld {
	return &Overworld{
		seed:    seed32(seed),
		terrain: NewSimplex(seed),
		climate: NewClimate(seed),
	}
}

// BiomeAt returns the biome of the column at world (x, z).
func (g *Overworld) BiomeAt(x, z int) *Biome {
	return g.climate.BiomeAt(x, z)
}

// HeightAt returns the surface height of the column at world (x, z).
func (g *Overworld) HeightAt(x, z int) int {
	return g.surface(x, z, g.climate.BiomeAt(x, z))
}

func (g *Overworld) surface(x, z int, b *Biome) int {
	fx := float64(float64(x) * terrainScale)
	fz := float64(float64(z) * terrainScale)

	n := float64(g.terrain.Eval(fx, fz)*terrainHeight) +
		float64(g.terrain.Eval(fx*2, fz*2)*(terrainHeight/2)) +
		float64(g.terrain.Eval(fx*4, fz*4)*(terrainHeight/4))

	h := int(math.Floor(SeaLevel + b.HeightOffset + float64(n*b.HeightScale)))
	return min(max(h, 1), chunk.Height-2)
}

func (g *Overworld) Fill(b *chunk.Blocks, cx, cz int) {
	var (
		heights [chunk.Width][chunk.Depth]int
		biomes  [chunk.Width][chunk.Depth]*Biome
	)
	*b = chunk.Blocks{}

	// Pass 1: layered columns with ores in the stone.
	for x := 0; x < chunk.Width; x++ {
		for z := 0; z < chunk.Depth; z++ {
			wx, wz := cx*chunk.Width+x, cz*chunk.Depth+z
			bio := g.climate.BiomeAt(wx, wz)
			h := g.surface(wx, wz, bio)
			heights[x][z], biomes[x][z] = h, bio
			g.fillColumn(b, x, z, wx, wz, h, bio)
		}
	}

	// Pass 2: trees, after every column exists so canopies land on terrain.
	for x := 0; x < chunk.Width; x++ {
		for z := 0; z < chunk.Depth; z++ {
			h, bio := heights[x][z], biomes[x][z]
			if h < WaterLevel || bio.TreeChance <= 0 {
				continue
			}
			wx, wz := cx*chunk.Width+x, cz*chunk.Depth+z
			rng := newColumnRNG(g.seed, wx, wz)
			if rng.float() >= bio.TreeChance {
				continue
			}
			species := bio.Trees[rng.intn(len(bio.Trees))]
			placeTree(b, x, h+1, z, treeTemplate(species, rng))
		}
	}
}

func (g *Overworld) fillColumn(b *chunk.Blocks, x, z, wx, wz, h int, bio *Biome) {
	underwater := h < WaterLevel

	b.Set(x, 0, z, block.Bedrock)
	for y := 1; y < h-fillerDepth; y++ {
		b.Set(x, y, z, oreAt(g.seed, wx, y, wz))
	}
	for y := max(h-fillerDepth, 1); y < h; y++ {
		b.Set(x, y, z, bio.Filler)
	}

	top := bio.Surface
	if underwater {
		top = block.Sand
	}
	b.Set(x, h, z, top)

	for y := h + 1; y <= WaterLevel; y++ {
		b.Set(x, y, z, block.Water)
	}
}
