package gen

import "github.com/OCharnyshevich/blockgrid/pkg/block"

// Species selects a tree template.
type Species uint8

const (
	Oak Species = iota
	Birch
	Spruce
	Jungle
	Cactus
)

// Biome describes the surface and decoration of a block column.
type Biome struct {
	Name         string
	Surface      block.ID
	Filler       block.ID
	TreeChance   float64
	Trees        []Species // picked uniformly per tree
	HeightScale  float64
	HeightOffset float64
}

// The biome table. Entries are shared and must not be modified.
var (
	BiomePlains    = &Biome{"plains", block.Grass, block.Dirt, 0.005, []Species{Oak}, 1.0, 0}
	BiomeForest    = &Biome{"forest", block.Grass, block.Dirt, 0.08, []Species{Oak, Oak, Birch}, 1.0, 1}
	BiomeDesert    = &Biome{"desert", block.Sand, block.Sand, 0.003, []Species{Cactus}, 0.5, 0}
	BiomeSnow      = &Biome{"snow", block.Snow, block.Dirt, 0.03, []Species{Spruce}, 1.2, 1}
	BiomeMountains = &Biome{"mountains", block.Stone, block.Stone, 0.01, []Species{Spruce}, 3.0, 5}
	BiomeSwamp     = &Biome{"swamp", block.Grass, block.Dirt, 0.04, []Species{Oak}, 0.3, -2}
	BiomeJungle    = &Biome{"jungle", block.Grass, block.Dirt, 0.1, []Species{Jungle}, 1.0, 1}
)

// selectBiome maps temperature and humidity, both in [-1, 1], to a biome.
func selectBiome(temp, humid float64) *Biome {
	switch {
	case temp < -0.4:
		return BiomeSnow
	case temp > 0.5:
		if humid > 0.2 {
			return BiomeJungle
		}
		return BiomeDesert
	case humid < -0.3:
		return BiomeMountains
	case humid > 0.3:
		return BiomeSwamp
	case temp > 0 && humid > -0.1:
		return BiomeForest
	default:
		return BiomePlains
	}
}

// climateScale stretches the climate fields so biomes span several chunks.
const climateScale = 1.0 / 256

// Climate samples the temperature and humidity fields.
type Climate struct {
	temp  *Simplex
	humid *Simplex
}

func NewClimate(seed int64) *Climate {
	return &Climate{
		temp:  NewSimplex(seed + 100),
		humid: NewSimplex(seed + 200),
	}
}

// BiomeAt returns the biome of the column at world (x, z).
func (c *Climate) BiomeAt(x, z int) *Biome {
	fx := float64(x) * climateScale
	fz := float64(z) * climateScale
	return selectBiome(c.temp.Eval(fx, fz), c.humid.Eval(fx, fz))
}
