package gen

import "github.com/OCharnyshevich/blockgrid/pkg/block"

type oreBand struct {
	id     block.ID
	lo, hi float64 // slice of [0, 1) claimed by this ore
	maxY   int     // exclusive, 0 for any depth
}

// Bands are disjoint, so one hash value selects at most one ore.
var oreBands = []oreBand{
	{block.DiamondOre, 0.000, 0.008, 16},
	{block.GoldOre, 0.008, 0.018, 32},
	{block.IronOre, 0.018, 0.038, 48},
	{block.CoalOre, 0.038, 0.068, 0},
}

// oreAt returns the ore replacing stone at world (x, y, z), or stone.
func oreAt(seed uint32, x, y, z int) block.ID {
	u := unit(hash3(seed^saltOre, x, y, z))
	for _, o := range oreBands {
		if u >= o.lo && u < o.hi && (o.maxY == 0 || y < o.maxY) {
			return o.id
		}
	}
	return block.Stone
}
