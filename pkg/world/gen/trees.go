package gen

import (
	"github.com/OCharnyshevich/blockgrid/pkg/block"
	"github.com/OCharnyshevich/blockgrid/pkg/world/chunk"
)

// stamp is one block of a tree template, offset from the tree base.
type stamp struct {
	dx, dy, dz int
	id         block.ID
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// treeTemplate returns the blocks of one tree. The trunk comes first.
func treeTemplate(s Species, rng *columnRNG) []stamp {
	switch s {
	case Oak:
		return roundTree(4+rng.intn(2), block.OakLog, block.OakLeaves)
	case Birch:
		return roundTree(5+rng.intn(2), block.BirchLog, block.BirchLeaves)
	case Spruce:
		return spruceTree(6 + rng.intn(3))
	case Jungle:
		return jungleTree(8 + rng.intn(4))
	case Cactus:
		return trunk(2+rng.intn(2), block.Cactus)
	}
	return nil
}

func trunk(height int, log block.ID) []stamp {
	out := make([]stamp, 0, height)
	for y := 0; y < height; y++ {
		out = append(out, stamp{0, y, 0, log})
	}
	return out
}

// roundTree is a trunk with a canopy over its top three layers and a
// narrower cap one block above.
func roundTree(height int, log, leaves block.ID) []stamp {
	out := trunk(height, log)
	for dy := height - 3; dy <= height; dy++ {
		radius := 2
		if dy == height {
			radius = 1
		}
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				if dx == 0 && dz == 0 && dy < height {
					continue
				}
				if dy == height && abs(dx) == radius && abs(dz) == radius {
					continue
				}
				out = append(out, stamp{dx, dy, dz, leaves})
			}
		}
	}
	return out
}

// spruceTree is a cone of leaves narrowing towards the tip.
func spruceTree(height int) []stamp {
	out := trunk(height, block.SpruceLog)
	for dy := 2; dy <= height; dy++ {
		radius := (height-dy)/2 + 1
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				if dx == 0 && dz == 0 {
					continue
				}
				if abs(dx)+abs(dz) > radius+1 {
					continue
				}
				out = append(out, stamp{dx, dy, dz, block.SpruceLeaves})
			}
		}
	}
	return append(out, stamp{0, height, 0, block.SpruceLeaves})
}

func jungleTree(height int) []stamp {
	out := trunk(height, block.JungleLog)
	for dy := height - 3; dy <= height+1; dy++ {
		radius := 3
		if dy > height {
			radius = 1
		}
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				if dx == 0 && dz == 0 && dy < height {
					continue
				}
				if dx*dx+dz*dz > radius*radius+1 {
					continue
				}
				out = append(out, stamp{dx, dy, dz, block.JungleLeaves})
			}
		}
	}
	return out
}

// placeTree stamps a template with its base at local (x, y, z). Blocks that
// fall outside the chunk are dropped. Logs replace air and leaves, leaves
// only fill air.
func placeTree(b *chunk.Blocks, x, y, z int, tmpl []stamp) {
	for _, s := range tmpl {
		lx, ly, lz := x+s.dx, y+s.dy, z+s.dz
		if !chunk.InBounds(lx, ly, lz) {
			continue
		}
		cur := b.Get(lx, ly, lz)
		if isLeaves(s.id) {
			if cur == block.Air {
				b.Set(lx, ly, lz, s.id)
			}
			continue
		}
		if cur == block.Air || isLeaves(cur) {
			b.Set(lx, ly, lz, s.id)
		}
	}
}

func isLeaves(id block.ID) bool {
	switch id {
	case block.OakLeaves, block.BirchLeaves, block.SpruceLeaves, block.JungleLeaves:
		return true
	}
	return false
}
