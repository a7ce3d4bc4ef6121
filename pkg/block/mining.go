package block

import "math"

// CanHarvest reports whether breaking a block with the given tool yields a
// drop. Blocks without a preferred tool drop for anything.
func CanHarvest(p Props, tool Tool, tier Tier) bool {
	if p.Tool == ToolNone {
		return true
	}
	return tool == p.Tool && tier >= p.MinTier
}

// BreakTicks returns the expected break time in ticks for a block given the
// held tool and its speed multiplier. Returns -1 for unbreakable blocks.
func BreakTicks(p Props, tool Tool, tier Tier, speed float64) int {
	if math.IsInf(p.Hardness, 1) {
		return -1
	}
	if p.Hardness == 0 {
		return 0
	}
	if speed <= 0 || tool != p.Tool {
		speed = 1
	}

	var damage float64
	if CanHarvest(p, tool, tier) {
		damage = speed / p.Hardness / 30.0
	} else {
		// Wrong tool or tier: slower, no drops.
		damage = speed / p.Hardness / 100.0
	}
	if damage >= 1.0 {
		return 0
	}
	return int(1.0 / damage)
}

// TierSpeed is the base mining speed of a tool tier.
func TierSpeed(t Tier) float64 {
	switch t {
	case TierWood:
		return 2
	case TierStone:
		return 4
	case TierIron:
		return 6
	case TierDiamond:
		return 8
	default:
		return 1
	}
}
