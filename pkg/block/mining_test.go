package block

import (
	"math"
	"testing"
)

func TestBreakTicks(t *testing.T) {
	stone := Props{Name: "stone", Hardness: 1.5, Tool: ToolPickaxe, MinTier: TierWood}
	leaves := Props{Name: "leaves", Hardness: 0.2}
	bedrock := Props{Name: "bedrock", Hardness: math.Inf(1)}
	flower := Props{Name: "flower", Hardness: 0}

	tests := []struct {
		name  string
		props Props
		tool  Tool
		tier  Tier
		speed float64
		want  int
	}{
		{"unbreakable", bedrock, ToolPickaxe, TierDiamond, 8, -1},
		{"instant", flower, ToolNone, TierNone, 1, 0},
		{"bare hands on stone", stone, ToolNone, TierNone, 1, 150},
		{"wood pickaxe on stone", stone, ToolPickaxe, TierWood, 2, 22},
		{"wrong tool ignores speed", stone, ToolAxe, TierDiamond, 8, 150},
		{"no tool needed", leaves, ToolNone, TierNone, 1, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BreakTicks(tt.props, tt.tool, tt.tier, tt.speed); got != tt.want {
				t.Errorf("BreakTicks() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCanHarvest(t *testing.T) {
	ore := Props{Hardness: 3, Tool: ToolPickaxe, MinTier: TierIron}
	if CanHarvest(ore, ToolPickaxe, TierStone) {
		t.Error("stone pickaxe should not harvest iron-tier ore")
	}
	if !CanHarvest(ore, ToolPickaxe, TierDiamond) {
		t.Error("diamond pickaxe should harvest iron-tier ore")
	}
	if !CanHarvest(Props{Hardness: 1}, ToolNone, TierNone) {
		t.Error("block without tool should always harvest")
	}
}
