package gen

import (
	"testing"

	"github.com/OCharnyshevich/blockgrid/pkg/block"
	"github.com/OCharnyshevich/blockgrid/pkg/world/chunk"
)

// The spawn structure is anchored on this column, so its height must never
// change for seed 42.
func TestOverworldHeightFixture(t *testing.T) {
	g := NewOverworld(42)
	if got := g.HeightAt(50, 50); got != 26 {
		t.Fatalf("HeightAt(50,50) = %d, want 26", got)
	}
	if got := g.BiomeAt(50, 50); got != BiomeForest {
		t.Errorf("BiomeAt(50,50) = %s, want forest", got.Name)
	}
}

func TestOverworldDeterministic(t *testing.T) {
	var a, b chunk.Blocks
	NewOverworld(42).Fill(&a, 3, -2)

	// A second generator that has already produced the neighbors.
	g := NewOverworld(42)
	var scratch chunk.Blocks
	for _, n := range [][2]int{{2, -2}, {4, -2}, {3, -1}, {3, -3}} {
		g.Fill(&scratch, n[0], n[1])
	}
	b = scratch
	g.Fill(&b, 3, -2)

	if a != b {
		t.Fatal("Fill output depends on generation history")
	}
}

func TestOverworldDifferentSeeds(t *testing.T) {
	var a, b chunk.Blocks
	NewOverworld(1).Fill(&a, 0, 0)
	NewOverworld(2).Fill(&b, 0, 0)
	if a == b {
		t.Error("different seeds produced identical chunks")
	}
}

func TestOverworldColumnLayers(t *testing.T) {
	g := NewOverworld(7)
	for _, c := range [][2]int{{0, 0}, {-3, 5}, {10, -10}, {40, 40}} {
		var b chunk.Blocks
		g.Fill(&b, c[0], c[1])

		for x := 0; x < chunk.Width; x++ {
			for z := 0; z < chunk.Depth; z++ {
				wx, wz := c[0]*chunk.Width+x, c[1]*chunk.Depth+z
				h := g.HeightAt(wx, wz)
				bio := g.BiomeAt(wx, wz)

				if got := b.Get(x, 0, z); got != block.Bedrock {
					t.Fatalf("(%d,0,%d) = %d, want bedrock", wx, wz, got)
				}
				top := b.Get(x, h, z)
				if top != bio.Surface && top != block.Sand {
					t.Fatalf("surface at (%d,%d,%d) = %d, want %d or sand", wx, h, wz, top, bio.Surface)
				}
				for y := 1; y < h-fillerDepth; y++ {
					switch b.Get(x, y, z) {
					case block.Stone, block.CoalOre, block.IronOre, block.GoldOre, block.DiamondOre:
					default:
						t.Fatalf("(%d,%d,%d) = %d, want stone or ore", wx, y, wz, b.Get(x, y, z))
					}
				}
				if h < WaterLevel {
					for y := h + 1; y <= WaterLevel; y++ {
						if got := b.Get(x, y, z); got != block.Water {
							t.Fatalf("(%d,%d,%d) = %d, want water", wx, y, wz, got)
						}
					}
				}
			}
		}
	}
}

func TestHeightAtClamped(t *testing.T) {
	g := NewOverworld(99)
	for x := -2000; x < 2000; x += 37 {
		for z := -2000; z < 2000; z += 41 {
			h := g.HeightAt(x, z)
			if h < 1 || h > chunk.Height-2 {
				t.Fatalf("HeightAt(%d,%d) = %d, outside [1,%d]", x, z, h, chunk.Height-2)
			}
		}
	}
}

func TestSelectBiome(t *testing.T) {
	tests := []struct {
		temp, humid float64
		want        *Biome
	}{
		{-0.5, 0.9, BiomeSnow},
		{0.6, 0.3, BiomeJungle},
		{0.6, 0.2, BiomeDesert},
		{0.0, -0.5, BiomeMountains},
		{-0.2, 0.5, BiomeSwamp},
		{0.1, 0.0, BiomeForest},
		{0.0, 0.0, BiomePlains},
		{0.3, -0.2, BiomePlains},
	}
	for _, tt := range tests {
		if got := selectBiome(tt.temp, tt.humid); got != tt.want {
			t.Errorf("selectBiome(%v, %v) = %s, want %s", tt.temp, tt.humid, got.Name, tt.want.Name)
		}
	}
}

func TestOreRates(t *testing.T) {
	const n = 100000
	count := func(y int) map[block.ID]int {
		m := map[block.ID]int{}
		for i := 0; i < n; i++ {
			m[oreAt(42, i%317, y, i/317)]++
		}
		return m
	}

	deep := count(8)
	if r := float64(deep[block.DiamondOre]) / n; r < 0.006 || r > 0.010 {
		t.Errorf("diamond rate at y=8 = %.4f, want about 0.008", r)
	}

	high := count(60)
	for _, id := range []block.ID{block.DiamondOre, block.GoldOre, block.IronOre} {
		if high[id] != 0 {
			t.Errorf("ore %d found at y=60", id)
		}
	}
	if r := float64(high[block.CoalOre]) / n; r < 0.027 || r > 0.033 {
		t.Errorf("coal rate at y=60 = %.4f, want about 0.03", r)
	}
}

func TestTreeTemplates(t *testing.T) {
	tests := []struct {
		species    Species
		log        block.ID
		minH, maxH int
	}{
		{Oak, block.OakLog, 4, 5},
		{Birch, block.BirchLog, 5, 6},
		{Spruce, block.SpruceLog, 6, 8},
		{Jungle, block.JungleLog, 8, 11},
		{Cactus, block.Cactus, 2, 3},
	}
	for _, tt := range tests {
		for seed := 0; seed < 20; seed++ {
			tmpl := treeTemplate(tt.species, newColumnRNG(uint32(seed), seed, -seed))
			trunk := 0
			for _, s := range tmpl {
				if s.id == tt.log && s.dx == 0 && s.dz == 0 {
					trunk++
				}
			}
			if trunk < tt.minH || trunk > tt.maxH {
				t.Errorf("species %d trunk height %d, want %d..%d", tt.species, trunk, tt.minH, tt.maxH)
			}
		}
	}
}

func TestPlaceTreeClipsAtChunkEdge(t *testing.T) {
	var b chunk.Blocks
	b.Set(15, 10, 15, block.Grass)
	placeTree(&b, 15, 11, 15, roundTree(4, block.OakLog, block.OakLeaves))

	for y := 11; y < 15; y++ {
		if got := b.Get(15, y, 15); got != block.OakLog {
			t.Errorf("trunk at y=%d = %d, want oak log", y, got)
		}
	}
	if got := b.Get(14, 13, 14); got != block.OakLeaves {
		t.Errorf("canopy inside chunk = %d, want leaves", got)
	}
	if got := b.Get(15, 10, 15); got != block.Grass {
		t.Errorf("tree replaced the ground: %d", got)
	}
}

func TestPlaceTreeLeavesKeepLogs(t *testing.T) {
	var b chunk.Blocks
	b.Set(5, 12, 6, block.BirchLog)
	placeTree(&b, 5, 10, 5, roundTree(4, block.OakLog, block.OakLeaves))
	if got := b.Get(5, 12, 6); got != block.BirchLog {
		t.Errorf("leaves overwrote a log: %d", got)
	}
}
