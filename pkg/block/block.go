// Package block holds the block id space, the immutable properties table and
// the texture atlas layout shared by the generator, the mesher and the world.
package block

// ID identifies a block type. The zero value is air.
type ID uint8

// Block ids produced by the generators. The registry loaded from blocks.yaml
// must agree with these values.
const (
	Air ID = iota
	Grass
	Dirt
	Stone
	OakLog
	OakLeaves
	Water
	Sand
	CoalOre
	IronOre
	GoldOre
	DiamondOre
	_
	Snow
	Bedrock
	SpruceLog
	SpruceLeaves
	BirchLog
	BirchLeaves
	JungleLog
	JungleLeaves
	Cactus
	Obsidian
	EndStone
	_
	Purpur
	ChorusPlant
	ChorusFlower
	EndPortalFrame
	EndPortal
)

// Face selects which tile of a block is shown on a given side.
type Face uint8

const (
	FaceSide Face = iota
	FaceTop
	FaceBottom
)

// Tool is the preferred tool class for breaking a block.
type Tool uint8

const (
	ToolNone Tool = iota
	ToolPickaxe
	ToolAxe
	ToolShovel
	ToolSword
	ToolHoe
)

var toolNames = map[string]Tool{
	"":        ToolNone,
	"pickaxe": ToolPickaxe,
	"axe":     ToolAxe,
	"shovel":  ToolShovel,
	"sword":   ToolSword,
	"hoe":     ToolHoe,
}

// Tier is the material tier of a tool. TierNone means bare hands.
type Tier uint8

const (
	TierNone Tier = iota
	TierWood
	TierStone
	TierIron
	TierDiamond
)

var tierNames = map[string]Tier{
	"":        TierNone,
	"wood":    TierWood,
	"stone":   TierStone,
	"iron":    TierIron,
	"diamond": TierDiamond,
}

// Tile is a cell of the texture atlas.
type Tile struct {
	Col, Row int
}

// Props are the static properties of one block type.
type Props struct {
	Name     string
	Solid    bool
	Top      Tile
	Side     Tile
	Bottom   Tile
	Hardness float64 // math.Inf(1) for unbreakable blocks
	Tool     Tool
	MinTier  Tier
}

// Tile returns the atlas cell shown on the given face.
func (p Props) Tile(f Face) Tile {
	switch f {
	case FaceTop:
		return p.Top
	case FaceBottom:
		return p.Bottom
	default:
		return p.Side
	}
}
