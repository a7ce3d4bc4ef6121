package block

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed blocks.yaml
var defaultDefs []byte

// Def is the declarative form of a block type as it appears in blocks.yaml.
type Def struct {
	ID       ID       `yaml:"id"`
	Name     string   `yaml:"name"`
	Solid    *bool    `yaml:"solid"` // defaults to true
	Tiles    TileDef  `yaml:"tiles"`
	Hardness *float64 `yaml:"hardness"` // nil means unbreakable
	Tool     string   `yaml:"tool"`
	Tier     string   `yaml:"tier"`
}

// TileDef names atlas tiles per face. All fills any face left empty.
type TileDef struct {
	All    string `yaml:"all"`
	Top    string `yaml:"top"`
	Side   string `yaml:"side"`
	Bottom string `yaml:"bottom"`
}

type defFile struct {
	Atlas struct {
		Atlas `yaml:",inline"`
		Tiles map[string][2]int `yaml:"tiles"`
	} `yaml:"atlas"`
	Blocks []Def `yaml:"blocks"`
}

// Registry is the immutable id-indexed table of block properties.
// A Registry is safe for concurrent reads.
type Registry struct {
	atlas  Atlas
	props  [256]Props
	known  [256]bool
	byName map[string]ID
}

// NewRegistry builds a registry from block definitions. tiles maps the tile
// names used by defs to atlas cells.
func NewRegistry(atlas Atlas, tiles map[string]Tile, defs []Def) (*Registry, error) {
	if atlas.Cols <= 0 || atlas.Rows <= 0 {
		return nil, fmt.Errorf("invalid atlas size %dx%d", atlas.Cols, atlas.Rows)
	}

	r := &Registry{atlas: atlas, byName: make(map[string]ID, len(defs))}
	for _, d := range defs {
		if d.ID == Air {
			return nil, fmt.Errorf("block %q: id 0 is reserved for air", d.Name)
		}
		if r.known[d.ID] {
			return nil, fmt.Errorf("block %q: duplicate id %d", d.Name, d.ID)
		}
		if _, dup := r.byName[d.Name]; dup {
			return nil, fmt.Errorf("block %q: duplicate name", d.Name)
		}

		p, err := d.props(atlas, tiles)
		if err != nil {
			return nil, fmt.Errorf("block %q: %w", d.Name, err)
		}
		r.props[d.ID] = p
		r.known[d.ID] = true
		r.byName[d.Name] = d.ID
	}
	return r, nil
}

func (d Def) props(atlas Atlas, tiles map[string]Tile) (Props, error) {
	p := Props{Name: d.Name, Solid: true, Hardness: math.Inf(1)}
	if d.Solid != nil {
		p.Solid = *d.Solid
	}
	if d.Hardness != nil {
		if *d.Hardness < 0 {
			return Props{}, fmt.Errorf("negative hardness %v", *d.Hardness)
		}
		p.Hardness = *d.Hardness
	}

	var ok bool
	if p.Tool, ok = toolNames[d.Tool]; !ok {
		return Props{}, fmt.Errorf("unknown tool %q", d.Tool)
	}
	if p.MinTier, ok = tierNames[d.Tier]; !ok {
		return Props{}, fmt.Errorf("unknown tier %q", d.Tier)
	}

	resolve := func(name string) (Tile, error) {
		if name == "" {
			name = d.Tiles.All
		}
		t, ok := tiles[name]
		if !ok {
			return Tile{}, fmt.Errorf("unknown tile %q", name)
		}
		if t.Col < 0 || t.Col >= atlas.Cols || t.Row < 0 || t.Row >= atlas.Rows {
			return Tile{}, fmt.Errorf("tile %q outside atlas", name)
		}
		return t, nil
	}

	var err error
	if p.Top, err = resolve(d.Tiles.Top); err != nil {
		return Props{}, err
	}
	if p.Side, err = resolve(d.Tiles.Side); err != nil {
		return Props{}, err
	}
	if p.Bottom, err = resolve(d.Tiles.Bottom); err != nil {
		return Props{}, err
	}
	return p, nil
}

// Load parses a YAML block definition document.
func Load(r io.Reader) (*Registry, error) {
	var f defFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty block definitions")
		}
		return nil, fmt.Errorf("decode block definitions: %w", err)
	}

	tiles := make(map[string]Tile, len(f.Atlas.Tiles))
	for name, cell := range f.Atlas.Tiles {
		tiles[name] = Tile{Col: cell[0], Row: cell[1]}
	}
	return NewRegistry(f.Atlas.Atlas, tiles, f.Blocks)
}

var loadDefault = sync.OnceValues(func() (*Registry, error) {
	return Load(bytes.NewReader(defaultDefs))
})

// Default returns the built-in registry. It panics if the embedded
// definitions are invalid.
func Default() *Registry {
	r, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("block: embedded definitions: %v", err))
	}
	return r
}

// Atlas returns the atlas layout the tiles refer to.
func (r *Registry) Atlas() Atlas { return r.atlas }

// IsSolid reports whether id is a registered solid block. Air and unknown ids
// are never solid.
func (r *Registry) IsSolid(id ID) bool {
	return r.props[id].Solid
}

// Known reports whether id is registered.
func (r *Registry) Known(id ID) bool {
	return r.known[id]
}

// Lookup returns the properties of id.
func (r *Registry) Lookup(id ID) (Props, bool) {
	return r.props[id], r.known[id]
}

// ByName returns the id registered under name.
func (r *Registry) ByName(name string) (ID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// Len returns the number of registered block types.
func (r *Registry) Len() int {
	return len(r.byName)
}
