package main

import (
	"context"
	"image"
	"image/color"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/OCharnyshevich/blockgrid/pkg/block"
	"github.com/OCharnyshevich/blockgrid/pkg/world/chunk"
	"github.com/OCharnyshevich/blockgrid/pkg/world/gen"
)

// region is a square of generated chunk columns reduced to their top blocks.
type region struct {
	minCX, minCZ int
	size         int // chunks per side
	heights      []int
	tops         []block.ID
}

func newRegion(centerCX, centerCZ, radius int) *region {
	size := radius*2 + 1
	n := size * chunk.Width * size * chunk.Depth
	return &region{
		minCX:   centerCX - radius,
		minCZ:   centerCZ - radius,
		size:    size,
		heights: make([]int, n),
		tops:    make([]block.ID, n),
	}
}

func (r *region) width() int { return r.size * chunk.Width }

// generate fills every chunk in the region with at most workers goroutines.
// Each chunk writes a disjoint slice of the column arrays.
func (r *region) generate(parent context.Context, g gen.Generator, workers int) error {
	eg, ctx := errgroup.WithContext(parent)
	eg.SetLimit(workers)

	for i := 0; i < r.size; i++ {
		for j := 0; j < r.size; j++ {
			if ctx.Err() != nil {
				break
			}
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				r.fill(g, i, j)
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	return parent.Err()
}

func (r *region) fill(g gen.Generator, i, j int) {
	var b chunk.Blocks
	g.Fill(&b, r.minCX+i, r.minCZ+j)

	for z := 0; z < chunk.Depth; z++ {
		for x := 0; x < chunk.Width; x++ {
			idx := (j*chunk.Depth+z)*r.width() + i*chunk.Width + x
			r.heights[idx] = -1
			r.tops[idx] = block.Air
			for y := chunk.Height - 1; y >= 0; y-- {
				if id := b.Get(x, y, z); id != block.Air {
					r.heights[idx] = y
					r.tops[idx] = id
					break
				}
			}
		}
	}
}

// biomeSource is implemented by generators with climate.
type biomeSource interface {
	BiomeAt(x, z int) *gen.Biome
}

type biomeCount struct {
	Name    string
	Columns int
}

// biomes counts columns per biome, most common first. Generators without
// biomes return nil.
func (r *region) biomes(g gen.Generator) []biomeCount {
	src, ok := g.(biomeSource)
	if !ok {
		return nil
	}

	counts := make(map[string]int)
	w := r.width()
	for z := 0; z < w; z++ {
		for x := 0; x < w; x++ {
			counts[src.BiomeAt(r.minCX*chunk.Width+x, r.minCZ*chunk.Depth+z).Name]++
		}
	}

	out := make([]biomeCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, biomeCount{name, n})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Columns != out[b].Columns {
			return out[a].Columns > out[b].Columns
		}
		return out[a].Name < out[b].Name
	})
	return out
}

var palette = map[block.ID]color.RGBA{
	block.Grass:        {86, 150, 60, 255},
	block.Sand:         {218, 205, 150, 255},
	block.Water:        {40, 80, 200, 255},
	block.Snow:         {240, 240, 250, 255},
	block.Stone:        {125, 125, 125, 255},
	block.OakLeaves:    {50, 110, 40, 255},
	block.BirchLeaves:  {90, 140, 60, 255},
	block.SpruceLeaves: {40, 85, 55, 255},
	block.JungleLeaves: {30, 130, 30, 255},
	block.Cactus:       {60, 120, 40, 255},
	block.EndStone:     {220, 220, 160, 255},
	block.Obsidian:     {30, 20, 45, 255},
	block.Purpur:       {170, 120, 170, 255},
	block.ChorusPlant:  {95, 60, 95, 255},
	block.ChorusFlower: {150, 110, 150, 255},
}

var fallback = color.RGBA{160, 120, 80, 255}

// image shades each column's top block by its height. Empty columns stay
// transparent.
func (r *region) image() *image.RGBA {
	w := r.width()
	img := image.NewRGBA(image.Rect(0, 0, w, w))
	for z := 0; z < w; z++ {
		for x := 0; x < w; x++ {
			idx := z*w + x
			h := r.heights[idx]
			if h < 0 {
				continue
			}
			c, ok := palette[r.tops[idx]]
			if !ok {
				c = fallback
			}
			img.SetRGBA(x, z, shade(c, h))
		}
	}
	return img
}

// shade darkens low columns and brightens high ones around mid height.
func shade(c color.RGBA, h int) color.RGBA {
	f := 0.6 + 0.8*float64(h)/float64(chunk.Height)
	scale := func(v uint8) uint8 {
		s := float64(v) * f
		if s > 255 {
			return 255
		}
		return uint8(s)
	}
	return color.RGBA{scale(c.R), scale(c.G), scale(c.B), c.A}
}
