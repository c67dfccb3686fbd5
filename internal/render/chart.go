package render

import (
	"github.com/ziadkadry99/fundmap/internal/layout"
	"github.com/ziadkadry99/fundmap/internal/palette"
	"github.com/ziadkadry99/fundmap/internal/tooltip"
)

// Label placement relative to a tile's top-left corner.
const (
	LabelDX = 5
	LabelDY = 15
)

// Tile is one drawn leaf rectangle.
type Tile struct {
	Name     string
	Category string
	Value    string
	HasValue bool
	X, Y     float64
	Width    float64
	Height   float64
	Fill     string
}

// Label is the name text drawn over a tile. It is never truncated.
type Label struct {
	X, Y float64
	Text string
}

// Chart is the drawable treemap.
type Chart struct {
	Width, Height float64
	Tiles         []Tile
	Labels        []Label
}

// BuildChart turns a positioned tree into tiles and labels, one of each per
// leaf, filled by the color of the leaf's top-level category.
func BuildChart(root *layout.Node, width, height float64, colors *palette.Ordinal) Chart {
	c := Chart{Width: width, Height: height}
	if root == nil {
		return c
	}
	leaves := root.Leaves()
	c.Tiles = make([]Tile, 0, len(leaves))
	c.Labels = make([]Label, 0, len(leaves))
	for _, l := range leaves {
		fill := ""
		if top := l.TopLevel(); top != nil {
			fill = colors.Color(top.Data.Name)
		}
		c.Tiles = append(c.Tiles, Tile{
			Name:     l.Data.Name,
			Category: l.Data.Category,
			Value:    l.Data.Value.String(),
			HasValue: !l.Data.Value.IsZero(),
			X:        l.X0,
			Y:        l.Y0,
			Width:    l.Width(),
			Height:   l.Height(),
			Fill:     fill,
		})
		c.Labels = append(c.Labels, Label{
			X:    l.X0 + LabelDX,
			Y:    l.Y0 + LabelDY,
			Text: l.Data.Name,
		})
	}
	return c
}

// Content returns what the tooltip shows for t.
func (t Tile) Content() tooltip.Content {
	return tooltip.Content{Name: t.Name, Category: t.Category, Value: t.Value}
}

// Center returns the midpoint of t.
func (t Tile) Center() (x, y float64) {
	return t.X + t.Width/2, t.Y + t.Height/2
}

// TileAt returns the tile containing the canvas point (x, y). Tiles do not
// overlap, so at most one matches; points in a gutter match none.
func (c Chart) TileAt(x, y float64) (Tile, bool) {
	for _, t := range c.Tiles {
		if x >= t.X && x < t.X+t.Width && y >= t.Y && y < t.Y+t.Height {
			return t, true
		}
	}
	return Tile{}, false
}
