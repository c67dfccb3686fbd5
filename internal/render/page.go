// Package render draws a funding hierarchy as an HTML treemap page.
//
// Build runs the synchronous half of the pipeline once the data is loaded:
// colors are assigned per top-level category, the tree is laid out, and the
// chart and legend view models are produced. The Document it returns can
// then be written as a full page or as a standalone legend SVG.
package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/google/uuid"

	"github.com/ziadkadry99/fundmap/internal/hierarchy"
	"github.com/ziadkadry99/fundmap/internal/layout"
	"github.com/ziadkadry99/fundmap/internal/legend"
	"github.com/ziadkadry99/fundmap/internal/palette"
	"github.com/ziadkadry99/fundmap/internal/tooltip"
)

// Options configures one render pass.
type Options struct {
	Layout      layout.Options
	Legend      legend.Options
	Title       string
	Description string // markdown
}

// DefaultOptions returns the 1200x700 treemap with the default legend.
func DefaultOptions() Options {
	return Options{Layout: layout.DefaultOptions(), Title: "Treemap"}
}

// Document is the result of one render pass.
type Document struct {
	ID          string
	Title       string
	Description template.HTML
	Root        *hierarchy.Node
	Tree        *layout.Node
	Colors      []palette.Entry
	Chart       Chart
	Legend      legend.Legend
}

// Build lays out root and prepares everything the page needs.
func Build(root *hierarchy.Node, opts Options) (*Document, error) {
	if root == nil {
		return nil, fmt.Errorf("render: nil hierarchy")
	}
	desc, err := Markdown(opts.Description)
	if err != nil {
		return nil, err
	}

	domain := root.Categories()
	colors := palette.Assign(domain)
	rng := palette.Colors(colors)
	scale := palette.NewOrdinal(domain, rng)

	tree := layout.Layout(root, opts.Layout)
	chart := BuildChart(tree, opts.Layout.Width, opts.Layout.Height, scale)
	lg := legend.Build(legend.Entries(domain, rng), opts.Legend)

	return &Document{
		ID:          uuid.NewString(),
		Title:       opts.Title,
		Description: desc,
		Root:        root,
		Tree:        tree,
		Colors:      colors,
		Chart:       chart,
		Legend:      lg,
	}, nil
}

type pageData struct {
	RenderID      string
	Title         string
	Description   template.HTML
	Chart         Chart
	Legend        legend.Legend
	TooltipOffset int
}

// WriteHTML writes the complete page.
func (d *Document) WriteHTML(w io.Writer) error {
	data := pageData{
		RenderID:      d.ID,
		Title:         d.Title,
		Description:   d.Description,
		Chart:         d.Chart,
		Legend:        d.Legend,
		TooltipOffset: tooltip.Offset,
	}
	if err := templates.ExecuteTemplate(w, "page", data); err != nil {
		return fmt.Errorf("executing page template: %w", err)
	}
	return nil
}

// WriteLegendSVG writes the legend as a standalone SVG document.
func (d *Document) WriteLegendSVG(w io.Writer) error {
	if err := templates.ExecuteTemplate(w, "legend-standalone", d.Legend); err != nil {
		return fmt.Errorf("executing legend template: %w", err)
	}
	return nil
}
