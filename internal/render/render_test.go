package render

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/ziadkadry99/fundmap/internal/hierarchy"
	"github.com/ziadkadry99/fundmap/internal/palette"
	"github.com/ziadkadry99/fundmap/internal/tooltip"
)

func twoCategories() *hierarchy.Node {
	return &hierarchy.Node{Name: "root", Children: []*hierarchy.Node{
		{Name: "A", Children: []*hierarchy.Node{
			{Name: "alpha", Category: "A", Value: hierarchy.StringValue("10")},
		}},
		{Name: "B", Children: []*hierarchy.Node{
			{Name: "beta", Category: "B", Value: hierarchy.NumberValue(30)},
		}},
	}}
}

func build(t *testing.T, root *hierarchy.Node) *Document {
	t.Helper()
	opts := DefaultOptions()
	opts.Title = "Funding"
	opts.Description = "Top campaigns **by category**"
	doc, err := Build(root, opts)
	require.NoError(t, err)
	return doc
}

// findAll returns every element named tag below n.
func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.ElementNode && cur.Data == tag {
			out = append(out, cur)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func byID(n *html.Node, id string) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if found != nil {
			return
		}
		if v, ok := attr(cur, "id"); ok && v == id {
			found = cur
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			sb.WriteString(cur.Data)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func TestBuildChart(t *testing.T) {
	doc := build(t, twoCategories())

	require.Len(t, doc.Chart.Tiles, 2)
	require.Len(t, doc.Chart.Labels, 2)

	a, b := doc.Chart.Tiles[0], doc.Chart.Tiles[1]
	assert.Equal(t, palette.HexColor("A"), a.Fill)
	assert.Equal(t, palette.HexColor("B"), b.Fill)
	assert.Equal(t, "10", a.Value)
	assert.Equal(t, "30", b.Value)
	assert.InDelta(t, 3.0, (b.Width*b.Height)/(a.Width*a.Height), 0.15)

	assert.Equal(t, a.X+5, doc.Chart.Labels[0].X)
	assert.Equal(t, a.Y+15, doc.Chart.Labels[0].Y)
	assert.Equal(t, "alpha", doc.Chart.Labels[0].Text)

	assert.Equal(t, []palette.Entry{
		{Category: "A", Color: palette.HexColor("A")},
		{Category: "B", Color: palette.HexColor("B")},
	}, doc.Colors)
	assert.NotEmpty(t, doc.ID)
}

func TestWriteHTML(t *testing.T) {
	doc := build(t, twoCategories())

	var buf bytes.Buffer
	require.NoError(t, doc.WriteHTML(&buf))

	page, err := html.Parse(&buf)
	require.NoError(t, err)

	assert.Equal(t, "Funding", textOf(byID(page, "title")))
	desc := byID(page, "description")
	require.NotNil(t, desc)
	assert.Len(t, findAll(desc, "strong"), 1)

	treemap := byID(page, "tree-map")
	require.NotNil(t, treemap)
	w, _ := attr(treemap, "width")
	h, _ := attr(treemap, "height")
	assert.Equal(t, "1200", w)
	assert.Equal(t, "700", h)

	tiles := findAll(treemap, "rect")
	require.Len(t, tiles, 2)
	for i, tile := range tiles {
		class, _ := attr(tile, "class")
		assert.Equal(t, "tile", class)
		stroke, _ := attr(tile, "stroke")
		assert.Equal(t, "black", stroke)
		fill, _ := attr(tile, "fill")
		assert.Equal(t, doc.Chart.Tiles[i].Fill, fill)
		for _, key := range []string{"data-name", "data-category", "data-value", "x", "y", "width", "height"} {
			_, ok := attr(tile, key)
			assert.True(t, ok, "tile %d missing %s", i, key)
		}
	}
	v, _ := attr(tiles[1], "data-value")
	assert.Equal(t, "30", v)

	labels := findAll(treemap, "text")
	require.Len(t, labels, 2)
	size, _ := attr(labels[0], "font-size")
	assert.Equal(t, "11px", size)
	fill, _ := attr(labels[0], "fill")
	assert.Equal(t, "white", fill)

	tip := byID(page, "tooltip")
	require.NotNil(t, tip)
	style, _ := attr(tip, "style")
	assert.Contains(t, style, "opacity: 0")
	assert.Contains(t, style, "position: fixed")

	lg := byID(page, "legend")
	require.NotNil(t, lg)
	lh, _ := attr(lg, "height")
	assert.Equal(t, "64", lh)
	items := findAll(lg, "rect")
	require.Len(t, items, 2)
	class, _ := attr(items[0], "class")
	assert.Equal(t, "legend-item", class)
	assert.Equal(t, "A", textOf(findAll(lg, "text")[0]))

	scripts := findAll(page, "script")
	require.Len(t, scripts, 1)
	js := textOf(scripts[0])
	assert.Contains(t, js, "mouseenter")
	assert.Contains(t, js, "mouseleave")
}

func TestWriteHTMLEscapesNames(t *testing.T) {
	root := &hierarchy.Node{Name: "root", Children: []*hierarchy.Node{
		{Name: "X", Children: []*hierarchy.Node{
			{Name: `<script>alert("x")</script>`, Category: "X", Value: hierarchy.NumberValue(1)},
		}},
	}}
	doc := build(t, root)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteHTML(&buf))
	assert.NotContains(t, buf.String(), `<script>alert`)
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestMissingValueOmitsAttribute(t *testing.T) {
	root := &hierarchy.Node{Name: "root", Children: []*hierarchy.Node{
		{Name: "X", Children: []*hierarchy.Node{
			{Name: "no value", Category: "X"},
			{Name: "valued", Category: "X", Value: hierarchy.NumberValue(4)},
		}},
	}}
	doc := build(t, root)

	var buf bytes.Buffer
	require.NoError(t, doc.WriteHTML(&buf))
	page, err := html.Parse(&buf)
	require.NoError(t, err)

	tiles := findAll(byID(page, "tree-map"), "rect")
	require.Len(t, tiles, 2)
	_, ok := attr(tiles[0], "data-value")
	assert.False(t, ok)
	_, ok = attr(tiles[1], "data-value")
	assert.True(t, ok)
}

func TestHoverOverTile(t *testing.T) {
	doc := build(t, twoCategories())

	beta := doc.Chart.Tiles[1]
	cx, cy := beta.Center()
	tile, ok := doc.Chart.TileAt(cx, cy)
	require.True(t, ok)
	assert.Equal(t, "beta", tile.Name)

	s := tooltip.Enter(cx, cy, tile.Content())
	view := tooltip.Render(s)
	assert.Equal(t, 1, view.Opacity)
	assert.Contains(t, view.Text, "beta")
	assert.Contains(t, view.Text, "B")
	assert.Contains(t, view.Text, "30")
	assert.Equal(t, "30", view.DataValue)

	assert.Equal(t, 0, tooltip.Render(s.Leave()).Opacity)

	// The outer gutter belongs to no tile.
	_, ok = doc.Chart.TileAt(0.5, 0.5)
	assert.False(t, ok)
}

func TestWriteLegendSVG(t *testing.T) {
	doc := build(t, twoCategories())

	var buf bytes.Buffer
	require.NoError(t, doc.WriteLegendSVG(&buf))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`))
	assert.Equal(t, 2, strings.Count(out, `class="legend-item"`))
	assert.Contains(t, out, `height="64"`)
}

func TestMarkdown(t *testing.T) {
	out, err := Markdown("Top 100 *campaigns*")
	require.NoError(t, err)
	assert.Contains(t, string(out), "<em>campaigns</em>")

	empty, err := Markdown("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	raw, err := Markdown("<b>raw</b>")
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "<b>")
}

func TestBuildNilRoot(t *testing.T) {
	_, err := Build(nil, DefaultOptions())
	assert.Error(t, err)
}

func TestTooltipScript(t *testing.T) {
	doc := build(t, twoCategories())

	var buf bytes.Buffer
	require.NoError(t, doc.WriteHTML(&buf))
	page, err := html.Parse(&buf)
	require.NoError(t, err)

	scripts := findAll(page, "script")
	require.Len(t, scripts, 1)
	js := textOf(scripts[0])

	assert.Regexp(t, regexp.MustCompile(`var offset = \s*12\s*;`), js)
	assert.Contains(t, js, "document.querySelectorAll('#tree-map rect.tile')")

	enterAt := strings.Index(js, "'mouseenter'")
	leaveAt := strings.Index(js, "'mouseleave'")
	require.True(t, enterAt >= 0 && leaveAt > enterAt, "enter handler must precede leave handler")
	enter, leave := js[enterAt:leaveAt], js[leaveAt:]

	for _, want := range []string{
		"tooltip.style.opacity = 1",
		"tooltip.style.top = (evt.clientY - offset) + 'px'",
		"tooltip.style.left = (evt.clientX + offset) + 'px'",
		"tile.getAttribute('data-name')",
		"tile.getAttribute('data-category')",
		"tile.getAttribute('data-value') || ''",
		"tooltip.setAttribute('data-value', value)",
		`'Name: ' + name + '\nCategory: ' + category + '\nValue: ' + value`,
	} {
		assert.Contains(t, enter, want)
	}

	assert.Contains(t, leave, "tooltip.style.opacity = 0")
	assert.NotContains(t, leave, "textContent", "leaving keeps the last content")
	assert.NotContains(t, leave, "setAttribute", "leaving keeps the last data-value")
}
