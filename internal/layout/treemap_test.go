package layout

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ziadkadry99/fundmap/internal/hierarchy"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func leaf(name, category string, v float64) *hierarchy.Node {
	return &hierarchy.Node{Name: name, Category: category, Value: hierarchy.NumberValue(v)}
}

func group(name string, kids ...*hierarchy.Node) *hierarchy.Node {
	return &hierarchy.Node{Name: name, Children: kids}
}

// fixture builds a two-level hierarchy with uneven category sizes.
func fixture() *hierarchy.Node {
	root := &hierarchy.Node{Name: "root"}
	sizes := [][]float64{
		{500, 300, 120, 80, 40},
		{900, 10},
		{250, 250, 250},
		{60, 55, 50, 45, 40, 35, 30, 25},
		{1},
	}
	for i, vals := range sizes {
		cat := fmt.Sprintf("cat-%d", i)
		g := group(cat)
		for j, v := range vals {
			g.Children = append(g.Children, leaf(fmt.Sprintf("%s/%d", cat, j), cat, v))
		}
		root.Children = append(root.Children, g)
	}
	return root
}

func TestLayoutAreasFillCanvasWithoutPadding(t *testing.T) {
	opts := DefaultOptions()
	opts.Padding = 0
	root := Layout(fixture(), opts)

	var total float64
	for _, l := range root.Leaves() {
		total += l.Area()
	}
	assert.InDelta(t, opts.Width*opts.Height, total, 1e-6)
}

func TestLayoutAreasWithPadding(t *testing.T) {
	opts := DefaultOptions()
	root := Layout(fixture(), opts)
	canvas := opts.Width * opts.Height

	var raw, padded float64
	for _, l := range root.Leaves() {
		raw += l.Area()
		padded += (l.Width() + 2*opts.Padding) * (l.Height() + 2*opts.Padding)
	}
	assert.Less(t, raw, canvas)
	assert.Greater(t, padded, 0.97*canvas)
}

func TestLayoutNoNegativeOrOverlappingTiles(t *testing.T) {
	root := Layout(fixture(), DefaultOptions())
	leaves := root.Leaves()
	require.Len(t, leaves, 19)

	for _, l := range leaves {
		assert.GreaterOrEqual(t, l.Width(), 0.0, l.Data.Name)
		assert.GreaterOrEqual(t, l.Height(), 0.0, l.Data.Name)
		assert.GreaterOrEqual(t, l.X0, 0.0)
		assert.GreaterOrEqual(t, l.Y0, 0.0)
		assert.LessOrEqual(t, l.X1, 1200.0)
		assert.LessOrEqual(t, l.Y1, 700.0)
	}
	for i := range leaves {
		for j := i + 1; j < len(leaves); j++ {
			a, b := leaves[i], leaves[j]
			w := math.Min(a.X1, b.X1) - math.Max(a.X0, b.X0)
			h := math.Min(a.Y1, b.Y1) - math.Max(a.Y0, b.Y0)
			if w > 1e-9 && h > 1e-9 {
				t.Errorf("%s overlaps %s", a.Data.Name, b.Data.Name)
			}
		}
	}
}

func TestLayoutProportionalToValue(t *testing.T) {
	root := group("root",
		group("A", leaf("a", "A", 10)),
		group("B", leaf("b", "B", 30)),
	)
	lr := Layout(root, DefaultOptions())
	leaves := lr.Leaves()
	require.Len(t, leaves, 2)

	ratio := leaves[1].Area() / leaves[0].Area()
	assert.InDelta(t, 3.0, ratio, 0.15)
}

func TestLayoutExactGeometry(t *testing.T) {
	root := group("root",
		group("A", leaf("a", "A", 10)),
		group("B", leaf("b", "B", 30)),
	)
	lr := Layout(root, DefaultOptions())

	a := lr.Children[0]
	assert.InDelta(t, 2.0, a.X0, 1e-9)
	assert.InDelta(t, 299.5, a.X1, 1e-9)
	assert.InDelta(t, 2.0, a.Y0, 1e-9)
	assert.InDelta(t, 698.0, a.Y1, 1e-9)

	al := a.Children[0]
	assert.InDelta(t, 4.0, al.X0, 1e-9)
	assert.InDelta(t, 297.5, al.X1, 1e-9)
}

func TestLayoutCustomCanvas(t *testing.T) {
	opts := Options{Width: 300, Height: 900, Padding: 0}
	root := Layout(fixture(), opts)

	var total float64
	for _, l := range root.Leaves() {
		total += l.Area()
		assert.LessOrEqual(t, l.X1, 300.0+1e-9)
		assert.LessOrEqual(t, l.Y1, 900.0+1e-9)
	}
	assert.InDelta(t, 300.0*900.0, total, 1e-6)
}

func TestLayoutTinyCanvasCollapses(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 3, 3
	root := Layout(fixture(), opts)
	for _, l := range root.Leaves() {
		assert.GreaterOrEqual(t, l.Width(), 0.0)
		assert.GreaterOrEqual(t, l.Height(), 0.0)
	}
}

func TestLayoutZeroValues(t *testing.T) {
	root := group("root",
		group("A", leaf("a", "A", 0), leaf("b", "A", 5)),
		group("B", leaf("c", "B", 0)),
	)
	lr := Layout(root, DefaultOptions())
	for _, l := range lr.Leaves() {
		assert.GreaterOrEqual(t, l.Width(), 0.0)
		assert.GreaterOrEqual(t, l.Height(), 0.0)
	}
	assert.Equal(t, 5.0, lr.Value)
}

func TestTopLevel(t *testing.T) {
	lr := Layout(fixture(), DefaultOptions())
	assert.Nil(t, lr.TopLevel())
	for _, l := range lr.Leaves() {
		top := l.TopLevel()
		require.NotNil(t, top)
		assert.Equal(t, 1, top.Depth)
		assert.Equal(t, l.Data.Category, top.Data.Name)
	}
	assert.Same(t, lr.Children[0], lr.Children[0].TopLevel())
}

func TestLayoutValuesAreAggregated(t *testing.T) {
	lr := Layout(fixture(), DefaultOptions())
	assert.Equal(t, 3041.0, lr.Value)
	want := []float64{1040, 910, 750, 340, 1}
	for i, c := range lr.Children {
		assert.Equal(t, want[i], c.Value, c.Data.Name)
	}
}

func TestLayoutNilRoot(t *testing.T) {
	assert.Nil(t, Layout(nil, DefaultOptions()))
}

func rects(n *Node) [][4]float64 {
	var out [][4]float64
	n.EachBefore(func(c *Node) {
		out = append(out, [4]float64{c.X0, c.Y0, c.X1, c.Y1})
	})
	return out
}

func TestLayoutRatioDefaultsAndClamp(t *testing.T) {
	withRatio := func(r float64) [][4]float64 {
		opts := DefaultOptions()
		opts.Ratio = r
		return rects(Layout(fixture(), opts))
	}

	assert.Equal(t, withRatio(Phi), withRatio(0), "zero ratio means Phi")
	assert.Equal(t, withRatio(1), withRatio(0.5), "ratios below 1 clamp to 1")
	assert.Equal(t, withRatio(1), withRatio(-3), "negative ratios clamp to 1")
}
