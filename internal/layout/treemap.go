// Package layout computes squarified treemap rectangles for a funding
// hierarchy.
//
// Each node's rectangle is proportional to its aggregate value relative to
// its siblings. Rows are grown greedily while the worst aspect ratio keeps
// improving, and a row is laid along the shorter side of the remaining
// space. Padding is applied between siblings and inside every parent; the
// root rectangle is the whole canvas.
package layout

import (
	"math"

	"github.com/ziadkadry99/fundmap/internal/hierarchy"
)

// Phi is the default target aspect ratio for squarified rows.
var Phi = (1 + math.Sqrt(5)) / 2

// Options controls canvas size, gutters and target aspect ratio. A zero
// Ratio means Phi; ratios below 1 are clamped to 1.
type Options struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding float64 `json:"padding"`
	Ratio   float64 `json:"ratio"`
}

// DefaultOptions returns the 1200x700 canvas with 2px gutters.
func DefaultOptions() Options {
	return Options{Width: 1200, Height: 700, Padding: 2, Ratio: Phi}
}

// Node is the computed rectangle for one hierarchy node. Nodes are created
// fresh by every Layout call and never shared between calls.
type Node struct {
	X0, Y0, X1, Y1 float64
	Value          float64
	Depth          int
	Parent         *Node
	Children       []*Node
	Data           *hierarchy.Node
}

// Width returns X1-X0.
func (n *Node) Width() float64 { return n.X1 - n.X0 }

// Height returns Y1-Y0.
func (n *Node) Height() float64 { return n.Y1 - n.Y0 }

// Area returns Width*Height.
func (n *Node) Area() float64 { return n.Width() * n.Height() }

// Leaves returns every leaf below n in document order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.EachBefore(func(c *Node) {
		if len(c.Children) == 0 {
			out = append(out, c)
		}
	})
	return out
}

// TopLevel returns the depth-1 ancestor of n (n itself at depth 1). The root
// has no top-level ancestor and returns nil.
func (n *Node) TopLevel() *Node {
	cur := n
	for cur != nil && cur.Depth > 1 {
		cur = cur.Parent
	}
	if cur == nil || cur.Depth == 0 {
		return nil
	}
	return cur
}

// EachBefore calls fn on n and then on its descendants, in pre-order.
func (n *Node) EachBefore(fn func(*Node)) {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(cur)
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// Layout builds the layout tree for root and positions every node inside
// the canvas described by opts. A nil root yields nil.
func Layout(root *hierarchy.Node, opts Options) *Node {
	if root == nil {
		return nil
	}
	switch {
	case opts.Ratio == 0:
		opts.Ratio = Phi
	case opts.Ratio < 1:
		opts.Ratio = 1
	}

	lr := build(root, nil, 0)
	lr.X0, lr.Y0, lr.X1, lr.Y1 = 0, 0, opts.Width, opts.Height
	lr.EachBefore(func(n *Node) { position(n, opts) })
	return lr
}

// build mirrors the hierarchy and sums values bottom-up.
func build(src *hierarchy.Node, parent *Node, depth int) *Node {
	n := &Node{Data: src, Parent: parent, Depth: depth, Value: src.Value.Float()}
	for _, c := range src.Children {
		if c == nil {
			continue
		}
		child := build(c, n, depth+1)
		n.Children = append(n.Children, child)
		n.Value += child.Value
	}
	return n
}

// position insets n by half the inner padding, then tiles its children into
// the area left after the outer padding.
func position(n *Node, opts Options) {
	p := 0.0
	if n.Parent != nil {
		p = opts.Padding / 2
	}
	x0, y0, x1, y1 := n.X0+p, n.Y0+p, n.X1-p, n.Y1-p
	x0, x1 = collapse(x0, x1)
	y0, y1 = collapse(y0, y1)
	n.X0, n.Y0, n.X1, n.Y1 = x0, y0, x1, y1

	if len(n.Children) == 0 {
		return
	}

	inner := opts.Padding / 2
	x0 += opts.Padding - inner
	y0 += opts.Padding - inner
	x1 -= opts.Padding - inner
	y1 -= opts.Padding - inner
	x0, x1 = collapse(x0, x1)
	y0, y1 = collapse(y0, y1)
	squarify(n, opts.Ratio, x0, y0, x1, y1)
}

// collapse folds an inverted interval onto its midpoint.
func collapse(a, b float64) (float64, float64) {
	if b < a {
		m := (a + b) / 2
		return m, m
	}
	return a, b
}

func squarify(parent *Node, ratio, x0, y0, x1, y1 float64) {
	nodes := parent.Children
	n := len(nodes)
	value := parent.Value

	i0, i1 := 0, 0
	for i0 < n {
		dx, dy := x1-x0, y1-y0

		// Skip over leading empty nodes; they join the row with zero area.
		var sum float64
		for {
			sum = nodes[i1].Value
			i1++
			if (sum != 0 && !math.IsNaN(sum)) || i1 >= n {
				break
			}
		}
		minValue, maxValue := sum, sum
		alpha := math.Max(dy/dx, dx/dy) / (value * ratio)
		beta := sum * sum * alpha
		minRatio := math.Max(maxValue/beta, beta/minValue)

		for ; i1 < n; i1++ {
			v := nodes[i1].Value
			sum += v
			if v < minValue {
				minValue = v
			}
			if v > maxValue {
				maxValue = v
			}
			beta = sum * sum * alpha
			newRatio := math.Max(maxValue/beta, beta/minValue)
			if newRatio > minRatio {
				sum -= v
				break
			}
			minRatio = newRatio
		}

		row := nodes[i0:i1]
		if dx < dy {
			top, bottom := y0, y1
			if value != 0 {
				y0 += dy * sum / value
				bottom = y0
			}
			dice(row, sum, x0, top, x1, bottom)
		} else {
			left, right := x0, x1
			if value != 0 {
				x0 += dx * sum / value
				right = x0
			}
			slice(row, sum, left, y0, right, y1)
		}
		value -= sum
		i0 = i1
	}
}

// dice lays row out left to right across [x0,x1].
func dice(row []*Node, total, x0, y0, x1, y1 float64) {
	k := 0.0
	if total != 0 {
		k = (x1 - x0) / total
	}
	for _, n := range row {
		n.Y0, n.Y1 = y0, y1
		n.X0 = x0
		x0 += n.Value * k
		n.X1 = x0
	}
}

// slice lays row out top to bottom across [y0,y1].
func slice(row []*Node, total, x0, y0, x1, y1 float64) {
	k := 0.0
	if total != 0 {
		k = (y1 - y0) / total
	}
	for _, n := range row {
		n.X0, n.X1 = x0, x1
		n.Y0 = y0
		y0 += n.Value * k
		n.Y1 = y0
	}
}
