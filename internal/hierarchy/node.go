package hierarchy

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Value is the measure carried by a leaf. The published datasets encode it
// either as a JSON number or as a numeric string, so the raw token is kept
// and converted on demand.
type Value struct {
	raw json.RawMessage
}

// NumberValue returns a Value holding a JSON number.
func NumberValue(f float64) Value {
	return Value{raw: json.RawMessage(strconv.FormatFloat(f, 'f', -1, 64))}
}

// StringValue returns a Value holding a quoted string, the way the
// freeCodeCamp datasets ship their values.
func StringValue(s string) Value {
	b, _ := json.Marshal(s)
	return Value{raw: b}
}

// UnmarshalJSON keeps the raw token.
func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		v.raw = nil
		return nil
	}
	v.raw = append(v.raw[:0], data...)
	return nil
}

// MarshalJSON re-emits the raw token unchanged.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.raw == nil {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// IsZero reports whether the value is absent.
func (v Value) IsZero() bool { return v.raw == nil }

// String returns the value for display. Strings come back unquoted and as
// written; numbers are printed in shortest plain form, so 1e3 reads 1000 and
// 1.50 reads 1.5. Absent values return "".
func (v Value) String() string {
	if v.raw == nil {
		return ""
	}
	if v.raw[0] == '"' {
		var s string
		if err := json.Unmarshal(v.raw, &s); err == nil {
			return s
		}
	}
	if f, err := strconv.ParseFloat(string(v.raw), 64); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return string(v.raw)
}

// Float coerces the value to a number. Absent, empty, or non-numeric values
// count as 0, as do NaN results.
func (v Value) Float() float64 {
	s := strings.TrimSpace(v.String())
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	return f
}

// Node is one entry of the funding hierarchy. Leaves carry a category and a
// value; inner nodes carry children.
type Node struct {
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Value    Value   `json:"value,omitzero"`
	Children []*Node `json:"children,omitempty"`
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Sum returns the aggregate value of n: its own value plus the sums of all
// of its descendants. It is computed on every call and never stored.
func (n *Node) Sum() float64 {
	if n == nil {
		return 0
	}
	total := n.Value.Float()
	for _, c := range n.Children {
		total += c.Sum()
	}
	return total
}

// Leaves returns every leaf below n in document order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		if cur == nil {
			return
		}
		if cur.IsLeaf() {
			out = append(out, cur)
			return
		}
		for _, c := range cur.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// Categories returns the unique names of n's direct children, ordered by
// first encounter. These are the top-level categories that drive fill
// colors and legend entries.
func (n *Node) Categories() []string {
	seen := make(map[string]bool, len(n.Children))
	var out []string
	for _, c := range n.Children {
		if c == nil || seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		out = append(out, c.Name)
	}
	return out
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := &Node{Name: n.Name, Category: n.Category, Value: n.Value}
	if n.Value.raw != nil {
		cp.Value.raw = append(json.RawMessage(nil), n.Value.raw...)
	}
	if n.Children != nil {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = c.Clone()
		}
	}
	return cp
}
