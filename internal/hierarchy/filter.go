package hierarchy

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// ValidatePatterns checks that every glob in patterns is well formed.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid category pattern %q", p)
		}
	}
	return nil
}

// Filter returns a copy of root that keeps only the top-level categories
// whose name matches at least one include pattern and no exclude pattern.
// An empty include list keeps everything. root itself is left untouched.
func Filter(root *Node, include, exclude []string) (*Node, error) {
	if root == nil {
		return nil, nil
	}
	if err := ValidatePatterns(include); err != nil {
		return nil, err
	}
	if err := ValidatePatterns(exclude); err != nil {
		return nil, err
	}

	out := &Node{Name: root.Name, Category: root.Category, Value: root.Value}
	for _, c := range root.Children {
		if c == nil {
			continue
		}
		if len(include) > 0 && !matchAny(include, c.Name) {
			continue
		}
		if matchAny(exclude, c.Name) {
			continue
		}
		out.Children = append(out.Children, c.Clone())
	}
	return out, nil
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		// Patterns were validated above, so the error is always nil.
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}
