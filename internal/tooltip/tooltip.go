// Package tooltip models the hover panel shown over treemap tiles.
//
// The panel is either hidden or visible. Entering a tile replaces the whole
// state with that tile's content and the cursor position; leaving hides it.
// Render turns a state into the style and text the page applies, so the
// same rules drive both Go-side checks and the emitted browser script.
package tooltip

import (
	"fmt"
	"strconv"
)

// Offset is the distance between the cursor and the panel: the panel sits
// Offset pixels above and Offset pixels to the right of the pointer.
const Offset = 12

// Content is what a tile contributes to the panel.
type Content struct {
	Name     string
	Category string
	Value    string
}

// State is the full panel state. The zero value is hidden.
type State struct {
	Visible  bool
	X, Y     float64
	Name     string
	Category string
	Value    string
}

// Hidden returns the initial state.
func Hidden() State { return State{} }

// Enter returns the state after the pointer enters a tile at (x, y).
// Nothing from the previous state survives.
func Enter(x, y float64, c Content) State {
	return State{
		Visible:  true,
		X:        x,
		Y:        y,
		Name:     c.Name,
		Category: c.Category,
		Value:    c.Value,
	}
}

// Leave returns the state after the pointer leaves a tile. Content and
// position are kept so a hidden panel does not jump.
func (s State) Leave() State {
	s.Visible = false
	return s
}

// View is the presentation of a State.
type View struct {
	Opacity   int
	Top       string
	Left      string
	DataValue string
	Text      string
}

// Render maps s to its presentation. It has no side effects.
func Render(s State) View {
	v := View{
		Top:       px(s.Y - Offset),
		Left:      px(s.X + Offset),
		DataValue: s.Value,
		Text:      Text(s.Name, s.Category, s.Value),
	}
	if s.Visible {
		v.Opacity = 1
	}
	return v
}

// Text formats the panel body.
func Text(name, category, value string) string {
	return fmt.Sprintf("Name: %s\nCategory: %s\nValue: %s", name, category, value)
}

func px(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64) + "px"
}
