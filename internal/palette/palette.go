// Package palette derives display colors for top-level categories.
//
// Colors are a pure function of the category name: the UTF-16 code units of
// the name are summed, the sum is read as the digits after a decimal point,
// and that fraction is scaled onto the 24-bit RGB range. The result is not
// zero padded and similar names can collide; both are known properties of
// the scheme and are kept as-is.
package palette

import (
	"math"
	"strconv"
	"unicode/utf16"
)

// maxRGB is the largest 24-bit color value.
const maxRGB = 16777215

// Entry pairs a category with its generated color.
type Entry struct {
	Category string `json:"category"`
	Color    string `json:"color"`
}

// HexColor returns the color for name, formatted as '#' followed by
// lowercase hex digits.
func HexColor(name string) string {
	sum := 0
	for _, u := range utf16.Encode([]rune(name)) {
		sum += int(u)
	}

	seed, err := strconv.ParseFloat("0."+strconv.Itoa(sum), 64)
	if err != nil {
		// "0.<digits>" always parses.
		seed = 0
	}
	return "#" + strconv.FormatInt(int64(math.Floor(seed*maxRGB)), 16)
}

// Assign returns one entry per name in domain, order preserved.
func Assign(domain []string) []Entry {
	out := make([]Entry, len(domain))
	for i, name := range domain {
		out[i] = Entry{Category: name, Color: HexColor(name)}
	}
	return out
}

// Colors returns just the colors of entries, in order.
func Colors(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Color
	}
	return out
}
