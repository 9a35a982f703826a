// Package palette holds the fixed habit color palette and helpers for
// rendering those colors in a terminal.
package palette

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color pairs a hex value with a display name.
type Color struct {
	Hex  string
	Name string
}

var colors = []Color{
	{"#3B82F6", "Blue"},
	{"#8B5CF6", "Purple"},
	{"#10B981", "Green"},
	{"#F59E0B", "Amber"},
	{"#EC4899", "Pink"},
	{"#EF4444", "Red"},
	{"#06B6D4", "Cyan"},
}

// Colors returns the palette in its fixed order.
func Colors() []Color {
	return append([]Color(nil), colors...)
}

// Default is the color used before a user picks one.
func Default() Color {
	return colors[0]
}

// At cycles through the palette by index, so batch-created habits each get
// the next color.
func At(index int) Color {
	if index < 0 {
		index = -index
	}
	return colors[index%len(colors)]
}

// Valid reports whether hex parses as a color.
func Valid(hex string) bool {
	_, err := colorful.Hex(strings.TrimSpace(hex))
	return err == nil
}

// DarkText reports whether text over the color should be dark, based on
// perceived luminance. Unparseable colors get light text.
func DarkText(hex string) bool {
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return false
	}
	_, _, l := c.Hcl()
	return l > 0.6
}
