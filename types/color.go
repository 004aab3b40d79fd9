package types

import (
	"fmt"
	"strings"
)

// Color is the tag attached to every task.
type Color string

const (
	Red    Color = "red"
	Orange Color = "orange"
	Yellow Color = "yellow"
	Green  Color = "green"
	Blue   Color = "blue"
	Purple Color = "purple"
	Pink   Color = "pink"
	Brown  Color = "brown"
)

// Colors lists the supported colors in picker order.
var Colors = []Color{Red, Blue, Green, Yellow, Purple, Orange, Pink, Brown}

var colorNames = map[Color]string{
	Red:    "Red",
	Blue:   "Blue",
	Green:  "Green",
	Yellow: "Yellow",
	Purple: "Purple",
	Orange: "Orange",
	Pink:   "Pink",
	Brown:  "Brown",
}

// Valid reports whether c is one of the eight supported colors.
func (c Color) Valid() bool {
	_, ok := colorNames[c]
	return ok
}

// Name returns the display name of the color, or the raw value if unknown.
func (c Color) Name() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return string(c)
}

func (c Color) String() string {
	return string(c)
}

// ParseColor parses a color name case-insensitively.
func ParseColor(s string) (Color, error) {
	c := Color(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown color %q, expected one of %s", s, ColorList())
	}
	return c, nil
}

// ColorList returns the supported colors joined by ", ".
func ColorList() string {
	names := make([]string, len(Colors))
	for i, c := range Colors {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
