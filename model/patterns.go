package model

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrUnknownPattern is returned when a pattern name is not in Patterns
var ErrUnknownPattern = errors.New("unknown pattern")

// Pattern writes a shape into a grid with its top-left corner at (x, y)
type Pattern func(g *Grid, x, y int)

// Patterns is the library of insertable shapes, keyed by name
var Patterns = map[string]Pattern{
	"glider":    AddGlider,
	"blinker":   AddBlinker,
	"spaceship": AddSpaceship,
	"pulsar":    AddPulsar,
}

var (
	gliderCells    = []Point{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}
	spaceshipCells = []Point{{1, 0}, {2, 0}, {3, 0}, {0, 1}, {3, 1}, {3, 2}, {0, 3}, {2, 3}}
	pulsarRows     = []string{
		"  ***   ***  ",
		"             ",
		"*    * *    *",
		"*    * *    *",
		"*    * *    *",
		"  ***   ***  ",
		"             ",
		"  ***   ***  ",
		"*    * *    *",
		"*    * *    *",
		"*    * *    *",
		"             ",
		"  ***   ***  ",
	}
)

// PatternNames returns the library's pattern names sorted alphabetically
func PatternNames() []string {
	names := make([]string, 0, len(Patterns))
	for name := range Patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddPattern inserts the named pattern at (x, y)
func AddPattern(g *Grid, name string, x, y int) error {
	p, ok := Patterns[name]
	if !ok {
		return errors.Wrapf(ErrUnknownPattern, "[AddPattern] %q", name)
	}
	p(g, x, y)
	return nil
}

// AddGlider adds a glider heading down and to the right
func AddGlider(g *Grid, x, y int) {
	g.stamp(x, y, gliderCells)
}

// AddBlinker adds a horizontal blinker centred on (x, y)
func AddBlinker(g *Grid, x, y int) {
	for dx := -1; dx <= 1; dx++ {
		g.setIfInside(x+dx, y)
	}
}

// AddSpaceship adds a lightweight spaceship
func AddSpaceship(g *Grid, x, y int) {
	g.stamp(x, y, spaceshipCells)
}

// AddPulsar adds the 13x13 period-3 pulsar
func AddPulsar(g *Grid, x, y int) {
	for dy, row := range pulsarRows {
		for dx, ch := range row {
			if ch == '*' {
				g.setIfInside(x+dx, y+dy)
			}
		}
	}
}

// AddExamplePreset seeds a small mix of patterns for a quick start
func AddExamplePreset(g *Grid) {
	AddGlider(g, 5, 5)
	AddBlinker(g, 10, 10)
	AddSpaceship(g, 20, 5)
}

func (g *Grid) stamp(x, y int, offsets []Point) {
	for _, p := range offsets {
		g.setIfInside(x+p.X, y+p.Y)
	}
}

// setIfInside marks a cell alive, clipping anything that falls off the grid
func (g *Grid) setIfInside(x, y int) {
	if g.InBounds(x, y) {
		_ = g.Set(x, y, Alive)
	}
}
