package model

import (
	"crypto/md5"
	"fmt"
	"math/rand"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidDimension is returned when a grid is built with a non-positive width or height
	ErrInvalidDimension = errors.New("grid dimensions must be positive")
	// ErrOutOfBounds is returned when a cell is addressed outside the grid
	ErrOutOfBounds = errors.New("coordinates out of bounds")
	// ErrInvalidCell is returned when a cell is set to anything other than Dead or Alive
	ErrInvalidCell = errors.New("cell state must be 0 or 1")
)

// Cell is the state of a single grid position
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

// Point is a cell coordinate, X is the column and Y the row
type Point struct {
	X, Y int
}

// Grid is a fixed-size board of cells stored row-major
type Grid struct {
	width  int
	height int
	cells  []Cell

	// Cached bounding box of living cells, invalidated on every write
	activeBounds struct {
		minX, maxX, minY, maxY int
		valid                  bool
		computed               bool
	}
}

// NewGrid creates a new grid with the specified dimensions, all cells dead
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimension, "[NewGrid] got %dx%d", width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}, nil
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// InBounds reports whether (x, y) lies inside the grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the state of a cell
func (g *Grid) Get(x, y int) (Cell, error) {
	if !g.InBounds(x, y) {
		return Dead, errors.Wrapf(ErrOutOfBounds, "[Get] (%d,%d) on %dx%d grid", x, y, g.width, g.height)
	}
	return g.cells[g.index(x, y)], nil
}

// Set sets a cell to Alive or Dead
func (g *Grid) Set(x, y int, value Cell) error {
	if !g.InBounds(x, y) {
		return errors.Wrapf(ErrOutOfBounds, "[Set] (%d,%d) on %dx%d grid", x, y, g.width, g.height)
	}
	if value != Dead && value != Alive {
		return errors.Wrapf(ErrInvalidCell, "[Set] value %d at (%d,%d)", value, x, y)
	}
	g.cells[g.index(x, y)] = value
	g.activeBounds.computed = false
	return nil
}

// IsAlive is a bounds-checked read that treats outside cells as dead
func (g *Grid) IsAlive(x, y int) bool {
	return g.InBounds(x, y) && g.cells[g.index(x, y)] == Alive
}

// Copy returns an independent deep copy of the grid
func (g *Grid) Copy() *Grid {
	c := &Grid{
		width:  g.width,
		height: g.height,
		cells:  make([]Cell, len(g.cells)),
	}
	copy(c.cells, g.cells)
	c.activeBounds = g.activeBounds
	return c
}

// copyInto overwrites dst's cells with g's; dimensions must already match
func (g *Grid) copyInto(dst *Grid) {
	copy(dst.cells, g.cells)
	dst.activeBounds = g.activeBounds
}

// Clear kills all cells
func (g *Grid) Clear() {
	clear(g.cells)
	g.activeBounds.computed = false
}

// Randomize sets every cell alive with the given probability.
// A nil rng falls back to the package-level source.
func (g *Grid) Randomize(probability float64, rng *rand.Rand) {
	float := rand.Float64
	if rng != nil {
		float = rng.Float64
	}
	for i := range g.cells {
		if float() < probability {
			g.cells[i] = Alive
		} else {
			g.cells[i] = Dead
		}
	}
	g.activeBounds.computed = false
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, c := range g.cells {
		count += int(c)
	}
	return
}

// AliveCells returns the coordinates of every living cell in row-major order
func (g *Grid) AliveCells() []Point {
	alive := make([]Point, 0)
	for y := range g.height {
		for x := range g.width {
			if g.cells[g.index(x, y)] == Alive {
				alive = append(alive, Point{X: x, Y: y})
			}
		}
	}
	return alive
}

// GetGridHash returns an MD5 hash of the current grid state
func (g *Grid) GetGridHash() string {
	h := md5.New()
	buf := make([]byte, len(g.cells))
	for i, c := range g.cells {
		buf[i] = byte(c)
	}
	h.Write(buf)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// calculateActiveBounds calculates the bounding box of living cells
func (g *Grid) calculateActiveBounds() {
	g.activeBounds.valid = false
	g.activeBounds.computed = true

	for y := range g.height {
		for x := range g.width {
			if g.cells[g.index(x, y)] != Alive {
				continue
			}
			if !g.activeBounds.valid {
				g.activeBounds.minX, g.activeBounds.maxX = x, x
				g.activeBounds.minY, g.activeBounds.maxY = y, y
				g.activeBounds.valid = true
				continue
			}
			g.activeBounds.minX = min(g.activeBounds.minX, x)
			g.activeBounds.maxX = max(g.activeBounds.maxX, x)
			g.activeBounds.minY = min(g.activeBounds.minY, y)
			g.activeBounds.maxY = max(g.activeBounds.maxY, y)
		}
	}
}

// GetBoundingBoxSize returns the area of the box enclosing all living cells
func (g *Grid) GetBoundingBoxSize() int {
	if !g.activeBounds.computed {
		g.calculateActiveBounds()
	}
	if !g.activeBounds.valid {
		return 0
	}
	return (g.activeBounds.maxX - g.activeBounds.minX + 1) *
		(g.activeBounds.maxY - g.activeBounds.minY + 1)
}

func (g *Grid) index(x, y int) int {
	return y*g.width + x
}
