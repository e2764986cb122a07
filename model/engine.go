package model

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-lifelike/rules"
)

// Engine advances a grid one generation at a time under a rule.
//
// Every step reads only from the pre-step grid and writes into a fresh
// buffer, so the grid returned by a previous Step is never modified.
type Engine struct {
	grid       *Grid
	rule       rules.Rule
	width      int
	height     int
	generation int

	pool    *GridPool
	workers int
}

// EngineOption configures optional Engine behaviour
type EngineOption func(*Engine)

// WithPool draws next-generation buffers from pool.
// The caller decides when a finished generation goes back via GridToPool.
func WithPool(pool *GridPool) EngineOption {
	return func(e *Engine) { e.pool = pool }
}

// WithWorkers splits each step across n row bands. Values below 2 keep the step sequential.
func WithWorkers(n int) EngineOption {
	return func(e *Engine) { e.workers = n }
}

// NewEngine builds an engine around an initial grid and rule
func NewEngine(grid *Grid, rule rules.Rule, opts ...EngineOption) *Engine {
	if grid == nil {
		panic("model: NewEngine called with nil grid")
	}
	e := &Engine{
		grid:    grid,
		rule:    rule,
		width:   grid.width,
		height:  grid.height,
		workers: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Grid returns the current generation
func (e *Engine) Grid() *Grid { return e.grid }

// Rule returns the rule the engine steps with
func (e *Engine) Rule() rules.Rule { return e.rule }

// Generation returns how many steps have been taken
func (e *Engine) Generation() int { return e.generation }

// CountNeighbors counts living cells in the Moore neighborhood of (x, y).
// Positions outside the grid count as dead; there is no wraparound.
func (e *Engine) CountNeighbors(x, y int) int {
	return countNeighbors(e.grid, x, y)
}

func countNeighbors(g *Grid, x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if g.InBounds(nx, ny) {
				count += int(g.cells[g.index(nx, ny)])
			}
		}
	}
	return count
}

// Step computes the next generation, replaces the held grid with it and returns it
func (e *Engine) Step() *Grid {
	cur := e.grid
	if cur.width != e.width || cur.height != e.height {
		panic(fmt.Sprintf("model: grid is %dx%d, engine expects %dx%d", cur.width, cur.height, e.width, e.height))
	}

	var next *Grid
	if e.pool != nil {
		next = e.pool.Get(e.width, e.height)
		cur.copyInto(next)
	} else {
		next = cur.Copy()
	}

	if e.workers > 1 && e.height > 1 {
		e.stepParallel(cur, next)
	} else {
		e.stepRows(cur, next, 0, e.height)
	}
	next.activeBounds.computed = false

	e.grid = next
	e.generation++
	return next
}

// stepRows applies the rule to rows [startRow, endRow) of next, reading only from cur
func (e *Engine) stepRows(cur, next *Grid, startRow, endRow int) {
	for y := startRow; y < endRow; y++ {
		for x := 0; x < e.width; x++ {
			idx := cur.index(x, y)
			neighbors := countNeighbors(cur, x, y)
			switch cur.cells[idx] {
			case Alive:
				if !e.rule.ShouldSurvive(neighbors) {
					next.cells[idx] = Dead
				}
			default:
				if e.rule.ShouldBeBorn(neighbors) {
					next.cells[idx] = Alive
				}
			}
		}
	}
}

// stepParallel partitions rows across workers; each writes only its own band of next
func (e *Engine) stepParallel(cur, next *Grid) {
	var (
		eg            errgroup.Group
		numWorkers    = min(e.workers, e.height)
		rowsPerWorker = (e.height + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, e.height)
		)
		if startRow >= e.height {
			break
		}

		eg.Go(func() error {
			e.stepRows(cur, next, startRow, endRow)
			return nil
		})
	}

	// Workers never fail, Wait is only a barrier
	_ = eg.Wait()
}
