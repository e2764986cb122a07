package model

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-lifelike/rules"
)

func TestGlider(t *testing.T) {
	g := mustGrid(t, 10, 10)
	AddGlider(g, 1, 1)
	assertAlive(t, g, Point{2, 1}, Point{3, 2}, Point{1, 3}, Point{2, 3}, Point{3, 3})
}

func TestGliderTravels(t *testing.T) {
	g := mustGrid(t, 10, 10)
	AddGlider(g, 0, 0)
	e := NewEngine(g, rules.Conway)
	for range 4 {
		e.Step()
	}
	// after one period a glider reappears shifted one cell down and right
	assertAlive(t, e.Grid(), Point{2, 1}, Point{3, 2}, Point{1, 3}, Point{2, 3}, Point{3, 3})
}

func TestBlinkerCentred(t *testing.T) {
	g := mustGrid(t, 5, 5)
	AddBlinker(g, 2, 2)
	assertAlive(t, g, Point{1, 2}, Point{2, 2}, Point{3, 2})
}

func TestSpaceship(t *testing.T) {
	g := mustGrid(t, 8, 8)
	AddSpaceship(g, 2, 2)
	if n := g.CountLivingCells(); n != 8 {
		t.Fatalf("spaceship has %d cells, want 8", n)
	}
	for _, p := range spaceshipCells {
		if !g.IsAlive(2+p.X, 2+p.Y) {
			t.Fatalf("spaceship cell (%d,%d) missing", 2+p.X, 2+p.Y)
		}
	}
}

func TestPulsarPeriodThree(t *testing.T) {
	g := mustGrid(t, 17, 17)
	AddPulsar(g, 2, 2)
	if n := g.CountLivingCells(); n != 48 {
		t.Fatalf("pulsar has %d cells, want 48", n)
	}

	start := g.GetGridHash()
	e := NewEngine(g, rules.Conway)
	for gen := 1; gen <= 3; gen++ {
		h := e.Step().GetGridHash()
		if gen < 3 && h == start {
			t.Fatalf("pulsar repeated after %d generations", gen)
		}
		if gen == 3 && h != start {
			t.Fatal("pulsar did not return after 3 generations")
		}
	}
}

func TestPatternsClipAtEdges(t *testing.T) {
	g := mustGrid(t, 3, 3)
	AddBlinker(g, 0, 0)
	assertAlive(t, g, Point{0, 0}, Point{1, 0})

	g = mustGrid(t, 5, 5)
	AddPulsar(g, -6, -6)
	for _, p := range g.AliveCells() {
		if !g.InBounds(p.X, p.Y) {
			t.Fatalf("clipped pulsar wrote outside the grid at %v", p)
		}
	}
	if g.CountLivingCells() == 0 {
		t.Fatal("pulsar overlapping the corner left no cells")
	}

	g = mustGrid(t, 2, 2)
	AddSpaceship(g, 50, 50)
	if g.CountLivingCells() != 0 {
		t.Fatal("pattern placed entirely outside the grid wrote cells")
	}
}

func TestAddPattern(t *testing.T) {
	g := mustGrid(t, 10, 10)
	if err := AddPattern(g, "blinker", 4, 4); err != nil {
		t.Fatal(err)
	}
	assertAlive(t, g, Point{3, 4}, Point{4, 4}, Point{5, 4})

	if err := AddPattern(g, "toad", 1, 1); !errors.Is(err, ErrUnknownPattern) {
		t.Fatalf("AddPattern(toad) error = %v, want ErrUnknownPattern", err)
	}
}

func TestPatternNames(t *testing.T) {
	want := []string{"blinker", "glider", "pulsar", "spaceship"}
	if got := PatternNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("PatternNames() = %v, want %v", got, want)
	}
}

func TestExamplePreset(t *testing.T) {
	g := mustGrid(t, 30, 15)
	AddExamplePreset(g)
	if n := g.CountLivingCells(); n != 5+3+8 {
		t.Fatalf("preset placed %d cells, want 16", n)
	}
	if !g.IsAlive(6, 5) || !g.IsAlive(10, 10) || !g.IsAlive(21, 5) {
		t.Fatal("preset patterns missing from their anchors")
	}
}
