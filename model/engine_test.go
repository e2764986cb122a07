package model

import (
	"math/rand"
	"testing"

	"github.com/sheikhrachel/go-lifelike/rules"
)

// assertAlive fails unless exactly the given cells are alive
func assertAlive(t *testing.T, g *Grid, want ...Point) {
	t.Helper()
	expects := make(map[Point]bool, len(want))
	for _, p := range want {
		expects[p] = true
	}
	for y := range g.GetHeight() {
		for x := range g.GetWidth() {
			alive := g.IsAlive(x, y)
			if alive != expects[Point{x, y}] {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", x, y, alive, expects[Point{x, y}])
			}
		}
	}
}

func TestCountNeighborsCornerNeverWraps(t *testing.T) {
	g := mustGrid(t, 5, 5)
	g.Randomize(1, nil)
	e := NewEngine(g, rules.Conway)

	tests := []struct {
		x, y, want int
	}{
		{0, 0, 3}, {4, 0, 3}, {0, 4, 3}, {4, 4, 3},
		{2, 0, 5}, {0, 2, 5}, {4, 2, 5}, {2, 4, 5},
		{2, 2, 8},
	}
	for _, tt := range tests {
		if got := e.CountNeighbors(tt.x, tt.y); got != tt.want {
			t.Errorf("CountNeighbors(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestCountNeighborsExcludesSelf(t *testing.T) {
	g := mustGrid(t, 3, 3)
	setAlive(t, g, Point{1, 1})
	e := NewEngine(g, rules.Conway)
	if got := e.CountNeighbors(1, 1); got != 0 {
		t.Fatalf("lone cell counts %d neighbors", got)
	}
	if got := e.CountNeighbors(0, 0); got != 1 {
		t.Fatalf("corner next to centre counts %d neighbors", got)
	}
}

func TestStepBirth(t *testing.T) {
	g := mustGrid(t, 5, 5)
	setAlive(t, g, Point{1, 0}, Point{0, 1}, Point{2, 1})

	e := NewEngine(g, rules.MustParse("23/3"))
	next := e.Step()

	if !next.IsAlive(1, 1) {
		t.Fatal("cell (1,1) with three live neighbors was not born")
	}
	if e.Grid() != next {
		t.Fatal("engine does not hold the grid it returned")
	}
	if e.Generation() != 1 {
		t.Fatalf("Generation() = %d, want 1", e.Generation())
	}
}

func TestStepLeavesPreviousGridUntouched(t *testing.T) {
	g := mustGrid(t, 5, 5)
	setAlive(t, g, Point{1, 2}, Point{2, 2}, Point{3, 2})
	before := g.GetGridHash()

	e := NewEngine(g, rules.Conway)
	next := e.Step()

	if next == g {
		t.Fatal("Step returned the pre-step grid")
	}
	if g.GetGridHash() != before {
		t.Fatal("Step mutated the pre-step grid")
	}
}

func TestBlinkerOscillation(t *testing.T) {
	g := mustGrid(t, 5, 5)
	horizontal := []Point{{1, 2}, {2, 2}, {3, 2}}
	vertical := []Point{{2, 1}, {2, 2}, {2, 3}}
	setAlive(t, g, horizontal...)

	e := NewEngine(g, rules.MustParse("23/3"))
	assertAlive(t, e.Step(), vertical...)
	assertAlive(t, e.Step(), horizontal...)
}

func TestBlockStillLife(t *testing.T) {
	g := mustGrid(t, 4, 4)
	block := []Point{{1, 1}, {2, 1}, {1, 2}, {2, 2}}
	setAlive(t, g, block...)

	e := NewEngine(g, rules.Conway)
	for range 3 {
		assertAlive(t, e.Step(), block...)
	}
}

func TestGliderAgainstEdgeDoesNotWrap(t *testing.T) {
	g := mustGrid(t, 4, 4)
	AddGlider(g, 1, 1)

	e := NewEngine(g, rules.Conway)
	for range 12 {
		e.Step()
	}
	// a glider driven into the corner collapses into a block instead of reappearing on the far side
	assertAlive(t, e.Grid(), Point{2, 2}, Point{3, 2}, Point{2, 3}, Point{3, 3})
}

func TestHighLifeBirthOnSix(t *testing.T) {
	g := mustGrid(t, 3, 3)
	setAlive(t, g, Point{0, 0}, Point{1, 0}, Point{2, 0}, Point{0, 2}, Point{1, 2}, Point{2, 2})

	conway := NewEngine(g.Copy(), rules.MustParse("23/3")).Step()
	highlife := NewEngine(g.Copy(), rules.MustParse("23/36")).Step()

	if conway.IsAlive(1, 1) {
		t.Fatal("conway rule gave birth on six neighbors")
	}
	if !highlife.IsAlive(1, 1) {
		t.Fatal("highlife rule did not give birth on six neighbors")
	}
}

func TestEmptyRuleKillsEverything(t *testing.T) {
	g := mustGrid(t, 6, 6)
	g.Randomize(0.5, rand.New(rand.NewSource(3)))
	next := NewEngine(g, rules.MustParse("/")).Step()
	if n := next.CountLivingCells(); n != 0 {
		t.Fatalf("rule with empty sets left %d cells alive", n)
	}
}

// naiveStep recomputes a generation from Get/InBounds only, in column-major order
func naiveStep(t *testing.T, g *Grid, r rules.Rule) *Grid {
	t.Helper()
	next := mustGrid(t, g.GetWidth(), g.GetHeight())
	for x := g.GetWidth() - 1; x >= 0; x-- {
		for y := g.GetHeight() - 1; y >= 0; y-- {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if (dx != 0 || dy != 0) && g.InBounds(x+dx, y+dy) {
						c, _ := g.Get(x+dx, y+dy)
						n += int(c)
					}
				}
			}
			cur, _ := g.Get(x, y)
			if r.Apply(n, cur == Alive) {
				setAlive(t, next, Point{x, y})
			}
		}
	}
	return next
}

func TestStepMatchesIndependentTraversal(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, rs := range []string{"23/3", "23/36", "16/6", "0/0", "12345678/012345678"} {
		r := rules.MustParse(rs)
		g := mustGrid(t, 17, 11)
		g.Randomize(0.4, rng)

		e := NewEngine(g.Copy(), r)
		want := g
		for gen := range 5 {
			want = naiveStep(t, want, r)
			got := e.Step()
			if got.GetGridHash() != want.GetGridHash() {
				t.Fatalf("rule %s generation %d differs from reference", rs, gen+1)
			}
		}
	}
}

func TestWorkersMatchSequential(t *testing.T) {
	for _, workers := range []int{2, 3, 8, 64} {
		g := mustGrid(t, 23, 19)
		g.Randomize(0.35, rand.New(rand.NewSource(int64(workers))))

		seq := NewEngine(g.Copy(), rules.Conway)
		par := NewEngine(g.Copy(), rules.Conway, WithWorkers(workers))
		for gen := range 10 {
			if seq.Step().GetGridHash() != par.Step().GetGridHash() {
				t.Fatalf("workers=%d diverged at generation %d", workers, gen+1)
			}
		}
	}
}

func TestPoolMatchesUnpooled(t *testing.T) {
	g := mustGrid(t, 12, 9)
	g.Randomize(0.4, rand.New(rand.NewSource(5)))

	pool := NewGridPool()
	plain := NewEngine(g.Copy(), rules.Conway)
	pooled := NewEngine(g.Copy(), rules.Conway, WithPool(pool))
	for gen := range 8 {
		previous := pooled.Grid()
		got := pooled.Step()
		GridToPool(previous, pool)
		if got.GetGridHash() != plain.Step().GetGridHash() {
			t.Fatalf("pooled engine diverged at generation %d", gen+1)
		}
	}
}

func TestStepPanicsOnResizedGrid(t *testing.T) {
	g := mustGrid(t, 4, 4)
	e := NewEngine(g, rules.Conway)
	g.reset(5, 5)

	defer func() {
		if recover() == nil {
			t.Fatal("Step accepted a grid with different dimensions")
		}
	}()
	e.Step()
}

func TestEngineRule(t *testing.T) {
	r := rules.MustParse("16/6")
	e := NewEngine(mustGrid(t, 1, 1), r)
	if e.Rule() != r {
		t.Fatalf("Rule() = %s, want %s", e.Rule(), r)
	}
}
