package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-lifelike/model"
	"github.com/sheikhrachel/go-lifelike/rules"
	"github.com/sheikhrachel/go-lifelike/utils"
)

const (
	reasonExtinction = "extinction"
	reasonStagnation = "stagnation detected"
	reasonMaxGen     = "reached maximum generations"
	reasonStopped    = "stopped"
)

// game bundles everything the main loop mutates between frames
type game struct {
	config   utils.Config
	rule     rules.Rule
	engine   *model.Engine
	pool     *model.GridPool
	rng      *rand.Rand
	renderer model.Renderer
	stats    *utils.Stats
	history  *model.History
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config, renderer model.Renderer) (*game, error) {
	rule, err := config.ParsedRule()
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame] failed to parse rule")
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &game{
		config:   config,
		rule:     rule,
		rng:      rand.New(rand.NewSource(seed)),
		renderer: renderer,
		stats:    utils.NewStats(),
		history:  model.NewHistory(),
	}
	if config.UseMemoryPool {
		g.pool = model.NewGridPool()
	}

	grid, err := g.seedGrid()
	if err != nil {
		return nil, err
	}
	g.engine = g.newEngine(grid)
	return g, nil
}

func (g *game) newEngine(grid *model.Grid) *model.Engine {
	return model.NewEngine(grid, g.rule, model.WithPool(g.pool), model.WithWorkers(g.config.Workers))
}

// seedGrid builds a randomized grid and inserts the configured patterns
func (g *game) seedGrid() (*model.Grid, error) {
	grid, err := model.NewGrid(g.config.Width, g.config.Height)
	if err != nil {
		return nil, errors.Wrap(err, "[seedGrid] failed to create grid")
	}
	grid.Randomize(g.config.RandomDensity, g.rng)

	if len(g.config.Patterns) == 0 {
		if g.config.UsePreset {
			model.AddExamplePreset(grid)
		}
		return grid, nil
	}
	for _, p := range g.config.Patterns {
		if err = model.AddPattern(grid, p.Name, p.X, p.Y); err != nil {
			return nil, errors.Wrapf(err, "[seedGrid] failed to place %s", p)
		}
	}
	return grid, nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(out io.Writer, config utils.Config, g *game) {
	grid := g.engine.Grid()
	fmt.Fprintln(out, "\nLife-like cellular automaton, terminal simulation")
	fmt.Fprintf(out, "Rule: %s | Grid: %dx%d | Initial living cells: %d\n",
		g.rule, grid.GetWidth(), grid.GetHeight(), grid.CountLivingCells())
	fmt.Fprintf(out, "Density: %.2f | Delay: %v | Workers: %d | Memory pool: %v\n",
		config.RandomDensity, config.FrameRate, config.Workers, config.UseMemoryPool)
	fmt.Fprintf(out, "Patterns: %v\n", model.PatternNames())
	fmt.Fprintln(out, "Press Ctrl+C to stop the simulation")
	fmt.Fprintln(out)
}

// gameStatus formats the per-frame status shown under the grid
func gameStatus(generation, lastRestartGen, livingCells int, stagnant bool, grid *model.Grid, stats *utils.Stats) string {
	density := float64(livingCells) / float64(grid.GetWidth()*grid.GetHeight()) * 100

	status := "Active"
	if stagnant {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	line := fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | Status: %s | Bounding box: %d cells\n",
		generation, livingCells, density, status, grid.GetBoundingBoxSize())
	line += fmt.Sprintf("Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime().Seconds())
	if generation > lastRestartGen && lastRestartGen > 0 {
		line += fmt.Sprintf(" | Since restart: %d", generation-lastRestartGen)
	}
	return line
}

// checkRestartConditions reports whether the run has died out or settled.
// A zero threshold disables both checks.
func checkRestartConditions(livingCells, stagnantCount int, config utils.Config) (bool, string) {
	if config.StagnationThreshold <= 0 {
		return false, ""
	}
	if livingCells == 0 {
		return true, reasonExtinction
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, reasonStagnation
	}
	return false, ""
}

// restartGame reseeds the board and starts a fresh engine
func (g *game) restartGame() error {
	grid, err := g.seedGrid()
	if err != nil {
		return errors.Wrap(err, "[restartGame] failed to reseed")
	}
	model.GridToPool(g.engine.Grid(), g.pool)
	g.engine = g.newEngine(grid)
	g.history.Reset()
	g.stats.Restarts++
	return nil
}

// run drives render/step cycles until a stop condition and returns its reason
func (g *game) run(ctx context.Context) (string, error) {
	var (
		generation     = 0
		stagnantCount  = 0
		lastRestartGen = 0
		lastFrameTime  = time.Now()
		controls       <-chan model.Control
	)
	if c, ok := g.renderer.(model.Controller); ok {
		controls = c.Controls()
	}

	for {
		grid := g.engine.Grid()
		livingCells := grid.CountLivingCells()

		frameStart := time.Now()
		g.stats.Update(generation, livingCells, frameStart.Sub(lastFrameTime))
		lastFrameTime = frameStart

		stagnant := g.history.IsStagnant(grid)
		g.history.Update(grid)
		if stagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		status := gameStatus(generation, lastRestartGen, livingCells, stagnant, grid, g.stats)
		if err := g.renderer.Display(grid, generation, status); err != nil {
			return "", errors.Wrap(err, "[run] failed to render")
		}

		if g.config.MaxGenerations > 0 && generation >= g.config.MaxGenerations {
			return reasonMaxGen, nil
		}

		if shouldRestart, reason := checkRestartConditions(livingCells, stagnantCount, g.config); shouldRestart {
			if !g.config.AutoRestart {
				return reason, nil
			}
			if err := g.restartGame(); err != nil {
				return "", err
			}
			lastRestartGen = generation
			stagnantCount = 0
		} else {
			previous := g.engine.Grid()
			g.engine.Step()
			model.GridToPool(previous, g.pool)
		}
		generation++

		if !waitFrame(ctx, g.config.FrameRate, controls) {
			return reasonStopped, nil
		}
	}
}

// waitFrame sleeps for delay while honouring cancellation and pause/quit keys.
// It returns false when the loop should stop.
func waitFrame(ctx context.Context, delay time.Duration, controls <-chan model.Control) bool {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	var (
		paused  bool
		elapsed bool
	)
	for {
		select {
		case <-ctx.Done():
			return false
		case c, ok := <-controls:
			if !ok {
				controls = nil
				continue
			}
			switch c {
			case model.ControlQuit:
				return false
			case model.ControlPause:
				paused = !paused
				if !paused && elapsed {
					return true
				}
			}
		case <-timer.C:
			if !paused {
				return true
			}
			elapsed = true
		}
	}
}
