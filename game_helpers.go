package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-gol/model"
	"github.com/sheikhrachel/go-gol/seed"
	"github.com/sheikhrachel/go-gol/simulation"
	"github.com/sheikhrachel/go-gol/utils"
)

var (
	errFinished = errors.New("generation limit reached")
	errQuit     = errors.New("quit requested")
)

type command int

const (
	cmdRestart command = iota
	cmdRedraw
	cmdQuit
)

// game binds a simulation to its seeding policy, stats and restart rules.
// Every method must be called from the goroutine that owns the game.
type game struct {
	config utils.Config
	sim    *simulation.Simulation
	seeder simulation.Seeder
	stats  *utils.Stats
	logger log.Logger

	stagnantCount int
	lastTick      time.Time
}

// newGame builds the simulation without seeding it; call Restart before the first turn
func newGame(config utils.Config, logger log.Logger, render simulation.RenderFunc) (*game, error) {
	seeder, err := seed.ByName(config.SeedPolicy, config.Size, seed.NewRand(config.Seed), config.RandomDensity)
	if err != nil {
		return nil, errors.Wrap(err, "[newGame] failed to resolve seed policy")
	}

	opts := []simulation.Option{simulation.WithLogger(logger)}
	if render != nil {
		opts = append(opts, simulation.WithRenderer(render))
	}
	if config.UseMemoryPool {
		opts = append(opts, simulation.WithGridPool(model.NewGridPool()))
	}

	return &game{
		config:   config,
		sim:      simulation.New(config.Size, opts...),
		seeder:   seeder,
		stats:    utils.NewStats(),
		logger:   logger,
		lastTick: time.Now(),
	}, nil
}

// Restart reseeds the board
func (g *game) Restart() error {
	if err := g.sim.Restart(g.seeder); err != nil {
		return err
	}
	g.stagnantCount = 0
	g.stats.Restarts++
	g.lastTick = time.Now()

	level.Info(g.logger).Log(
		"msg", "board seeded",
		"policy", g.config.SeedPolicy,
		"size", g.config.Size,
		"population", g.sim.Population(),
	)
	return nil
}

// Advance plays one turn and applies the restart rules
func (g *game) Advance() error {
	frameStart := time.Now()
	g.sim.Next()

	born, died := g.sim.LastChanges()
	g.stats.Update(g.sim.Population(), born, died, frameStart.Sub(g.lastTick))
	g.lastTick = frameStart

	if g.sim.Stagnant() {
		g.stagnantCount++
	} else {
		g.stagnantCount = 0
	}

	if g.config.StatsEvery > 0 && g.sim.Turn()%g.config.StatsEvery == 0 {
		g.logStats()
	}

	if g.config.AutoRestart {
		shouldRestart, reason := checkRestartConditions(g.sim.Population(), g.stagnantCount, g.sim.Turn(), g.config)
		if !shouldRestart {
			return nil
		}
		level.Info(g.logger).Log("msg", "restarting", "reason", reason, "turn", g.sim.Turn())
		return g.Restart()
	}

	// without auto-restart an extinct or stagnant board keeps playing until the limit
	if g.config.MaxGenerations > 0 && g.sim.Turn() >= g.config.MaxGenerations {
		return errFinished
	}
	return nil
}

// Current returns the generation on display
func (g *game) Current() *model.Grid {
	return g.sim.Grid()
}

// Turn returns the turns played since the last restart
func (g *game) Turn() int {
	return g.sim.Turn()
}

func (g *game) logStats() {
	level.Info(g.logger).Log(
		"msg", "stats",
		"turn", g.sim.Turn(),
		"population", g.sim.Population(),
		"avg_population", fmt.Sprintf("%.1f", g.stats.AveragePopulation),
		"gen_per_sec", fmt.Sprintf("%.1f", g.stats.GenerationsPerSecond),
		"births", g.stats.Births,
		"deaths", g.stats.Deaths,
		"restarts", g.stats.Restarts,
		"runtime", g.stats.Runtime().Round(time.Millisecond),
	)
}

const (
	reasonExtinction      = "extinction"
	reasonStagnation      = "stagnation detected"
	reasonGenerationLimit = "generation limit"
)

// checkRestartConditions determines if the game should restart
func checkRestartConditions(
	livingCells, stagnantCount, generation int,
	config utils.Config,
) (bool, string) {
	if livingCells == 0 {
		return true, reasonExtinction
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, reasonStagnation
	}
	if config.MaxGenerations > 0 && generation >= config.MaxGenerations {
		return true, reasonGenerationLimit
	}
	return false, ""
}

// statusLine summarises the current generation for the terminal display
func statusLine(g *game) string {
	grid := g.sim.Grid()
	livingCells := grid.CountLivingCells()
	density := float64(livingCells) / float64(grid.Size()*grid.Size()) * 100

	status := "Active"
	if g.stagnantCount > 0 {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	return fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | Status: %s | Bounding box: %d cells | r restart, q quit",
		g.sim.Turn(), livingCells, density, status, grid.BoundingBoxSize())
}

// runLoop owns the game: it advances a turn every period and applies
// commands until ctx is cancelled, the user quits or the game finishes.
func runLoop(ctx context.Context, g *game, commands <-chan command, redraw func()) error {
	ticker := time.NewTicker(g.config.Period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case cmd := <-commands:
			switch cmd {
			case cmdQuit:
				return errQuit
			case cmdRestart:
				if err := g.Restart(); err != nil {
					return err
				}
			case cmdRedraw:
				if redraw != nil {
					redraw()
				}
			}
		case <-ticker.C:
			if err := g.Advance(); err != nil {
				return err
			}
		}
	}
}

// superviseScreen runs the loop and the event pump together. The screen is
// closed only once the loop has returned; closing it releases a pump blocked
// on PollEvent.
func superviseScreen(
	ctx context.Context,
	loop, pump func(context.Context) error,
	closeScreen func(),
) error {
	loopDone := make(chan struct{})
	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer close(loopDone)
		return loop(gctx)
	})
	eg.Go(func() error {
		<-loopDone
		closeScreen()
		return nil
	})
	eg.Go(func() error {
		return pump(gctx)
	})
	return eg.Wait()
}
