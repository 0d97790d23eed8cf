package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-gol/model"
	"github.com/sheikhrachel/go-gol/render"
	"github.com/sheikhrachel/go-gol/utils"
)

const defaultConfigFile = "config.json"

func main() {
	app := cli.NewApp()
	app.Name = "go-gol"
	app.Usage = "run Conway's Game of Life on a bounded square board"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Value: defaultConfigFile, Usage: "JSON or YAML configuration file"},
		cli.IntFlag{Name: "size", Usage: "board side length in cells"},
		cli.IntFlag{Name: "cell-size", Usage: "cell side length in pixels (window display)"},
		cli.DurationFlag{Name: "period", Usage: "time between turns"},
		cli.StringFlag{Name: "seed-policy", Usage: "starting pattern: row, blinker, glider, random or density"},
		cli.Int64Flag{Name: "seed", Usage: "random seed, 0 picks one from the clock"},
		cli.Float64Flag{Name: "density", Usage: "alive fraction for the density policy"},
		cli.StringFlag{Name: "display", Usage: "terminal, window or headless"},
		cli.IntFlag{Name: "max-turns", Usage: "stop (or restart) after this many turns, 0 runs forever"},
		cli.BoolFlag{Name: "auto-restart", Usage: "reseed on extinction, stagnation or the turn limit"},
		cli.BoolFlag{Name: "pool", Usage: "recycle discarded generations"},
		cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
		cli.StringFlag{Name: "log-file", Usage: "log destination for the terminal display"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "go-gol: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	config, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err = config.Validate(); err != nil {
		return err
	}

	logger, closer, err := utils.OpenLogger(config.Display, config.LogFile, config.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch config.Display {
	case utils.DisplayWindow:
		err = runWindow(config, logger)
	case utils.DisplayHeadless:
		err = runHeadless(ctx, config, logger)
	default:
		err = runTerminal(ctx, config, logger)
	}
	if errors.Is(err, errQuit) || errors.Is(err, errFinished) {
		return nil
	}
	return err
}

// loadConfig reads the config file, falling back to defaults when the default
// file is absent, then applies command line overrides
func loadConfig(c *cli.Context) (utils.Config, error) {
	path := c.String("config")
	config, err := utils.LoadConfig(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) || c.IsSet("config") {
			return config, err
		}
		config = utils.DefaultConfig()
	}

	if c.IsSet("size") {
		config.Size = c.Int("size")
	}
	if c.IsSet("cell-size") {
		config.CellSize = c.Int("cell-size")
	}
	if c.IsSet("period") {
		config.Period = c.Duration("period")
	}
	if c.IsSet("seed-policy") {
		config.SeedPolicy = c.String("seed-policy")
	}
	if c.IsSet("seed") {
		config.Seed = c.Int64("seed")
	}
	if c.IsSet("density") {
		config.RandomDensity = c.Float64("density")
	}
	if c.IsSet("display") {
		config.Display = c.String("display")
	}
	if c.IsSet("max-turns") {
		config.MaxGenerations = c.Int("max-turns")
	}
	if c.IsSet("auto-restart") {
		config.AutoRestart = c.Bool("auto-restart")
	}
	if c.IsSet("pool") {
		config.UseMemoryPool = c.Bool("pool")
	}
	if c.IsSet("log-level") {
		config.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-file") {
		config.LogFile = c.String("log-file")
	}
	return config, nil
}

func runHeadless(ctx context.Context, config utils.Config, logger log.Logger) error {
	g, err := newGame(config, logger, nil)
	if err != nil {
		return err
	}
	if err = g.Restart(); err != nil {
		return err
	}
	defer g.logStats()

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return runLoop(gctx, g, nil, nil)
	})
	return eg.Wait()
}

func runTerminal(ctx context.Context, config utils.Config, logger log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "[runTerminal] failed to create screen")
	}
	surface, err := render.NewTerminalSurface(screen)
	if err != nil {
		return err
	}

	// one terminal pixel per cell; cell_size only applies to the window
	painter := render.NewPainter(surface, 1)

	var g *game
	paint := func(grid *model.Grid, _ int) {
		painter.Paint(grid)
		if g != nil {
			surface.Status(statusLine(g))
		}
		surface.Show()
	}

	g, err = newGame(config, logger, paint)
	if err != nil {
		surface.Close()
		return err
	}
	if err = g.Restart(); err != nil {
		surface.Close()
		return err
	}
	defer g.logStats()

	commands := make(chan command)
	redraw := func() {
		surface.Fill()
		paint(g.Current(), g.Turn())
	}

	return superviseScreen(ctx,
		func(ctx context.Context) error { return runLoop(ctx, g, commands, redraw) },
		func(ctx context.Context) error { return pumpEvents(ctx, screen, commands) },
		surface.Close,
	)
}

// pumpEvents turns terminal events into loop commands
func pumpEvents(ctx context.Context, screen tcell.Screen, commands chan<- command) error {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return nil
		}

		var cmd command
		switch ev := ev.(type) {
		case *tcell.EventResize:
			cmd = cmdRedraw
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
				cmd = cmdQuit
			case ev.Rune() == 'r':
				cmd = cmdRestart
			default:
				continue
			}
		default:
			continue
		}

		select {
		case commands <- cmd:
		case <-ctx.Done():
			return nil
		}
	}
}

func runWindow(config utils.Config, logger log.Logger) error {
	g, err := newGame(config, logger, nil)
	if err != nil {
		return err
	}
	if err = g.Restart(); err != nil {
		return err
	}
	defer g.logStats()

	level.Info(logger).Log("msg", "opening window", "size", config.Size, "cell_size", config.CellSize)
	return render.RunWindow(g, render.WindowOptions{
		Title:    "go-gol",
		GridSize: config.Size,
		CellSize: config.CellSize,
		Period:   config.Period,
	})
}
