package simulation

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol/model"
)

const defaultHistory = 5

// Seeder populates an empty grid with the starting pattern
type Seeder interface {
	Seed(g *model.Grid) error
}

// SeederFunc adapts a plain function to Seeder
type SeederFunc func(g *model.Grid) error

func (f SeederFunc) Seed(g *model.Grid) error { return f(g) }

// RenderFunc draws one fully built generation
type RenderFunc func(g *model.Grid, turn int)

// Simulation owns the current generation and advances it turn by turn.
// It is not safe for concurrent use; the driver confines it to one goroutine.
type Simulation struct {
	grid    *model.Grid
	turn    int
	born    int
	died    int
	history []string
	depth   int

	render RenderFunc
	pool   *model.GridPool
	logger log.Logger
}

// Option configures a Simulation
type Option func(*Simulation)

// WithRenderer sets the callback invoked after every restart and turn
func WithRenderer(fn RenderFunc) Option {
	return func(s *Simulation) { s.render = fn }
}

// WithGridPool recycles discarded generations through pool. Grids returned
// by Grid are then only valid until the next call to Next or Restart.
func WithGridPool(pool *model.GridPool) Option {
	return func(s *Simulation) { s.pool = pool }
}

// WithLogger sets the logger used for per-turn debug output
func WithLogger(logger log.Logger) Option {
	return func(s *Simulation) { s.logger = logger }
}

// WithHistory sets how many generation hashes are kept for stagnation checks.
// A history of n entries detects periods up to min(n-1, 3).
func WithHistory(n int) Option {
	return func(s *Simulation) {
		if n > 0 {
			s.depth = n
		}
	}
}

// New creates a simulation over an empty board of the given size
func New(size int, opts ...Option) *Simulation {
	s := &Simulation{
		grid:   model.NewGrid(size),
		depth:  defaultHistory,
		logger: log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Grid returns the current generation. Callers must treat it as read-only.
func (s *Simulation) Grid() *model.Grid {
	return s.grid
}

// Turn returns the number of turns since the last restart
func (s *Simulation) Turn() int {
	return s.turn
}

// Population returns the number of living cells in the current generation
func (s *Simulation) Population() int {
	return s.grid.CountLivingCells()
}

// LastChanges returns the births and deaths of the most recent turn
func (s *Simulation) LastChanges() (born, died int) {
	return s.born, s.died
}

// Restart discards the board, seeds a fresh one and resets the turn counter.
// A seeding error leaves the previous generation in place.
func (s *Simulation) Restart(seeder Seeder) error {
	fresh := s.newGrid()
	if seeder != nil {
		if err := seeder.Seed(fresh); err != nil {
			model.GridToPool(fresh, s.pool)
			return errors.Wrap(err, "[Simulation.Restart] seeding failed")
		}
	}

	s.swap(fresh)
	s.turn = 0
	s.born, s.died = 0, 0
	s.history = s.history[:0]
	s.recordHistory()

	level.Debug(s.logger).Log("msg", "restarted", "population", s.Population())
	s.paint()
	return nil
}

// Next advances the board by one generation
func (s *Simulation) Next() {
	s.turn++

	next := s.grid.NextGeneration(s.pool)
	s.born, s.died = s.grid.Changes(next)
	s.swap(next)
	s.recordHistory()

	level.Debug(s.logger).Log(
		"msg", "turn",
		"turn", s.turn,
		"population", s.Population(),
		"born", s.born,
		"died", s.died,
	)
	s.paint()
}

// Extinct reports whether no cell is alive
func (s *Simulation) Extinct() bool {
	return s.Population() == 0
}

// Stagnant reports whether the current generation repeats one of the
// previous three, which catches still lifes and period 2 or 3 oscillators.
func (s *Simulation) Stagnant() bool {
	n := len(s.history)
	if n < 2 {
		return false
	}
	current := s.history[n-1]
	for i := n - 2; i >= 0 && i >= n-4; i-- {
		if s.history[i] == current {
			return true
		}
	}
	return false
}

func (s *Simulation) newGrid() *model.Grid {
	if s.pool != nil {
		return s.pool.Get(s.grid.Size())
	}
	return model.NewGrid(s.grid.Size())
}

func (s *Simulation) swap(next *model.Grid) {
	prev := s.grid
	s.grid = next
	model.GridToPool(prev, s.pool)
}

func (s *Simulation) recordHistory() {
	s.history = append(s.history, s.grid.Hash())
	if len(s.history) > s.depth {
		s.history = s.history[1:]
	}
}

func (s *Simulation) paint() {
	if s.render != nil {
		s.render(s.grid, s.turn)
	}
}
