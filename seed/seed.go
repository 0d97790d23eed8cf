// Package seed provides the starting patterns a simulation can be restarted with.
package seed

import (
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol/model"
	"github.com/sheikhrachel/go-gol/simulation"
)

const (
	PolicyRow     = "row"
	PolicyBlinker = "blinker"
	PolicyGlider  = "glider"
	PolicyRandom  = "random"
	PolicyDensity = "density"

	rowLength = 10
)

// ErrUnknownPolicy is returned by ByName for unrecognised policy names
var ErrUnknownPolicy = errors.New("unknown seed policy")

// TenCellRow places ten horizontally adjacent cells starting at Origin
type TenCellRow struct {
	Origin model.Position
}

func (r TenCellRow) Seed(g *model.Grid) error {
	cell := r.Origin
	for range rowLength {
		if err := g.MakeAlive(cell); err != nil {
			return errors.Wrap(err, "[TenCellRow.Seed]")
		}
		cell = cell.Right()
	}
	return nil
}

// Blinker places a horizontal period-2 oscillator with its left end at Origin
type Blinker struct {
	Origin model.Position
}

func (b Blinker) Seed(g *model.Grid) error {
	o := b.Origin
	if err := g.MakeAliveMany([]model.Position{o, o.Right(), o.Right().Right()}); err != nil {
		return errors.Wrap(err, "[Blinker.Seed]")
	}
	return nil
}

// Glider places a south-east travelling glider inside the 3x3 box at Origin
type Glider struct {
	Origin model.Position
}

func (gl Glider) Seed(g *model.Grid) error {
	pattern := [][]bool{
		{false, true, false},
		{false, false, true},
		{true, true, true},
	}

	for y, row := range pattern {
		for x, cell := range row {
			if !cell {
				continue
			}
			if err := g.MakeAliveAt(gl.Origin.X+x, gl.Origin.Y+y); err != nil {
				return errors.Wrap(err, "[Glider.Seed]")
			}
		}
	}
	return nil
}

// Random picks a cell count uniformly in [0, size*size) and then that many
// uniformly distributed cells. Repeated picks collapse into one live cell.
type Random struct {
	Rand *rand.Rand
}

func (r Random) Seed(g *model.Grid) error {
	size := g.Size()
	count := r.Rand.IntN(size * size)
	for range count {
		if err := g.MakeAliveAt(r.Rand.IntN(size), r.Rand.IntN(size)); err != nil {
			return errors.Wrap(err, "[Random.Seed]")
		}
	}
	return nil
}

// Density makes each cell independently alive with probability Fraction
type Density struct {
	Rand     *rand.Rand
	Fraction float64
}

func (d Density) Seed(g *model.Grid) error {
	for y := range g.Size() {
		for x := range g.Size() {
			if d.Rand.Float64() >= d.Fraction {
				continue
			}
			if err := g.MakeAliveAt(x, y); err != nil {
				return errors.Wrap(err, "[Density.Seed]")
			}
		}
	}
	return nil
}

// NewRand returns a PCG-backed generator. A zero seed draws one from the clock.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// ByName resolves a policy name to a Seeder for a board of the given size.
// Fixed patterns are anchored near the middle of the board.
func ByName(name string, size int, rng *rand.Rand, density float64) (simulation.Seeder, error) {
	center := model.Pos(size/2, size/2)
	switch name {
	case PolicyRow:
		return TenCellRow{Origin: model.Pos(center.X-rowLength/2, center.Y)}, nil
	case PolicyBlinker:
		return Blinker{Origin: center.Left()}, nil
	case PolicyGlider:
		return Glider{Origin: center.UpperLeft()}, nil
	case PolicyRandom:
		return Random{Rand: rng}, nil
	case PolicyDensity:
		return Density{Rand: rng, Fraction: density}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownPolicy, "[ByName] %+v", name)
	}
}
