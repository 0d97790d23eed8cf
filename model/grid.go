package model

import (
	"cmp"
	"crypto/md5"
	"fmt"
	"slices"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol/rules"
)

// ErrOutOfBounds is returned when a cell outside the board is mutated
var ErrOutOfBounds = errors.New("position out of bounds")

// Grid is a bounded square board storing only its living cells
type Grid struct {
	size  int
	alive map[Position]struct{}
}

// NewGrid creates an all-dead grid spanning [0,size) on both axes
func NewGrid(size int) *Grid {
	if size <= 0 {
		size = 1
	}
	return &Grid{
		size:  size,
		alive: make(map[Position]struct{}),
	}
}

// Size returns the side length of the board
func (g *Grid) Size() int {
	return g.size
}

// Reset resizes the grid and kills every cell
func (g *Grid) Reset(size int) {
	if size <= 0 {
		size = 1
	}
	g.size = size
	if g.alive == nil {
		g.alive = make(map[Position]struct{})
		return
	}
	clear(g.alive)
}

// Clear kills every cell
func (g *Grid) Clear() {
	clear(g.alive)
}

// InBounds reports whether p lies on the board
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.size && p.Y < g.size
}

// IsAlive reports whether p is a living cell. Off-board positions are always dead.
func (g *Grid) IsAlive(p Position) bool {
	_, ok := g.alive[p]
	return ok
}

// MakeAlive marks p as alive
func (g *Grid) MakeAlive(p Position) error {
	return g.set(p, true)
}

// MakeDead marks p as dead
func (g *Grid) MakeDead(p Position) error {
	return g.set(p, false)
}

// MakeAliveAt is MakeAlive for raw coordinates
func (g *Grid) MakeAliveAt(x, y int) error {
	return g.set(Pos(x, y), true)
}

// MakeDeadAt is MakeDead for raw coordinates
func (g *Grid) MakeDeadAt(x, y int) error {
	return g.set(Pos(x, y), false)
}

// MakeAliveMany marks each position alive in order, stopping at the first
// out-of-bounds one. Cells marked before the failure stay alive.
func (g *Grid) MakeAliveMany(positions []Position) error {
	for _, p := range positions {
		if err := g.set(p, true); err != nil {
			return err
		}
	}
	return nil
}

func (g *Grid) set(p Position, alive bool) error {
	if !g.InBounds(p) {
		return errors.Wrapf(ErrOutOfBounds, "[Grid.set] %v outside %dx%d board", p, g.size, g.size)
	}
	if alive {
		g.alive[p] = struct{}{}
	} else {
		delete(g.alive, p)
	}
	return nil
}

// NeighborsInBounds returns the on-board neighbors of p in compass order
func (g *Grid) NeighborsInBounds(p Position) []Position {
	neighbors := make([]Position, 0, 8)
	for _, n := range p.Neighbors() {
		if g.InBounds(n) {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// CountLiveNeighbors counts living on-board neighbors of p. p itself may be off the board.
func (g *Grid) CountLiveNeighbors(p Position) (count int) {
	for _, n := range p.Neighbors() {
		if g.InBounds(n) && g.IsAlive(n) {
			count++
		}
	}
	return
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() int {
	return len(g.alive)
}

// LivingCells returns every living cell in row-major order
func (g *Grid) LivingCells() []Position {
	cells := make([]Position, 0, len(g.alive))
	for p := range g.alive {
		cells = append(cells, p)
	}
	slices.SortFunc(cells, comparePositions)
	return cells
}

// CandidateCells returns the cells whose state may change next turn: every
// living cell and each of their dead on-board neighbors, without duplicates.
func (g *Grid) CandidateCells() []Position {
	seen := make(map[Position]struct{}, len(g.alive)*3)
	candidates := make([]Position, 0, len(g.alive)*3)
	for _, p := range g.LivingCells() {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			candidates = append(candidates, p)
		}
		for _, n := range g.NeighborsInBounds(p) {
			if g.IsAlive(n) {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			candidates = append(candidates, n)
		}
	}
	return candidates
}

// NextGeneration computes the following generation into a new grid. The
// receiver is only read, so every decision sees the same snapshot.
func (g *Grid) NextGeneration(pool *GridPool) *Grid {
	var next *Grid
	if pool != nil {
		next = pool.Get(g.size)
	} else {
		next = NewGrid(g.size)
	}

	for _, p := range g.CandidateCells() {
		if rules.ApplyConwayRules(g.CountLiveNeighbors(p), g.IsAlive(p)) {
			// candidates are always on the board
			next.alive[p] = struct{}{}
		}
	}
	return next
}

// Changes counts the cells born and died going from g to next
func (g *Grid) Changes(next *Grid) (born, died int) {
	for p := range next.alive {
		if !g.IsAlive(p) {
			born++
		}
	}
	for p := range g.alive {
		if !next.IsAlive(p) {
			died++
		}
	}
	return
}

// BoundingBoxSize returns the area of the smallest rectangle holding every living cell
func (g *Grid) BoundingBoxSize() int {
	if len(g.alive) == 0 {
		return 0
	}
	minX, minY := g.size, g.size
	maxX, maxY := -1, -1
	for p := range g.alive {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	return (maxX - minX + 1) * (maxY - minY + 1)
}

// Hash returns an MD5 digest of the board size and living cells
func (g *Grid) Hash() string {
	h := md5.New()
	fmt.Fprintf(h, "%d;", g.size)
	for _, p := range g.LivingCells() {
		h.Write([]byte(p.Key()))
		h.Write([]byte{';'})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

func comparePositions(a, b Position) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}
