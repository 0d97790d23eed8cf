package simulation

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol/model"
)

func cells(ps ...model.Position) Seeder {
	return SeederFunc(func(g *model.Grid) error {
		return g.MakeAliveMany(ps)
	})
}

func verticalBlinker() Seeder {
	return cells(model.Pos(1, 0), model.Pos(1, 1), model.Pos(1, 2))
}

func TestTurnCounter(t *testing.T) {
	s := New(5)
	if err := s.Restart(verticalBlinker()); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if s.Turn() != 0 {
		t.Fatalf("turn after restart = %d, want 0", s.Turn())
	}

	for i := 1; i <= 4; i++ {
		s.Next()
		if s.Turn() != i {
			t.Fatalf("turn = %d, want %d", s.Turn(), i)
		}
	}

	if err := s.Restart(verticalBlinker()); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if s.Turn() != 0 {
		t.Fatalf("turn after second restart = %d, want 0", s.Turn())
	}
}

func TestBlinkerThroughSimulation(t *testing.T) {
	s := New(5)
	if err := s.Restart(verticalBlinker()); err != nil {
		t.Fatalf("Restart: %v", err)
	}

	s.Next()
	horizontal := []model.Position{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}
	for _, p := range horizontal {
		if !s.Grid().IsAlive(p) {
			t.Fatalf("turn 1: %v should be alive", p)
		}
	}
	if s.Population() != 3 {
		t.Fatalf("turn 1 population = %d, want 3", s.Population())
	}

	s.Next()
	for _, p := range []model.Position{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}} {
		if !s.Grid().IsAlive(p) {
			t.Fatalf("turn 2: %v should be alive", p)
		}
	}
	if born, died := s.LastChanges(); born != 2 || died != 2 {
		t.Fatalf("LastChanges = (%d, %d), want (2, 2)", born, died)
	}
}

func TestNextReplacesGrid(t *testing.T) {
	s := New(5)
	if err := s.Restart(verticalBlinker()); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	before := s.Grid()
	s.Next()
	if s.Grid() == before {
		t.Fatalf("Next mutated the grid in place")
	}
	if !before.IsAlive(model.Pos(1, 0)) {
		t.Fatalf("previous generation changed after Next")
	}
}

func TestEmptyStaysEmpty(t *testing.T) {
	s := New(10)
	if err := s.Restart(nil); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	s.Next()
	if !s.Extinct() {
		t.Fatalf("empty board produced %d cells", s.Population())
	}
}

func TestRenderCallback(t *testing.T) {
	var turns []int
	s := New(5, WithRenderer(func(g *model.Grid, turn int) {
		if g == nil {
			t.Fatalf("rendered nil grid")
		}
		turns = append(turns, turn)
	}))

	if err := s.Restart(verticalBlinker()); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	s.Next()
	s.Next()

	want := []int{0, 1, 2}
	if len(turns) != len(want) {
		t.Fatalf("rendered turns %v, want %v", turns, want)
	}
	for i := range want {
		if turns[i] != want[i] {
			t.Fatalf("rendered turns %v, want %v", turns, want)
		}
	}
}

func TestRestartSeedingFailure(t *testing.T) {
	rendered := 0
	s := New(5, WithRenderer(func(*model.Grid, int) { rendered++ }))
	if err := s.Restart(verticalBlinker()); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	s.Next()
	rendered = 0

	err := s.Restart(cells(model.Pos(0, 0), model.Pos(5, 5)))
	if !errors.Is(err, model.ErrOutOfBounds) {
		t.Fatalf("Restart error = %v, want ErrOutOfBounds", err)
	}
	if rendered != 0 {
		t.Fatalf("failed restart rendered %d times", rendered)
	}
	if s.Turn() != 1 || s.Population() != 3 {
		t.Fatalf("failed restart changed state: turn=%d population=%d", s.Turn(), s.Population())
	}
}

func TestStagnant(t *testing.T) {
	s := New(5)
	if err := s.Restart(verticalBlinker()); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if s.Stagnant() {
		t.Fatalf("stagnant right after restart")
	}
	s.Next()
	if s.Stagnant() {
		t.Fatalf("stagnant after one turn")
	}
	s.Next()
	if !s.Stagnant() {
		t.Fatalf("blinker not detected as stagnant after a full period")
	}
}

func TestGliderNotStagnant(t *testing.T) {
	glider := cells(model.Pos(1, 0), model.Pos(2, 1), model.Pos(0, 2), model.Pos(1, 2), model.Pos(2, 2))
	s := New(40)
	if err := s.Restart(glider); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	for range 20 {
		s.Next()
		if s.Stagnant() {
			t.Fatalf("glider flagged stagnant at turn %d", s.Turn())
		}
		if s.Population() != 5 {
			t.Fatalf("glider population = %d at turn %d", s.Population(), s.Turn())
		}
	}
}

func TestBlockStillLife(t *testing.T) {
	s := New(6, WithGridPool(model.NewGridPool()))
	block := cells(model.Pos(2, 2), model.Pos(3, 2), model.Pos(2, 3), model.Pos(3, 3))
	if err := s.Restart(block); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	s.Next()
	if !s.Stagnant() {
		t.Fatalf("still life not detected")
	}
	if s.Population() != 4 {
		t.Fatalf("block population = %d, want 4", s.Population())
	}
}

func BenchmarkNext(b *testing.B) {
	s := New(200)
	r := SeederFunc(func(g *model.Grid) error {
		for y := range g.Size() {
			for x := range g.Size() {
				if (x*7+y*13)%5 == 0 {
					if err := g.MakeAliveAt(x, y); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
	if err := s.Restart(r); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for range b.N {
		s.Next()
	}
}

func TestShortHistoryMissesOscillators(t *testing.T) {
	s := New(5, WithHistory(2))
	if err := s.Restart(verticalBlinker()); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	for range 4 {
		s.Next()
		if s.Stagnant() {
			t.Fatalf("two-entry history flagged a period-2 oscillator at turn %d", s.Turn())
		}
	}
}
