package rules

// Outcome names which branch of the rule decided a cell's next state
type Outcome int

const (
	Unchanged Outcome = iota
	Underpopulation
	Survival
	Overpopulation
	Reproduction
)

// Classify evaluates the rule for a cell with the given live neighbor count
func Classify(neighbors int, alive bool) Outcome {
	switch {
	case alive && neighbors < 2:
		return Underpopulation
	case alive && (neighbors == 2 || neighbors == 3):
		return Survival
	case alive && neighbors > 3:
		return Overpopulation
	case !alive && neighbors == 3:
		return Reproduction
	default:
		return Unchanged
	}
}

// Alive reports the cell state an outcome leads to
func (o Outcome) Alive(wasAlive bool) bool {
	switch o {
	case Underpopulation, Overpopulation:
		return false
	case Survival, Reproduction:
		return true
	default:
		return wasAlive
	}
}

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Conway's Game of Life rules: (alive && neighbors == 2) || neighbors == 3
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return Classify(neighbors, alive).Alive(alive)
}
