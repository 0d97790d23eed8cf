package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const keySeparator = "|"

// ErrMalformedKey is returned when a key is not of the form "x|y"
var ErrMalformedKey = errors.New("malformed position key")

// Position is a cell coordinate on the board. It may lie outside any grid.
type Position struct {
	X int
	Y int
}

// Pos is shorthand for Position{X: x, Y: y}
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// ParsePosition decodes a key produced by Position.Key
func ParsePosition(key string) (Position, error) {
	xs, ys, ok := strings.Cut(key, keySeparator)
	if !ok {
		return Position{}, errors.Wrapf(ErrMalformedKey, "[ParsePosition] missing separator: %+v", key)
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return Position{}, errors.Wrapf(ErrMalformedKey, "[ParsePosition] bad x in %+v: %v", key, err)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return Position{}, errors.Wrapf(ErrMalformedKey, "[ParsePosition] bad y in %+v: %v", key, err)
	}
	return Position{X: x, Y: y}, nil
}

// Key returns the canonical "x|y" encoding
func (p Position) Key() string {
	return strconv.Itoa(p.X) + keySeparator + strconv.Itoa(p.Y)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func (p Position) Left() Position       { return Position{p.X - 1, p.Y} }
func (p Position) UpperLeft() Position  { return Position{p.X - 1, p.Y - 1} }
func (p Position) Top() Position        { return Position{p.X, p.Y - 1} }
func (p Position) UpperRight() Position { return Position{p.X + 1, p.Y - 1} }
func (p Position) Right() Position      { return Position{p.X + 1, p.Y} }
func (p Position) LowerRight() Position { return Position{p.X + 1, p.Y + 1} }
func (p Position) Bottom() Position     { return Position{p.X, p.Y + 1} }
func (p Position) LowerLeft() Position  { return Position{p.X - 1, p.Y + 1} }

// Neighbors returns the Moore neighborhood starting west and going clockwise
func (p Position) Neighbors() [8]Position {
	return [8]Position{
		p.Left(),
		p.UpperLeft(),
		p.Top(),
		p.UpperRight(),
		p.Right(),
		p.LowerRight(),
		p.Bottom(),
		p.LowerLeft(),
	}
}
