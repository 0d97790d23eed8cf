package render

import (
	"image/color"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol/model"
)

// ErrWindowUnavailable is returned by RunWindow in builds without the ebiten tag
var ErrWindowUnavailable = errors.New("window display requires building with the 'ebiten' tag")

// Controller is the game loop a window display drives
type Controller interface {
	// Advance plays one turn
	Advance() error
	// Restart reseeds the board
	Restart() error
	Current() *model.Grid
	Turn() int
}

// WindowOptions configures RunWindow
type WindowOptions struct {
	Title    string
	GridSize int
	CellSize int
	Period   time.Duration

	Foreground color.Color
	Background color.Color
}

func (o WindowOptions) withDefaults() WindowOptions {
	if o.Title == "" {
		o.Title = "go-gol"
	}
	if o.CellSize <= 0 {
		o.CellSize = 1
	}
	if o.Period <= 0 {
		o.Period = 200 * time.Millisecond
	}
	if o.Foreground == nil {
		o.Foreground = color.White
	}
	if o.Background == nil {
		o.Background = color.Black
	}
	return o
}
