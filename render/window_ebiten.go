//go:build ebiten

package render

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol/model"
)

const ebitenBuild = true

// window adapts a Controller to the ebiten.Game interface
type window struct {
	ctrl    Controller
	opts    WindowOptions
	surface *ImageSurface
	painter *Painter

	lastTick  time.Time
	drawnGrid *model.Grid
	drawnTurn int
	dirty     bool
}

// RunWindow opens a desktop window and blocks until it is closed
func RunWindow(ctrl Controller, opts WindowOptions) error {
	opts = opts.withDefaults()
	px := opts.GridSize * opts.CellSize

	surface := NewImageSurface(px, px, opts.Foreground, opts.Background)
	w := &window{
		ctrl:     ctrl,
		opts:     opts,
		surface:  surface,
		painter:  NewPainter(surface, opts.CellSize),
		lastTick: time.Now(),
		dirty:    true,
	}

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(px, px)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return errors.Wrap(err, "[RunWindow] game loop failed")
	}
	return nil
}

func (w *window) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		w.lastTick = time.Now()
		return w.ctrl.Restart()
	}

	if time.Since(w.lastTick) >= w.opts.Period {
		w.lastTick = time.Now()
		return w.ctrl.Advance()
	}
	return nil
}

func (w *window) Draw(screen *ebiten.Image) {
	g, turn := w.ctrl.Current(), w.ctrl.Turn()
	if w.dirty || g != w.drawnGrid || turn != w.drawnTurn {
		w.painter.Paint(g)
		w.drawnGrid, w.drawnTurn, w.dirty = g, turn, false
	}
	screen.WritePixels(w.surface.Pix())
}

// Layout matches the canvas to the window
func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	if cw, ch := w.surface.Bounds(); cw != outsideWidth || ch != outsideHeight {
		w.surface.Resize(outsideWidth, outsideHeight)
		w.dirty = true
	}
	return outsideWidth, outsideHeight
}
