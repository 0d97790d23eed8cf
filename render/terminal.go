package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
)

const columnsPerPixel = 2

// TerminalSurface paints onto a tcell screen. One pixel is two columns wide
// so squares look square in most fonts.
type TerminalSurface struct {
	screen tcell.Screen
	style  tcell.Style
	width  int
	height int
}

// NewTerminalSurface initialises screen and sizes the surface to it
func NewTerminalSurface(screen tcell.Screen) (*TerminalSurface, error) {
	if err := screen.Init(); err != nil {
		return nil, errors.Wrap(err, "[NewTerminalSurface] failed to init screen")
	}
	s := &TerminalSurface{
		screen: screen,
		style:  tcell.StyleDefault.Background(tcell.ColorGreen).Foreground(tcell.ColorGreen),
	}
	s.Resize(s.containerSize())
	return s, nil
}

// Screen exposes the underlying screen for event polling
func (s *TerminalSurface) Screen() tcell.Screen {
	return s.screen
}

func (s *TerminalSurface) containerSize() (int, int) {
	w, h := s.screen.Size()
	// last row is reserved for the status line
	return w / columnsPerPixel, h - 1
}

// Fill resizes the surface to match the terminal
func (s *TerminalSurface) Fill() {
	s.screen.Sync()
	s.Resize(s.containerSize())
}

func (s *TerminalSurface) Clear() {
	s.screen.Clear()
}

func (s *TerminalSurface) Resize(width, height int) {
	s.width, s.height = max(width, 0), max(height, 0)
	s.screen.Clear()
}

func (s *TerminalSurface) Bounds() (int, int) {
	return s.width, s.height
}

func (s *TerminalSurface) FillSquare(px, py, size int) {
	for y := max(py, 0); y < min(py+size, s.height); y++ {
		for x := max(px, 0); x < min(px+size, s.width); x++ {
			for c := range columnsPerPixel {
				s.screen.SetContent(x*columnsPerPixel+c, y, ' ', nil, s.style)
			}
		}
	}
}

// Status writes line on the row below the surface
func (s *TerminalSurface) Status(line string) {
	w, h := s.screen.Size()
	row := h - 1
	col := 0
	for _, r := range line {
		if col >= w {
			break
		}
		s.screen.SetContent(col, row, r, nil, tcell.StyleDefault)
		col++
	}
	for ; col < w; col++ {
		s.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
	}
}

// Show flushes pending drawing to the terminal
func (s *TerminalSurface) Show() {
	s.screen.Show()
}

// Close restores the terminal
func (s *TerminalSurface) Close() {
	s.screen.Fini()
}
