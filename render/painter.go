// Package render draws generations onto interchangeable surfaces.
package render

import "github.com/sheikhrachel/go-gol/model"

// Surface is a pixel canvas cells are painted onto
type Surface interface {
	// Clear erases the whole surface
	Clear()
	// Resize changes the surface dimensions, erasing it
	Resize(width, height int)
	// Bounds returns the current dimensions
	Bounds() (width, height int)
	// FillSquare paints a size x size square with its top-left corner at (px, py)
	FillSquare(px, py, size int)
}

// Painter paints every living cell of a grid as a square of CellSize pixels
type Painter struct {
	surface  Surface
	cellSize int
}

func NewPainter(surface Surface, cellSize int) *Painter {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Painter{surface: surface, cellSize: cellSize}
}

// CellSize returns the side of one cell in pixels
func (p *Painter) CellSize() int {
	return p.cellSize
}

// Fit resizes the surface to hold a board of the given size
func (p *Painter) Fit(gridSize int) {
	p.surface.Resize(gridSize*p.cellSize, gridSize*p.cellSize)
}

// Paint clears the surface and draws g
func (p *Painter) Paint(g *model.Grid) {
	p.surface.Clear()
	for _, c := range g.LivingCells() {
		p.surface.FillSquare(c.X*p.cellSize, c.Y*p.cellSize, p.cellSize)
	}
}

// Render matches simulation.RenderFunc
func (p *Painter) Render(g *model.Grid, _ int) {
	p.Paint(g)
}
