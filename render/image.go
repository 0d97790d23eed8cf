package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ImageSurface is an in-memory RGBA canvas
type ImageSurface struct {
	img        *image.RGBA
	foreground *image.Uniform
	background *image.Uniform
}

func NewImageSurface(width, height int, fg, bg color.Color) *ImageSurface {
	s := &ImageSurface{
		foreground: image.NewUniform(fg),
		background: image.NewUniform(bg),
	}
	s.Resize(width, height)
	return s
}

// Image exposes the backing image
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// Pix returns the raw RGBA bytes in row-major order
func (s *ImageSurface) Pix() []byte {
	return s.img.Pix
}

func (s *ImageSurface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), s.background, image.Point{}, draw.Src)
}

func (s *ImageSurface) Resize(width, height int) {
	s.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	s.Clear()
}

func (s *ImageSurface) Bounds() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// FillSquare paints the square, clipped to the canvas
func (s *ImageSurface) FillSquare(px, py, size int) {
	r := image.Rect(px, py, px+size, py+size).Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(s.img, r, s.foreground, image.Point{}, draw.Src)
}
