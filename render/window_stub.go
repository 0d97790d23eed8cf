//go:build !ebiten

package render

const ebitenBuild = false

// RunWindow always fails in builds without the ebiten tag
func RunWindow(Controller, WindowOptions) error {
	return ErrWindowUnavailable
}
