package core

import "github.com/go-gl/mathgl/mgl64"

// ScreenToNDC converts a pixel position (origin top-left, y down) to
// normalized device coordinates (x right, y up, both in [-1, 1])
func ScreenToNDC(px, py float64, width, height int) mgl64.Vec2 {
	if width <= 0 || height <= 0 {
		return mgl64.Vec2{}
	}
	x := 2.0*px/float64(width) - 1.0
	y := 1.0 - 2.0*py/float64(height) // flip Y
	return mgl64.Vec2{x, y}
}

// NDCToScreen is the inverse of ScreenToNDC
func NDCToScreen(ndc mgl64.Vec2, width, height int) (px, py float64) {
	px = (ndc.X() + 1.0) * 0.5 * float64(width)
	py = (1.0 - ndc.Y()) * 0.5 * float64(height)
	return px, py
}
