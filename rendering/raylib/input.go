package raylib

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"dieviewer/core"
	"dieviewer/simulation"
)

// PollInput samples the left mouse button and cursor for this frame
func (r *Renderer) PollInput() simulation.Input {
	in := simulation.Input{
		Pressed:  rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		Released: rl.IsMouseButtonReleased(rl.MouseButtonLeft),
	}
	if !rl.IsCursorOnScreen() {
		return in
	}

	pos := rl.GetMousePosition()
	in.MouseAvailable = true
	in.Mouse = core.ScreenToNDC(float64(pos.X), float64(pos.Y), rl.GetScreenWidth(), rl.GetScreenHeight())
	return in
}

// PollKeys reports the viewer's hotkeys that went down this frame
func (r *Renderer) PollKeys() simulation.Keys {
	return simulation.Keys{
		Reset:     rl.IsKeyPressed(rl.KeyR),
		ToggleHUD: rl.IsKeyPressed(rl.KeyH),
	}
}
