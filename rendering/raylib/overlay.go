package raylib

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"dieviewer/simulation"
)

const (
	overlayFontSize   = 18
	overlayLineHeight = 22
	overlayMargin     = 10
)

var (
	overlayText  = rl.NewColor(220, 220, 220, 255)
	overlayPanel = rl.NewColor(0, 0, 0, 140)
)

// HelpText lists the controls shown at the bottom of the window
const HelpText = "Drag die: spin | Drag background: orbit | R: reset | H: hide HUD | Esc: quit"

// Overlay draws the text HUD in screen space
type Overlay struct {
	lines []string
}

// NewOverlay creates an empty HUD
func NewOverlay() *Overlay {
	return &Overlay{}
}

// Draw renders stats for the current frame. Must be called between
// BeginDrawing and EndDrawing, outside 3D mode.
func (o *Overlay) Draw(state simulation.State, telemetryClients int) {
	o.lines = o.lines[:0]
	o.lines = append(o.lines, fmt.Sprintf("FPS: %d", rl.GetFPS()))
	o.lines = append(o.lines, simulation.StatusLines(state)...)
	if telemetryClients > 0 {
		o.lines = append(o.lines, fmt.Sprintf("Telemetry clients: %d", telemetryClients))
	}

	width := int32(0)
	for _, line := range o.lines {
		if w := rl.MeasureText(line, overlayFontSize); w > width {
			width = w
		}
	}
	height := int32(len(o.lines)) * overlayLineHeight
	rl.DrawRectangle(overlayMargin/2, overlayMargin/2, width+overlayMargin, height+overlayMargin/2, overlayPanel)

	for i, line := range o.lines {
		rl.DrawText(line, overlayMargin, overlayMargin+int32(i)*overlayLineHeight, overlayFontSize, overlayText)
	}

	rl.DrawText(HelpText, overlayMargin, int32(rl.GetScreenHeight())-overlayMargin-overlayFontSize, overlayFontSize-2, overlayText)
}
