package simulation

import (
	"fmt"

	"dieviewer/core"
)

// StatusLines renders the state as short human-readable lines for the HUD.
// The default raylib font is ASCII only.
func StatusLines(s State) []string {
	mode := "idle"
	switch {
	case s.Dragging:
		mode = "dragging (" + s.Mode.String() + ")"
	case s.Resetting:
		mode = "resetting"
	case s.MomentumMode != ModeNone:
		mode = "coasting (" + s.MomentumMode.String() + ")"
	}

	lines := []string{
		"Mode: " + mode,
		fmt.Sprintf("Heading %7.1f deg  Pitch %7.1f deg", s.Pose.Heading, s.Pose.Pitch),
		fmt.Sprintf("Azimuth %7.1f deg  Elevation %6.1f deg",
			core.RadiansToDegrees(s.Pose.Azimuth), core.RadiansToDegrees(s.Pose.Elevation)),
	}
	switch s.MomentumMode {
	case ModeSpin:
		lines = append(lines, fmt.Sprintf("Spin %.2f deg/s", s.SpinVelocity.Len()))
	case ModeOrbit:
		lines = append(lines, fmt.Sprintf("Orbit %.4f rad/s", s.OrbitVelocity.Len()))
	}
	return lines
}
