// Command orbit_probe prints the viewer's coordinate conventions and a
// scripted drag without opening a window.
package main

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"dieviewer/core"
	"dieviewer/simulation"
)

func main() {
	fmt.Println("=== Orbit Probe ===")
	fmt.Println()

	// Test 1: orbit positions
	fmt.Println("Test 1: Azimuth/elevation to world position (radius 10)")
	positions := []struct {
		name          string
		azimuth, elev float64 // degrees
	}{
		{"Straight ahead", 0, 0},
		{"Right", 90, 0},
		{"Behind", 180, 0},
		{"Above", 0, 80},
		{"Clamped high", 0, 90},
		{"Clamped low", 45, -90},
	}

	for _, p := range positions {
		elev := core.ClampElevation(core.DegreesToRadians(p.elev))
		pos := core.OrbitPosition(10, core.DegreesToRadians(p.azimuth), elev)
		fmt.Printf("%s (%.0f°, %.0f°):\n", p.name, p.azimuth, p.elev)
		fmt.Printf("  Position: X=%.3f, Y=%.3f, Z=%.3f\n", pos.X(), pos.Y(), pos.Z())
		fmt.Printf("  Elevation used: %.2f°\n", core.RadiansToDegrees(elev))
		fmt.Println()
	}

	// Test 2: screen round trip
	fmt.Println("Test 2: Screen to NDC (1024x768)")
	for _, px := range [][2]float64{{0, 0}, {512, 384}, {1024, 768}, {256, 600}} {
		ndc := core.ScreenToNDC(px[0], px[1], 1024, 768)
		bx, by := core.NDCToScreen(ndc, 1024, 768)
		fmt.Printf("  (%4.0f, %4.0f) -> NDC (%+.3f, %+.3f) -> (%4.0f, %4.0f)\n", px[0], px[1], ndc.X(), ndc.Y(), bx, by)
	}
	fmt.Println()

	// Test 3: a spin drag followed by coasting
	fmt.Println("Test 3: Spin drag and coast at 60 fps")
	const dt = 1.0 / 60
	picker := simulation.PickerFunc(func(mouse mgl64.Vec2, center mgl64.Vec3) bool {
		return mouse.Len() < 0.1
	})
	c := simulation.NewController(picker, simulation.Pose{Radius: 10}, simulation.DefaultTuning())

	c.Update(simulation.Input{MouseAvailable: true, Pressed: true}, dt)
	c.Update(simulation.Input{MouseAvailable: true, Mouse: mgl64.Vec2{0.05, 0.02}}, dt)
	c.Update(simulation.Input{MouseAvailable: true, Mouse: mgl64.Vec2{0.05, 0.02}, Released: true}, dt)

	frames := 0
	for c.Snapshot().MomentumMode != simulation.ModeNone && frames < 10000 {
		c.Update(simulation.Input{}, dt)
		frames++
	}
	s := c.Snapshot()
	fmt.Printf("  Coasted %d frames (%.2f s)\n", frames, float64(frames)*dt)
	fmt.Printf("  Final heading %.2f°, pitch %.2f°\n", s.Pose.Heading, s.Pose.Pitch)
	fmt.Printf("  Closed form: %.2f° of heading\n", 5+5*(1-math.Pow(0.95, float64(frames+1)))/(1-0.95))
}
