package raylib

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"dieviewer/config"
	"dieviewer/core"
	"dieviewer/simulation"
)

var (
	// EdgeColor is the overlay color of the die edges
	EdgeColor = rl.Red
	// DieColor is the unlit body color of the die
	DieColor = [3]uint8{240, 232, 210}
	// BackgroundColor clears the window every frame
	BackgroundColor = rl.NewColor(15, 18, 25, 255)
	// LightDirection is baked into the die faces at startup
	LightDirection = mgl64.Vec3{-0.4, 1.0, -0.6}
)

// Renderer owns the raylib window, the camera and the die's GPU resources.
// All methods must be called from the thread that created it.
type Renderer struct {
	camera   rl.Camera3D
	mesh     rl.Mesh
	material rl.Material
	buffers  core.MeshBuffers // CPU copy referenced by mesh
	solid    *core.Solid

	pickRadius float32

	hud     *Overlay
	showHUD bool
}

// NewRenderer opens the window and uploads the die
func NewRenderer(window config.WindowSettings, solid *core.Solid, pickRadius float64) (*Renderer, error) {
	if len(solid.Faces) == 0 {
		return nil, fmt.Errorf("die has no faces")
	}

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable) // must be before InitWindow
	rl.InitWindow(int32(window.Width), int32(window.Height), window.Title)
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("failed to open %dx%d window", window.Width, window.Height)
	}
	rl.SetTargetFPS(int32(window.TargetFPS))

	r := &Renderer{
		// camera sits at the origin looking down +Y with Z up
		camera: rl.Camera3D{
			Position:   rl.NewVector3(0, 0, 0),
			Target:     rl.NewVector3(0, 1, 0),
			Up:         rl.NewVector3(0, 0, 1),
			Fovy:       float32(window.Fovy),
			Projection: rl.CameraPerspective,
		},
		solid:      solid,
		pickRadius: float32(pickRadius),
		hud:        NewOverlay(),
		showHUD:    true,
	}
	r.uploadDie()

	slog.Info("renderer ready",
		"width", window.Width, "height", window.Height,
		"triangles", r.buffers.TriangleCount(), "edges", len(solid.Edges))
	return r, nil
}

// uploadDie converts the solid to a flat-shaded raylib mesh
func (r *Renderer) uploadDie() {
	r.buffers = core.FlatShadedBuffers(r.solid, LightDirection, DieColor)

	r.mesh = rl.Mesh{
		VertexCount:   int32(r.buffers.VertexCount()),
		TriangleCount: int32(r.buffers.TriangleCount()),
	}
	r.mesh.Vertices = &r.buffers.Vertices[0]
	r.mesh.Normals = &r.buffers.Normals[0]
	r.mesh.Colors = &r.buffers.Colors[0]

	rl.UploadMesh(&r.mesh, false)

	// vertex colors carry the baked lighting
	r.material = rl.LoadMaterialDefault()
}

// ShouldClose reports whether the user asked to close the window
func (r *Renderer) ShouldClose() bool {
	return rl.WindowShouldClose()
}

// FrameTime is the duration of the last frame in seconds
func (r *Renderer) FrameTime() float64 {
	return float64(rl.GetFrameTime())
}

// ToggleHUD shows or hides the text overlay
func (r *Renderer) ToggleHUD() {
	r.showHUD = !r.showHUD
}

// Draw renders one frame for the given controller state
func (r *Renderer) Draw(state simulation.State, telemetryClients int) {
	model := state.Pose.Transform()

	rl.BeginDrawing()
	rl.ClearBackground(BackgroundColor)

	rl.BeginMode3D(r.camera)
	rl.DrawMesh(r.mesh, r.material, toMatrix(model))
	for i := range r.solid.Edges {
		a, b := r.solid.EdgeSegment(i)
		rl.DrawLine3D(toVector3(core.TransformPoint(model, a)), toVector3(core.TransformPoint(model, b)), EdgeColor)
	}
	rl.EndMode3D()

	if r.showHUD {
		r.hud.Draw(state, telemetryClients)
	}

	rl.EndDrawing()
}

// Close releases GPU resources and closes the window
func (r *Renderer) Close() {
	// the CPU arrays belong to Go; keep raylib from freeing them
	r.mesh.Vertices = nil
	r.mesh.Normals = nil
	r.mesh.Colors = nil
	rl.UnloadMesh(&r.mesh)
	rl.UnloadMaterial(r.material)
	rl.CloseWindow()
}

func toVector3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

// toMatrix converts a column-major mgl64 matrix to raylib's layout. Both use
// the same element numbering: M12..M14 hold the translation.
func toMatrix(m mgl64.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: float32(m[0]), M1: float32(m[1]), M2: float32(m[2]), M3: float32(m[3]),
		M4: float32(m[4]), M5: float32(m[5]), M6: float32(m[6]), M7: float32(m[7]),
		M8: float32(m[8]), M9: float32(m[9]), M10: float32(m[10]), M11: float32(m[11]),
		M12: float32(m[12]), M13: float32(m[13]), M14: float32(m[14]), M15: float32(m[15]),
	}
}
