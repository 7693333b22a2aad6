package raylib

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"dieviewer/core"
)

// PickDie casts a ray from the camera through the mouse position and tests
// it against the die's bounding sphere. Mouse is in normalized device
// coordinates.
func (r *Renderer) PickDie(mouse mgl64.Vec2, center mgl64.Vec3) bool {
	px, py := core.NDCToScreen(mouse, rl.GetScreenWidth(), rl.GetScreenHeight())

	ray := rl.GetScreenToWorldRay(rl.NewVector2(float32(px), float32(py)), r.camera)
	hit := rl.GetRayCollisionSphere(ray, toVector3(center), r.pickRadius)
	return hit.Hit
}
