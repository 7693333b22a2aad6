package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ElevationMargin keeps the orbit away from the poles where azimuth degenerates
const ElevationMargin = 0.1

var (
	// MinElevation is the lowest allowed orbit elevation in radians
	MinElevation = -math.Pi/2 + ElevationMargin
	// MaxElevation is the highest allowed orbit elevation in radians
	MaxElevation = math.Pi/2 - ElevationMargin
)

// DegreesToRadians converts degrees to radians
func DegreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// RadiansToDegrees converts radians to degrees
func RadiansToDegrees(radians float64) float64 {
	return radians * 180.0 / math.Pi
}

// OrbitPosition converts orbit angles to a Cartesian position around the
// origin. Z is up and azimuth 0 points along +Y, so the camera at the origin
// looking down +Y sees a die at azimuth 0, elevation 0 straight ahead.
func OrbitPosition(radius, azimuth, elevation float64) mgl64.Vec3 {
	cosElev := math.Cos(elevation)

	return mgl64.Vec3{
		radius * cosElev * math.Sin(azimuth),
		radius * cosElev * math.Cos(azimuth),
		radius * math.Sin(elevation),
	}
}

// ClampElevation limits an elevation angle to [MinElevation, MaxElevation]
func ClampElevation(elevation float64) float64 {
	return mgl64.Clamp(elevation, MinElevation, MaxElevation)
}

// HPRMatrix builds a rotation from heading (about +Z), pitch (about +X) and
// roll (about +Y), all in degrees. Roll is applied first, heading last.
func HPRMatrix(heading, pitch, roll float64) mgl64.Mat4 {
	h := mgl64.HomogRotate3DZ(DegreesToRadians(heading))
	p := mgl64.HomogRotate3DX(DegreesToRadians(pitch))
	r := mgl64.HomogRotate3DY(DegreesToRadians(roll))
	return h.Mul4(p).Mul4(r)
}

// DieTransform is the model matrix of the die: posed by heading and pitch,
// then moved to its orbit position
func DieTransform(position mgl64.Vec3, heading, pitch float64) mgl64.Mat4 {
	t := mgl64.Translate3D(position.X(), position.Y(), position.Z())
	return t.Mul4(HPRMatrix(heading, pitch, 0))
}

// TransformPoint applies a homogeneous transform to a point
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, m)
}
