package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestOrbitPosition(t *testing.T) {
	tests := []struct {
		name      string
		azimuth   float64
		elevation float64
		want      mgl64.Vec3
	}{
		{"ahead", 0, 0, mgl64.Vec3{0, 10, 0}},
		{"right", math.Pi / 2, 0, mgl64.Vec3{10, 0, 0}},
		{"behind", math.Pi, 0, mgl64.Vec3{0, -10, 0}},
		{"left", -math.Pi / 2, 0, mgl64.Vec3{-10, 0, 0}},
		{"above", 0, math.Pi / 2, mgl64.Vec3{0, 0, 10}},
		{"45 up ahead", 0, math.Pi / 4, mgl64.Vec3{0, 10 * math.Sqrt2 / 2, 10 * math.Sqrt2 / 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := OrbitPosition(10, tc.azimuth, tc.elevation)
			for i := 0; i < 3; i++ {
				assert.InDelta(t, tc.want[i], got[i], 1e-9, "component %d", i)
			}
			assert.InDelta(t, 10.0, got.Len(), 1e-9)
		})
	}
}

func TestClampElevation(t *testing.T) {
	assert.Equal(t, 0.3, ClampElevation(0.3))
	assert.Equal(t, MaxElevation, ClampElevation(math.Pi))
	assert.Equal(t, MinElevation, ClampElevation(-math.Pi))
	assert.InDelta(t, math.Pi/2-0.1, MaxElevation, 1e-12)
	assert.InDelta(t, -math.Pi/2+0.1, MinElevation, 1e-12)

	rng := rand.New(rand.NewSource(7))
	e := 0.0
	for i := 0; i < 1000; i++ {
		e = ClampElevation(e + (rng.Float64()-0.5)*2)
		assert.GreaterOrEqual(t, e, MinElevation)
		assert.LessOrEqual(t, e, MaxElevation)
	}
}

func TestHPRMatrix(t *testing.T) {
	// heading turns +Y toward -X (counter-clockwise seen from above)
	got := TransformPoint(HPRMatrix(90, 0, 0), mgl64.Vec3{0, 1, 0})
	assert.InDelta(t, -1.0, got.X(), 1e-9)
	assert.InDelta(t, 0.0, got.Y(), 1e-9)

	// pitch tilts +Y up toward +Z
	got = TransformPoint(HPRMatrix(0, 90, 0), mgl64.Vec3{0, 1, 0})
	assert.InDelta(t, 1.0, got.Z(), 1e-9)

	// roll leaves +Y alone
	got = TransformPoint(HPRMatrix(0, 0, 45), mgl64.Vec3{0, 1, 0})
	assert.InDelta(t, 1.0, got.Y(), 1e-9)
}

func TestDieTransformMovesCenterToOrbit(t *testing.T) {
	pos := OrbitPosition(10, 0.4, -0.2)
	m := DieTransform(pos, 33, -12)

	center := TransformPoint(m, mgl64.Vec3{})
	assert.True(t, center.ApproxEqualThreshold(pos, 1e-9))

	// rotation keeps vertices at their distance from the center
	for _, v := range IcosahedronVertices(DefaultDieScale) {
		moved := TransformPoint(m, v)
		assert.InDelta(t, v.Len(), moved.Sub(pos).Len(), 1e-9)
	}
}

func TestAngleConversions(t *testing.T) {
	assert.InDelta(t, math.Pi, DegreesToRadians(180), 1e-12)
	assert.InDelta(t, 90.0, RadiansToDegrees(math.Pi/2), 1e-12)
}
