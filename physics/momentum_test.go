package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMomentumRecord(t *testing.T) {
	m := NewMomentum(DefaultFriction, SpinStopThreshold)

	m.Record(mgl64.Vec2{2, -1}, 0.5)
	assert.Equal(t, mgl64.Vec2{4, -2}, m.Velocity)

	// zero dt keeps the last velocity
	m.Record(mgl64.Vec2{100, 100}, 0)
	assert.Equal(t, mgl64.Vec2{4, -2}, m.Velocity)
}

func TestMomentumStepAppliesFrictionPerFrame(t *testing.T) {
	m := NewMomentum(0.95, 0.1)
	m.Velocity = mgl64.Vec2{100, 0}

	d, moving := m.Step(0.02)
	assert.True(t, moving)
	assert.InDelta(t, 2.0, d[0], 1e-12)
	assert.InDelta(t, 95.0, m.Velocity[0], 1e-12)

	d, _ = m.Step(0.02)
	assert.InDelta(t, 1.9, d[0], 1e-12)
	assert.InDelta(t, 90.25, m.Velocity[0], 1e-12)
}

func TestMomentumDecaysToZero(t *testing.T) {
	tests := []struct {
		name      string
		start     mgl64.Vec2
		friction  float64
		threshold float64
	}{
		{"spin", mgl64.Vec2{250, -80}, DefaultFriction, SpinStopThreshold},
		{"orbit", mgl64.Vec2{3, 1.5}, DefaultFriction, OrbitStopThreshold},
		{"tiny", mgl64.Vec2{1e-9, 0}, DefaultFriction, OrbitStopThreshold},
		{"heavy friction", mgl64.Vec2{1e6, 1e6}, 0.1, SpinStopThreshold},
		{"light friction", mgl64.Vec2{5, 5}, 0.999, OrbitStopThreshold},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMomentum(tc.friction, tc.threshold)
			m.Velocity = tc.start

			prev := m.Speed()
			steps := 0
			for moving := true; moving; steps++ {
				require.Less(t, steps, 100000, "momentum never stopped")
				_, moving = m.Step(1.0 / 60)
				assert.LessOrEqual(t, m.Speed(), prev)
				prev = m.Speed()
			}

			assert.True(t, m.Stopped())
			want := int(math.Ceil(math.Log(tc.threshold/tc.start.Len()) / math.Log(tc.friction)))
			if want < 1 {
				want = 1
			}
			assert.InDelta(t, want, steps, 1)
		})
	}
}

func TestMomentumAddAndClear(t *testing.T) {
	m := NewMomentum(DefaultFriction, SpinStopThreshold)
	m.Add(mgl64.Vec2{1, 2})
	m.Add(mgl64.Vec2{1, 2})
	assert.Equal(t, mgl64.Vec2{2, 4}, m.Velocity)
	assert.False(t, m.Stopped())

	m.Clear()
	assert.True(t, m.Stopped())
}
