package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultFriction is the per-frame velocity multiplier while coasting
	DefaultFriction = 0.95
	// SpinStopThreshold is the spin speed (degrees/s) below which coasting stops
	SpinStopThreshold = 0.1
	// OrbitStopThreshold is the orbit speed (radians/s) below which coasting stops
	OrbitStopThreshold = 0.001
)

// Momentum is a two-axis angular velocity that coasts down under friction
type Momentum struct {
	Velocity  mgl64.Vec2
	Friction  float64 // multiplier applied once per frame, in (0, 1)
	Threshold float64 // speed below which the motion is considered stopped
}

// NewMomentum creates a resting momentum with the given decay parameters
func NewMomentum(friction, threshold float64) Momentum {
	return Momentum{Friction: friction, Threshold: threshold}
}

// Speed is the magnitude of the velocity
func (m *Momentum) Speed() float64 {
	return m.Velocity.Len()
}

// Stopped reports whether the velocity is exactly zero
func (m *Momentum) Stopped() bool {
	return m.Velocity[0] == 0 && m.Velocity[1] == 0
}

// Record stores the instantaneous velocity of a drag increment. A non-positive
// dt leaves the previous velocity in place.
func (m *Momentum) Record(increment mgl64.Vec2, dt float64) {
	if dt <= 0 {
		return
	}
	m.Velocity = increment.Mul(1 / dt)
}

// Clear zeroes the velocity
func (m *Momentum) Clear() {
	m.Velocity = mgl64.Vec2{}
}

// Step returns the displacement to apply for this frame (velocity * dt), then
// applies friction. Once the speed falls below the threshold the velocity is
// zeroed and Step reports false.
func (m *Momentum) Step(dt float64) (mgl64.Vec2, bool) {
	displacement := m.Velocity.Mul(dt)

	m.Velocity = m.Velocity.Mul(m.Friction)
	if m.Speed() < m.Threshold {
		m.Clear()
		return displacement, false
	}
	return displacement, true
}

// Add accumulates an impulse onto the velocity
func (m *Momentum) Add(impulse mgl64.Vec2) {
	m.Velocity = m.Velocity.Add(impulse)
}
