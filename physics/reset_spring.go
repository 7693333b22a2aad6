package physics

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// settleEpsilon is how close position and velocity must get before an axis snaps
const settleEpsilon = 1e-3

// springAxis is one animated value with its spring velocity
type springAxis struct {
	pos, vel, target float64
}

// ResetAnimation drives a set of values back to their targets with critically
// damped springs. The frame time varies, so the spring coefficients are
// rebuilt for every step.
type ResetAnimation struct {
	axes      []springAxis
	frequency float64
	damping   float64
	active    bool
}

// NewResetAnimation creates an idle animation. Frequency is the spring angular
// frequency; damping 1 is critically damped (no overshoot).
func NewResetAnimation(frequency, damping float64) *ResetAnimation {
	return &ResetAnimation{frequency: frequency, damping: damping}
}

// Start begins animating from the given positions toward the targets
func (a *ResetAnimation) Start(from, to []float64) {
	a.axes = make([]springAxis, len(from))
	for i := range from {
		a.axes[i] = springAxis{pos: from[i], target: to[i]}
	}
	a.active = true
}

// Cancel stops the animation where it is
func (a *ResetAnimation) Cancel() {
	a.active = false
}

// Active reports whether the animation still has work to do
func (a *ResetAnimation) Active() bool {
	return a.active
}

// SetParams changes frequency and damping for subsequent steps
func (a *ResetAnimation) SetParams(frequency, damping float64) {
	a.frequency = frequency
	a.damping = damping
}

// Step advances every axis by dt seconds and returns the new positions.
// When all axes have settled they snap onto their targets and the animation
// becomes inactive.
func (a *ResetAnimation) Step(dt float64) []float64 {
	out := make([]float64, len(a.axes))
	if !a.active || dt <= 0 {
		for i, ax := range a.axes {
			out[i] = ax.pos
		}
		return out
	}

	spring := harmonica.NewSpring(dt, a.frequency, a.damping)
	settled := true
	for i := range a.axes {
		ax := &a.axes[i]
		ax.pos, ax.vel = spring.Update(ax.pos, ax.vel, ax.target)
		if math.Abs(ax.pos-ax.target) > settleEpsilon || math.Abs(ax.vel) > settleEpsilon {
			settled = false
		}
	}

	for i := range a.axes {
		if settled {
			a.axes[i].pos = a.axes[i].target
			a.axes[i].vel = 0
		}
		out[i] = a.axes[i].pos
	}
	if settled {
		a.active = false
	}
	return out
}

// WrapDegrees maps an angle into (-180, 180]
func WrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}

// WrapRadians maps an angle into (-pi, pi]
func WrapRadians(rad float64) float64 {
	rad = math.Mod(rad, 2*math.Pi)
	if rad > math.Pi {
		rad -= 2 * math.Pi
	} else if rad <= -math.Pi {
		rad += 2 * math.Pi
	}
	return rad
}
