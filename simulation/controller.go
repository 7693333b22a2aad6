package simulation

import (
	"github.com/go-gl/mathgl/mgl64"

	"dieviewer/core"
	"dieviewer/physics"
)

// DragMode says what a mouse drag manipulates
type DragMode int

const (
	ModeNone  DragMode = iota
	ModeSpin           // rotate the die about its own center
	ModeOrbit          // move the die around the camera
)

func (m DragMode) String() string {
	switch m {
	case ModeSpin:
		return "spin"
	case ModeOrbit:
		return "orbit"
	default:
		return "none"
	}
}

// Input is the mouse state sampled once per frame. Mouse is in normalized
// device coordinates: x right, y up, both in [-1, 1].
type Input struct {
	MouseAvailable bool
	Mouse          mgl64.Vec2
	Pressed        bool // left button went down this frame
	Released       bool // left button went up this frame
}

// Keys are the hotkeys pressed this frame
type Keys struct {
	Reset     bool
	ToggleHUD bool
}

// Picker decides whether the ray through a mouse position hits the die
type Picker interface {
	PickDie(mouse mgl64.Vec2, center mgl64.Vec3) bool
}

// PickerFunc adapts a function to the Picker interface
type PickerFunc func(mouse mgl64.Vec2, center mgl64.Vec3) bool

// PickDie calls f
func (f PickerFunc) PickDie(mouse mgl64.Vec2, center mgl64.Vec3) bool {
	return f(mouse, center)
}

// Tuning holds the live-adjustable interaction parameters
type Tuning struct {
	SpinSensitivity    float64 // degrees per normalized mouse unit
	OrbitSensitivity   float64 // radians per normalized mouse unit
	Friction           float64
	SpinStopThreshold  float64 // degrees/s
	OrbitStopThreshold float64 // radians/s
	ResetFrequency     float64
	ResetDamping       float64
}

// DefaultTuning returns the stock interaction parameters
func DefaultTuning() Tuning {
	return Tuning{
		SpinSensitivity:    100,
		OrbitSensitivity:   2,
		Friction:           physics.DefaultFriction,
		SpinStopThreshold:  physics.SpinStopThreshold,
		OrbitStopThreshold: physics.OrbitStopThreshold,
		ResetFrequency:     6,
		ResetDamping:       1,
	}
}

// Pose is where the die sits and how it is turned
type Pose struct {
	Radius    float64
	Azimuth   float64 // radians
	Elevation float64 // radians, always within core.MinElevation..core.MaxElevation
	Heading   float64 // degrees
	Pitch     float64 // degrees
}

// Position is the die center in world space
func (p Pose) Position() mgl64.Vec3 {
	return core.OrbitPosition(p.Radius, p.Azimuth, p.Elevation)
}

// Transform is the die model matrix
func (p Pose) Transform() mgl64.Mat4 {
	return core.DieTransform(p.Position(), p.Heading, p.Pitch)
}

// State is a read-only copy of everything the controller tracks
type State struct {
	Pose          Pose
	Dragging      bool
	Mode          DragMode
	MomentumMode  DragMode
	SpinVelocity  mgl64.Vec2 // heading/pitch rate, degrees/s
	OrbitVelocity mgl64.Vec2 // azimuth/elevation rate, radians/s
	Resetting     bool
}

// Controller is the drag and momentum state machine for the die. It is not
// safe for concurrent use; the render loop owns it.
type Controller struct {
	picker Picker
	tuning Tuning
	home   Pose

	pose      Pose
	dragging  bool
	mode      DragMode
	lastMouse mgl64.Vec2

	momentumMode DragMode
	spin         physics.Momentum
	orbit        physics.Momentum

	reset *physics.ResetAnimation
}

// NewController creates a controller with the die resting at home
func NewController(picker Picker, home Pose, tuning Tuning) *Controller {
	home.Elevation = core.ClampElevation(home.Elevation)
	c := &Controller{
		picker: picker,
		home:   home,
		pose:   home,
		reset:  physics.NewResetAnimation(tuning.ResetFrequency, tuning.ResetDamping),
	}
	c.Tune(tuning)
	return c
}

// Tune swaps in new interaction parameters without disturbing the current motion
func (c *Controller) Tune(t Tuning) {
	c.tuning = t
	c.spin.Friction, c.spin.Threshold = t.Friction, t.SpinStopThreshold
	c.orbit.Friction, c.orbit.Threshold = t.Friction, t.OrbitStopThreshold
	c.reset.SetParams(t.ResetFrequency, t.ResetDamping)
}

// Tuning returns the parameters in effect
func (c *Controller) Tuning() Tuning {
	return c.tuning
}

// Update advances the machine by one frame
func (c *Controller) Update(in Input, dt float64) {
	if in.MouseAvailable && in.Pressed && !c.dragging {
		c.beginDrag(in.Mouse)
	}

	// release is honored even off-window so a drag cannot get stuck
	if in.Released && c.dragging {
		c.dragging = false
		c.momentumMode = c.mode
	}

	if c.dragging {
		if in.MouseAvailable {
			c.drag(in.Mouse, dt)
		}
		return
	}
	if c.reset.Active() {
		c.stepReset(dt)
		return
	}
	c.coast(dt)
}

func (c *Controller) beginDrag(mouse mgl64.Vec2) {
	c.dragging = true
	c.mode = ModeOrbit
	if c.picker != nil && c.picker.PickDie(mouse, c.pose.Position()) {
		c.mode = ModeSpin
	}
	c.lastMouse = mouse
	c.spin.Clear()
	c.orbit.Clear()
	c.momentumMode = ModeNone
	c.reset.Cancel()
}

func (c *Controller) drag(mouse mgl64.Vec2, dt float64) {
	delta := mouse.Sub(c.lastMouse)
	c.lastMouse = mouse

	switch c.mode {
	case ModeSpin:
		inc := mgl64.Vec2{delta.X() * c.tuning.SpinSensitivity, -delta.Y() * c.tuning.SpinSensitivity}
		c.pose.Heading += inc.X()
		c.pose.Pitch += inc.Y()
		c.spin.Record(inc, dt)
	case ModeOrbit:
		inc := mgl64.Vec2{delta.X() * c.tuning.OrbitSensitivity, delta.Y() * c.tuning.OrbitSensitivity}
		c.pose.Azimuth += inc.X()
		c.pose.Elevation = core.ClampElevation(c.pose.Elevation + inc.Y())
		c.orbit.Record(inc, dt)
	}
}

func (c *Controller) coast(dt float64) {
	switch c.momentumMode {
	case ModeSpin:
		d, moving := c.spin.Step(dt)
		c.pose.Heading += d.X()
		c.pose.Pitch += d.Y()
		if !moving {
			c.momentumMode = ModeNone
		}
	case ModeOrbit:
		d, moving := c.orbit.Step(dt)
		c.pose.Azimuth += d.X()
		c.pose.Elevation = core.ClampElevation(c.pose.Elevation + d.Y())
		if !moving {
			c.momentumMode = ModeNone
		}
	}
}

// Reset animates the die back to its home pose. Momentum is dropped; a new
// drag cancels the animation. Ignored while dragging.
func (c *Controller) Reset() {
	if c.dragging {
		return
	}
	c.spin.Clear()
	c.orbit.Clear()
	c.momentumMode = ModeNone

	// take the short way round
	c.pose.Heading = physics.WrapDegrees(c.pose.Heading)
	c.pose.Pitch = physics.WrapDegrees(c.pose.Pitch)
	c.pose.Azimuth = c.home.Azimuth + physics.WrapRadians(c.pose.Azimuth-c.home.Azimuth)

	c.reset.Start(
		[]float64{c.pose.Heading, c.pose.Pitch, c.pose.Azimuth, c.pose.Elevation},
		[]float64{c.home.Heading, c.home.Pitch, c.home.Azimuth, c.home.Elevation},
	)
}

func (c *Controller) stepReset(dt float64) {
	v := c.reset.Step(dt)
	c.pose.Heading, c.pose.Pitch, c.pose.Azimuth = v[0], v[1], v[2]
	c.pose.Elevation = core.ClampElevation(v[3])
}

// Nudge adds a spin impulse (degrees/s) and lets the die coast. Ignored while
// dragging.
func (c *Controller) Nudge(yawRate, pitchRate float64) {
	if c.dragging {
		return
	}
	c.reset.Cancel()
	if c.momentumMode != ModeSpin {
		c.orbit.Clear()
	}
	c.spin.Add(mgl64.Vec2{yawRate, pitchRate})
	c.momentumMode = ModeSpin
}

// Snapshot copies the current state
func (c *Controller) Snapshot() State {
	return State{
		Pose:          c.pose,
		Dragging:      c.dragging,
		Mode:          c.mode,
		MomentumMode:  c.momentumMode,
		SpinVelocity:  c.spin.Velocity,
		OrbitVelocity: c.orbit.Velocity,
		Resetting:     c.reset.Active(),
	}
}
