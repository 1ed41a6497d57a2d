package inputs

import "github.com/go-gl/mathgl/mgl32"

const (
	RotateSensitivity = 0.01
	PanSensitivity    = 0.002
	ScrollSensitivity = 0.002
)

// OrbitMode is the drag state of the orbit controller.
type OrbitMode int

const (
	Idle OrbitMode = iota
	Rotating
	Panning
)

func (m OrbitMode) String() string {
	switch m {
	case Rotating:
		return "rotating"
	case Panning:
		return "panning"
	default:
		return "idle"
	}
}

// Orbit turns pointer drags into accumulated rotation and camera offsets.
// Left and middle drags rotate, right drags pan, and the wheel zooms in any
// mode. Values are never clamped.
type Orbit struct {
	mode      OrbitMode
	rotationX float64
	rotationY float64
	offset    [3]float64
	lastX     float64
	lastY     float64
}

func (o *Orbit) Mode() OrbitMode {
	return o.mode
}

// Press starts a drag. A pan press does not interrupt a rotation in
// progress. Every press, bound or not, re-anchors the drag position.
func (o *Orbit) Press(button Button, x, y float64) {
	switch button {
	case ButtonLeft, ButtonMiddle:
		o.mode = Rotating
	case ButtonRight:
		if o.mode != Rotating {
			o.mode = Panning
		}
	}
	o.lastX = x
	o.lastY = y
}

// Release ends any drag.
func (o *Orbit) Release() {
	o.mode = Idle
}

// Move applies the delta since the last anchored position. While idle the
// anchor is left untouched.
func (o *Orbit) Move(x, y float64) {
	dx := x - o.lastX
	dy := y - o.lastY
	switch o.mode {
	case Rotating:
		o.rotationX += dy * RotateSensitivity
		o.rotationY += dx * RotateSensitivity
	case Panning:
		o.offset[0] -= dx * PanSensitivity
		o.offset[1] += dy * PanSensitivity
	default:
		return
	}
	o.lastX = x
	o.lastY = y
}

// Wheel moves the camera along z by deltaY pixels.
func (o *Orbit) Wheel(deltaY float64) {
	o.offset[2] += deltaY * ScrollSensitivity
}

// Rotation returns the accumulated rotation in radians.
func (o *Orbit) Rotation() (x, y float64) {
	return o.rotationX, o.rotationY
}

// Offset returns the accumulated camera translation.
func (o *Orbit) Offset() mgl32.Vec3 {
	return mgl32.Vec3{float32(o.offset[0]), float32(o.offset[1]), float32(o.offset[2])}
}
