package inputs

import "github.com/go-gl/mathgl/mgl32"

// imageAspect is the reference aspect ratio of the shader coordinate space.
const imageAspect = 1.0

// Viewport tracks the drawing surface size and the packed resolution uniform.
type Viewport struct {
	width      int
	height     int
	resolution mgl32.Vec4
}

func NewViewport(width, height int) *Viewport {
	v := &Viewport{}
	v.Resize(width, height)
	return v
}

// AspectCorrection returns the factors that map the viewport onto a unit
// square shader space regardless of its aspect ratio.
func AspectCorrection(width, height int) (a1, a2 float32) {
	w, h := float64(width), float64(height)
	if h/w > imageAspect {
		return float32((w / h) * imageAspect), 1
	}
	return 1, float32((h / w) / imageAspect)
}

// Resize recomputes the resolution uniform. Degenerate sizes, as reported
// for a minimised window, keep the previous value. It reports whether the
// viewport changed.
func (v *Viewport) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	a1, a2 := AspectCorrection(width, height)
	v.width = width
	v.height = height
	v.resolution = mgl32.Vec4{float32(width), float32(height), a1, a2}
	return true
}

func (v *Viewport) Size() (int, int) {
	return v.width, v.height
}

// Resolution returns (width, height, aspectX, aspectY).
func (v *Viewport) Resolution() mgl32.Vec4 {
	return v.resolution
}
