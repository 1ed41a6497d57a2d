package inputs

import "github.com/go-gl/mathgl/mgl32"

const pointerCenter = 0.5

// Pointer holds the cursor position normalised to roughly [-0.5, 0.5] on
// both axes, with y pointing up.
type Pointer struct {
	pos mgl32.Vec2
}

// Move overwrites the position from pixel coordinates on a surface of the
// given size.
func (p *Pointer) Move(x, y float64, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.pos = mgl32.Vec2{
		float32(x/float64(width) - pointerCenter),
		float32(-y/float64(height) + pointerCenter),
	}
}

func (p *Pointer) Position() mgl32.Vec2 {
	return p.pos
}
