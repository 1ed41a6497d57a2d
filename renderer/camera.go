package renderer

import "github.com/go-gl/mathgl/mgl32"

// The demos look at a 2x2 plane through an orthographic camera one unit
// across, so the plane overfills the viewport and the fragment shader alone
// decides what is drawn.
const (
	frustumSize = 1.0
	cameraNear  = -1000.0
	cameraFar   = 1000.0
	cameraZ     = 2.0
)

type camera struct {
	projection mgl32.Mat4
	view       mgl32.Mat4
	model      mgl32.Mat4
	position   mgl32.Vec3
}

func newCamera() camera {
	half := float32(frustumSize / 2)
	return camera{
		projection: mgl32.Ortho(-half, half, -half, half, cameraNear, cameraFar),
		view:       mgl32.Translate3D(0, 0, -cameraZ),
		model:      mgl32.Ident4(),
		position:   mgl32.Vec3{0, 0, cameraZ},
	}
}

func (c camera) modelView() mgl32.Mat4 {
	return c.view.Mul4(c.model)
}

func (c camera) normalMatrix() mgl32.Mat3 {
	return c.modelView().Mat3().Inv().Transpose()
}

// planeVertices is a 2x2 plane facing +z: position, normal, uv.
var planeVertices = []float32{
	-1, 1, 0, 0, 0, 1, 0, 1,
	-1, -1, 0, 0, 0, 1, 0, 0,
	1, -1, 0, 0, 0, 1, 1, 0,
	-1, 1, 0, 0, 0, 1, 0, 1,
	1, -1, 0, 0, 0, 1, 1, 0,
	1, 1, 0, 0, 0, 1, 1, 1,
}

const (
	planeStride      = 8 * 4
	planeVertexCount = 6
)
