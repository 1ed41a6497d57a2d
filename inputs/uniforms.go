package inputs

import "github.com/go-gl/mathgl/mgl32"

// Uniform names expected by the demo shaders.
const (
	UniformResolution     = "resolution"
	UniformTime           = "time"
	UniformMouse          = "mouse"
	UniformRotationX      = "u_rotationX"
	UniformRotationY      = "u_rotationY"
	UniformCameraAdjPos   = "cameraAdjPos"
	UniformDropdownSelect = "dropdownSelect"
	UniformMatcap         = "matcap"
)

// Uniforms holds the per-frame values pushed into the shader program.
type Uniforms struct {
	Resolution     mgl32.Vec4
	Time           float32
	Mouse          mgl32.Vec2
	RotationX      float32
	RotationY      float32
	CameraAdjPos   mgl32.Vec3
	DropdownSelect int32
}
