package renderer

import (
	"fmt"
	"image"
	"log"
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	assets "github.com/richinsley/goshaderdemos/assets"
	inputs "github.com/richinsley/goshaderdemos/inputs"
	shader "github.com/richinsley/goshaderdemos/shader"
)

// Ensures gl.Init() is called only once.
var glInitOnce sync.Once

// uniformNames lists every uniform the renderer knows how to feed. Names a
// program does not declare resolve to -1 and are skipped.
var uniformNames = []string{
	inputs.UniformResolution,
	inputs.UniformTime,
	inputs.UniformMouse,
	inputs.UniformRotationX,
	inputs.UniformRotationY,
	inputs.UniformCameraAdjPos,
	inputs.UniformDropdownSelect,
	inputs.UniformMatcap,
	"projectionMatrix",
	"modelViewMatrix",
	"modelMatrix",
	"viewMatrix",
	"normalMatrix",
	"cameraPosition",
	"isOrthographic",
}

// Renderer draws the demo plane with a single shader program.
type Renderer struct {
	quadVAO   uint32
	quadVBO   uint32
	program   uint32
	locs      map[string]int32
	camera    camera
	texture   *Texture
	offscreen *Offscreen
}

// NewRenderer initializes the OpenGL bindings for the current context and
// uploads the plane geometry.
func NewRenderer() (*Renderer, error) {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	log.Printf("OpenGL version: %s", gl.GoStr(gl.GetString(gl.VERSION)))

	r := &Renderer{
		locs:   make(map[string]int32),
		camera: newCamera(),
	}
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(planeVertices)*4, gl.Ptr(planeVertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return r, nil
}

// SetTexture uploads img as the matcap texture, replacing any previous one.
func (r *Renderer) SetTexture(img image.Image) error {
	tex, err := NewTexture(img)
	if err != nil {
		return fmt.Errorf("failed to create texture: %w", err)
	}
	if r.texture != nil {
		r.texture.Destroy()
	}
	r.texture = tex
	return nil
}

// SetOffscreen redirects rendering into an offscreen framebuffer. Passing
// nil renders to the window again.
func (r *Renderer) SetOffscreen(o *Offscreen) {
	r.offscreen = o
}

// Load builds the shader program from three.js-style sources. It must be
// called on the thread that owns the GL context.
func (r *Renderer) Load(src assets.ShaderSources) error {
	vs, err := shader.Translate(shader.Vertex, src.Vertex, false)
	if err != nil {
		return err
	}
	fs, err := shader.Translate(shader.Fragment, src.Fragment, false)
	if err != nil {
		return err
	}

	program, err := newProgram(vs.Code, fs.Code)
	if err != nil {
		return fmt.Errorf("failed to create shader program: %w", err)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
	r.program = program

	r.bindGeometry(vs)

	gl.UseProgram(r.program)
	for _, name := range uniformNames {
		mapped := fs.MappedName(name)
		if _, ok := fs.Variables[name]; !ok {
			mapped = vs.MappedName(name)
		}
		r.locs[name] = gl.GetUniformLocation(r.program, gl.Str(mapped+"\x00"))
	}
	gl.UseProgram(0)

	log.Printf("Successfully built shader program %d", r.program)
	return nil
}

// bindGeometry wires the plane attributes to the locations the linked
// program assigned to position, normal and uv.
func (r *Renderer) bindGeometry(vs *shader.Translated) {
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
	}
	gl.GenVertexArrays(1, &r.quadVAO)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)

	attribs := []struct {
		name   string
		size   int32
		offset int
	}{
		{shader.AttribPosition, 3, 0},
		{shader.AttribNormal, 3, 3 * 4},
		{shader.AttribUV, 2, 6 * 4},
	}
	for _, a := range attribs {
		loc := gl.GetAttribLocation(r.program, gl.Str(vs.MappedName(a.name)+"\x00"))
		if loc < 0 {
			continue
		}
		gl.EnableVertexAttribArray(uint32(loc))
		gl.VertexAttribPointer(uint32(loc), a.size, gl.FLOAT, false, planeStride, gl.PtrOffset(a.offset))
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// Render draws one frame. Until a program is loaded it only clears.
func (r *Renderer) Render(width, height int, u *inputs.Uniforms) {
	fbo := uint32(0)
	if r.offscreen != nil {
		fbo = r.offscreen.fbo
		width, height = r.offscreen.width, r.offscreen.height
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if r.program == 0 {
		return
	}

	gl.UseProgram(r.program)
	r.updateUniforms(u)
	if r.texture != nil {
		if loc := r.locs[inputs.UniformMatcap]; loc != -1 {
			gl.ActiveTexture(gl.TEXTURE0)
			gl.BindTexture(gl.TEXTURE_2D, r.texture.ID())
			gl.Uniform1i(loc, 0)
		}
	}
	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, planeVertexCount)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func uniformMat4(loc int32, m mgl32.Mat4) {
	if loc != -1 {
		gl.UniformMatrix4fv(loc, 1, false, &m[0])
	}
}

func (r *Renderer) updateUniforms(u *inputs.Uniforms) {
	if loc := r.locs[inputs.UniformResolution]; loc != -1 {
		gl.Uniform4f(loc, u.Resolution[0], u.Resolution[1], u.Resolution[2], u.Resolution[3])
	}
	if loc := r.locs[inputs.UniformTime]; loc != -1 {
		gl.Uniform1f(loc, u.Time)
	}
	if loc := r.locs[inputs.UniformMouse]; loc != -1 {
		gl.Uniform2f(loc, u.Mouse[0], u.Mouse[1])
	}
	if loc := r.locs[inputs.UniformRotationX]; loc != -1 {
		gl.Uniform1f(loc, u.RotationX)
	}
	if loc := r.locs[inputs.UniformRotationY]; loc != -1 {
		gl.Uniform1f(loc, u.RotationY)
	}
	if loc := r.locs[inputs.UniformCameraAdjPos]; loc != -1 {
		gl.Uniform3f(loc, u.CameraAdjPos[0], u.CameraAdjPos[1], u.CameraAdjPos[2])
	}
	if loc := r.locs[inputs.UniformDropdownSelect]; loc != -1 {
		gl.Uniform1i(loc, u.DropdownSelect)
	}

	uniformMat4(r.locs["projectionMatrix"], r.camera.projection)
	uniformMat4(r.locs["modelViewMatrix"], r.camera.modelView())
	uniformMat4(r.locs["modelMatrix"], r.camera.model)
	uniformMat4(r.locs["viewMatrix"], r.camera.view)
	if loc := r.locs["normalMatrix"]; loc != -1 {
		n := r.camera.normalMatrix()
		gl.UniformMatrix3fv(loc, 1, false, &n[0])
	}
	if loc := r.locs["cameraPosition"]; loc != -1 {
		gl.Uniform3f(loc, r.camera.position[0], r.camera.position[1], r.camera.position[2])
	}
	if loc := r.locs["isOrthographic"]; loc != -1 {
		gl.Uniform1i(loc, 1)
	}
}

func (r *Renderer) Shutdown() {
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
	if r.texture != nil {
		r.texture.Destroy()
	}
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
	}
	gl.DeleteBuffers(1, &r.quadVBO)
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(sh, 1, csources, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(sh, logLength, nil, gl.Str(logText))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return sh, nil
}
