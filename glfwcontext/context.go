package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	inputs "github.com/richinsley/goshaderdemos/inputs"
	options "github.com/richinsley/goshaderdemos/options"
)

// wheelPixelsPerLine converts one GLFW scroll step into the pixel delta a
// browser reports for one wheel notch.
const wheelPixelsPerLine = 100

// Context owns the GLFW window and turns its callbacks into input events.
type Context struct {
	window *glfw.Window
	events *inputs.Queue
	// A map to store functions to be called on key presses.
	keyCallbacks map[glfw.Key]func()
}

// New creates and initializes a new GLFW window and returns a Context object.
// Input from the window is pushed onto events.
func New(options *options.DemoOptions, visible bool, events *inputs.Queue) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(*options.Width, *options.Height, "goshaderdemos", nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:       win,
		events:       events,
		keyCallbacks: make(map[glfw.Key]func()),
	}

	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetCursorPosCallback(c.glfwCursorPosCallback)
	win.SetMouseButtonCallback(c.glfwMouseButtonCallback)
	win.SetScrollCallback(c.glfwScrollCallback)
	// Framebuffer size rather than window size so HiDPI displays report pixels.
	win.SetFramebufferSizeCallback(c.glfwFramebufferSizeCallback)

	for key, label := range selectionKeys() {
		label := label
		c.RegisterKeyCallback(key, func() {
			events.Push(inputs.SelectEvent(label))
		})
	}

	return c, nil
}

// RegisterKeyCallback allows the main application to register a function to be
// called when a specific key is pressed.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}

	if action == glfw.Press {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

// toPixels scales window coordinates to framebuffer pixels.
func (c *Context) toPixels(x, y float64) (float64, float64) {
	fbWidth, fbHeight := c.window.GetFramebufferSize()
	winWidth, winHeight := c.window.GetSize()
	if winWidth > 0 && winHeight > 0 {
		x *= float64(fbWidth) / float64(winWidth)
		y *= float64(fbHeight) / float64(winHeight)
	}
	return x, y
}

func (c *Context) glfwCursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	x, y := c.toPixels(xpos, ypos)
	c.events.Push(inputs.MoveEvent(x, y))
}

// selectionKeys binds the number keys 1..5 to the selection labels in order.
func selectionKeys() map[glfw.Key]string {
	keys := make(map[glfw.Key]string)
	for i, label := range inputs.SelectionLabels() {
		keys[glfw.Key1+glfw.Key(i)] = label
	}
	return keys
}

// wheelDelta converts a GLFW scroll offset to a browser wheel deltaY.
// GLFW reports scrolling away from the user as positive.
func wheelDelta(yoff float64) float64 {
	return -yoff * wheelPixelsPerLine
}

// buttonCode maps GLFW button numbers (left, right, middle) to browser
// numbering (left, middle, right).
func buttonCode(b glfw.MouseButton) inputs.Button {
	switch b {
	case glfw.MouseButtonLeft:
		return inputs.ButtonLeft
	case glfw.MouseButtonMiddle:
		return inputs.ButtonMiddle
	case glfw.MouseButtonRight:
		return inputs.ButtonRight
	default:
		return inputs.Button(b)
	}
}

func (c *Context) glfwMouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	x, y := c.toPixels(w.GetCursorPos())
	switch action {
	case glfw.Press:
		c.events.Push(inputs.DownEvent(buttonCode(button), x, y))
	case glfw.Release:
		c.events.Push(inputs.UpEvent(buttonCode(button), x, y))
	}
}

func (c *Context) glfwScrollCallback(w *glfw.Window, xoff, yoff float64) {
	c.events.Push(inputs.WheelEvent(wheelDelta(yoff)))
}

func (c *Context) glfwFramebufferSizeCallback(w *glfw.Window, width, height int) {
	c.events.Push(inputs.ResizeEvent(width, height))
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// Shutdown only destroys the window.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

func (c *Context) SetTitle(title string) {
	c.window.SetTitle(title)
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
