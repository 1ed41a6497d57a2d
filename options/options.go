package options

type DemoOptions struct {
	Demo       *string
	ShaderRoot *string // Directory or base URL the demo's relative asset paths resolve against
	Vertex     *string // Overrides the demo's vertex shader source
	Fragment   *string // Overrides the demo's fragment shader source
	Texture    *string // Overrides the demo's matcap image
	Help       *bool
	Width      *int
	Height     *int
	NoCache    *bool
	// Recording options
	Record     *bool
	Duration   *float64
	FPS        *int
	OutputFile *string
	FFMPEGPath *string
	Codec      *string
	// Remote input options
	RemoteAddr *string
}
