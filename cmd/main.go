package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	app "github.com/richinsley/goshaderdemos/app"
	assets "github.com/richinsley/goshaderdemos/assets"
	demo "github.com/richinsley/goshaderdemos/demo"
	glfwcontext "github.com/richinsley/goshaderdemos/glfwcontext"
	inputs "github.com/richinsley/goshaderdemos/inputs"
	options "github.com/richinsley/goshaderdemos/options"
	remote "github.com/richinsley/goshaderdemos/remote"
	renderer "github.com/richinsley/goshaderdemos/renderer"
)

func init() {
	runtime.LockOSThread()
}

func loadTexture(ctx context.Context, r *renderer.Renderer, loader *assets.Loader, ref string) {
	data, err := loader.Fetch(ctx, ref)
	if err == nil {
		img, decodeErr := renderer.DecodeImage(data)
		if decodeErr == nil {
			if err = r.SetTexture(img); err == nil {
				log.Printf("Loaded texture %s", ref)
				return
			}
		} else {
			err = decodeErr
		}
	}
	log.Printf("Warning: could not load texture %s, using placeholder: %v", ref, err)
	if err := r.SetTexture(renderer.PlaceholderImage()); err != nil {
		log.Printf("Error creating placeholder texture: %v", err)
	}
}

// resolveSources returns the vertex, fragment and texture references for a
// variant. Its own paths are relative to the shader root; overrides given
// on the command line are used as is.
func resolveSources(variant demo.Variant, opts *options.DemoOptions) (vertexRef, fragmentRef, textureRef string) {
	root := *opts.ShaderRoot
	vertexRef = assets.Resolve(root, variant.Vertex)
	if *opts.Vertex != "" {
		vertexRef = *opts.Vertex
	}
	fragmentRef = assets.Resolve(root, variant.Fragment)
	if *opts.Fragment != "" {
		fragmentRef = *opts.Fragment
	}
	if variant.Texture != "" {
		textureRef = assets.Resolve(root, variant.Texture)
	}
	if *opts.Texture != "" {
		textureRef = *opts.Texture
	}
	return
}

// exitError drops the error of an interrupted run, which is a normal way to quit.
func exitError(err error) error {
	if errors.Is(err, context.Canceled) {
		log.Println("Interrupted, shutting down")
		return nil
	}
	return err
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// stopRemote shuts the remote input server down within timeout. Failures are
// logged and returned.
func stopRemote(srv shutdowner, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Warning: remote input server shutdown: %v", err)
		return err
	}
	return nil
}

func runDemo(variant demo.Variant, opts *options.DemoOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("failed to initialize graphics: %w", err)
	}
	defer glfwcontext.TerminateGraphics()

	events := inputs.NewQueue()
	// If recording, the window will be hidden (headless mode)
	surface, err := glfwcontext.New(opts, !*opts.Record, events)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer surface.Shutdown()
	surface.MakeCurrent()

	r, err := renderer.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer r.Shutdown()

	loader, err := assets.NewLoader(!*opts.NoCache)
	if err != nil {
		return err
	}

	vertexRef, fragmentRef, textureRef := resolveSources(variant, opts)
	if textureRef != "" {
		loadTexture(ctx, r, loader, textureRef)
	}

	width, height := surface.GetFramebufferSize()
	if *opts.Record {
		width, height = *opts.Width, *opts.Height
	}
	state := inputs.NewState(variant.Features, width, height)
	surface.SetTitle(variant.WindowTitle(state.Selection.Label()))
	state.OnSelect = func(label string) {
		surface.SetTitle(variant.WindowTitle(label))
	}

	driver := &app.Driver{
		Surface: surface,
		Scene:   r,
		State:   state,
		Events:  events,
		Sources: app.LoadSources(ctx, loader, vertexRef, fragmentRef),
	}

	if *opts.RemoteAddr != "" {
		srv := remote.NewServer(*opts.RemoteAddr, events)
		if _, err := srv.Start(); err != nil {
			return err
		}
		defer stopRemote(srv, 2*time.Second)
	}

	if !*opts.Record {
		log.Println("Starting interactive render loop...")
		return driver.Run(ctx)
	}

	offscreen, err := renderer.NewOffscreen(width, height)
	if err != nil {
		return fmt.Errorf("failed to create offscreen target: %w", err)
	}
	defer offscreen.Destroy()
	r.SetOffscreen(offscreen)

	rec := renderer.NewRecorder(opts, offscreen)
	driver.Clock = app.FixedClock{FPS: *opts.FPS}
	driver.MaxFrames = int(*opts.Duration * float64(*opts.FPS))
	driver.AfterFrame = rec.Capture

	log.Printf("Recording %d frames at %dx%d...", driver.MaxFrames, width, height)
	runErr := driver.Run(ctx)
	if err := rec.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr == nil {
		log.Printf("Successfully rendered to %s", *opts.OutputFile)
	}
	return runErr
}

func main() {
	defaultRoot := os.Getenv("GOSHADERDEMOS_SHADERS")
	if defaultRoot == "" {
		defaultRoot = "."
	}

	opts := &options.DemoOptions{
		Demo:       flag.String("demo", "lavalamp", "Demo to run ("+strings.Join(demo.Names(), ", ")+")"),
		ShaderRoot: flag.String("shaders", defaultRoot, "Directory or base URL holding shaders/ and imgs/ (from GOSHADERDEMOS_SHADERS env var if not set)"),
		Vertex:     flag.String("vertex", "", "Vertex shader file or URL, overriding the demo's"),
		Fragment:   flag.String("fragment", "", "Fragment shader file or URL, overriding the demo's"),
		Texture:    flag.String("texture", "", "Matcap image file or URL, overriding the demo's"),
		Help:       flag.Bool("help", false, "Show help message"),
		Width:      flag.Int("width", 1280, "Width of the window or output"),
		Height:     flag.Int("height", 720, "Height of the window or output"),
		NoCache:    flag.Bool("nocache", false, "Disable caching of remote assets"),

		// Recording flags
		Record:     flag.Bool("record", false, "Enable recording mode"),
		Duration:   flag.Float64("duration", 10.0, "Duration to record in seconds"),
		FPS:        flag.Int("fps", 60, "Frames per second for recording"),
		OutputFile: flag.String("output", "output.mp4", "Output file name for recording"),
		FFMPEGPath: flag.String("ffmpeg", "", "Path to ffmpeg executable"),
		Codec:      flag.String("codec", "h264", "Video codec for recording (h264, hevc)"),

		RemoteAddr: flag.String("remote", "", "Listen address for remote websocket input, e.g. :8090"),
	}
	flag.Parse()

	if *opts.Help {
		fmt.Println("GLSL Shader Demo Viewer/Recorder")
		flag.PrintDefaults()
		return
	}

	variant, err := demo.Lookup(*opts.Demo)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	if *opts.Record && (*opts.FPS <= 0 || *opts.Duration <= 0) {
		log.Fatalf("Error: -fps and -duration must be positive when recording")
	}
	log.Printf("Running demo: %s", variant.Title)

	if err := exitError(runDemo(variant, opts)); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
