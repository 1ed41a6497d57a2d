package app

import (
	"context"
	"fmt"
	"log"

	assets "github.com/richinsley/goshaderdemos/assets"
	graphics "github.com/richinsley/goshaderdemos/graphics"
	inputs "github.com/richinsley/goshaderdemos/inputs"
)

// Scene is the render side of a demo. Both methods run on the thread that
// owns the GL context. Render is called every frame, also before Load has
// succeeded, and must then only clear the frame.
type Scene interface {
	Load(src assets.ShaderSources) error
	Render(width, height int, u *inputs.Uniforms)
}

// SourceResult is delivered once the shader sources have been fetched.
type SourceResult struct {
	Sources assets.ShaderSources
	Err     error
}

// Clock yields the seconds elapsed for a given frame.
type Clock interface {
	Elapsed(frame int) float64
}

// FixedClock advances by a constant step per frame, for recording.
type FixedClock struct {
	FPS int
}

func (c FixedClock) Elapsed(frame int) float64 {
	return float64(frame) / float64(c.FPS)
}

type surfaceClock struct {
	surface graphics.Context
	start   float64
}

func (c *surfaceClock) Elapsed(int) float64 {
	return c.surface.Time() - c.start
}

// Driver runs the per-frame loop: apply queued input, sample time, push
// uniforms, render, present.
type Driver struct {
	Surface graphics.Context
	Scene   Scene
	State   *inputs.State
	Events  *inputs.Queue
	// Sources delivers the shader program sources. Nothing is drawn until it
	// has produced a result.
	Sources <-chan SourceResult
	// Clock defaults to wall time since Run started.
	Clock Clock
	// MaxFrames stops the loop after that many rendered frames; zero runs
	// until the window closes.
	MaxFrames int
	// AfterFrame is called after each rendered frame, before it is presented.
	AfterFrame func(frame int) error
}

// Run drives frames until the window closes, ctx is cancelled, MaxFrames
// is reached, or loading fails.
func (d *Driver) Run(ctx context.Context) error {
	clock := d.Clock
	if clock == nil {
		clock = &surfaceClock{surface: d.Surface, start: d.Surface.Time()}
	}

	loaded := false
	sources := d.Sources
	frame := 0
	for !d.Surface.ShouldClose() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !loaded {
			select {
			case res := <-sources:
				if res.Err != nil {
					return fmt.Errorf("failed to load shader sources: %w", res.Err)
				}
				if err := d.Scene.Load(res.Sources); err != nil {
					return err
				}
				loaded = true
				log.Println("Shader program ready, starting render loop")
			default:
			}
		}

		if d.Events != nil {
			d.Events.Drain(d.State.Apply)
		}

		// Before the program is built Render only clears the frame.
		u := d.State.Uniforms(float32(clock.Elapsed(frame)))
		width, height := d.State.Viewport.Size()
		d.Scene.Render(width, height, &u)
		if loaded {
			if d.AfterFrame != nil {
				if err := d.AfterFrame(frame); err != nil {
					return err
				}
			}
			frame++
		}

		d.Surface.EndFrame()

		if d.MaxFrames > 0 && frame >= d.MaxFrames {
			return nil
		}
	}
	return nil
}

// LoadSources fetches the shader sources in the background and delivers the
// result on the returned channel.
func LoadSources(ctx context.Context, loader *assets.Loader, vertexRef, fragmentRef string) <-chan SourceResult {
	out := make(chan SourceResult, 1)
	go func() {
		src, err := loader.LoadShaders(ctx, vertexRef, fragmentRef)
		if err == nil {
			log.Printf("Loaded shader sources %s and %s", vertexRef, fragmentRef)
		}
		out <- SourceResult{Sources: src, Err: err}
	}()
	return out
}
