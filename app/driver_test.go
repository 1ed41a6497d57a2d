package app

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	assets "github.com/richinsley/goshaderdemos/assets"
	inputs "github.com/richinsley/goshaderdemos/inputs"
)

type fakeSurface struct {
	frames    int
	maxFrames int
	now       float64
	title     string
	onFrame   func(n int)
}

func (s *fakeSurface) MakeCurrent()                   {}
func (s *fakeSurface) Shutdown()                      {}
func (s *fakeSurface) ShouldClose() bool              { return s.frames >= s.maxFrames }
func (s *fakeSurface) GetFramebufferSize() (int, int) { return 640, 480 }
func (s *fakeSurface) Time() float64                  { return s.now }
func (s *fakeSurface) SetTitle(title string)          { s.title = title }
func (s *fakeSurface) EndFrame() {
	s.frames++
	s.now += 1.0 / 60
	if s.onFrame != nil {
		s.onFrame(s.frames)
	}
}

type fakeScene struct {
	loaded   *assets.ShaderSources
	loadErr  error
	cleared  int
	rendered []inputs.Uniforms
	sizes    [][2]int
}

func (s *fakeScene) Load(src assets.ShaderSources) error {
	if s.loadErr != nil {
		return s.loadErr
	}
	s.loaded = &src
	return nil
}

func (s *fakeScene) Render(width, height int, u *inputs.Uniforms) {
	if s.loaded == nil {
		s.cleared++
		return
	}
	s.rendered = append(s.rendered, *u)
	s.sizes = append(s.sizes, [2]int{width, height})
}

func TestDriverWaitsForSources(t *testing.T) {
	sources := make(chan SourceResult, 1)
	surface := &fakeSurface{maxFrames: 10}
	surface.onFrame = func(n int) {
		if n == 4 {
			sources <- SourceResult{Sources: assets.ShaderSources{Vertex: "v", Fragment: "f"}}
		}
	}
	scene := &fakeScene{}
	d := &Driver{
		Surface: surface,
		Scene:   scene,
		State:   inputs.NewState(0, 640, 480),
		Sources: sources,
	}
	if err := d.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if scene.loaded == nil || scene.loaded.Vertex != "v" {
		t.Fatalf("scene not loaded: %+v", scene.loaded)
	}
	// Sources arrive after the fourth frame: four cleared frames, then six drawn.
	if scene.cleared != 4 {
		t.Fatalf("cleared %d frames before load, want 4", scene.cleared)
	}
	if len(scene.rendered) != 6 {
		t.Fatalf("rendered %d frames, want 6", len(scene.rendered))
	}
	for i := 1; i < len(scene.rendered); i++ {
		if scene.rendered[i].Time <= scene.rendered[i-1].Time {
			t.Fatalf("time not increasing: %v then %v", scene.rendered[i-1].Time, scene.rendered[i].Time)
		}
	}
	if scene.rendered[0].Time <= 0 {
		t.Fatalf("time should count from loop start, got %v", scene.rendered[0].Time)
	}
}

func TestDriverStopsOnLoadError(t *testing.T) {
	sources := make(chan SourceResult, 1)
	sources <- SourceResult{Err: errors.New("404")}
	d := &Driver{
		Surface: &fakeSurface{maxFrames: 100},
		Scene:   &fakeScene{},
		State:   inputs.NewState(0, 640, 480),
		Sources: sources,
	}
	err := d.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("err = %v", err)
	}
}

func TestDriverStopsOnBuildError(t *testing.T) {
	sources := make(chan SourceResult, 1)
	sources <- SourceResult{}
	d := &Driver{
		Surface: &fakeSurface{maxFrames: 100},
		Scene:   &fakeScene{loadErr: errors.New("link failed")},
		State:   inputs.NewState(0, 640, 480),
		Sources: sources,
	}
	if err := d.Run(context.Background()); err == nil || err.Error() != "link failed" {
		t.Fatalf("err = %v", err)
	}
}

func TestDriverAppliesEventsBeforeRender(t *testing.T) {
	sources := make(chan SourceResult, 1)
	sources <- SourceResult{}
	events := inputs.NewQueue()
	events.Push(inputs.DownEvent(inputs.ButtonLeft, 100, 100))
	events.Push(inputs.MoveEvent(110, 115))
	events.Push(inputs.ResizeEvent(300, 600))

	surface := &fakeSurface{maxFrames: 3}
	surface.onFrame = func(n int) {
		if n == 1 {
			events.Push(inputs.UpEvent(inputs.ButtonLeft, 110, 115))
			events.Push(inputs.MoveEvent(500, 500))
			events.Push(inputs.WheelEvent(100))
		}
	}
	scene := &fakeScene{}
	state := inputs.NewState(inputs.FeatureOrbit, 640, 480)
	d := &Driver{Surface: surface, Scene: scene, State: state, Events: events, Sources: sources}
	if err := d.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	first := scene.rendered[0]
	if math.Abs(float64(first.RotationX)-0.15) > 1e-6 || math.Abs(float64(first.RotationY)-0.10) > 1e-6 {
		t.Fatalf("first frame rotation = (%v, %v)", first.RotationX, first.RotationY)
	}
	if scene.sizes[0] != [2]int{300, 600} {
		t.Fatalf("first frame size = %v", scene.sizes[0])
	}
	last := scene.rendered[len(scene.rendered)-1]
	if last.RotationX != first.RotationX || math.Abs(float64(last.CameraAdjPos[2])-0.2) > 1e-6 {
		t.Fatalf("last frame = %+v", last)
	}
}

func TestDriverFixedClockAndMaxFrames(t *testing.T) {
	sources := make(chan SourceResult, 1)
	sources <- SourceResult{}
	scene := &fakeScene{}
	var captured []int
	d := &Driver{
		Surface:   &fakeSurface{maxFrames: 1000},
		Scene:     scene,
		State:     inputs.NewState(0, 64, 64),
		Sources:   sources,
		Clock:     FixedClock{FPS: 30},
		MaxFrames: 4,
		AfterFrame: func(frame int) error {
			captured = append(captured, frame)
			return nil
		},
	}
	if err := d.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(captured) != 4 || captured[3] != 3 {
		t.Fatalf("captured = %v", captured)
	}
	if got := scene.rendered[3].Time; math.Abs(float64(got)-0.1) > 1e-6 {
		t.Fatalf("frame 3 time = %v, want 0.1", got)
	}
}

func TestDriverAfterFrameError(t *testing.T) {
	sources := make(chan SourceResult, 1)
	sources <- SourceResult{}
	d := &Driver{
		Surface:    &fakeSurface{maxFrames: 10},
		Scene:      &fakeScene{},
		State:      inputs.NewState(0, 64, 64),
		Sources:    sources,
		AfterFrame: func(int) error { return errors.New("disk full") },
	}
	if err := d.Run(context.Background()); err == nil || err.Error() != "disk full" {
		t.Fatalf("err = %v", err)
	}
}

func TestDriverCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := &Driver{
		Surface: &fakeSurface{maxFrames: 10},
		Scene:   &fakeScene{},
		State:   inputs.NewState(0, 64, 64),
	}
	if err := d.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadSources(t *testing.T) {
	l := &assets.Loader{}
	res := <-LoadSources(context.Background(), l, "does/not/exist.vert", "does/not/exist.frag")
	if res.Err == nil {
		t.Fatal("expected error for missing files")
	}
}
