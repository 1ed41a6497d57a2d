package inputs

import (
	"sync"
	"testing"
)

func TestStatePressMoveEndToEnd(t *testing.T) {
	s := NewState(FeatureOrbit, 800, 600)
	s.Apply(DownEvent(ButtonLeft, 100, 100))
	s.Apply(MoveEvent(110, 115))

	u := s.Uniforms(1.5)
	if !approx(float64(u.RotationX), 0.15) || !approx(float64(u.RotationY), 0.10) {
		t.Fatalf("rotation = (%v, %v), want (0.15, 0.10)", u.RotationX, u.RotationY)
	}
	if u.Time != 1.5 {
		t.Fatalf("time = %v", u.Time)
	}

	s.Apply(UpEvent(ButtonLeft, 110, 115))
	if s.Orbit.Mode() != Idle {
		t.Fatalf("mode after up = %v", s.Orbit.Mode())
	}
}

func TestStatePointerTracking(t *testing.T) {
	s := NewState(FeaturePointer, 200, 100)
	s.Apply(MoveEvent(50, 25))

	m := s.Uniforms(0).Mouse
	if !approx(float64(m[0]), -0.25) || !approx(float64(m[1]), 0.25) {
		t.Fatalf("mouse = %v, want (-0.25, 0.25)", m)
	}

	s.Apply(ResizeEvent(400, 100))
	s.Apply(MoveEvent(400, 100))
	m = s.Uniforms(0).Mouse
	if !approx(float64(m[0]), 0.5) || !approx(float64(m[1]), -0.5) {
		t.Fatalf("mouse after resize = %v, want (0.5, -0.5)", m)
	}
}

func TestStateDropsUnusedFeatures(t *testing.T) {
	s := NewState(0, 640, 480)
	s.Apply(MoveEvent(10, 10))
	s.Apply(DownEvent(ButtonLeft, 0, 0))
	s.Apply(MoveEvent(100, 100))
	s.Apply(WheelEvent(100))
	s.Apply(SelectEvent("Box"))

	u := s.Uniforms(0)
	if u.Mouse[0] != 0 || u.Mouse[1] != 0 || u.RotationX != 0 || u.CameraAdjPos[2] != 0 || u.DropdownSelect != 0 {
		t.Fatalf("disabled features changed uniforms: %+v", u)
	}
}

func TestStateSelection(t *testing.T) {
	s := NewState(FeatureSelection|FeatureOrbit, 640, 480)
	var notified []string
	s.OnSelect = func(label string) { notified = append(notified, label) }

	s.Apply(SelectEvent("Sphere"))
	s.Apply(SelectEvent("Not a shape"))

	if got := s.Uniforms(0).DropdownSelect; got != 1 {
		t.Fatalf("dropdownSelect = %d, want 1", got)
	}
	if len(notified) != 1 || notified[0] != "Sphere" {
		t.Fatalf("OnSelect calls = %v", notified)
	}
}

func TestStateResizeUpdatesResolution(t *testing.T) {
	s := NewState(0, 100, 100)
	s.Apply(ResizeEvent(100, 400))
	res := s.Uniforms(0).Resolution
	if res[0] != 100 || res[1] != 400 || !approx(float64(res[2]), 0.25) || res[3] != 1 {
		t.Fatalf("resolution = %v", res)
	}
}

func TestQueueDrainOrder(t *testing.T) {
	q := NewQueue()
	q.Push(DownEvent(ButtonLeft, 1, 2))
	q.Push(MoveEvent(3, 4))
	q.Push(UpEvent(ButtonLeft, 3, 4))

	var kinds []EventKind
	n := q.Drain(func(ev Event) { kinds = append(kinds, ev.Kind) })
	if n != 3 {
		t.Fatalf("Drain returned %d", n)
	}
	want := []EventKind{EventPointerDown, EventPointerMove, EventPointerUp}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}
	if q.Len() != 0 {
		t.Fatalf("Len after drain = %d", q.Len())
	}
}

func TestQueuePushDuringDrain(t *testing.T) {
	q := NewQueue()
	q.Push(WheelEvent(1))
	q.Drain(func(ev Event) { q.Push(WheelEvent(2)) })
	if q.Len() != 1 {
		t.Fatalf("Len = %d, want 1", q.Len())
	}
}

func TestQueueConcurrentPush(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push(WheelEvent(1))
			}
		}()
	}
	wg.Wait()

	total := 0
	q.Drain(func(Event) { total++ })
	if total != 800 {
		t.Fatalf("drained %d events, want 800", total)
	}
}
