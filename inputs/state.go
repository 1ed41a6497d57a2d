package inputs

import (
	"log"
)

// Features selects which input models a demo listens to.
type Features uint8

const (
	FeaturePointer Features = 1 << iota
	FeatureOrbit
	FeatureSelection
)

func (f Features) Has(flag Features) bool {
	return f&flag != 0
}

// State is the complete input-derived state of one running demo. It is
// owned by the frame driver and only touched from the render thread.
type State struct {
	Features  Features
	Viewport  *Viewport
	Pointer   Pointer
	Orbit     Orbit
	Selection Selection

	// OnSelect, if set, is called after a successful selection change.
	OnSelect func(label string)
}

func NewState(features Features, width, height int) *State {
	return &State{
		Features: features,
		Viewport: NewViewport(width, height),
	}
}

// Apply mutates the state for one event. Events for features the demo does
// not use are dropped.
func (s *State) Apply(ev Event) {
	switch ev.Kind {
	case EventResize:
		s.Viewport.Resize(ev.Width, ev.Height)
	case EventPointerMove:
		if s.Features.Has(FeaturePointer) {
			w, h := s.Viewport.Size()
			s.Pointer.Move(ev.X, ev.Y, w, h)
		}
		if s.Features.Has(FeatureOrbit) {
			s.Orbit.Move(ev.X, ev.Y)
		}
	case EventPointerDown:
		if s.Features.Has(FeatureOrbit) {
			s.Orbit.Press(ev.Button, ev.X, ev.Y)
		}
	case EventPointerUp:
		if s.Features.Has(FeatureOrbit) {
			s.Orbit.Release()
		}
	case EventWheel:
		if s.Features.Has(FeatureOrbit) {
			s.Orbit.Wheel(ev.DeltaY)
		}
	case EventSelect:
		if !s.Features.Has(FeatureSelection) {
			return
		}
		if err := s.Selection.Select(ev.Label); err != nil {
			log.Printf("Error with selection: %v", err)
			return
		}
		if s.OnSelect != nil {
			s.OnSelect(ev.Label)
		}
	}
}

// Uniforms snapshots the state for a frame at the given elapsed time.
func (s *State) Uniforms(elapsed float32) Uniforms {
	rx, ry := s.Orbit.Rotation()
	return Uniforms{
		Resolution:     s.Viewport.Resolution(),
		Time:           elapsed,
		Mouse:          s.Pointer.Position(),
		RotationX:      float32(rx),
		RotationY:      float32(ry),
		CameraAdjPos:   s.Orbit.Offset(),
		DropdownSelect: s.Selection.Code(),
	}
}
