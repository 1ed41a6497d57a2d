package inputs

import (
	"errors"
	"testing"
)

func TestSelectionCodes(t *testing.T) {
	want := map[string]int32{
		"Gyroid":    0,
		"Sphere":    1,
		"Box":       2,
		"Torus":     3,
		"Schwarz P": 4,
	}
	seen := make(map[int32]string)
	for label, code := range want {
		got, err := SelectionCode(label)
		if err != nil {
			t.Fatalf("SelectionCode(%q): %v", label, err)
		}
		if got != code {
			t.Errorf("SelectionCode(%q) = %d, want %d", label, got, code)
		}
		if prev, ok := seen[got]; ok {
			t.Errorf("code %d used by %q and %q", got, prev, label)
		}
		seen[got] = label
	}
	if n := len(SelectionLabels()); n != len(want) {
		t.Errorf("SelectionLabels() has %d entries, want %d", n, len(want))
	}
}

func TestSelectionUnknownKeepsPrevious(t *testing.T) {
	var s Selection
	if err := s.Select("Torus"); err != nil {
		t.Fatal(err)
	}
	for _, label := range []string{"", "torus", "Cylinder", "Schwarz  P"} {
		err := s.Select(label)
		if !errors.Is(err, ErrUnknownSelection) {
			t.Errorf("Select(%q) error = %v, want ErrUnknownSelection", label, err)
		}
	}
	if s.Code() != 3 || s.Label() != "Torus" {
		t.Fatalf("selection = %d (%s), want 3 (Torus)", s.Code(), s.Label())
	}
}

func TestSelectionLabelsIsCopy(t *testing.T) {
	labels := SelectionLabels()
	labels[0] = "Mutated"
	if code, err := SelectionCode("Gyroid"); err != nil || code != 0 {
		t.Fatalf("SelectionCode(Gyroid) = %d, %v after mutating the returned slice", code, err)
	}
}
