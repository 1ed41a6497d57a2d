package inputs

import (
	"errors"
	"fmt"
)

// ErrUnknownSelection is returned for a label outside the shape list.
var ErrUnknownSelection = errors.New("unknown selection")

var selectionLabels = []string{"Gyroid", "Sphere", "Box", "Torus", "Schwarz P"}

// SelectionLabels returns the selectable labels ordered by code.
func SelectionLabels() []string {
	out := make([]string, len(selectionLabels))
	copy(out, selectionLabels)
	return out
}

// SelectionCode maps a label to its integer code.
func SelectionCode(label string) (int32, error) {
	for i, l := range selectionLabels {
		if l == label {
			return int32(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSelection, label)
}

// Selection holds the shape chosen from the fixed label list.
type Selection struct {
	code int32
}

// Select switches to label. On error the previous selection is kept.
func (s *Selection) Select(label string) error {
	code, err := SelectionCode(label)
	if err != nil {
		return err
	}
	s.code = code
	return nil
}

func (s *Selection) Code() int32 {
	return s.code
}

func (s *Selection) Label() string {
	return selectionLabels[s.code]
}
