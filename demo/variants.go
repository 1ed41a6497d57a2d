package demo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/richinsley/goshaderdemos/inputs"
)

// Variant describes one shader demo: where its sources live, which inputs
// it listens to and which texture it samples.
type Variant struct {
	Name     string
	Title    string
	Vertex   string
	Fragment string
	Features inputs.Features
	// Texture is bound to the matcap uniform when set.
	Texture string
}

var variants = map[string]Variant{
	"lavalamp": {
		Name:     "lavalamp",
		Title:    "Lava Lamp",
		Vertex:   "shaders/vertexLavaLamp.glsl",
		Fragment: "shaders/fragmentLavaLamp.glsl",
	},
	"mouse": {
		Name:     "mouse",
		Title:    "Mouse",
		Vertex:   "shaders/vertexMouse.glsl",
		Fragment: "shaders/fragmentMouse.glsl",
		Features: inputs.FeaturePointer,
	},
	"primitive": {
		Name:     "primitive",
		Title:    "Primitive",
		Vertex:   "shaders/vertexPrimitive.glsl",
		Fragment: "shaders/fragmentPrimitive.glsl",
		Features: inputs.FeatureOrbit | inputs.FeatureSelection,
	},
	"truss": {
		Name:     "truss",
		Title:    "Truss",
		Vertex:   "shaders/vertexTruss.glsl",
		Fragment: "shaders/fragmentTruss.glsl",
		Features: inputs.FeatureOrbit,
		Texture:  "imgs/metalMatcap.jpg",
	},
}

// Names lists the known variants in sorted order.
func Names() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup finds a variant by name, case-insensitively.
func Lookup(name string) (Variant, error) {
	v, ok := variants[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Variant{}, fmt.Errorf("unknown demo %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return v, nil
}

// WindowTitle is the title shown for the variant with the given selection.
func (v Variant) WindowTitle(selection string) string {
	if v.Features.Has(inputs.FeatureSelection) && selection != "" {
		return fmt.Sprintf("goshaderdemos - %s - %s", v.Title, selection)
	}
	return "goshaderdemos - " + v.Title
}
