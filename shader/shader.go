package shader

import (
	"fmt"
	"strings"

	xlate "github.com/richinsley/goshaderdemos/translator"
	gst "github.com/richinsley/goshadertranslator"
)

// ─────────────────────────── three.js ShaderMaterial ───────────────────────────
//
// The demo shaders are written against three.js ShaderMaterial, which
// prepends its built-in uniforms and attributes before compiling them as
// WebGL2. The preludes below reproduce that so the sources can be fed to the
// translator unchanged.

const vertexPrelude = `#version 300 es
#define attribute in
#define varying out
#define texture2D texture
precision highp float;
precision highp int;
uniform mat4 modelMatrix;
uniform mat4 modelViewMatrix;
uniform mat4 projectionMatrix;
uniform mat4 viewMatrix;
uniform mat3 normalMatrix;
uniform vec3 cameraPosition;
uniform bool isOrthographic;
attribute vec3 position;
attribute vec3 normal;
attribute vec2 uv;
`

const fragmentPrelude = `#version 300 es
#define varying in
layout(location = 0) out highp vec4 pc_fragColor;
#define gl_FragColor pc_fragColor
#define gl_FragDepthEXT gl_FragDepth
#define texture2D texture
#define textureCube texture
precision highp float;
precision highp int;
uniform mat4 viewMatrix;
uniform vec3 cameraPosition;
uniform bool isOrthographic;
`

// Attribute names bound by the quad geometry.
const (
	AttribPosition = "position"
	AttribNormal   = "normal"
	AttribUV       = "uv"
)

// Stage is a shader pipeline stage.
type Stage string

const (
	Vertex   Stage = "vertex"
	Fragment Stage = "fragment"
)

// hasVersion reports whether src already carries a #version directive, in
// which case it is taken as complete and no prelude is added.
func hasVersion(src string) bool {
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		return strings.HasPrefix(line, "#version")
	}
	return false
}

// Prepare returns the full WebGL2 source for a stage.
func Prepare(stage Stage, src string) string {
	if hasVersion(src) {
		return src
	}
	prelude := vertexPrelude
	if stage == Fragment {
		prelude = fragmentPrelude
	}
	return prelude + "\n" + src
}

// Translated is a stage converted to desktop GLSL with the translator's
// name mapping for its uniforms and attributes.
type Translated struct {
	Code      string
	Variables map[string]gst.ShaderVariable
}

// MappedName returns the name a variable was given in the translated code.
// Unknown names are returned unchanged.
func (t *Translated) MappedName(name string) string {
	if v, ok := t.Variables[name]; ok && v.MappedName != "" {
		return v.MappedName
	}
	return name
}

// Translate prepares and converts a three.js-style stage to GLSL 4.10.
func Translate(stage Stage, src string, gles bool) (*Translated, error) {
	translator, err := xlate.GetTranslator()
	if err != nil {
		return nil, err
	}
	outputFormat := gst.OutputFormatGLSL410
	if gles {
		outputFormat = gst.OutputFormatESSL
	}
	out, err := translator.TranslateShader(Prepare(stage, src), string(stage), gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}
	return &Translated{Code: out.Code, Variables: out.Variables}, nil
}
