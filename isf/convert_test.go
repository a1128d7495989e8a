package isf

import (
	"strings"
	"testing"

	"github.com/compiling-org/WGSL-Shader-Studio-sub002/diag"
)

const rippleSource = `/*{
    "NAME": "Ripple",
    "DESCRIPTION": "Concentric rings",
    "CREDIT": "vj",
    "ISFVSN": "2",
    "CATEGORIES": ["distortion"],
    "INPUTS": [
        {"NAME": "speed", "TYPE": "float", "DEFAULT": 1.0, "MIN": 0.0, "MAX": 4.0},
        {"NAME": "center", "TYPE": "point2D", "DEFAULT": [0.5, 0.5]},
        {"NAME": "tintColor", "TYPE": "color", "DEFAULT": [1.0, 0.0, 0.0, 1.0]},
        {"NAME": "inputImage", "TYPE": "image"}
    ]
}*/
void main() {
    vec2 uv = isf_FragNormCoord;
    float d = distance(uv, center);
    vec4 c = IMG_NORM_PIXEL(inputImage, uv);
    gl_FragColor = c * tintColor * sin(d * 40.0 - TIME * speed);
}`

func TestConvert_RippleBindings(t *testing.T) {
	art, ds := Convert(rippleSource, "ripple")

	// Builtins first, then declared inputs in metadata order.
	wantDecls := []string{
		"@group(0) @binding(0) var<uniform> time: f32;",
		"@group(0) @binding(1) var<uniform> resolution: vec2<f32>;",
		"@group(0) @binding(2) var<uniform> speed: f32;",
		"@group(0) @binding(3) var<uniform> center: vec2<f32>;",
		"@group(0) @binding(4) var<uniform> tintColor: vec4<f32>;",
		"@group(0) @binding(5) var inputImage: texture_2d<f32>;",
		"@group(0) @binding(6) var inputImage_sampler: sampler;",
	}
	for _, decl := range wantDecls {
		if !strings.Contains(art.Source, decl) {
			t.Errorf("missing declaration %q in:\n%s", decl, art.Source)
		}
	}
	if ds.HasErrors() {
		t.Errorf("unexpected errors: %s", ds.Format())
	}
}

func TestConvert_RippleMetadata(t *testing.T) {
	art, _ := Convert(rippleSource, "fallback")

	if art.Meta.Name != "Ripple" {
		t.Errorf("Name = %q", art.Meta.Name)
	}
	if art.Meta.Author != "vj" {
		t.Errorf("Author = %q", art.Meta.Author)
	}
	if art.Meta.Version != "isf-2" {
		t.Errorf("Version = %q", art.Meta.Version)
	}
	if art.Meta.Category != "distortion" {
		t.Errorf("Category = %q", art.Meta.Category)
	}
}

func TestConvert_RippleDescriptors(t *testing.T) {
	art, _ := Convert(rippleSource, "ripple")

	var speed *int
	for i, u := range art.Uniforms {
		if u.Name == "speed" {
			speed = &i
			break
		}
	}
	if speed == nil {
		t.Fatalf("no speed descriptor in %+v", art.Uniforms)
	}
	u := art.Uniforms[*speed]
	if len(u.Default) != 1 || u.Default[0] != 1.0 {
		t.Errorf("speed default = %v", u.Default)
	}
	if len(u.Min) != 1 || u.Min[0] != 0.0 || len(u.Max) != 1 || u.Max[0] != 4.0 {
		t.Errorf("speed range = %v..%v", u.Min, u.Max)
	}
	if len(art.Textures) != 1 || art.Textures[0].Name != "inputImage" {
		t.Errorf("textures = %+v", art.Textures)
	}
}

func TestConvert_BodyRewrites(t *testing.T) {
	art, _ := Convert(rippleSource, "ripple")

	if !strings.Contains(art.Source, "textureSample(inputImage, inputImage_sampler, uv)") {
		t.Errorf("IMG_NORM_PIXEL not rewritten:\n%s", art.Source)
	}
	if !strings.Contains(art.Source, "var uv: vec2<f32> = isf_uv;") {
		t.Errorf("isf_FragNormCoord not rewritten:\n%s", art.Source)
	}
	if !strings.Contains(art.Source, "time * speed") {
		t.Errorf("TIME not rewritten:\n%s", art.Source)
	}
}

func TestConvert_MalformedMetadataIsErrorNotFatal(t *testing.T) {
	source := `/*{ "NAME": "Broken", }*/
void main() { gl_FragColor = vec4(1.0); }`
	art, ds := Convert(source, "broken")

	if ds.Count(diag.SeverityError) == 0 {
		t.Fatal("expected metadata error")
	}
	if art.Source == "" {
		t.Error("conversion should continue with defaults")
	}
	if art.Meta.Name != "broken" {
		t.Errorf("metadata should fall back to the logical name, got %q", art.Meta.Name)
	}
}

func TestConvert_EmptyInputsUndeclaredImageStillConverts(t *testing.T) {
	source := `/*{
    "NAME": "Feedback",
    "INPUTS": []
}*/
void main() {
    gl_FragColor = IMG_THIS_PIXEL(inputImage);
}`
	art, ds := Convert(source, "feedback")

	if art.Source == "" {
		t.Fatal("expected non-empty output")
	}
	if ds.Len() == 0 {
		t.Fatal("expected at least one diagnostic for the undeclared image")
	}
	if ds.Count(diag.SeverityWarning) == 0 {
		t.Error("undeclared image should be a warning")
	}
	if !strings.Contains(art.Source, "@fragment") {
		t.Error("entry point should still be emitted")
	}
}

func TestConvert_NoMetadataBlock(t *testing.T) {
	art, _ := Convert("void main() { gl_FragColor = vec4(0.5); }", "plain")

	if !strings.Contains(art.Source, "var<uniform> time: f32;") {
		t.Error("builtin uniforms should still be declared")
	}
	if !strings.Contains(art.Source, "@fragment") {
		t.Error("entry point missing")
	}
}

func TestConvert_MissingMainFallsBackToUVRamp(t *testing.T) {
	source := `/*{ "NAME": "Empty", "INPUTS": [] }*/
float helper() { return 1.0; }`
	art, ds := Convert(source, "empty")

	if ds.Count(diag.SeverityInfo) == 0 {
		t.Error("expected synthesized entry point info")
	}
	if !strings.Contains(art.Source, "fn helper() -> f32 {") {
		t.Errorf("helper not emitted:\n%s", art.Source)
	}
	if !strings.Contains(art.Source, "return vec4<f32>(isf_uv.x, isf_uv.y, 0.0, 1.0);") {
		t.Errorf("fallback body missing:\n%s", art.Source)
	}
}

func TestToFloats(t *testing.T) {
	if got := toFloats(2.5); len(got) != 1 || got[0] != 2.5 {
		t.Errorf("toFloats(2.5) = %v", got)
	}
	if got := toFloats([]any{1.0, 2.0}); len(got) != 2 || got[1] != 2.0 {
		t.Errorf("toFloats(array) = %v", got)
	}
	if got := toFloats(true); len(got) != 1 || got[0] != 1 {
		t.Errorf("toFloats(true) = %v", got)
	}
	if got := toFloats(nil); got != nil {
		t.Errorf("toFloats(nil) = %v", got)
	}
	if got := toFloats("red"); got != nil {
		t.Errorf("toFloats(string) = %v", got)
	}
}
