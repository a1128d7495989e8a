package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDialect(t *testing.T) {
	tests := []struct {
		path string
		want Dialect
	}{
		{"shader.frag", DialectGLSL},
		{"shader.vert", DialectGLSL},
		{"effects/blur.glsl", DialectGLSL},
		{"shader.hlsl", DialectHLSL},
		{"post.fx", DialectHLSL},
		{"feedback.fs", DialectISF},
		{"feedback.isf", DialectISF},
		{"patch.graph", DialectGraph},
		{"README.md", DialectUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectDialect(tt.path), tt.path)
	}
}

func TestGuessDialect(t *testing.T) {
	assert.Equal(t, DialectISF, GuessDialect("/*{\n \"NAME\": \"x\" \n}*/\nvoid main(){}"))
	assert.Equal(t, DialectHLSL, GuessDialect("float4 main() : SV_Target { return 0; }"))
	assert.Equal(t, DialectGLSL, GuessDialect("#version 330\nvoid main(){}"))
	assert.Equal(t, DialectUnknown, GuessDialect("hello"))
}

func TestScanImports(t *testing.T) {
	src := `#include "lib/noise.glsl"
#import colors
#include <util.glsl>
#include "lib/noise.glsl"
void main() {}`
	got := ScanImports(src)
	assert.Equal(t, []ModuleIdentity{"noise", "colors", "util"}, got)
}

func TestScanExports(t *testing.T) {
	src := `uniform float time;
float noise(vec2 p) { return 0.0; }
vec3 palette(float t) { return vec3(t); }
fn blur(uv: vec2<f32>) -> vec4<f32> { }
void main() { }`
	got := ScanExports(src)
	assert.Equal(t, []string{"noise", "palette", "blur"}, got)
}

func TestNewModule_ScansAndFingerprints(t *testing.T) {
	src := "#include \"dep.glsl\"\nfloat helper() { return 1.0; }\nvoid main() {}"
	m := NewModule("main", "Main", src, DialectUnknown)

	assert.Equal(t, DialectGLSL, m.Dialect)
	assert.Equal(t, []ModuleIdentity{"dep"}, m.Imports)
	assert.Equal(t, []string{"helper"}, m.Exports)
	assert.Equal(t, uint64(1), m.Version)
	assert.Equal(t, Fingerprint(src), m.Fingerprint)
}

func TestModule_WithSourceIsCopyOnWrite(t *testing.T) {
	m := NewModule("a", "A", "void main() {}", DialectGLSL)
	m2 := m.WithArtifact(&Artifact{Source: "// wgsl"})
	require.NotNil(t, m2.Artifact)
	assert.Nil(t, m.Artifact, "original module must not be mutated")

	m3 := m2.WithSource("#include \"b.glsl\"\nvoid main() {}")
	assert.Equal(t, uint64(2), m3.Version)
	assert.Nil(t, m3.Artifact, "artifact dropped on reload")
	assert.Equal(t, []ModuleIdentity{"b"}, m3.Imports)
	assert.NotEqual(t, m2.Fingerprint, m3.Fingerprint)
	assert.NotNil(t, m2.Artifact, "previous copy untouched")
}

func TestIdentityFromPath(t *testing.T) {
	assert.Equal(t, ModuleIdentity("noise"), IdentityFromPath("lib/noise.glsl"))
	assert.Equal(t, ModuleIdentity("noise"), IdentityFromPath("noise"))
	assert.Equal(t, ModuleIdentity("a.b"), IdentityFromPath("a.b.glsl"))
}

func TestArtifactReady(t *testing.T) {
	assert.False(t, (*Artifact)(nil).Ready())
	assert.True(t, (&Artifact{}).Ready())
	assert.False(t, (&Artifact{Errors: []string{"unbalanced brace"}}).Ready())
}
