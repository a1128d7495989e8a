package graph

import (
	"strings"
	"testing"

	"github.com/compiling-org/WGSL-Shader-Studio-sub002/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pulseGraph(t *testing.T) *Graph {
	t.Helper()
	g := &Graph{Name: "pulse"}
	g.Add(NewNode(1, KindTime))
	g.Add(NewNode(2, KindSin))
	g.Add(NewNode(3, KindOutput))
	require.NoError(t, g.Connect(1, "out", 2, "x"))
	require.NoError(t, g.Connect(2, "out", 3, "color"))
	return g
}

func TestGenerate_TimeSineOutput(t *testing.T) {
	src, ds := Generate(pulseGraph(t), 640, 480)
	require.False(t, ds.HasErrors(), "diagnostics: %s", ds.Format())

	// The time read, the sine over it and the terminal return appear in
	// that order.
	timeRead := strings.Index(src, "let n1_out: f32 = u_time;")
	sine := strings.Index(src, "let n2_out: f32 = sin(n1_out);")
	ret := strings.Index(src, "return vec4<f32>(n2_out, n2_out, n2_out, 1.0);")
	require.True(t, timeRead >= 0 && sine >= 0 && ret >= 0, "missing statement in:\n%s", src)
	assert.Less(t, timeRead, sine)
	assert.Less(t, sine, ret)

	assert.Contains(t, src, "@group(0) @binding(0) var<uniform> u_time: f32;")
	assert.Contains(t, src, "@fragment")
}

func TestGenerate_NoOutputFallsBack(t *testing.T) {
	g := &Graph{Name: "dangling"}
	g.Add(NewNode(1, KindTime))

	src, ds := Generate(g, 320, 240)

	assert.Contains(t, src, "return vec4<f32>(0.0, 0.0, 0.0, 1.0);")
	assert.Equal(t, 1, ds.Count(diag.SeverityInfo))
}

func TestGenerate_UnconnectedInputsReadZero(t *testing.T) {
	g := &Graph{Name: "half"}
	g.Add(NewNode(1, KindAdd))
	g.Add(NewNode(2, KindOutput))
	require.NoError(t, g.Connect(1, "out", 2, "color"))

	src, ds := Generate(g, 100, 100)

	assert.Contains(t, src, "let n1_out: f32 = (0.0 + 0.0);")
	assert.False(t, ds.HasErrors())
}

func TestGenerate_CycleIsSkippedWithWarning(t *testing.T) {
	g := &Graph{Name: "loop"}
	g.Add(NewNode(1, KindAdd))
	g.Add(NewNode(2, KindAdd))
	require.NoError(t, g.Connect(1, "out", 2, "a"))
	require.NoError(t, g.Connect(2, "out", 1, "a"))

	src, ds := Generate(g, 100, 100)

	assert.NotContains(t, src, "n1_out")
	assert.NotContains(t, src, "n2_out")
	assert.Contains(t, src, "@fragment", "output stays a valid shader")
	assert.Equal(t, 2, ds.Count(diag.SeverityWarning))
}

func TestGenerate_ParamAndTextureBindings(t *testing.T) {
	g := &Graph{Name: "warp"}
	p := NewNode(1, KindParam)
	p.Name = "speed"
	p.Value = 2
	g.Add(p)
	g.Add(NewNode(2, KindUV))
	tex := NewNode(3, KindTextureSample)
	tex.Name = "noise"
	g.Add(tex)
	g.Add(NewNode(4, KindOutput))
	require.NoError(t, g.Connect(2, "out", 3, "coords"))
	require.NoError(t, g.Connect(3, "out", 4, "color"))

	src, ds := Generate(g, 640, 480)
	require.False(t, ds.HasErrors(), "diagnostics: %s", ds.Format())

	assert.Contains(t, src, "@group(0) @binding(2) var<uniform> speed: f32;")
	assert.Contains(t, src, "@group(0) @binding(3) var noise: texture_2d<f32>;")
	assert.Contains(t, src, "@group(0) @binding(4) var noise_sampler: sampler;")
	assert.Contains(t, src, "textureSample(noise, noise_sampler, n2_out)")
	assert.Contains(t, src, "return n3_out;")
}

func TestGenerateAndCompile_Descriptors(t *testing.T) {
	g := &Graph{Name: "warp"}
	p := NewNode(1, KindParam)
	p.Name = "speed"
	p.Value = 2
	g.Add(p)
	tex := NewNode(2, KindTextureSample)
	tex.Name = "noise"
	g.Add(tex)
	g.Add(NewNode(3, KindOutput))
	require.NoError(t, g.Connect(2, "out", 3, "color"))

	art, ds := GenerateAndCompile(g, 640, 480)
	require.False(t, ds.HasErrors())

	require.Len(t, art.Uniforms, 3)
	assert.Equal(t, "u_time", art.Uniforms[0].Name)
	assert.Equal(t, uint32(0), art.Uniforms[0].Binding)
	assert.Equal(t, "u_resolution", art.Uniforms[1].Name)
	assert.Equal(t, []float64{640, 480}, art.Uniforms[1].Default)
	assert.Equal(t, "speed", art.Uniforms[2].Name)
	assert.Equal(t, []float64{2}, art.Uniforms[2].Default)

	require.Len(t, art.Textures, 1)
	assert.Equal(t, "noise", art.Textures[0].Name)
	assert.Equal(t, uint32(3), art.Textures[0].Binding)
	assert.Equal(t, uint32(4), art.Textures[0].SamplerBinding)

	assert.Equal(t, []string{"fs_main"}, art.EntryPoints)
	assert.Equal(t, "warp", art.Meta.Name)
}

func TestGenerate_ConstFormatting(t *testing.T) {
	g := &Graph{Name: "lit"}
	c := NewNode(1, KindConst)
	c.Value = 3
	g.Add(c)

	src, _ := Generate(g, 1, 1)

	assert.Contains(t, src, "let n1_out: f32 = 3.0;")
}
