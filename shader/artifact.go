package shader

import "github.com/compiling-org/WGSL-Shader-Studio-sub002/wgsl"

// Metadata describes a compiled shader for browsing and attribution.
type Metadata struct {
	Name        string
	Description string
	Author      string
	Category    string
	Version     string
	Tags        []string
}

// UniformDescriptor describes one uniform binding in the emitted WGSL.
// The (Group, Binding) pair must stay stable across recompiles of the same
// source so externally bound values are not silently reordered.
type UniformDescriptor struct {
	Name    string
	Type    wgsl.Type
	Group   uint32
	Binding uint32
	Default []float64
	Min     []float64
	Max     []float64
}

// TextureDescriptor describes a texture/sampler binding pair. The sampler
// always occupies the binding slot directly after the texture.
type TextureDescriptor struct {
	Name           string
	Group          uint32
	Binding        uint32
	SamplerBinding uint32
}

// FunctionSignature records a function declared by the source.
type FunctionSignature struct {
	Name   string
	Params []string
	Return string
}

// Artifact is the compiled output of one module. Immutable once produced;
// dropped whenever the owning module's source text changes.
type Artifact struct {
	// Source is the emitted target-language (WGSL) text.
	Source string

	Meta        Metadata
	Uniforms    []UniformDescriptor
	Textures    []TextureDescriptor
	Functions   []FunctionSignature
	EntryPoints []string

	// Errors and Warnings summarize the diagnostics recorded during
	// conversion, kept on the artifact so cached results retain them.
	Errors   []string
	Warnings []string
}

// Ready reports whether the artifact is clean enough to run live.
// Errors do not prevent viewing the generated code, but they gate this.
func (a *Artifact) Ready() bool {
	return a != nil && len(a.Errors) == 0
}
