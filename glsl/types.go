// Copyright 2025 The Shader Studio Authors
// SPDX-License-Identifier: MIT

package glsl

import "github.com/compiling-org/WGSL-Shader-Studio-sub002/wgsl"

// glslTypes maps GLSL type names to their WGSL equivalents.
// Double-precision and the exotic sampler variants are deliberately absent:
// unknown types fall back to a commented placeholder scalar with a warning
// rather than failing the conversion.
var glslTypes = map[string]wgsl.Type{
	// Scalars
	"float": wgsl.Scalar{Kind: wgsl.F32},
	"int":   wgsl.Scalar{Kind: wgsl.I32},
	"uint":  wgsl.Scalar{Kind: wgsl.U32},
	"bool":  wgsl.Scalar{Kind: wgsl.Bool},

	// Float vectors
	"vec2": wgsl.Vector{Size: 2, Elem: wgsl.Scalar{Kind: wgsl.F32}},
	"vec3": wgsl.Vector{Size: 3, Elem: wgsl.Scalar{Kind: wgsl.F32}},
	"vec4": wgsl.Vector{Size: 4, Elem: wgsl.Scalar{Kind: wgsl.F32}},

	// Integer vectors
	"ivec2": wgsl.Vector{Size: 2, Elem: wgsl.Scalar{Kind: wgsl.I32}},
	"ivec3": wgsl.Vector{Size: 3, Elem: wgsl.Scalar{Kind: wgsl.I32}},
	"ivec4": wgsl.Vector{Size: 4, Elem: wgsl.Scalar{Kind: wgsl.I32}},

	// Unsigned vectors
	"uvec2": wgsl.Vector{Size: 2, Elem: wgsl.Scalar{Kind: wgsl.U32}},
	"uvec3": wgsl.Vector{Size: 3, Elem: wgsl.Scalar{Kind: wgsl.U32}},
	"uvec4": wgsl.Vector{Size: 4, Elem: wgsl.Scalar{Kind: wgsl.U32}},

	// Boolean vectors
	"bvec2": wgsl.Vector{Size: 2, Elem: wgsl.Scalar{Kind: wgsl.Bool}},
	"bvec3": wgsl.Vector{Size: 3, Elem: wgsl.Scalar{Kind: wgsl.Bool}},
	"bvec4": wgsl.Vector{Size: 4, Elem: wgsl.Scalar{Kind: wgsl.Bool}},

	// Matrices. GLSL matN is square; matNxM is column x row.
	"mat2":   wgsl.Matrix{Cols: 2, Rows: 2},
	"mat3":   wgsl.Matrix{Cols: 3, Rows: 3},
	"mat4":   wgsl.Matrix{Cols: 4, Rows: 4},
	"mat2x2": wgsl.Matrix{Cols: 2, Rows: 2},
	"mat2x3": wgsl.Matrix{Cols: 2, Rows: 3},
	"mat2x4": wgsl.Matrix{Cols: 2, Rows: 4},
	"mat3x2": wgsl.Matrix{Cols: 3, Rows: 2},
	"mat3x3": wgsl.Matrix{Cols: 3, Rows: 3},
	"mat3x4": wgsl.Matrix{Cols: 3, Rows: 4},
	"mat4x2": wgsl.Matrix{Cols: 4, Rows: 2},
	"mat4x3": wgsl.Matrix{Cols: 4, Rows: 3},
	"mat4x4": wgsl.Matrix{Cols: 4, Rows: 4},

	// Samplers. Everything lands on a 2D texture handle in this subset;
	// the sampler half of the pair is declared separately.
	"sampler2D":     wgsl.Texture{},
	"sampler2DRect": wgsl.Texture{},
	"samplerCube":   wgsl.Texture{},
	"sampler3D":     wgsl.Texture{},
}

// MapType maps a GLSL type name to its WGSL equivalent. The second result
// is false when the name has no mapping.
func MapType(name string) (wgsl.Type, bool) {
	t, ok := glslTypes[name]
	return t, ok
}

// IsTextureType reports whether a GLSL type name maps to a texture handle.
func IsTextureType(name string) bool {
	t, ok := glslTypes[name]
	if !ok {
		return false
	}
	_, isTex := t.(wgsl.Texture)
	return isTex
}
