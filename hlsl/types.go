// Copyright 2025 The Shader Studio Authors
// SPDX-License-Identifier: MIT

package hlsl

import "github.com/compiling-org/WGSL-Shader-Studio-sub002/wgsl"

// hlslTypes maps HLSL type names to their WGSL equivalents.
// half maps to f32 (WGSL f16 needs an extension); double has no mapping and
// falls through to the placeholder path.
var hlslTypes = map[string]wgsl.Type{
	// Scalars
	"float": wgsl.Scalar{Kind: wgsl.F32},
	"half":  wgsl.Scalar{Kind: wgsl.F32},
	"int":   wgsl.Scalar{Kind: wgsl.I32},
	"uint":  wgsl.Scalar{Kind: wgsl.U32},
	"dword": wgsl.Scalar{Kind: wgsl.U32},
	"bool":  wgsl.Scalar{Kind: wgsl.Bool},

	// Vectors, HLSL TypeN spelling
	"float2": wgsl.Vector{Size: 2, Elem: wgsl.Scalar{Kind: wgsl.F32}},
	"float3": wgsl.Vector{Size: 3, Elem: wgsl.Scalar{Kind: wgsl.F32}},
	"float4": wgsl.Vector{Size: 4, Elem: wgsl.Scalar{Kind: wgsl.F32}},
	"half2":  wgsl.Vector{Size: 2, Elem: wgsl.Scalar{Kind: wgsl.F32}},
	"half3":  wgsl.Vector{Size: 3, Elem: wgsl.Scalar{Kind: wgsl.F32}},
	"half4":  wgsl.Vector{Size: 4, Elem: wgsl.Scalar{Kind: wgsl.F32}},
	"int2":   wgsl.Vector{Size: 2, Elem: wgsl.Scalar{Kind: wgsl.I32}},
	"int3":   wgsl.Vector{Size: 3, Elem: wgsl.Scalar{Kind: wgsl.I32}},
	"int4":   wgsl.Vector{Size: 4, Elem: wgsl.Scalar{Kind: wgsl.I32}},
	"uint2":  wgsl.Vector{Size: 2, Elem: wgsl.Scalar{Kind: wgsl.U32}},
	"uint3":  wgsl.Vector{Size: 3, Elem: wgsl.Scalar{Kind: wgsl.U32}},
	"uint4":  wgsl.Vector{Size: 4, Elem: wgsl.Scalar{Kind: wgsl.U32}},
	"bool2":  wgsl.Vector{Size: 2, Elem: wgsl.Scalar{Kind: wgsl.Bool}},
	"bool3":  wgsl.Vector{Size: 3, Elem: wgsl.Scalar{Kind: wgsl.Bool}},
	"bool4":  wgsl.Vector{Size: 4, Elem: wgsl.Scalar{Kind: wgsl.Bool}},

	// Matrices, HLSL TypeRxC spelling
	"float2x2": wgsl.Matrix{Cols: 2, Rows: 2},
	"float2x3": wgsl.Matrix{Cols: 2, Rows: 3},
	"float2x4": wgsl.Matrix{Cols: 2, Rows: 4},
	"float3x2": wgsl.Matrix{Cols: 3, Rows: 2},
	"float3x3": wgsl.Matrix{Cols: 3, Rows: 3},
	"float3x4": wgsl.Matrix{Cols: 3, Rows: 4},
	"float4x2": wgsl.Matrix{Cols: 4, Rows: 2},
	"float4x3": wgsl.Matrix{Cols: 4, Rows: 3},
	"float4x4": wgsl.Matrix{Cols: 4, Rows: 4},

	// Resources
	"Texture2D":   wgsl.Texture{},
	"Texture3D":   wgsl.Texture{},
	"TextureCube": wgsl.Texture{},
}

// MapType maps an HLSL type name to its WGSL equivalent. The second result
// is false when the name has no mapping.
func MapType(name string) (wgsl.Type, bool) {
	t, ok := hlslTypes[name]
	return t, ok
}

// IsTextureType reports whether an HLSL type name maps to a texture handle.
func IsTextureType(name string) bool {
	t, ok := hlslTypes[name]
	if !ok {
		return false
	}
	_, isTex := t.(wgsl.Texture)
	return isTex
}

// constructorNames maps HLSL constructor spellings to WGSL ones.
var constructorNames = map[string]string{
	"float2": "vec2<f32>", "float3": "vec3<f32>", "float4": "vec4<f32>",
	"int2": "vec2<i32>", "int3": "vec3<i32>", "int4": "vec4<i32>",
	"uint2": "vec2<u32>", "uint3": "vec3<u32>", "uint4": "vec4<u32>",
	"float2x2": "mat2x2<f32>", "float3x3": "mat3x3<f32>", "float4x4": "mat4x4<f32>",
}
