// Copyright 2025 The Shader Studio Authors
// SPDX-License-Identifier: MIT

package wgsl

import (
	"fmt"
	"strings"
)

// ScalarKind identifies a WGSL scalar type.
type ScalarKind uint8

const (
	// F32 is a 32-bit float.
	F32 ScalarKind = iota

	// I32 is a 32-bit signed integer.
	I32

	// U32 is a 32-bit unsigned integer.
	U32

	// Bool is a boolean.
	Bool
)

// String returns the WGSL type name.
func (k ScalarKind) String() string {
	switch k {
	case F32:
		return "f32"
	case I32:
		return "i32"
	case U32:
		return "u32"
	case Bool:
		return "bool"
	default:
		return "f32"
	}
}

// Type is a closed variant over the WGSL types the converters emit.
// Every consumer switches exhaustively over the concrete types below.
type Type interface {
	// String renders the WGSL spelling of the type.
	String() string

	// Zero renders a zero-valued WGSL expression of the type, used to
	// default unresolved graph inputs and placeholder declarations.
	Zero() string

	typeNode()
}

// Scalar is f32, i32, u32 or bool.
type Scalar struct {
	Kind ScalarKind
}

func (s Scalar) typeNode() {}

// String implements Type.
func (s Scalar) String() string { return s.Kind.String() }

// Zero implements Type.
func (s Scalar) Zero() string {
	switch s.Kind {
	case I32:
		return "0"
	case U32:
		return "0u"
	case Bool:
		return "false"
	default:
		return "0.0"
	}
}

// Vector is vecN<T> with N in 2..4.
type Vector struct {
	Size int
	Elem Scalar
}

func (v Vector) typeNode() {}

// String implements Type.
func (v Vector) String() string {
	return fmt.Sprintf("vec%d<%s>", clampDim(v.Size), v.Elem)
}

// Zero implements Type.
func (v Vector) Zero() string {
	return fmt.Sprintf("vec%d<%s>(%s)", clampDim(v.Size), v.Elem, v.Elem.Zero())
}

// Matrix is matCxR<f32>. WGSL matrices are always float.
type Matrix struct {
	Cols int
	Rows int
}

func (m Matrix) typeNode() {}

// String implements Type.
func (m Matrix) String() string {
	return fmt.Sprintf("mat%dx%d<f32>", clampDim(m.Cols), clampDim(m.Rows))
}

// Zero implements Type.
func (m Matrix) Zero() string {
	return m.String() + "()"
}

// Array is a fixed-size array of a mapped base type. The declared source
// size N is carried through unchanged.
type Array struct {
	Elem Type
	Size int
}

func (a Array) typeNode() {}

// String implements Type.
func (a Array) String() string {
	return fmt.Sprintf("array<%s, %d>", a.Elem, a.Size)
}

// Zero implements Type.
func (a Array) Zero() string {
	return a.String() + "()"
}

// Texture is a sampled 2D texture handle. Image, audio and audioFFT inputs
// all land here; the sampler is declared separately as a consecutive binding.
type Texture struct{}

func (t Texture) typeNode() {}

// String implements Type.
func (t Texture) String() string { return "texture_2d<f32>" }

// Zero implements Type.
// Textures have no value form; referencing one unresolved is a diagnostic,
// so the zero expression falls back to a transparent color.
func (t Texture) Zero() string { return "vec4<f32>(0.0)" }

// Sampler is the sampler half of a texture binding pair.
type Sampler struct{}

func (s Sampler) typeNode() {}

// String implements Type.
func (s Sampler) String() string { return "sampler" }

// Zero implements Type.
func (s Sampler) Zero() string { return "sampler" }

// Placeholder is the fallback for source types with no mapping. It renders
// as a commented f32 so conversion degrades instead of failing.
type Placeholder struct {
	Source string
}

func (p Placeholder) typeNode() {}

// String implements Type.
func (p Placeholder) String() string {
	return fmt.Sprintf("f32 /* unmapped: %s */", sanitizeComment(p.Source))
}

// Zero implements Type.
func (p Placeholder) Zero() string { return "0.0" }

func clampDim(n int) int {
	if n < 2 {
		return 2
	}
	if n > 4 {
		return 4
	}
	return n
}

func sanitizeComment(s string) string {
	s = strings.ReplaceAll(s, "*/", "* /")
	return strings.ReplaceAll(s, "\n", " ")
}
