package shader

import (
	"path/filepath"
	"strings"
)

// Dialect identifies a source shading language variant.
type Dialect uint8

const (
	// DialectUnknown means the source language could not be determined.
	DialectUnknown Dialect = iota

	// DialectGLSL is OpenGL Shading Language source.
	DialectGLSL

	// DialectHLSL is DirectX High-Level Shading Language source.
	DialectHLSL

	// DialectISF is an Interactive Shader Format file: a GLSL body with a
	// leading JSON metadata comment block.
	DialectISF

	// DialectGraph is the visual node-graph form.
	DialectGraph
)

// String returns the dialect name.
func (d Dialect) String() string {
	switch d {
	case DialectGLSL:
		return "glsl"
	case DialectHLSL:
		return "hlsl"
	case DialectISF:
		return "isf"
	case DialectGraph:
		return "graph"
	default:
		return "unknown"
	}
}

// ParseDialect maps a dialect name to its Dialect value.
func ParseDialect(name string) Dialect {
	switch strings.ToLower(name) {
	case "glsl":
		return DialectGLSL
	case "hlsl":
		return DialectHLSL
	case "isf":
		return DialectISF
	case "graph":
		return DialectGraph
	default:
		return DialectUnknown
	}
}

// DetectDialect picks a dialect from a file path's extension.
func DetectDialect(path string) Dialect {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glsl", ".frag", ".vert", ".comp":
		return DialectGLSL
	case ".hlsl", ".fx":
		return DialectHLSL
	case ".isf":
		return DialectISF
	case ".fs":
		// ISF distributes fragment shaders as .fs with a JSON header.
		return DialectISF
	case ".graph":
		return DialectGraph
	default:
		return DialectUnknown
	}
}

// GuessDialect inspects source text when no extension is available.
// The checks are ordered from most to least distinctive.
func GuessDialect(source string) Dialect {
	trimmed := strings.TrimLeft(source, " \t\r\n")
	if strings.HasPrefix(trimmed, "/*{") || strings.HasPrefix(trimmed, "/* {") {
		return DialectISF
	}
	for _, marker := range []string{"cbuffer ", "SV_Target", "SV_Position", "SamplerState", "float4 "} {
		if strings.Contains(source, marker) {
			return DialectHLSL
		}
	}
	for _, marker := range []string{"#version", "gl_FragColor", "gl_FragCoord", "uniform ", "void main"} {
		if strings.Contains(source, marker) {
			return DialectGLSL
		}
	}
	return DialectUnknown
}
