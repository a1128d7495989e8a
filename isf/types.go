// Copyright 2025 The Shader Studio Authors
// SPDX-License-Identifier: MIT

package isf

import (
	"strings"

	"github.com/compiling-org/WGSL-Shader-Studio-sub002/wgsl"
)

// isfInputTypes is the fixed mapping from ISF INPUT TYPE names to WGSL.
// image, audio and audioFFT all land on a texture handle: audio waveforms
// and FFT bins arrive as 1-row textures at runtime.
var isfInputTypes = map[string]wgsl.Type{
	"float":    wgsl.Scalar{Kind: wgsl.F32},
	"bool":     wgsl.Scalar{Kind: wgsl.Bool},
	"long":     wgsl.Scalar{Kind: wgsl.I32},
	"integer":  wgsl.Scalar{Kind: wgsl.I32},
	"point2d":  wgsl.Vector{Size: 2, Elem: wgsl.Scalar{Kind: wgsl.F32}},
	"color":    wgsl.Vector{Size: 4, Elem: wgsl.Scalar{Kind: wgsl.F32}},
	"event":    wgsl.Scalar{Kind: wgsl.Bool},
	"image":    wgsl.Texture{},
	"audio":    wgsl.Texture{},
	"audiofft": wgsl.Texture{},
}

// MapInputType maps an ISF INPUT TYPE to its WGSL equivalent. Matching is
// case-insensitive ("point2D", "audioFFT"). The second result is false when
// the type has no mapping.
func MapInputType(name string) (wgsl.Type, bool) {
	t, ok := isfInputTypes[strings.ToLower(name)]
	return t, ok
}

// IsTextureInput reports whether an ISF INPUT TYPE maps to a texture handle.
func IsTextureInput(name string) bool {
	t, ok := isfInputTypes[strings.ToLower(name)]
	if !ok {
		return false
	}
	_, isTex := t.(wgsl.Texture)
	return isTex
}
