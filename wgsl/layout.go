// Copyright 2025 The Shader Studio Authors
// SPDX-License-Identifier: MIT

package wgsl

import "fmt"

// BindingAllocator assigns ascending binding indices per bind group.
// Allocation order is the declaration order of the source, which keeps the
// (group, binding) layout stable across recompiles of unchanged source;
// bound uniform values must not be silently reordered.
type BindingAllocator struct {
	next map[uint32]uint32
}

// NewBindingAllocator creates an allocator with every group starting at 0.
func NewBindingAllocator() *BindingAllocator {
	return &BindingAllocator{next: make(map[uint32]uint32)}
}

// Next returns the next free binding index in group.
func (a *BindingAllocator) Next(group uint32) uint32 {
	b := a.next[group]
	a.next[group] = b + 1
	return b
}

// NextPair returns two consecutive binding indices in group, used for a
// texture and its sampler. A texture always wins the pair over a same-named
// scalar, which keeps its own single slot.
func (a *BindingAllocator) NextPair(group uint32) (texture, sampler uint32) {
	texture = a.Next(group)
	sampler = a.Next(group)
	return texture, sampler
}

// UniformDecl renders a module-scope uniform variable declaration.
func UniformDecl(group, binding uint32, name string, t Type) string {
	return fmt.Sprintf("@group(%d) @binding(%d) var<uniform> %s: %s;", group, binding, name, t)
}

// TextureDecl renders a texture binding declaration.
func TextureDecl(group, binding uint32, name string) string {
	return fmt.Sprintf("@group(%d) @binding(%d) var %s: %s;", group, binding, name, Texture{})
}

// SamplerDecl renders the sampler half of a texture binding pair. The
// sampler name is derived from the texture name.
func SamplerDecl(group, binding uint32, textureName string) string {
	return fmt.Sprintf("@group(%d) @binding(%d) var %s: sampler;", group, binding, SamplerName(textureName))
}

// SamplerName returns the canonical sampler identifier for a texture name.
func SamplerName(textureName string) string {
	return textureName + "_sampler"
}
