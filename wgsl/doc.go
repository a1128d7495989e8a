// Package wgsl models the target shading language every dialect converges
// to. It provides the closed Type variant used by the type-mapping tables,
// WGSL reserved-word escaping, identifier sanitization and uniquing, and
// the (group, binding) layout allocator shared by all converters.
//
// The package deliberately contains no parsing: source dialects are handled
// by their own packages (glsl, hlsl, isf, graph), which all emit through
// these primitives.
package wgsl
