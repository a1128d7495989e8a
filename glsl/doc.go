// Package glsl converts GLSL fragment-shader source to WGSL.
//
// The converter is a lenient, line-oriented substitution pass rather than a
// full grammar: it extracts metadata comments and uniform declarations,
// maps types through a fixed lookup table, rewrites builtins and intrinsic
// calls textually, and synthesizes binding declarations and an entry point.
// Recoverable problems (unknown types, unbalanced braces, a missing main)
// degrade the output and are recorded as diagnostics; conversion itself
// never fails.
package glsl
