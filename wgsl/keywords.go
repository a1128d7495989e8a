// Copyright 2025 The Shader Studio Authors
// SPDX-License-Identifier: MIT

package wgsl

// wgslKeywords contains WGSL reserved words and type names.
// Identifiers colliding with these are escaped by the Namer.
// Based on the WGSL specification keyword and reserved-word lists.
var wgslKeywords = map[string]struct{}{
	// Type-defining keywords
	"bool": {}, "f16": {}, "f32": {}, "i32": {}, "u32": {},
	"vec2": {}, "vec3": {}, "vec4": {},
	"mat2x2": {}, "mat2x3": {}, "mat2x4": {},
	"mat3x2": {}, "mat3x3": {}, "mat3x4": {},
	"mat4x2": {}, "mat4x3": {}, "mat4x4": {},
	"array": {}, "atomic": {}, "ptr": {},
	"sampler": {}, "sampler_comparison": {},
	"texture_1d": {}, "texture_2d": {}, "texture_2d_array": {}, "texture_3d": {},
	"texture_cube": {}, "texture_cube_array": {},
	"texture_multisampled_2d": {}, "texture_depth_2d": {},
	"texture_storage_1d": {}, "texture_storage_2d": {},
	"texture_storage_2d_array": {}, "texture_storage_3d": {},

	// Statement and declaration keywords
	"alias": {}, "break": {}, "case": {}, "const": {}, "const_assert": {},
	"continue": {}, "continuing": {}, "default": {}, "diagnostic": {},
	"discard": {}, "else": {}, "enable": {}, "false": {}, "fn": {},
	"for": {}, "if": {}, "let": {}, "loop": {}, "override": {},
	"requires": {}, "return": {}, "struct": {}, "switch": {}, "true": {},
	"var": {}, "while": {},

	// Address spaces and access modes
	"function": {}, "private": {}, "read": {}, "read_write": {},
	"storage": {}, "uniform": {}, "workgroup": {}, "write": {},

	// Reserved for future use (subset that realistically collides)
	"as": {}, "asm": {}, "auto": {}, "catch": {}, "class": {}, "decltype": {},
	"delete": {}, "demote": {}, "do": {}, "enum": {}, "export": {},
	"extern": {}, "filter": {}, "final": {}, "goto": {}, "handle": {},
	"impl": {}, "import": {}, "instanceof": {}, "interface": {},
	"layout": {}, "macro": {}, "module": {}, "mut": {}, "mutable": {},
	"namespace": {}, "new": {}, "null": {}, "operator": {}, "package": {},
	"premerge": {}, "priv": {}, "protected": {}, "pub": {}, "public": {},
	"ref": {}, "regardless": {}, "reinterpret_cast": {}, "resource": {},
	"restrict": {}, "self": {}, "set": {}, "shared": {}, "signed": {},
	"sizeof": {}, "smooth": {}, "static": {}, "super": {}, "target": {},
	"template": {}, "this": {}, "throw": {}, "trait": {}, "try": {},
	"type": {}, "typedef": {}, "union": {}, "unless": {}, "unsigned": {},
	"using": {}, "virtual": {}, "where": {}, "with": {}, "writeonly": {},
	"yield": {},
}

// IsKeyword reports whether name is a WGSL keyword or reserved word.
func IsKeyword(name string) bool {
	_, ok := wgslKeywords[name]
	return ok
}

// Escape returns a WGSL-safe spelling of name, prefixing keywords with an
// underscore. Non-keyword names are returned unchanged.
func Escape(name string) string {
	if IsKeyword(name) {
		return "_" + name
	}
	return name
}
