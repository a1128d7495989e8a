package shader

import (
	"regexp"
	"strings"
)

// Import directives recognized across dialects. These are scanned textually;
// full parsing happens later in the dialect converters.
var (
	includeRe = regexp.MustCompile(`^\s*#include\s+["<]([^">]+)[">]`)
	importRe  = regexp.MustCompile(`^\s*#import\s+([A-Za-z_][\w./-]*)`)

	// Function definitions across GLSL/HLSL/WGSL-ish sources, e.g.
	// "float noise(vec2 p) {" or "fn blur(uv: vec2<f32>) -> vec4<f32> {".
	funcDefRe = regexp.MustCompile(`^\s*(?:fn\s+([A-Za-z_]\w*)\s*\(|(?:void|float|u?int|bool|[iub]?vec[234]|float[234](?:x[234])?|mat[234](?:x[234])?|half[234]?)\s+([A-Za-z_]\w*)\s*\()`)
)

// ScanImports extracts the import identities referenced by source text.
// Both #include "x" / #include <x> and #import x forms are recognized.
// Duplicates are collapsed, order of first appearance preserved.
func ScanImports(source string) []ModuleIdentity {
	var out []ModuleIdentity
	seen := map[ModuleIdentity]struct{}{}
	for _, line := range strings.Split(source, "\n") {
		var path string
		if m := includeRe.FindStringSubmatch(line); m != nil {
			path = m[1]
		} else if m := importRe.FindStringSubmatch(line); m != nil {
			path = m[1]
		} else {
			continue
		}
		id := IdentityFromPath(path)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ScanExports extracts the names of functions the source declares. This is
// a lenient textual scan; it intentionally overmatches rather than missing
// real declarations.
func ScanExports(source string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, line := range strings.Split(source, "\n") {
		m := funcDefRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if name == "" || name == "main" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// IdentityFromPath reduces an import path to a module identity: the file
// stem with any directory prefix and extension stripped.
func IdentityFromPath(path string) ModuleIdentity {
	name := path
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	return ModuleIdentity(name)
}
