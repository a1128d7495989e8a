// Copyright 2025 The Shader Studio Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"regexp"
	"strings"
)

// Builtin and intrinsic rewrites are literal substitution passes over the
// extracted function bodies. This is deliberately not a real tokenizer:
// the authoring workflow favors lenient, diagnostic-emitting conversion
// over strict parsing. See the package comment.

var (
	textureCallRe = regexp.MustCompile(`\btexture(?:2D)?\s*\(\s*([A-Za-z_]\w*)\s*,`)
	localDeclRe   = regexp.MustCompile(`^(\s*)(float|int|uint|bool|[iub]?vec[234]|mat[234](?:x[234])?)\s+([A-Za-z_]\w*)\s*(=|;)`)
	constructorRe = regexp.MustCompile(`\b(vec[234]|ivec[234]|uvec[234]|mat[234])\s*\(`)
)

// identifier substitutions applied to every body line, in order.
var identRewrites = []struct{ from, to string }{
	{"gl_FragCoord", "position"},
	{"gl_FragColor", "out_color"},
	{"gl_FragDepth", "frag_depth"},
}

// intrinsic renames with identical call shapes in both languages.
var intrinsicRewrites = []struct {
	from *regexp.Regexp
	to   string
}{
	// Only the two-argument atan form becomes atan2.
	{regexp.MustCompile(`\batan\(([^()]*,[^()]*)\)`), "atan2($1)"},
	{regexp.MustCompile(`\binversesqrt\(`), "inverseSqrt("},
	{regexp.MustCompile(`\bdFdx\(`), "dpdx("},
	{regexp.MustCompile(`\bdFdy\(`), "dpdy("},
}

// scalar cast rewrites, word-bounded so "uint(" is not caught by "int(".
var castRewrites = []struct {
	from *regexp.Regexp
	to   string
}{
	{regexp.MustCompile(`\bfloat\(`), "f32("},
	{regexp.MustCompile(`\buint\(`), "u32("},
	{regexp.MustCompile(`\bint\(`), "i32("},
}

// constructorNames maps GLSL constructor spellings to WGSL ones.
var constructorNames = map[string]string{
	"vec2": "vec2<f32>", "vec3": "vec3<f32>", "vec4": "vec4<f32>",
	"ivec2": "vec2<i32>", "ivec3": "vec3<i32>", "ivec4": "vec4<i32>",
	"uvec2": "vec2<u32>", "uvec3": "vec3<u32>", "uvec4": "vec4<u32>",
	"mat2": "mat2x2<f32>", "mat3": "mat3x3<f32>", "mat4": "mat4x4<f32>",
}

// RewriteBody converts a GLSL function body to WGSL text, one line at a
// time. It is shared with the ISF converter, whose bodies are GLSL.
func RewriteBody(body string) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = RewriteLine(line)
	}
	return strings.Join(lines, "\n")
}

// RewriteLine converts one GLSL statement line to WGSL.
func RewriteLine(line string) string {
	// Local declarations: "float x = ..." -> "var x: f32 = ...".
	if m := localDeclRe.FindStringSubmatch(line); m != nil {
		if t, ok := MapType(m[2]); ok {
			rest := line[len(m[0]):]
			if m[4] == ";" {
				line = fmt.Sprintf("%svar %s: %s;%s", m[1], m[3], t, rest)
			} else {
				line = fmt.Sprintf("%svar %s: %s =%s", m[1], m[3], t, rest)
			}
		}
	}

	// Constructors before intrinsics, so "mat3(" is not half-rewritten.
	line = constructorRe.ReplaceAllStringFunc(line, func(s string) string {
		name := strings.TrimRight(strings.TrimSuffix(s, "("), " \t")
		if to, ok := constructorNames[name]; ok {
			return to + "("
		}
		return s
	})

	// texture(tex, uv) -> textureSample(tex, tex_sampler, uv).
	line = textureCallRe.ReplaceAllString(line, "textureSample($1, ${1}_sampler,")

	for _, r := range intrinsicRewrites {
		line = r.from.ReplaceAllString(line, r.to)
	}
	for _, r := range identRewrites {
		line = strings.ReplaceAll(line, r.from, r.to)
	}
	for _, r := range castRewrites {
		line = r.from.ReplaceAllString(line, r.to)
	}

	return line
}

// RewriteParams converts a GLSL parameter list ("vec2 p, float t") to WGSL
// ("p: vec2<f32>, t: f32"). Qualifiers in, out and inout are dropped; an
// unmapped type falls back to its placeholder form.
func RewriteParams(params string) string {
	params = strings.TrimSpace(params)
	if params == "" || params == "void" {
		return ""
	}
	parts := strings.Split(params, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		fields := strings.Fields(strings.TrimSpace(p))
		// Strip parameter qualifiers.
		for len(fields) > 1 {
			switch fields[0] {
			case "in", "out", "inout", "const", "highp", "mediump", "lowp":
				fields = fields[1:]
				continue
			}
			break
		}
		if len(fields) < 2 {
			out = append(out, strings.TrimSpace(p))
			continue
		}
		typeName, argName := fields[0], fields[1]
		t, ok := MapType(typeName)
		if !ok {
			t = placeholderFor(typeName)
		}
		out = append(out, fmt.Sprintf("%s: %s", argName, t))
	}
	return strings.Join(out, ", ")
}
