// Copyright 2025 The Shader Studio Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"regexp"
	"strings"
)

// Intrinsic and builtin rewrites are literal substitution passes, matching
// the lenient conversion policy shared with the GLSL converter.

var (
	sampleCallRe = regexp.MustCompile(`\b([A-Za-z_]\w*)\.Sample\s*\(\s*[A-Za-z_]\w*\s*,`)
	tex2DCallRe  = regexp.MustCompile(`\btex2D\s*\(\s*([A-Za-z_]\w*)\s*,`)
	mulCallRe    = regexp.MustCompile(`\bmul\s*\(\s*([^(),]+?)\s*,\s*([^()]+?)\s*\)`)
	localDeclRe  = regexp.MustCompile(`^(\s*)(float|half|u?int|bool|dword|(?:float|half|u?int|bool)[234]|float[234]x[234])\s+([A-Za-z_]\w*)\s*(=|;)`)
	ctorCallRe   = regexp.MustCompile(`\b(float[234](?:x[234])?|u?int[234])\s*\(`)
)

var intrinsicRewrites = []struct {
	from *regexp.Regexp
	to   string
}{
	{regexp.MustCompile(`\blerp\(`), "mix("},
	{regexp.MustCompile(`\bfrac\(`), "fract("},
	{regexp.MustCompile(`\brsqrt\(`), "inverseSqrt("},
	{regexp.MustCompile(`\bddx\(`), "dpdx("},
	{regexp.MustCompile(`\bddy\(`), "dpdy("},
}

// RewriteLine converts one HLSL statement line to WGSL.
func RewriteLine(line string) string {
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

	// mul(a, b) becomes an infix product. Nested calls in the arguments
	// defeat the regex and pass through unchanged.
	line = mulCallRe.ReplaceAllString(line, "($1 * $2)")

	// tex.Sample(state, uv) -> textureSample(tex, tex_sampler, uv).
	// Declared sampler states are folded into the texture binding pair.
	line = sampleCallRe.ReplaceAllString(line, "textureSample($1, ${1}_sampler,")
	line = tex2DCallRe.ReplaceAllString(line, "textureSample($1, ${1}_sampler,")

	line = ctorCallRe.ReplaceAllStringFunc(line, func(s string) string {
		name := strings.TrimRight(strings.TrimSuffix(s, "("), " \t")
		if to, ok := constructorNames[name]; ok {
			return to + "("
		}
		return s
	})

	for _, r := range intrinsicRewrites {
		line = r.from.ReplaceAllString(line, r.to)
	}
	return line
}

// RewriteParams converts an HLSL parameter list to WGSL, dropping semantic
// annotations (": TEXCOORD0") and qualifiers.
func RewriteParams(params string) string {
	params = strings.TrimSpace(params)
	if params == "" || params == "void" {
		return ""
	}
	parts := strings.Split(params, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if i := strings.Index(p, ":"); i >= 0 {
			p = p[:i]
		}
		fields := strings.Fields(strings.TrimSpace(p))
		for len(fields) > 1 {
			switch fields[0] {
			case "in", "out", "inout", "const", "uniform":
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
