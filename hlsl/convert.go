// Copyright 2025 The Shader Studio Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/compiling-org/WGSL-Shader-Studio-sub002/diag"
	"github.com/compiling-org/WGSL-Shader-Studio-sub002/shader"
	"github.com/compiling-org/WGSL-Shader-Studio-sub002/wgsl"
)

// Diagnostic codes emitted by this converter.
const (
	CodeUnknownType   = "HLSL0001"
	CodeUnbalanced    = "HLSL0002"
	CodeNoEntryPoint  = "HLSL0003"
	CodeSamplerFolded = "HLSL0004"
	CodeMissingReturn = "HLSL0005"
)

var (
	pragmaMetaRe = regexp.MustCompile(`^\s*//\s*@(name|author|description|category|tags)\s*:?\s*(.+?)\s*$`)
	cbufferRe    = regexp.MustCompile(`^\s*cbuffer\s+([A-Za-z_]\w*)\s*(?::\s*register\s*\(\s*b(\d+)(?:\s*,\s*space(\d+))?\s*\))?`)
	fieldRe      = regexp.MustCompile(`^\s*(\w+)\s+([A-Za-z_]\w*)\s*(?:\[\s*(\d+)\s*\])?\s*;`)
	textureRe    = regexp.MustCompile(`^\s*(Texture2D|Texture3D|TextureCube)(?:<[^>]*>)?\s+([A-Za-z_]\w*)\s*(?::\s*register\s*\(\s*t(\d+)(?:\s*,\s*space(\d+))?\s*\))?\s*;`)
	samplerRe    = regexp.MustCompile(`^\s*SamplerState\s+([A-Za-z_]\w*)\s*(?::\s*register\s*\([^)]*\))?\s*;`)
	funcHeadRe   = regexp.MustCompile(`^\s*(\w+)\s+([A-Za-z_]\w*)\s*\(([^)]*)\)\s*(?::\s*(\w+))?\s*\{`)
	outTargetRe  = regexp.MustCompile(`(?i)\b(?:out|inout)\s+\w+\s+([A-Za-z_]\w*)\s*:\s*SV_Target\d?\b`)
	returnStmtRe = regexp.MustCompile(`\breturn\b`)
	bareReturnRe = regexp.MustCompile(`\breturn\s*;`)
)

type uniformDecl struct {
	typeName  string
	name      string
	arraySize int
	group     uint32
	line      int
}

type textureDecl struct {
	name  string
	group uint32
	line  int
}

type funcDecl struct {
	retType  string
	name     string
	params   string
	semantic string
	body     []string
	line     int
}

// Convert translates HLSL pixel-shader source into a WGSL artifact.
// Like the GLSL converter it degrades gracefully: recoverable issues become
// diagnostics and the body is still emitted textually.
func Convert(source, logicalName string) (*shader.Artifact, *diag.Set) {
	ds := diag.NewSet()
	meta := shader.Metadata{Name: logicalName, Version: "hlsl"}

	lines := strings.Split(source, "\n")
	scanMetadata(lines, &meta)
	checkBalance(lines, ds, logicalName)

	uniforms, textures := extractResources(lines, ds, logicalName)
	funcs, entry := extractFunctions(lines)

	art := emit(logicalName, meta, uniforms, textures, funcs, entry, ds)
	return art, ds
}

func scanMetadata(lines []string, meta *shader.Metadata) {
	for _, line := range lines {
		m := pragmaMetaRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		switch m[1] {
		case "name":
			meta.Name = m[2]
		case "author":
			meta.Author = m[2]
		case "description":
			meta.Description = m[2]
		case "category":
			meta.Category = m[2]
		case "tags":
			for _, tag := range strings.Split(m[2], ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					meta.Tags = append(meta.Tags, tag)
				}
			}
		}
	}
}

// checkBalance mirrors the GLSL converter's per-line balance counting.
func checkBalance(lines []string, ds *diag.Set, file string) {
	type tracker struct {
		open, close rune
		name        string
		depth       int
		reported    bool
	}
	trackers := []*tracker{
		{open: '{', close: '}', name: "brace"},
		{open: '(', close: ')', name: "parenthesis"},
		{open: '[', close: ']', name: "bracket"},
	}
	for i, line := range lines {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		for _, r := range line {
			for _, t := range trackers {
				switch r {
				case t.open:
					t.depth++
				case t.close:
					t.depth--
					if t.depth < 0 && !t.reported {
						t.reported = true
						ds.AddError(CodeUnbalanced, fmt.Sprintf("unmatched closing %s", t.name),
							diag.Location{File: file, Line: i + 1, Column: 1})
					}
				}
			}
		}
	}
	for _, t := range trackers {
		if t.depth > 0 {
			ds.AddError(CodeUnbalanced, fmt.Sprintf("%d unclosed %s(s) at end of file", t.depth, t.name),
				diag.Location{File: file, Line: len(lines), Column: 1})
		}
	}
}

// extractResources collects cbuffer fields, texture declarations and
// top-level globals. Sampler states are folded into texture pairs and
// surfaced as an info diagnostic.
func extractResources(lines []string, ds *diag.Set, file string) ([]uniformDecl, []textureDecl) {
	var uniforms []uniformDecl
	var textures []textureDecl

	depth := 0
	inCbuffer := false
	cbufferGroup := uint32(0)

	for i, line := range lines {
		code := line
		if idx := strings.Index(code, "//"); idx >= 0 {
			code = code[:idx]
		}

		if depth == 0 {
			if m := cbufferRe.FindStringSubmatch(code); m != nil {
				inCbuffer = true
				cbufferGroup = 0
				if m[3] != "" {
					g, _ := strconv.Atoi(m[3])
					cbufferGroup = uint32(g)
				}
			} else if m := textureRe.FindStringSubmatch(code); m != nil {
				var group uint32
				if m[4] != "" {
					g, _ := strconv.Atoi(m[4])
					group = uint32(g)
				}
				textures = append(textures, textureDecl{name: m[2], group: group, line: i + 1})
			} else if m := samplerRe.FindStringSubmatch(code); m != nil {
				ds.AddInfo(CodeSamplerFolded,
					fmt.Sprintf("sampler state %q folded into its texture's binding pair", m[1]),
					diag.Location{File: file, Line: i + 1, Column: 1})
			}
		}

		if inCbuffer && depth == 1 {
			if m := fieldRe.FindStringSubmatch(code); m != nil && !isStatementKeyword(m[1]) {
				d := uniformDecl{typeName: m[1], name: m[2], group: cbufferGroup, line: i + 1}
				if m[3] != "" {
					d.arraySize, _ = strconv.Atoi(m[3])
				}
				uniforms = append(uniforms, d)
			}
		}

		opens := strings.Count(code, "{")
		closes := strings.Count(code, "}")
		depth += opens - closes
		if depth <= 0 {
			depth = 0
			inCbuffer = false
		}
	}
	return uniforms, textures
}

func isStatementKeyword(word string) bool {
	switch word {
	case "return", "if", "else", "for", "while", "break", "continue", "struct":
		return true
	}
	return false
}

// extractFunctions collects function definitions. A function whose return
// semantic is SV_Target (or that is named main) becomes the entry point.
func extractFunctions(lines []string) (funcs []funcDecl, entry *funcDecl) {
	i := 0
	for i < len(lines) {
		m := funcHeadRe.FindStringSubmatch(lines[i])
		if m == nil || m[1] == "cbuffer" || m[1] == "struct" || isStatementKeyword(m[1]) {
			i++
			continue
		}
		f := funcDecl{retType: m[1], name: m[2], params: m[3], semantic: m[4], line: i + 1}

		depth := strings.Count(lines[i], "{") - strings.Count(lines[i], "}")
		i++
		for i < len(lines) && depth > 0 {
			depth += strings.Count(lines[i], "{") - strings.Count(lines[i], "}")
			if depth > 0 {
				f.body = append(f.body, lines[i])
			} else {
				trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(lines[i]), "}"))
				if trimmed != "" {
					f.body = append(f.body, trimmed)
				}
			}
			i++
		}

		isEntry := strings.EqualFold(f.semantic, "SV_Target") ||
			strings.EqualFold(f.semantic, "SV_Target0") ||
			(f.name == "main" && entry == nil)
		if isEntry && entry == nil {
			fn := f
			entry = &fn
		} else {
			funcs = append(funcs, f)
		}
	}
	return funcs, entry
}

func emit(file string, meta shader.Metadata, uniforms []uniformDecl, textures []textureDecl, funcs []funcDecl, entry *funcDecl, ds *diag.Set) *shader.Artifact {
	art := &shader.Artifact{Meta: meta}
	var sb strings.Builder
	fmt.Fprintf(&sb, "// %s (converted from HLSL)\n\n", meta.Name)

	namer := wgsl.NewNamer()
	namer.Reserve("position")
	namer.Reserve("fs_main")
	namer.Reserve("out_color")

	alloc := wgsl.NewBindingAllocator()

	// Textures first within their declaration order keeps the pair slots
	// consecutive; cbuffer fields follow in source order.
	for _, td := range textures {
		name := wgsl.Sanitize(td.name)
		namer.Reserve(name)
		namer.Reserve(wgsl.SamplerName(name))
		tex, smp := alloc.NextPair(td.group)
		sb.WriteString(wgsl.TextureDecl(td.group, tex, name) + "\n")
		sb.WriteString(wgsl.SamplerDecl(td.group, smp, name) + "\n")
		art.Textures = append(art.Textures, shader.TextureDescriptor{
			Name: name, Group: td.group, Binding: tex, SamplerBinding: smp,
		})
	}

	for _, u := range uniforms {
		t, ok := MapType(u.typeName)
		if !ok {
			t = placeholderFor(u.typeName)
			ds.AddWarning(CodeUnknownType,
				fmt.Sprintf("no WGSL mapping for HLSL type %q, substituting placeholder scalar", u.typeName),
				diag.Location{File: file, Line: u.line, Column: 1})
		}
		if u.arraySize > 0 {
			t = wgsl.Array{Elem: t, Size: u.arraySize}
		}
		name := namer.Call(u.name)
		binding := alloc.Next(u.group)
		sb.WriteString(wgsl.UniformDecl(u.group, binding, name, t) + "\n")
		art.Uniforms = append(art.Uniforms, shader.UniformDescriptor{
			Name: name, Type: t, Group: u.group, Binding: binding,
		})
	}
	if len(uniforms)+len(textures) > 0 {
		sb.WriteString("\n")
	}

	for _, f := range funcs {
		emitFunction(&sb, f)
		art.Functions = append(art.Functions, shader.FunctionSignature{
			Name:   f.name,
			Params: splitParamTypes(f.params),
			Return: f.retType,
		})
	}

	sb.WriteString("@fragment\n")
	sb.WriteString("fn fs_main(@builtin(position) position: vec4<f32>) -> @location(0) vec4<f32> {\n")
	switch {
	case entry == nil:
		ds.AddInfo(CodeNoEntryPoint, "no SV_Target entry point found, synthesized identity fragment entry point",
			diag.Location{File: file, Line: 1, Column: 1})
		sb.WriteString("    return vec4<f32>(0.0, 0.0, 0.0, 1.0);\n")
	case entry.retType == "void":
		emitOutParamEntry(&sb, entry)
	default:
		hasReturn := false
		for _, line := range entry.body {
			if returnStmtRe.MatchString(line) {
				hasReturn = true
			}
			sb.WriteString(RewriteLine(line) + "\n")
		}
		if !hasReturn {
			ds.AddError(CodeMissingReturn,
				fmt.Sprintf("entry point %q never returns a value", entry.name),
				diag.Location{File: file, Line: entry.line, Column: 1})
			sb.WriteString("    return vec4<f32>(0.0, 0.0, 0.0, 1.0);\n")
		}
	}
	sb.WriteString("}\n")
	art.EntryPoints = append(art.EntryPoints, "fs_main")

	art.Source = sb.String()
	for _, d := range ds.Diagnostics() {
		switch d.Severity {
		case diag.SeverityError:
			art.Errors = append(art.Errors, d.Message)
		case diag.SeverityWarning:
			art.Warnings = append(art.Warnings, d.Message)
		}
	}
	return art
}

// emitOutParamEntry scaffolds a void entry point that writes its result to
// an SV_Target out parameter instead of returning it. The out variable is
// renamed to out_color, declared up front and returned at the end, matching
// the GLSL converter's gl_FragColor scaffold.
func emitOutParamEntry(sb *strings.Builder, entry *funcDecl) {
	sb.WriteString("    var out_color: vec4<f32> = vec4<f32>(0.0, 0.0, 0.0, 1.0);\n")
	var outRe *regexp.Regexp
	if m := outTargetRe.FindStringSubmatch(entry.params); m != nil {
		outRe = regexp.MustCompile(`\b` + regexp.QuoteMeta(m[1]) + `\b`)
	}
	for _, line := range entry.body {
		line = RewriteLine(line)
		if outRe != nil {
			line = outRe.ReplaceAllString(line, "out_color")
		}
		sb.WriteString(bareReturnRe.ReplaceAllString(line, "return out_color;") + "\n")
	}
	sb.WriteString("    return out_color;\n")
}

func emitFunction(sb *strings.Builder, f funcDecl) {
	ret := ""
	if f.retType != "void" {
		t, ok := MapType(f.retType)
		if !ok {
			t = placeholderFor(f.retType)
		}
		ret = fmt.Sprintf(" -> %s", t)
	}
	fmt.Fprintf(sb, "fn %s(%s)%s {\n", f.name, RewriteParams(f.params), ret)
	for _, line := range f.body {
		sb.WriteString(RewriteLine(line) + "\n")
	}
	sb.WriteString("}\n\n")
}

func placeholderFor(typeName string) wgsl.Type {
	return wgsl.Placeholder{Source: typeName}
}

func splitParamTypes(params string) []string {
	params = strings.TrimSpace(params)
	if params == "" || params == "void" {
		return nil
	}
	parts := strings.Split(params, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
