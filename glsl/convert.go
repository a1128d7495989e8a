// Copyright 2025 The Shader Studio Authors
// SPDX-License-Identifier: MIT

package glsl

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
	CodeUnknownType  = "GLSL0001"
	CodeUnbalanced   = "GLSL0002"
	CodeNoEntryPoint = "GLSL0003"
	CodeBadVersion   = "GLSL0004"
)

var (
	versionRe    = regexp.MustCompile(`^\s*#version\s+(\S+)(?:\s+(\w+))?`)
	pragmaMetaRe = regexp.MustCompile(`^\s*//\s*@(name|author|description|category|tags)\s*:?\s*(.+?)\s*$`)
	uniformRe    = regexp.MustCompile(`^\s*(?:layout\s*\(([^)]*)\)\s*)?uniform\s+(\w+)\s+([A-Za-z_]\w*)\s*(?:\[\s*(\d+)\s*\])?\s*;`)
	funcHeadRe   = regexp.MustCompile(`^\s*(void|float|u?int|bool|[iub]?vec[234]|mat[234](?:x[234])?)\s+([A-Za-z_]\w*)\s*\(([^)]*)\)\s*\{`)
	layoutSetRe  = regexp.MustCompile(`set\s*=\s*(\d+)`)
)

type uniformDecl struct {
	typeName  string
	name      string
	arraySize int
	group     uint32
	line      int
}

// Function is one extracted function definition: a mapped signature plus
// its raw body lines. Shared with the isf package, whose bodies are GLSL.
type Function struct {
	RetType string
	Name    string
	Params  string
	Body    []string
	Line    int
}

// Convert translates GLSL fragment-shader source into a WGSL artifact.
// Conversion never aborts on recoverable issues; problems are recorded as
// diagnostics and the output degrades gracefully.
func Convert(source, logicalName string) (*shader.Artifact, *diag.Set) {
	ds := diag.NewSet()
	meta := shader.Metadata{Name: logicalName}

	lines := strings.Split(source, "\n")
	scanMetadata(lines, &meta, ds, logicalName)
	CheckBalance(lines, ds, logicalName)

	uniforms := extractUniforms(lines)
	funcs, mainFn := ExtractFunctions(lines)

	art := emit(logicalName, meta, uniforms, funcs, mainFn, ds)
	return art, ds
}

// scanMetadata reads the #version directive and @key comment annotations.
func scanMetadata(lines []string, meta *shader.Metadata, ds *diag.Set, file string) {
	for i, line := range lines {
		if m := versionRe.FindStringSubmatch(line); m != nil {
			if _, err := strconv.Atoi(m[1]); err != nil {
				ds.AddError(CodeBadVersion, fmt.Sprintf("malformed #version directive %q", m[1]),
					diag.Location{File: file, Line: i + 1, Column: 1})
				continue
			}
			meta.Version = "glsl-" + m[1]
			continue
		}
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

// CheckBalance counts braces, parentheses and brackets line by line and
// records an error for each kind that closes more than it opened or stays
// open at end of file. Bodies are still emitted textually afterwards.
func CheckBalance(lines []string, ds *diag.Set, file string) {
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
		// Comment text does not participate in balancing.
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

// extractUniforms collects module-scope uniform declarations in source
// order. The bind group defaults to 0 unless a layout(set = N) says
// otherwise.
func extractUniforms(lines []string) []uniformDecl {
	var out []uniformDecl
	for i, line := range lines {
		m := uniformRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		d := uniformDecl{typeName: m[2], name: m[3], line: i + 1}
		if m[4] != "" {
			d.arraySize, _ = strconv.Atoi(m[4])
		}
		if m[1] != "" {
			if sm := layoutSetRe.FindStringSubmatch(m[1]); sm != nil {
				g, _ := strconv.Atoi(sm[1])
				d.group = uint32(g)
			}
		}
		out = append(out, d)
	}
	return out
}

// ExtractFunctions walks the source collecting function definitions whose
// header and opening brace share a line. The function named main becomes
// the entry-point candidate and is returned separately.
func ExtractFunctions(lines []string) (funcs []Function, mainFn *Function) {
	i := 0
	for i < len(lines) {
		m := funcHeadRe.FindStringSubmatch(lines[i])
		if m == nil {
			i++
			continue
		}
		f := Function{RetType: m[1], Name: m[2], Params: m[3], Line: i + 1}

		depth := strings.Count(lines[i], "{") - strings.Count(lines[i], "}")
		if depth == 0 {
			// Single-line definition: the body sits between the braces.
			rest := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(lines[i][len(m[0]):]), "}"))
			if rest != "" {
				f.Body = append(f.Body, rest)
			}
		}
		i++
		for i < len(lines) && depth > 0 {
			depth += strings.Count(lines[i], "{") - strings.Count(lines[i], "}")
			if depth > 0 {
				f.Body = append(f.Body, lines[i])
			} else {
				// Closing line may carry a trailing statement fragment.
				trimmed := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(lines[i]), "}"))
				if trimmed != "" {
					f.Body = append(f.Body, trimmed)
				}
			}
			i++
		}

		if f.Name == "main" && f.RetType == "void" {
			fn := f
			mainFn = &fn
		} else {
			funcs = append(funcs, f)
		}
	}
	return funcs, mainFn
}

// emit renders the artifact: binding declarations, helper functions and the
// fragment entry point.
func emit(file string, meta shader.Metadata, uniforms []uniformDecl, funcs []Function, mainFn *Function, ds *diag.Set) *shader.Artifact {
	art := &shader.Artifact{Meta: meta}
	var sb strings.Builder
	fmt.Fprintf(&sb, "// %s (converted from GLSL)\n\n", meta.Name)

	namer := wgsl.NewNamer()
	namer.Reserve("position")
	namer.Reserve("out_color")
	namer.Reserve("fs_main")

	// When a texture and a scalar share a name, the texture keeps the
	// canonical identifier and wins the texture/sampler binding pair;
	// the scalar is suffixed and keeps its single slot.
	for _, u := range uniforms {
		if IsTextureType(u.typeName) {
			name := wgsl.Sanitize(u.name)
			if !namer.IsUsed(name) {
				namer.Reserve(name)
				namer.Reserve(wgsl.SamplerName(name))
			}
		}
	}

	alloc := wgsl.NewBindingAllocator()
	for _, u := range uniforms {
		if IsTextureType(u.typeName) {
			name := wgsl.Sanitize(u.name)
			tex, smp := alloc.NextPair(u.group)
			sb.WriteString(wgsl.TextureDecl(u.group, tex, name) + "\n")
			sb.WriteString(wgsl.SamplerDecl(u.group, smp, name) + "\n")
			art.Textures = append(art.Textures, shader.TextureDescriptor{
				Name: name, Group: u.group, Binding: tex, SamplerBinding: smp,
			})
			continue
		}

		t, ok := MapType(u.typeName)
		if !ok {
			t = placeholderFor(u.typeName)
			ds.AddWarning(CodeUnknownType,
				fmt.Sprintf("no WGSL mapping for GLSL type %q, substituting placeholder scalar", u.typeName),
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
	if len(uniforms) > 0 {
		sb.WriteString("\n")
	}

	for _, f := range funcs {
		emitFunction(&sb, f)
		art.Functions = append(art.Functions, shader.FunctionSignature{
			Name:   f.Name,
			Params: splitParamTypes(f.Params),
			Return: f.RetType,
		})
	}

	sb.WriteString("@fragment\n")
	sb.WriteString("fn fs_main(@builtin(position) position: vec4<f32>) -> @location(0) vec4<f32> {\n")
	if mainFn != nil {
		sb.WriteString("    var out_color: vec4<f32> = vec4<f32>(0.0, 0.0, 0.0, 1.0);\n")
		for _, line := range mainFn.Body {
			sb.WriteString(RewriteLine(line) + "\n")
		}
		sb.WriteString("    return out_color;\n")
	} else {
		ds.AddInfo(CodeNoEntryPoint, "no main function found, synthesized identity fragment entry point",
			diag.Location{File: file, Line: 1, Column: 1})
		sb.WriteString("    return vec4<f32>(0.0, 0.0, 0.0, 1.0);\n")
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

// emitFunction renders one helper function with mapped signature types and
// a rewritten body.
func emitFunction(sb *strings.Builder, f Function) {
	ret := ""
	if f.RetType != "void" {
		t, ok := MapType(f.RetType)
		if !ok {
			t = placeholderFor(f.RetType)
		}
		ret = fmt.Sprintf(" -> %s", t)
	}
	fmt.Fprintf(sb, "fn %s(%s)%s {\n", f.Name, RewriteParams(f.Params), ret)
	for _, line := range f.Body {
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
