// Copyright 2025 The Shader Studio Authors
// SPDX-License-Identifier: MIT

package isf

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/compiling-org/WGSL-Shader-Studio-sub002/diag"
	"github.com/compiling-org/WGSL-Shader-Studio-sub002/glsl"
	"github.com/compiling-org/WGSL-Shader-Studio-sub002/shader"
	"github.com/compiling-org/WGSL-Shader-Studio-sub002/wgsl"
)

// Diagnostic codes emitted by this converter.
const (
	CodeBadMetadata     = "ISF0001"
	CodeUnknownType     = "ISF0002"
	CodeNoEntryPoint    = "ISF0003"
	CodeUndeclaredImage = "ISF0004"
)

// Input is one entry of the metadata INPUTS array. DEFAULT, MIN and MAX may
// be a number or an array of numbers depending on the input type.
type Input struct {
	Name    string `json:"NAME"`
	Type    string `json:"TYPE"`
	Label   string `json:"LABEL"`
	Default any    `json:"DEFAULT"`
	Min     any    `json:"MIN"`
	Max     any    `json:"MAX"`
}

// Pass is one entry of the metadata PASSES array.
type Pass struct {
	Target     string `json:"TARGET"`
	Persistent bool   `json:"PERSISTENT"`
	Float      bool   `json:"FLOAT"`
}

// metadata is the leading JSON comment block of an ISF file.
type metadata struct {
	Name              string   `json:"NAME"`
	Description       string   `json:"DESCRIPTION"`
	Credit            string   `json:"CREDIT"`
	Isfvsn            any      `json:"ISFVSN"`
	Vsn               any      `json:"VSN"`
	Categories        []string `json:"CATEGORIES"`
	Inputs            []Input  `json:"INPUTS"`
	Passes            []Pass   `json:"PASSES"`
	PersistentBuffers []string `json:"PERSISTENT_BUFFERS"`
}

var (
	imgCallRe    = regexp.MustCompile(`\bIMG_(?:NORM_PIXEL|PIXEL|THIS_PIXEL|THIS_NORM_PIXEL)\s*\(\s*([A-Za-z_]\w*)`)
	imgPixelRe   = regexp.MustCompile(`\bIMG_(?:NORM_)?PIXEL\s*\(\s*([A-Za-z_]\w*)\s*,`)
	imgThisRe    = regexp.MustCompile(`\bIMG_THIS_(?:NORM_)?PIXEL\s*\(\s*([A-Za-z_]\w*)\s*\)`)
	timeWordRe   = regexp.MustCompile(`\bTIME\b`)
	renderSizeRe = regexp.MustCompile(`\bRENDERSIZE\b`)
	fragNormRe   = regexp.MustCompile(`\bisf_FragNormCoord\b`)
)

// Convert translates an ISF shader (JSON metadata block + GLSL body) into
// a WGSL artifact. A structurally unparsable metadata block is an error
// diagnostic, after which conversion continues with defaults.
func Convert(source, logicalName string) (*shader.Artifact, *diag.Set) {
	ds := diag.NewSet()

	metaText, body, metaLines := splitMetadata(source)
	meta := parseMetadata(metaText, logicalName, ds)

	art := &shader.Artifact{Meta: shader.Metadata{
		Name:        orDefault(meta.Name, logicalName),
		Description: meta.Description,
		Author:      meta.Credit,
		Version:     versionString(meta),
		Tags:        meta.Categories,
	}}
	if len(meta.Categories) > 0 {
		art.Meta.Category = meta.Categories[0]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "// %s (converted from ISF)\n\n", art.Meta.Name)

	namer := wgsl.NewNamer()
	namer.Reserve("position")
	namer.Reserve("out_color")
	namer.Reserve("fs_main")
	namer.Reserve("time")
	namer.Reserve("resolution")

	alloc := wgsl.NewBindingAllocator()
	imageInputs := emitBindings(&sb, art, meta.Inputs, namer, alloc, ds, logicalName)

	bodyLines := strings.Split(body, "\n")
	glsl.CheckBalance(bodyLines, ds, logicalName)
	checkImageReferences(bodyLines, imageInputs, metaLines, ds, logicalName)

	rewritten := make([]string, len(bodyLines))
	for i, line := range bodyLines {
		rewritten[i] = rewriteISFBuiltins(line)
	}
	funcs, mainFn := glsl.ExtractFunctions(rewritten)

	for _, f := range funcs {
		ret := ""
		if f.RetType != "void" {
			t, ok := glsl.MapType(f.RetType)
			if !ok {
				t = wgsl.Placeholder{Source: f.RetType}
			}
			ret = fmt.Sprintf(" -> %s", t)
		}
		fmt.Fprintf(&sb, "fn %s(%s)%s {\n", f.Name, glsl.RewriteParams(f.Params), ret)
		for _, line := range f.Body {
			sb.WriteString(glsl.RewriteLine(line) + "\n")
		}
		sb.WriteString("}\n\n")
		art.Functions = append(art.Functions, shader.FunctionSignature{
			Name: f.Name, Return: f.RetType,
		})
	}

	sb.WriteString("@fragment\n")
	sb.WriteString("fn fs_main(@builtin(position) position: vec4<f32>) -> @location(0) vec4<f32> {\n")
	sb.WriteString("    let isf_uv: vec2<f32> = position.xy / resolution;\n")
	if mainFn != nil {
		sb.WriteString("    var out_color: vec4<f32> = vec4<f32>(0.0, 0.0, 0.0, 1.0);\n")
		for _, line := range mainFn.Body {
			sb.WriteString(glsl.RewriteLine(line) + "\n")
		}
		sb.WriteString("    return out_color;\n")
	} else {
		ds.AddInfo(CodeNoEntryPoint, "no main function found, synthesized identity fragment entry point",
			diag.Location{File: logicalName, Line: metaLines + 1, Column: 1})
		sb.WriteString("    return vec4<f32>(isf_uv.x, isf_uv.y, 0.0, 1.0);\n")
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
	return art, ds
}

// splitMetadata separates the leading /*{ ... }*/ comment from the GLSL
// body. metaLines is the number of source lines the block spans, used to
// keep body diagnostics pointing at real file lines.
func splitMetadata(source string) (metaText, body string, metaLines int) {
	trimmed := strings.TrimLeft(source, " \t\r\n")
	if !strings.HasPrefix(trimmed, "/*") {
		return "", source, 0
	}
	end := strings.Index(source, "*/")
	if end < 0 {
		return "", source, 0
	}
	start := strings.Index(source, "/*")
	metaText = source[start+2 : end]
	body = source[end+2:]
	metaLines = strings.Count(source[:end+2], "\n")
	return metaText, body, metaLines
}

// parseMetadata decodes the JSON block. Malformed JSON is an error
// diagnostic and an empty metadata object; conversion continues.
func parseMetadata(metaText, file string, ds *diag.Set) metadata {
	var meta metadata
	if strings.TrimSpace(metaText) == "" {
		return meta
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(metaText)), &meta); err != nil {
		ds.AddError(CodeBadMetadata, fmt.Sprintf("unparsable metadata block: %v", err),
			diag.Location{File: file, Line: 1, Column: 1})
		return metadata{}
	}
	return meta
}

// emitBindings declares the builtin time/resolution uniforms followed by
// every metadata input, and returns the set of declared image input names.
func emitBindings(sb *strings.Builder, art *shader.Artifact, inputs []Input, namer *wgsl.Namer, alloc *wgsl.BindingAllocator, ds *diag.Set, file string) map[string]struct{} {
	// TIME and RENDERSIZE are always available to ISF bodies.
	timeBinding := alloc.Next(0)
	sb.WriteString(wgsl.UniformDecl(0, timeBinding, "time", wgsl.Scalar{Kind: wgsl.F32}) + "\n")
	art.Uniforms = append(art.Uniforms, shader.UniformDescriptor{
		Name: "time", Type: wgsl.Scalar{Kind: wgsl.F32}, Binding: timeBinding,
	})
	resBinding := alloc.Next(0)
	resType := wgsl.Vector{Size: 2, Elem: wgsl.Scalar{Kind: wgsl.F32}}
	sb.WriteString(wgsl.UniformDecl(0, resBinding, "resolution", resType) + "\n")
	art.Uniforms = append(art.Uniforms, shader.UniformDescriptor{
		Name: "resolution", Type: resType, Binding: resBinding,
	})

	images := make(map[string]struct{})
	for _, in := range inputs {
		if IsTextureInput(in.Type) {
			name := wgsl.Sanitize(in.Name)
			namer.Reserve(name)
			namer.Reserve(wgsl.SamplerName(name))
			tex, smp := alloc.NextPair(0)
			sb.WriteString(wgsl.TextureDecl(0, tex, name) + "\n")
			sb.WriteString(wgsl.SamplerDecl(0, smp, name) + "\n")
			art.Textures = append(art.Textures, shader.TextureDescriptor{
				Name: name, Binding: tex, SamplerBinding: smp,
			})
			images[in.Name] = struct{}{}
			continue
		}

		t, ok := MapInputType(in.Type)
		if !ok {
			t = wgsl.Placeholder{Source: in.Type}
			ds.AddWarning(CodeUnknownType,
				fmt.Sprintf("no WGSL mapping for ISF input type %q, substituting placeholder scalar", in.Type),
				diag.Location{File: file, Line: 1, Column: 1})
		}
		name := namer.Call(in.Name)
		binding := alloc.Next(0)
		sb.WriteString(wgsl.UniformDecl(0, binding, name, t) + "\n")
		art.Uniforms = append(art.Uniforms, shader.UniformDescriptor{
			Name:    name,
			Type:    t,
			Binding: binding,
			Default: toFloats(in.Default),
			Min:     toFloats(in.Min),
			Max:     toFloats(in.Max),
		})
	}
	sb.WriteString("\n")
	return images
}

// checkImageReferences warns about IMG_* calls naming inputs that the
// metadata never declared. ISF hosts fail these at bind time; surfacing
// them here keeps the authoring feedback loop tight.
func checkImageReferences(bodyLines []string, images map[string]struct{}, metaLines int, ds *diag.Set, file string) {
	for i, line := range bodyLines {
		for _, m := range imgCallRe.FindAllStringSubmatch(line, -1) {
			if _, declared := images[m[1]]; !declared {
				ds.AddWarning(CodeUndeclaredImage,
					fmt.Sprintf("image %q is sampled but not declared in INPUTS", m[1]),
					diag.Location{File: file, Line: metaLines + i + 1, Column: 1})
			}
		}
	}
}

// rewriteISFBuiltins maps ISF builtin accessors onto the declared bindings
// before the shared GLSL rewriting runs.
func rewriteISFBuiltins(line string) string {
	line = fragNormRe.ReplaceAllString(line, "isf_uv")
	line = renderSizeRe.ReplaceAllString(line, "resolution")
	line = timeWordRe.ReplaceAllString(line, "time")

	// IMG_NORM_PIXEL(img, uv) and friends sample the paired texture.
	line = imgThisRe.ReplaceAllString(line, "textureSample($1, ${1}_sampler, isf_uv)")
	line = imgPixelRe.ReplaceAllString(line, "textureSample($1, ${1}_sampler,")
	return line
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func versionString(meta metadata) string {
	for _, v := range []any{meta.Isfvsn, meta.Vsn} {
		if v == nil {
			continue
		}
		return fmt.Sprintf("isf-%v", v)
	}
	return "isf"
}

// toFloats coerces a DEFAULT/MIN/MAX value (number or array of numbers)
// into a flat float slice. Non-numeric content is dropped.
func toFloats(v any) []float64 {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		return []float64{x}
	case bool:
		if x {
			return []float64{1}
		}
		return []float64{0}
	case []any:
		out := make([]float64, 0, len(x))
		for _, e := range x {
			if f, ok := e.(float64); ok {
				out = append(out, f)
			}
		}
		return out
	default:
		return nil
	}
}
