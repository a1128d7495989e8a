// Copyright 2025 The Shader Studio Authors
// SPDX-License-Identifier: MIT

package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/compiling-org/WGSL-Shader-Studio-sub002/diag"
	"github.com/compiling-org/WGSL-Shader-Studio-sub002/shader"
	"github.com/compiling-org/WGSL-Shader-Studio-sub002/wgsl"
)

// Diagnostic codes emitted by the graph compiler.
const (
	CodeUnscheduled  = "GRAPH0001"
	CodeNoOutput     = "GRAPH0002"
	CodeBadStatement = "GRAPH0003"
)

// Generate compiles the graph into a WGSL fragment shader. Width and
// height only seed the resolution default; they never gate generation.
// Recoverable problems (cycles, dangling inputs, missing output node)
// degrade the result and are reported as diagnostics.
func Generate(g *Graph, width, height int) (string, *diag.Set) {
	ds := diag.NewSet()
	source := emitGraph(g, width, height, ds, nil)
	return source, ds
}

// GenerateAndCompile compiles the graph and wraps the result in an
// artifact carrying the uniform and texture descriptors the parameter UI
// binds controls to. Binding indices are stable across regeneration of
// the same graph.
func GenerateAndCompile(g *Graph, width, height int) (*shader.Artifact, *diag.Set) {
	ds := diag.NewSet()
	art := &shader.Artifact{Meta: shader.Metadata{Name: graphName(g)}}
	art.Source = emitGraph(g, width, height, ds, art)
	art.EntryPoints = append(art.EntryPoints, "fs_main")
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

func graphName(g *Graph) string {
	if g.Name != "" {
		return g.Name
	}
	return "graph"
}

// schedule orders nodes by a satisfied-inputs fixed point: a node is
// schedulable once every connected input's source node is scheduled, with
// unconnected inputs counting as satisfied (they read as zero). Passes
// are bounded by the node count so cyclic remainders terminate; whatever
// is left after the last pass is unreachable.
func schedule(g *Graph) (order []*Node, unscheduled []*Node) {
	done := make(map[int]bool, len(g.Nodes))
	remaining := make([]*Node, len(g.Nodes))
	copy(remaining, g.Nodes)

	for pass := 0; pass <= len(g.Nodes) && len(remaining) > 0; pass++ {
		var next []*Node
		progressed := false
		for _, n := range remaining {
			ready := true
			for _, in := range n.Inputs {
				if c := g.incoming(n.ID, in.Name); c != nil && !done[c.FromNode] {
					ready = false
					break
				}
			}
			if ready {
				done[n.ID] = true
				order = append(order, n)
				progressed = true
			} else {
				next = append(next, n)
			}
		}
		remaining = next
		if !progressed {
			break
		}
	}
	return order, remaining
}

func emitGraph(g *Graph, width, height int, ds *diag.Set, art *shader.Artifact) string {
	order, unscheduled := schedule(g)
	for _, n := range unscheduled {
		ds.AddWarning(CodeUnscheduled,
			fmt.Sprintf("node %d (%s) is part of a cycle or unreachable, skipped", n.ID, n.Kind),
			diag.Location{File: graphName(g)})
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "// %s (node graph, %dx%d)\n\n", graphName(g), width, height)

	namer := wgsl.NewNamer()
	for _, reserved := range []string{"u_time", "u_resolution", "uv", "position", "fs_main"} {
		namer.Reserve(reserved)
	}
	alloc := wgsl.NewBindingAllocator()

	sb.WriteString(wgsl.UniformDecl(0, alloc.Next(0), "u_time", f32) + "\n")
	sb.WriteString(wgsl.UniformDecl(0, alloc.Next(0), "u_resolution", vec2f) + "\n")
	if art != nil {
		art.Uniforms = append(art.Uniforms,
			shader.UniformDescriptor{Name: "u_time", Type: f32, Group: 0, Binding: 0},
			shader.UniformDescriptor{Name: "u_resolution", Type: vec2f, Group: 0, Binding: 1,
				Default: []float64{float64(width), float64(height)}})
	}

	// Declarations follow scheduled order so regeneration of a parsed
	// graph reproduces the same binding layout.
	params := make(map[int]string)
	declared := make(map[string]string)
	for _, n := range order {
		switch n.Kind {
		case KindParam:
			source := n.Name
			if source == "" {
				source = "param"
			}
			if name, ok := declared["u:"+source]; ok {
				params[n.ID] = name
				continue
			}
			name := namer.Call(source)
			declared["u:"+source] = name
			params[n.ID] = name
			binding := alloc.Next(0)
			sb.WriteString(wgsl.UniformDecl(0, binding, name, f32) + "\n")
			if art != nil {
				art.Uniforms = append(art.Uniforms, shader.UniformDescriptor{
					Name: name, Type: f32, Group: 0, Binding: binding,
					Default: []float64{n.Value},
				})
			}
		case KindTextureSample:
			source := n.Name
			if source == "" {
				source = "tex"
			}
			if name, ok := declared["t:"+source]; ok {
				params[n.ID] = name
				continue
			}
			name := namer.Call(source)
			namer.Reserve(wgsl.SamplerName(name))
			declared["t:"+source] = name
			params[n.ID] = name
			tex, smp := alloc.NextPair(0)
			sb.WriteString(wgsl.TextureDecl(0, tex, name) + "\n")
			sb.WriteString(wgsl.SamplerDecl(0, smp, name) + "\n")
			if art != nil {
				art.Textures = append(art.Textures, shader.TextureDescriptor{
					Name: name, Group: 0, Binding: tex, SamplerBinding: smp,
				})
			}
		}
	}

	sb.WriteString("\n@fragment\n")
	sb.WriteString("fn fs_main(@builtin(position) position: vec4<f32>) -> @location(0) vec4<f32> {\n")
	sb.WriteString("    let uv = position.xy / u_resolution;\n")

	temps := make(map[int]string, len(order))
	types := make(map[int]wgsl.Type, len(order))
	resolve := func(n *Node, port string) string {
		in := n.input(port)
		c := g.incoming(n.ID, port)
		if c == nil {
			return in.Type.Zero()
		}
		if t, ok := temps[c.FromNode]; ok {
			return t
		}
		// Source sits in the unscheduled remainder.
		return in.Type.Zero()
	}

	var output *Node
	for _, n := range order {
		if n.Kind == KindOutput {
			if output == nil {
				output = n
			}
			continue
		}
		if len(n.Outputs) == 0 {
			continue
		}
		out := n.Outputs[0]
		temp := fmt.Sprintf("n%d_%s", n.ID, out.Name)
		fmt.Fprintf(&sb, "    let %s: %s = %s;\n", temp, out.Type, nodeExpr(g, n, params, resolve))
		temps[n.ID] = temp
		types[n.ID] = out.Type
	}
	for _, n := range unscheduled {
		if n.Kind == KindOutput && output == nil {
			output = n
		}
	}

	switch {
	case output == nil:
		ds.AddInfo(CodeNoOutput, "no output node, appended neutral fallback color",
			diag.Location{File: graphName(g)})
		sb.WriteString("    return vec4<f32>(0.0, 0.0, 0.0, 1.0);\n")
	default:
		c := g.incoming(output.ID, "color")
		if c == nil || temps[c.FromNode] == "" {
			sb.WriteString("    return vec4<f32>(0.0, 0.0, 0.0, 1.0);\n")
		} else {
			sb.WriteString("    return " + widenToColor(temps[c.FromNode], types[c.FromNode]) + ";\n")
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}

// nodeExpr renders the right-hand side computing a node's output from its
// resolved inputs.
func nodeExpr(g *Graph, n *Node, params map[int]string, resolve func(*Node, string) string) string {
	switch n.Kind {
	case KindConst:
		return formatFloat(n.Value)
	case KindTime:
		return "u_time"
	case KindUV:
		return "uv"
	case KindResolution:
		return "u_resolution"
	case KindParam:
		return params[n.ID]
	case KindAdd:
		return fmt.Sprintf("(%s + %s)", resolve(n, "a"), resolve(n, "b"))
	case KindSub:
		return fmt.Sprintf("(%s - %s)", resolve(n, "a"), resolve(n, "b"))
	case KindMul:
		return fmt.Sprintf("(%s * %s)", resolve(n, "a"), resolve(n, "b"))
	case KindDiv:
		return fmt.Sprintf("(%s / %s)", resolve(n, "a"), resolve(n, "b"))
	case KindSin, KindCos, KindTan, KindAbs, KindFloor, KindFract, KindSqrt:
		return fmt.Sprintf("%s(%s)", n.Kind, resolve(n, "x"))
	case KindMix:
		return fmt.Sprintf("mix(%s, %s, %s)", resolve(n, "a"), resolve(n, "b"), resolve(n, "t"))
	case KindClamp:
		return fmt.Sprintf("clamp(%s, %s, %s)", resolve(n, "x"), resolve(n, "lo"), resolve(n, "hi"))
	case KindTextureSample:
		name := params[n.ID]
		return fmt.Sprintf("textureSample(%s, %s, %s)", name, wgsl.SamplerName(name), resolve(n, "coords"))
	default:
		return "0.0"
	}
}

// widenToColor adapts a temp of any output type to the vec4 return value.
func widenToColor(temp string, t wgsl.Type) string {
	switch tt := t.(type) {
	case wgsl.Scalar:
		return fmt.Sprintf("vec4<f32>(%s, %s, %s, 1.0)", temp, temp, temp)
	case wgsl.Vector:
		switch tt.Size {
		case 2:
			return fmt.Sprintf("vec4<f32>(%s, 0.0, 1.0)", temp)
		case 3:
			return fmt.Sprintf("vec4<f32>(%s, 1.0)", temp)
		default:
			return temp
		}
	default:
		return temp
	}
}

// formatFloat renders a literal that WGSL types as f32, keeping a decimal
// point on whole values.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
