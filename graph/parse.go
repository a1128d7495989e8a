// Copyright 2025 The Shader Studio Authors
// SPDX-License-Identifier: MIT

package graph

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/compiling-org/WGSL-Shader-Studio-sub002/diag"
)

var (
	headerRe      = regexp.MustCompile(`^// (.+) \(node graph, \d+x\d+\)$`)
	uniformDeclRe = regexp.MustCompile(`^@group\(\d+\) @binding\(\d+\) var<uniform> (\w+): f32;$`)
	textureDeclRe = regexp.MustCompile(`^@group\(\d+\) @binding\(\d+\) var (\w+): texture_2d<f32>;$`)
	samplerDeclRe = regexp.MustCompile(`^@group\(\d+\) @binding\(\d+\) var (\w+): sampler;$`)
	letStmtRe     = regexp.MustCompile(`^\s*let n(\d+)_(\w+): [\w<>, ]+ = (.+);$`)
	returnStmtRe  = regexp.MustCompile(`^\s*return (.+);$`)
	tempRefRe     = regexp.MustCompile(`^n(\d+)_(\w+)$`)
	binaryExprRe  = regexp.MustCompile(`^\((\S+) ([-+*/]) (\S+)\)$`)
	callExprRe    = regexp.MustCompile(`^(\w+)\((.*)\)$`)
	splatReturnRe = regexp.MustCompile(`^vec4<f32>\((n\d+_\w+), (n\d+_\w+), (n\d+_\w+), 1\.0\)$`)
	vec2ReturnRe  = regexp.MustCompile(`^vec4<f32>\((n\d+_\w+), 0\.0, 1\.0\)$`)
)

var unaryKinds = map[string]NodeKind{
	"sin":   KindSin,
	"cos":   KindCos,
	"tan":   KindTan,
	"abs":   KindAbs,
	"floor": KindFloor,
	"fract": KindFract,
	"sqrt":  KindSqrt,
}

var binaryKinds = map[string]NodeKind{
	"+": KindAdd,
	"-": KindSub,
	"*": KindMul,
	"/": KindDiv,
}

// ParseSource reconstructs a graph from source previously produced by
// Generate. Statements it cannot attribute to a node kind are skipped
// with a warning, so editing generated text by hand degrades rather than
// fails. Generating the parsed graph reproduces equivalent source.
func ParseSource(source, name string) (*Graph, *diag.Set) {
	ds := diag.NewSet()
	g := &Graph{Name: name}
	params := make(map[string]bool)
	maxID := 0

	for i, raw := range strings.Split(source, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || line == "@fragment" || line == "}" ||
			line == "let uv = position.xy / u_resolution;" ||
			strings.HasPrefix(line, "fn fs_main") {
			continue
		}
		if m := headerRe.FindStringSubmatch(line); m != nil {
			if g.Name == "" {
				g.Name = m[1]
			}
			continue
		}
		if strings.HasPrefix(line, "//") {
			continue
		}
		if m := uniformDeclRe.FindStringSubmatch(line); m != nil {
			if m[1] != "u_time" && m[1] != "u_resolution" {
				params[m[1]] = true
			}
			continue
		}
		if strings.HasPrefix(line, "@group(") {
			if textureDeclRe.MatchString(line) || samplerDeclRe.MatchString(line) {
				continue
			}
			// Resolution keeps its vector type; other declarations of
			// unknown shape are outside the generated grammar.
			if strings.Contains(line, "u_resolution") {
				continue
			}
			ds.AddWarning(CodeBadStatement, "unrecognized declaration: "+line,
				diag.Location{File: g.Name, Line: i + 1, Column: 1})
			continue
		}
		if m := letStmtRe.FindStringSubmatch(line); m != nil {
			id, _ := strconv.Atoi(m[1])
			if id > maxID {
				maxID = id
			}
			if !parseStatement(g, id, m[3], params) {
				ds.AddWarning(CodeBadStatement, "unrecognized statement: "+line,
					diag.Location{File: g.Name, Line: i + 1, Column: 1})
			}
			continue
		}
		if m := returnStmtRe.FindStringSubmatch(line); m != nil {
			parseReturn(g, m[1], &maxID)
			continue
		}
		ds.AddWarning(CodeBadStatement, "unrecognized line: "+line,
			diag.Location{File: g.Name, Line: i + 1, Column: 1})
	}
	return g, ds
}

// parseStatement attributes one let-statement's expression to a node kind
// and wires temp references back into connections.
func parseStatement(g *Graph, id int, expr string, params map[string]bool) bool {
	switch expr {
	case "u_time":
		g.Add(NewNode(id, KindTime))
		return true
	case "uv":
		g.Add(NewNode(id, KindUV))
		return true
	case "u_resolution":
		g.Add(NewNode(id, KindResolution))
		return true
	}
	if v, err := strconv.ParseFloat(expr, 64); err == nil {
		n := NewNode(id, KindConst)
		n.Value = v
		g.Add(n)
		return true
	}
	if params[expr] {
		n := NewNode(id, KindParam)
		n.Name = expr
		g.Add(n)
		return true
	}
	if m := binaryExprRe.FindStringSubmatch(expr); m != nil {
		n := g.Add(NewNode(id, binaryKinds[m[2]]))
		connectArg(g, n, "a", m[1])
		connectArg(g, n, "b", m[3])
		return true
	}
	m := callExprRe.FindStringSubmatch(expr)
	if m == nil {
		return false
	}
	args := strings.Split(m[2], ", ")
	switch {
	case unaryKinds[m[1]] != 0 && len(args) == 1:
		n := g.Add(NewNode(id, unaryKinds[m[1]]))
		connectArg(g, n, "x", args[0])
		return true
	case m[1] == "mix" && len(args) == 3:
		n := g.Add(NewNode(id, KindMix))
		connectArg(g, n, "a", args[0])
		connectArg(g, n, "b", args[1])
		connectArg(g, n, "t", args[2])
		return true
	case m[1] == "clamp" && len(args) == 3:
		n := g.Add(NewNode(id, KindClamp))
		connectArg(g, n, "x", args[0])
		connectArg(g, n, "lo", args[1])
		connectArg(g, n, "hi", args[2])
		return true
	case m[1] == "textureSample" && len(args) == 3:
		n := NewNode(id, KindTextureSample)
		n.Name = args[0]
		g.Add(n)
		connectArg(g, n, "coords", args[2])
		return true
	}
	return false
}

// parseReturn recovers the output node. The neutral fallback form maps to
// no output node at all, which regenerates the identical fallback.
func parseReturn(g *Graph, expr string, maxID *int) {
	var src string
	switch {
	case tempRefRe.MatchString(expr):
		src = expr
	default:
		if m := splatReturnRe.FindStringSubmatch(expr); m != nil && m[1] == m[2] && m[2] == m[3] {
			src = m[1]
		} else if m := vec2ReturnRe.FindStringSubmatch(expr); m != nil {
			src = m[1]
		}
	}
	if src == "" {
		return
	}
	*maxID++
	out := g.Add(NewNode(*maxID, KindOutput))
	connectArg(g, out, "color", src)
}

// connectArg wires a temp reference into an input port. Literal arguments
// are zero-filled defaults and create no connection.
func connectArg(g *Graph, n *Node, port, arg string) {
	m := tempRefRe.FindStringSubmatch(arg)
	if m == nil {
		return
	}
	from, _ := strconv.Atoi(m[1])
	_ = g.Connect(from, m[2], n.ID, port)
}
