// Copyright 2025 The Shader Studio Authors
// SPDX-License-Identifier: MIT

package graph

import (
	"fmt"

	"github.com/compiling-org/WGSL-Shader-Studio-sub002/wgsl"
)

// NodeKind is the closed set of node operations. Every switch over it is
// exhaustive; adding a kind means visiting each one.
type NodeKind uint8

const (
	// KindConst emits a float literal from Node.Value.
	KindConst NodeKind = iota

	// KindTime reads the elapsed-time uniform.
	KindTime

	// KindUV reads the normalized fragment coordinate.
	KindUV

	// KindResolution reads the viewport-size uniform.
	KindResolution

	// KindParam reads a named user uniform. Node.Name is the uniform
	// identifier and Node.Value its default.
	KindParam

	// KindAdd through KindDiv are binary arithmetic over floats.
	KindAdd
	KindSub
	KindMul
	KindDiv

	// KindSin through KindSqrt are unary float functions.
	KindSin
	KindCos
	KindTan
	KindAbs
	KindFloor
	KindFract
	KindSqrt

	// KindMix is mix(a, b, t).
	KindMix

	// KindClamp is clamp(x, lo, hi).
	KindClamp

	// KindTextureSample samples the texture named by Node.Name at a
	// vec2 coordinate input.
	KindTextureSample

	// KindOutput terminates generation with a return of its input.
	KindOutput
)

// String returns the lower-case kind name used in diagnostics.
func (k NodeKind) String() string {
	switch k {
	case KindConst:
		return "const"
	case KindTime:
		return "time"
	case KindUV:
		return "uv"
	case KindResolution:
		return "resolution"
	case KindParam:
		return "param"
	case KindAdd:
		return "add"
	case KindSub:
		return "sub"
	case KindMul:
		return "mul"
	case KindDiv:
		return "div"
	case KindSin:
		return "sin"
	case KindCos:
		return "cos"
	case KindTan:
		return "tan"
	case KindAbs:
		return "abs"
	case KindFloor:
		return "floor"
	case KindFract:
		return "fract"
	case KindSqrt:
		return "sqrt"
	case KindMix:
		return "mix"
	case KindClamp:
		return "clamp"
	case KindTextureSample:
		return "texture_sample"
	case KindOutput:
		return "output"
	default:
		return "unknown"
	}
}

// Port is one typed input or output slot on a node.
type Port struct {
	Name string
	Type wgsl.Type
}

// Node is one operation in the graph. X and Y are editor layout only and
// never affect generated code.
type Node struct {
	ID   int
	Kind NodeKind

	// Name is the uniform identifier for KindParam and the texture
	// identifier for KindTextureSample.
	Name string

	// Value is the literal for KindConst and the default for KindParam.
	Value float64

	Inputs  []Port
	Outputs []Port

	X, Y float64
}

// Connection wires one node's output port to another node's input port.
// An input port accepts at most one incoming connection.
type Connection struct {
	FromNode int
	FromPort string
	ToNode   int
	ToPort   string
}

// Graph is a node set plus its connections.
type Graph struct {
	Name        string
	Nodes       []*Node
	Connections []Connection
}

var f32 = wgsl.Scalar{Kind: wgsl.F32}
var vec2f = wgsl.Vector{Size: 2, Elem: f32}
var vec4f = wgsl.Vector{Size: 4, Elem: f32}

// NewNode builds a node of the given kind with the ports that kind
// defines. Name and Value are left for the caller to fill in.
func NewNode(id int, kind NodeKind) *Node {
	n := &Node{ID: id, Kind: kind}
	switch kind {
	case KindConst, KindTime, KindParam:
		n.Outputs = []Port{{Name: "out", Type: f32}}
	case KindUV, KindResolution:
		n.Outputs = []Port{{Name: "out", Type: vec2f}}
	case KindAdd, KindSub, KindMul, KindDiv:
		n.Inputs = []Port{{Name: "a", Type: f32}, {Name: "b", Type: f32}}
		n.Outputs = []Port{{Name: "out", Type: f32}}
	case KindSin, KindCos, KindTan, KindAbs, KindFloor, KindFract, KindSqrt:
		n.Inputs = []Port{{Name: "x", Type: f32}}
		n.Outputs = []Port{{Name: "out", Type: f32}}
	case KindMix:
		n.Inputs = []Port{{Name: "a", Type: f32}, {Name: "b", Type: f32}, {Name: "t", Type: f32}}
		n.Outputs = []Port{{Name: "out", Type: f32}}
	case KindClamp:
		n.Inputs = []Port{{Name: "x", Type: f32}, {Name: "lo", Type: f32}, {Name: "hi", Type: f32}}
		n.Outputs = []Port{{Name: "out", Type: f32}}
	case KindTextureSample:
		n.Inputs = []Port{{Name: "coords", Type: vec2f}}
		n.Outputs = []Port{{Name: "out", Type: vec4f}}
	case KindOutput:
		n.Inputs = []Port{{Name: "color", Type: vec4f}}
	}
	return n
}

// Add appends a node and returns it for chaining.
func (g *Graph) Add(n *Node) *Node {
	g.Nodes = append(g.Nodes, n)
	return n
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id int) *Node {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func (n *Node) output(name string) *Port {
	for i := range n.Outputs {
		if n.Outputs[i].Name == name {
			return &n.Outputs[i]
		}
	}
	return nil
}

func (n *Node) input(name string) *Port {
	for i := range n.Inputs {
		if n.Inputs[i].Name == name {
			return &n.Inputs[i]
		}
	}
	return nil
}

// Connect wires fromNode's output port to toNode's input port. Both ports
// must exist on their nodes; the connection set never references a port
// absent from a node's port list. A prior connection into the same input
// port is replaced.
func (g *Graph) Connect(fromNode int, fromPort string, toNode int, toPort string) error {
	src := g.Node(fromNode)
	if src == nil {
		return fmt.Errorf("graph: no node %d", fromNode)
	}
	dst := g.Node(toNode)
	if dst == nil {
		return fmt.Errorf("graph: no node %d", toNode)
	}
	if src.output(fromPort) == nil {
		return fmt.Errorf("graph: node %d (%s) has no output port %q", fromNode, src.Kind, fromPort)
	}
	if dst.input(toPort) == nil {
		return fmt.Errorf("graph: node %d (%s) has no input port %q", toNode, dst.Kind, toPort)
	}
	for i := range g.Connections {
		c := &g.Connections[i]
		if c.ToNode == toNode && c.ToPort == toPort {
			c.FromNode = fromNode
			c.FromPort = fromPort
			return nil
		}
	}
	g.Connections = append(g.Connections, Connection{
		FromNode: fromNode, FromPort: fromPort,
		ToNode: toNode, ToPort: toPort,
	})
	return nil
}

// incoming returns the connection feeding the given input port, or nil.
func (g *Graph) incoming(nodeID int, port string) *Connection {
	for i := range g.Connections {
		c := &g.Connections[i]
		if c.ToNode == nodeID && c.ToPort == port {
			return c
		}
	}
	return nil
}
