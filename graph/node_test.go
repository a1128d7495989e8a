package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_PortExistence(t *testing.T) {
	g := &Graph{}
	g.Add(NewNode(1, KindTime))
	g.Add(NewNode(2, KindSin))

	require.NoError(t, g.Connect(1, "out", 2, "x"))

	assert.Error(t, g.Connect(1, "out", 2, "y"), "sin has no input y")
	assert.Error(t, g.Connect(1, "value", 2, "x"), "time has no output value")
	assert.Error(t, g.Connect(9, "out", 2, "x"), "no such source node")
	assert.Error(t, g.Connect(1, "out", 9, "x"), "no such target node")
	assert.Len(t, g.Connections, 1)
}

func TestConnect_ReplacesIncoming(t *testing.T) {
	g := &Graph{}
	g.Add(NewNode(1, KindTime))
	c := NewNode(2, KindConst)
	c.Value = 0.5
	g.Add(c)
	g.Add(NewNode(3, KindSin))

	require.NoError(t, g.Connect(1, "out", 3, "x"))
	require.NoError(t, g.Connect(2, "out", 3, "x"))

	require.Len(t, g.Connections, 1, "an input port accepts at most one incoming connection")
	assert.Equal(t, 2, g.Connections[0].FromNode)
}

func TestNewNode_Ports(t *testing.T) {
	tests := []struct {
		kind    NodeKind
		inputs  []string
		outputs []string
	}{
		{KindConst, nil, []string{"out"}},
		{KindTime, nil, []string{"out"}},
		{KindUV, nil, []string{"out"}},
		{KindResolution, nil, []string{"out"}},
		{KindParam, nil, []string{"out"}},
		{KindAdd, []string{"a", "b"}, []string{"out"}},
		{KindSqrt, []string{"x"}, []string{"out"}},
		{KindMix, []string{"a", "b", "t"}, []string{"out"}},
		{KindClamp, []string{"x", "lo", "hi"}, []string{"out"}},
		{KindTextureSample, []string{"coords"}, []string{"out"}},
		{KindOutput, []string{"color"}, nil},
	}
	for _, tt := range tests {
		n := NewNode(1, tt.kind)
		var in, out []string
		for _, p := range n.Inputs {
			in = append(in, p.Name)
		}
		for _, p := range n.Outputs {
			out = append(out, p.Name)
		}
		assert.Equal(t, tt.inputs, in, "kind %s inputs", tt.kind)
		assert.Equal(t, tt.outputs, out, "kind %s outputs", tt.kind)
	}
}

func TestGraph_NodeLookup(t *testing.T) {
	g := &Graph{}
	n := g.Add(NewNode(7, KindUV))

	assert.Same(t, n, g.Node(7))
	assert.Nil(t, g.Node(8))
}
