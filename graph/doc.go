// Package graph compiles dataflow node graphs to WGSL fragment shaders.
//
// A graph is a set of typed nodes wired by connections from output ports
// to input ports. Generation schedules nodes by a satisfied-inputs fixed
// point so partially wired graphs still produce valid output: unconnected
// inputs read as zero and an unreachable remainder is skipped with a
// warning. ParseSource reconstructs a graph from previously generated
// source, so generate and parse round-trip.
package graph
