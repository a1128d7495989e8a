// Package studio converts shader source written in several dialects to WGSL.
//
// studio compiles GLSL, HLSL, ISF and visual node-graph sources to a single
// target language, while a shared registry caches modules and resolves
// cross-file imports:
//   - GLSL — OpenGL Shading Language fragment shaders
//   - HLSL — DirectX High-Level Shading Language
//   - ISF — Interactive Shader Format (GLSL body + JSON metadata block)
//   - Graph — dataflow node graphs from the visual editor
//
// The package provides a high-level API for single-file conversion as well
// as registry-backed compilation with dependency linking.
//
// Example usage (single file):
//
//	source := `
//	uniform float time;
//	void main() {
//	    gl_FragColor = vec4(sin(time), 0.0, 0.0, 1.0);
//	}
//	`
//	artifact, diags, err := studio.Convert(shader.DialectGLSL, source, "pulse")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(artifact.Source)
//	fmt.Println(diags.Format())
//
// For cross-file imports, load modules into a registry and compile the
// root module; dependencies are converted, cached and linked in
// dependency-first order:
//
//	reg := registry.New(registry.DefaultOptions())
//	reg.Load("noise", "Noise", noiseSource, shader.DialectGLSL)
//	reg.Load("blur", "Blur", blurSource, shader.DialectGLSL)
//	linked, diags, err := studio.CompileModule(reg, "blur", studio.DefaultOptions())
package studio

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/compiling-org/WGSL-Shader-Studio-sub002/diag"
	"github.com/compiling-org/WGSL-Shader-Studio-sub002/glsl"
	"github.com/compiling-org/WGSL-Shader-Studio-sub002/graph"
	"github.com/compiling-org/WGSL-Shader-Studio-sub002/hlsl"
	"github.com/compiling-org/WGSL-Shader-Studio-sub002/isf"
	"github.com/compiling-org/WGSL-Shader-Studio-sub002/registry"
	"github.com/compiling-org/WGSL-Shader-Studio-sub002/shader"
	"github.com/compiling-org/WGSL-Shader-Studio-sub002/wgsl"
)

// ErrUnknownDialect is returned when source cannot be attributed to any
// supported dialect.
var ErrUnknownDialect = errors.New("studio: unknown dialect")

// CompileOptions configures registry-backed compilation.
type CompileOptions struct {
	// Width and Height seed the resolution defaults of graph modules.
	Width  int
	Height int
}

// DefaultOptions returns sensible default options.
func DefaultOptions() CompileOptions {
	return CompileOptions{
		Width:  1920,
		Height: 1080,
	}
}

// Convert translates a single source file to WGSL using default options.
//
// Recoverable problems never fail the call; they are reported in the
// diagnostic set and the artifact degrades gracefully. The error is
// non-nil only when the dialect is unknown and undetectable.
func Convert(dialect shader.Dialect, source, name string) (*shader.Artifact, *diag.Set, error) {
	return ConvertWithOptions(dialect, source, name, DefaultOptions())
}

// ConvertWithOptions translates a single source file to WGSL.
func ConvertWithOptions(dialect shader.Dialect, source, name string, opts CompileOptions) (*shader.Artifact, *diag.Set, error) {
	if dialect == shader.DialectUnknown {
		dialect = shader.GuessDialect(source)
	}
	switch dialect {
	case shader.DialectGLSL:
		art, ds := glsl.Convert(source, name)
		return art, ds, nil
	case shader.DialectHLSL:
		art, ds := hlsl.Convert(source, name)
		return art, ds, nil
	case shader.DialectISF:
		art, ds := isf.Convert(source, name)
		return art, ds, nil
	case shader.DialectGraph:
		g, ds := graph.ParseSource(source, name)
		art, gds := graph.GenerateAndCompile(g, opts.Width, opts.Height)
		ds.Merge(gds)
		return art, ds, nil
	default:
		return nil, nil, fmt.Errorf("%w for %q", ErrUnknownDialect, name)
	}
}

// CompileModule compiles the cached module named by id together with its
// import graph and links everything into one translation unit.
//
// The pipeline is:
//  1. Look up the module in the registry
//  2. Collect dependencies depth first (cycles fail the whole call)
//  3. Convert each module lacking a current artifact, caching results
//  4. Relink everything dependency-first: bindings are rebased through one
//     shared allocator and only the root module keeps its entry point
//
// A module's cached artifact is reused as long as its source is
// unchanged; reloads drop it, so stale output is never linked. Cached
// artifacts are never mutated during linking; the linked unit carries
// relocated copies of their declarations and descriptors.
func CompileModule(reg *registry.Registry, id shader.ModuleIdentity, opts CompileOptions) (*shader.Artifact, *diag.Set, error) {
	ds := diag.NewSet()

	m, err := reg.Get(id)
	if err != nil {
		return nil, ds, fmt.Errorf("studio: module %q: %w", id, err)
	}
	deps, err := reg.CollectDependencies(m)
	if err != nil {
		return nil, ds, err
	}

	linked := &shader.Artifact{}
	alloc := wgsl.NewBindingAllocator()
	var sources []string
	for _, dep := range deps {
		art := dep.Artifact
		if art == nil {
			var cds *diag.Set
			art, cds, err = ConvertWithOptions(dep.Dialect, dep.Source, string(dep.Identity), opts)
			if err != nil {
				return nil, ds, fmt.Errorf("studio: module %q: %w", dep.Identity, err)
			}
			ds.Merge(cds)
			if _, err := reg.Attach(dep.Identity, art); err != nil {
				return nil, ds, fmt.Errorf("studio: module %q: %w", dep.Identity, err)
			}
		}
		isRoot := dep.Identity == id
		src, uniforms, textures := relocateArtifact(art, alloc, !isRoot)
		sources = append(sources, src)
		linked.Uniforms = append(linked.Uniforms, uniforms...)
		linked.Textures = append(linked.Textures, textures...)
		linked.Functions = append(linked.Functions, art.Functions...)
		linked.Errors = append(linked.Errors, art.Errors...)
		linked.Warnings = append(linked.Warnings, art.Warnings...)
		if isRoot {
			linked.Meta = art.Meta
			linked.EntryPoints = append([]string(nil), art.EntryPoints...)
		}
	}

	// Dependency-first concatenation keeps cross-module references
	// defined in the combined unit.
	linked.Source = strings.Join(sources, "\n")
	return linked, ds, nil
}

// GenerateGraph compiles a node graph directly, returning the artifact
// the parameter UI reads uniform descriptors from.
func GenerateGraph(g *graph.Graph, width, height int) (*shader.Artifact, *diag.Set) {
	return graph.GenerateAndCompile(g, width, height)
}

var bindingDeclRe = regexp.MustCompile(`^@group\((\d+)\) @binding\((\d+)\)`)

// relocateArtifact rewrites an artifact's binding declarations through the
// shared allocator so modules converted in isolation, each starting at
// binding 0, occupy disjoint slots in the linked unit. Declarations are
// renumbered in source order, which keeps texture/sampler pairs adjacent.
// Descriptor copies are remapped to the new slots; stripEntry removes the
// module's fragment entry point so only the root contributes one.
func relocateArtifact(art *shader.Artifact, alloc *wgsl.BindingAllocator, stripEntry bool) (string, []shader.UniformDescriptor, []shader.TextureDescriptor) {
	type slot struct {
		group, binding uint32
	}
	remap := make(map[slot]uint32)

	lines := strings.Split(art.Source, "\n")
	for i, line := range lines {
		m := bindingDeclRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		g, _ := strconv.ParseUint(m[1], 10, 32)
		b, _ := strconv.ParseUint(m[2], 10, 32)
		nb := alloc.Next(uint32(g))
		remap[slot{uint32(g), uint32(b)}] = nb
		lines[i] = fmt.Sprintf("@group(%d) @binding(%d)", g, nb) + line[len(m[0]):]
	}
	source := strings.Join(lines, "\n")
	if stripEntry {
		source = stripEntryPoint(source)
	}

	uniforms := make([]shader.UniformDescriptor, len(art.Uniforms))
	for i, u := range art.Uniforms {
		if nb, ok := remap[slot{u.Group, u.Binding}]; ok {
			u.Binding = nb
		}
		uniforms[i] = u
	}
	textures := make([]shader.TextureDescriptor, len(art.Textures))
	for i, td := range art.Textures {
		if nb, ok := remap[slot{td.Group, td.Binding}]; ok {
			td.Binding = nb
		}
		if nb, ok := remap[slot{td.Group, td.SamplerBinding}]; ok {
			td.SamplerBinding = nb
		}
		textures[i] = td
	}
	return source, uniforms, textures
}

// stripEntryPoint drops everything from the @fragment attribute on. The
// converters all emit the entry function last, so bindings and helper
// functions above it survive for the linked unit.
func stripEntryPoint(source string) string {
	i := strings.Index(source, "@fragment\n")
	if i < 0 {
		return source
	}
	return strings.TrimRight(source[:i], "\n") + "\n"
}
