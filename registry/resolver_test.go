package registry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compiling-org/WGSL-Shader-Studio-sub002/shader"
)

func TestCollectDependencies_DependencyFirst(t *testing.T) {
	r, _ := newTestRegistry(8, time.Minute)

	r.Load("noise", "Noise", "float noise(vec2 p) { return 0.0; }", shader.DialectGLSL)
	a := r.Load("blur", "Blur", "#include \"noise.glsl\"\nvoid main() {}", shader.DialectGLSL)

	deps, err := r.CollectDependencies(a)
	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.Equal(t, shader.ModuleIdentity("noise"), deps[0].Identity, "dependency comes first")
	assert.Equal(t, shader.ModuleIdentity("blur"), deps[1].Identity)
}

func TestCollectDependencies_DiamondVisitsOnce(t *testing.T) {
	r, _ := newTestRegistry(8, time.Minute)

	r.Load("util", "Util", "float id(float x) { return x; }", shader.DialectGLSL)
	r.Load("left", "Left", "#include \"util.glsl\"", shader.DialectGLSL)
	r.Load("right", "Right", "#include \"util.glsl\"", shader.DialectGLSL)
	top := r.Load("top", "Top", "#include \"left.glsl\"\n#include \"right.glsl\"", shader.DialectGLSL)

	deps, err := r.CollectDependencies(top)
	require.NoError(t, err)

	var order []shader.ModuleIdentity
	for _, d := range deps {
		order = append(order, d.Identity)
	}
	assert.Equal(t, []shader.ModuleIdentity{"util", "left", "right", "top"}, order)
}

func TestCollectDependencies_CycleCarriesPath(t *testing.T) {
	r, _ := newTestRegistry(8, time.Minute)

	r.Load("a", "A", "#include \"b.glsl\"", shader.DialectGLSL)
	b := r.Load("b", "B", "#include \"a.glsl\"", shader.DialectGLSL)

	_, err := r.CollectDependencies(b)
	require.Error(t, err)

	var cycle *CircularDependencyError
	require.True(t, errors.As(err, &cycle))
	assert.Contains(t, cycle.Cycle, shader.ModuleIdentity("a"))
	assert.Contains(t, cycle.Cycle, shader.ModuleIdentity("b"))
	assert.Equal(t, cycle.Cycle[0], cycle.Cycle[len(cycle.Cycle)-1], "path starts and ends at the repeated identity")
	assert.Contains(t, err.Error(), "->")
}

func TestCollectDependencies_SelfImportIsACycle(t *testing.T) {
	r, _ := newTestRegistry(8, time.Minute)

	m := r.Load("a", "A", "#include \"a.glsl\"", shader.DialectGLSL)

	_, err := r.CollectDependencies(m)
	var cycle *CircularDependencyError
	require.True(t, errors.As(err, &cycle))
	assert.Equal(t, []shader.ModuleIdentity{"a", "a"}, cycle.Cycle)
}

func TestCollectDependencies_UnresolvedImportIsSkipped(t *testing.T) {
	r, _ := newTestRegistry(8, time.Minute)

	m := r.Load("a", "A", "#include \"missing.glsl\"", shader.DialectGLSL)

	deps, err := r.CollectDependencies(m)
	require.NoError(t, err, "lenient mode tolerates partially loaded graphs")
	require.Len(t, deps, 1)
	assert.Equal(t, shader.ModuleIdentity("a"), deps[0].Identity)
}

func TestCollectDependencies_StrictFailsOnUnresolved(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	r := New(Options{Capacity: 8, TTL: time.Minute, Strict: true, Clock: clock.Now})

	m := r.Load("a", "A", "#include \"missing.glsl\"", shader.DialectGLSL)

	_, err := r.CollectDependencies(m)
	assert.ErrorIs(t, err, ErrModuleNotFound)
}

func TestResolveImports_AliasTable(t *testing.T) {
	r, _ := newTestRegistry(8, time.Minute)

	r.Load("noiselib", "Noise", "float noise(vec2 p) { return 0.0; }", shader.DialectGLSL)
	r.AddAlias("noise", "noiselib")
	m := r.Load("blur", "Blur", "#include \"noise.glsl\"", shader.DialectGLSL)

	res := r.ResolveImports(m)
	require.Len(t, res, 1)
	assert.Equal(t, shader.ModuleIdentity("noiselib"), res[0].Identity)
	assert.Equal(t, "noise", res[0].Path)
	assert.Equal(t, "noise", res[0].Alias)

	deps, err := r.CollectDependencies(m)
	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.Equal(t, shader.ModuleIdentity("noiselib"), deps[0].Identity)
}

func TestResolveImports_LiteralFallback(t *testing.T) {
	r, _ := newTestRegistry(8, time.Minute)

	m := r.Load("a", "A", "#import common", shader.DialectGLSL)

	res := r.ResolveImports(m)
	require.Len(t, res, 1)
	assert.Equal(t, shader.ModuleIdentity("common"), res[0].Identity)
	assert.Empty(t, res[0].Alias)
}
