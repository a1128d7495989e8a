package bundle

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compiling-org/WGSL-Shader-Studio-sub002/registry"
	"github.com/compiling-org/WGSL-Shader-Studio-sub002/shader"
)

func sampleBundle() *Bundle {
	return &Bundle{
		Name: "starter",
		Modules: map[shader.ModuleIdentity]Module{
			"noise": {Name: "Noise", Source: "float noise(vec2 p) { return 0.0; }"},
			"blur":  {Name: "Blur", Source: "#include \"noise.glsl\"\nvoid main() {}", Exports: []string{"blur"}},
		},
		EntryPoints: []shader.ModuleIdentity{"blur"},
		Meta: Meta{
			Version:     "1.2.0",
			Description: "Starter effects",
			Author:      "vj",
			License:     "MIT",
			Tags:        []string{"effects", "starter"},
		},
	}
}

func TestSaveLoad_AllEncodings(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "b.toml", "b.yaml", "b.yml"} {
		path := filepath.Join(dir, name)
		want := sampleBundle()
		require.NoError(t, want.Save(path), name)

		got, err := Load(path)
		require.NoError(t, err, name)
		assert.Equal(t, want.Name, got.Name, name)
		assert.Equal(t, want.Modules, got.Modules, name)
		assert.Equal(t, want.EntryPoints, got.EntryPoints, name)
		assert.Equal(t, want.Meta, got.Meta, name)
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "b.xml"))
	assert.ErrorContains(t, err, "unsupported extension")
}

func TestSave_UnsupportedExtension(t *testing.T) {
	err := sampleBundle().Save(filepath.Join(t.TempDir(), "b.ini"))
	assert.ErrorContains(t, err, "unsupported extension")
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestInstall(t *testing.T) {
	r := registry.New(registry.Options{Capacity: 8, TTL: time.Minute})

	loaded := sampleBundle().Install(r)
	assert.Len(t, loaded, 2)

	blur, err := r.Get("blur")
	require.NoError(t, err)
	assert.Equal(t, "Blur", blur.Name)
	assert.Equal(t, []shader.ModuleIdentity{"noise"}, blur.Imports)

	deps, err := r.CollectDependencies(blur)
	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.Equal(t, shader.ModuleIdentity("noise"), deps[0].Identity)
}
