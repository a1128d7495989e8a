// Package bundle reads and writes shader module bundles: one document
// carrying a named set of modules, their entry points and metadata.
// Three encodings are accepted interchangeably, selected by file
// extension: .json, .toml and .yaml/.yml.
package bundle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/compiling-org/WGSL-Shader-Studio-sub002/registry"
	"github.com/compiling-org/WGSL-Shader-Studio-sub002/shader"
)

// Module is one embedded shader unit inside a bundle.
type Module struct {
	Name    string   `json:"name" toml:"name" yaml:"name"`
	Source  string   `json:"source" toml:"source" yaml:"source"`
	Exports []string `json:"exports,omitempty" toml:"exports,omitempty" yaml:"exports,omitempty"`
}

// Meta describes the bundle as a whole.
type Meta struct {
	Version      string   `json:"version,omitempty" toml:"version,omitempty" yaml:"version,omitempty"`
	Description  string   `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
	Author       string   `json:"author,omitempty" toml:"author,omitempty" yaml:"author,omitempty"`
	License      string   `json:"license,omitempty" toml:"license,omitempty" yaml:"license,omitempty"`
	Tags         []string `json:"tags,omitempty" toml:"tags,omitempty" yaml:"tags,omitempty"`
	Dependencies []string `json:"dependencies,omitempty" toml:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// Bundle is a distributable set of shader modules.
type Bundle struct {
	Name        string                           `json:"name" toml:"name" yaml:"name"`
	Modules     map[shader.ModuleIdentity]Module `json:"modules" toml:"modules" yaml:"modules"`
	EntryPoints []shader.ModuleIdentity          `json:"entry_points,omitempty" toml:"entry_points,omitempty" yaml:"entry_points,omitempty"`
	Meta        Meta                             `json:"meta,omitempty" toml:"meta,omitempty" yaml:"meta,omitempty"`
}

// Load reads a bundle from path, decoding by extension.
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bundle: read %s: %w", path, err)
	}
	var b Bundle
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &b)
	case ".toml":
		err = toml.Unmarshal(data, &b)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &b)
	default:
		return nil, fmt.Errorf("bundle: unsupported extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("bundle: decode %s: %w", path, err)
	}
	return &b, nil
}

// Save writes the bundle to path, encoding by extension.
func (b *Bundle) Save(path string) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = json.MarshalIndent(b, "", "  ")
	case ".toml":
		data, err = toml.Marshal(b)
	case ".yaml", ".yml":
		data, err = yaml.Marshal(b)
	default:
		return fmt.Errorf("bundle: unsupported extension %q", ext)
	}
	if err != nil {
		return fmt.Errorf("bundle: encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("bundle: write %s: %w", path, err)
	}
	return nil
}

// Install loads every embedded module into the registry. Dialects are
// guessed from source text since bundles carry no file extensions.
func (b *Bundle) Install(r *registry.Registry) []*shader.Module {
	out := make([]*shader.Module, 0, len(b.Modules))
	for id, m := range b.Modules {
		out = append(out, r.Load(id, m.Name, m.Source, shader.DialectUnknown))
	}
	return out
}
