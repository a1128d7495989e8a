package shader

import (
	"time"

	"github.com/cespare/xxhash/v2"
)

// ModuleIdentity is the opaque key naming a shader unit within a registry.
// Equality is exact string match.
type ModuleIdentity string

// Module is one shader source unit. Modules are owned by the registry;
// converters receive borrowed values and derive new ones instead of
// mutating in place.
type Module struct {
	// Identity is the registry key.
	Identity ModuleIdentity

	// Name is the human-facing display name.
	Name string

	// Source is the raw source text.
	Source string

	// Dialect is the detected or declared source language.
	Dialect Dialect

	// Exports lists symbol names this module declares for importers.
	Exports []string

	// Imports lists the identities this module depends on.
	Imports []ModuleIdentity

	// Artifact is the compiled output, nil until the first successful
	// compile. It is dropped whenever Source changes.
	Artifact *Artifact

	// Version increases monotonically on every reload.
	Version uint64

	// Fingerprint is the xxhash of Source, used to detect unchanged reloads.
	Fingerprint uint64

	// Modified is the last load time.
	Modified time.Time
}

// NewModule builds a module from source text, scanning its import and
// export symbol sets without fully compiling.
func NewModule(identity ModuleIdentity, name, source string, dialect Dialect) *Module {
	if dialect == DialectUnknown {
		dialect = GuessDialect(source)
	}
	return &Module{
		Identity:    identity,
		Name:        name,
		Source:      source,
		Dialect:     dialect,
		Exports:     ScanExports(source),
		Imports:     ScanImports(source),
		Version:     1,
		Fingerprint: Fingerprint(source),
		Modified:    time.Now(),
	}
}

// WithArtifact returns a copy of m carrying the compiled artifact.
// The receiver is not modified (copy-on-write for cached entries).
func (m *Module) WithArtifact(a *Artifact) *Module {
	out := *m
	out.Artifact = a
	return &out
}

// WithSource returns a copy of m reloaded from new source text: the version
// counter advances, the artifact is dropped and the symbol sets rescanned.
func (m *Module) WithSource(source string) *Module {
	out := *m
	out.Source = source
	out.Dialect = m.Dialect
	out.Exports = ScanExports(source)
	out.Imports = ScanImports(source)
	out.Artifact = nil
	out.Version = m.Version + 1
	out.Fingerprint = Fingerprint(source)
	out.Modified = time.Now()
	return &out
}

// Fingerprint hashes source text for cheap change detection.
func Fingerprint(source string) uint64 {
	return xxhash.Sum64String(source)
}

// ImportResolution maps one import path string to a module identity.
// Derived per resolve call; never persisted.
type ImportResolution struct {
	Identity ModuleIdentity
	Path     string
	Alias    string
}
