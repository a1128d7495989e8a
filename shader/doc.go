// Package shader defines the data model shared across the conversion
// engine: shader modules keyed by identity, compiled artifacts with their
// uniform and texture binding descriptors, and dialect detection.
//
// Modules are owned by the registry. Converters receive borrowed values and
// produce new derived ones rather than mutating in place; an Artifact is
// immutable once produced and safe to share by reference across readers.
package shader
