// Package registry stores shader modules in a fixed-capacity LRU cache
// with lazy time-to-live expiry, and resolves import dependencies across
// cached modules with cycle detection.
//
// One registry instance is constructed by the embedding application and
// shared by reference; there is no package-level singleton. All methods
// are safe for concurrent use.
package registry
