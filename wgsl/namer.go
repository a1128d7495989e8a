// Copyright 2025 The Shader Studio Authors
// SPDX-License-Identifier: MIT

package wgsl

import (
	"fmt"
	"strings"
	"unicode"
)

// Namer generates unique WGSL identifiers. It tracks used names and escapes
// reserved words. Unlike HLSL, WGSL identifiers are case-sensitive, so names
// are tracked exactly as spelled.
type Namer struct {
	usedNames map[string]struct{}
	counter   uint32
}

// NewNamer creates a new Namer.
func NewNamer() *Namer {
	return &Namer{usedNames: make(map[string]struct{})}
}

// UnnamedIdentifier is the base used when a source name is empty.
const UnnamedIdentifier = "unnamed"

// Call generates a unique name based on the given base. It sanitizes the
// base, escapes reserved keywords and adds numeric suffixes when needed.
func (n *Namer) Call(base string) string {
	if base == "" {
		base = UnnamedIdentifier
	}
	escaped := Escape(Sanitize(base))

	if !n.isUsed(escaped) {
		n.usedNames[escaped] = struct{}{}
		return escaped
	}

	for {
		n.counter++
		candidate := fmt.Sprintf("%s_%d", escaped, n.counter)
		if !n.isUsed(candidate) {
			n.usedNames[candidate] = struct{}{}
			return candidate
		}
	}
}

// Reserve marks a name as used without returning it. Useful for names that
// appear verbatim in emitted code, such as entry points and builtins.
func (n *Namer) Reserve(name string) {
	n.usedNames[name] = struct{}{}
}

// IsUsed reports whether a name has already been handed out or reserved.
func (n *Namer) IsUsed(name string) bool {
	return n.isUsed(name)
}

func (n *Namer) isUsed(name string) bool {
	_, used := n.usedNames[name]
	return used
}

// Sanitize rewrites name into a valid WGSL identifier: invalid runes become
// underscores and a leading digit gets an underscore prefix.
func Sanitize(name string) string {
	if name == "" {
		return name
	}
	var sb strings.Builder
	for i, r := range name {
		valid := r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r))
		if i == 0 && unicode.IsDigit(r) {
			sb.WriteByte('_')
			sb.WriteRune(r)
			continue
		}
		if valid {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}
