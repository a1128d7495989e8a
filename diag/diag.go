// Package diag defines the diagnostics model shared by every converter.
//
// A Diagnostic is a severity-tagged message with a stable code and a source
// location. A Set aggregates diagnostics together with running per-severity
// counts; it is append-only until explicitly cleared, so no added diagnostic
// is ever lost. Sets created during one conversion are owned by the caller
// and are plain values with no shared state.
package diag

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Severity classifies a diagnostic.
type Severity uint8

const (
	// SeverityError indicates a problem that should gate "ready to run" checks.
	SeverityError Severity = iota

	// SeverityWarning indicates a degraded conversion (e.g. a placeholder type).
	SeverityWarning

	// SeverityInfo indicates a best-effort substitution (e.g. synthesized entry point).
	SeverityInfo

	// SeverityHint suggests an optional improvement.
	SeverityHint
)

const severityCount = 4

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	case "hint":
		*s = SeverityHint
	default:
		return fmt.Errorf("diag: unknown severity %q", text)
	}
	return nil
}

// Location identifies a source position.
type Location struct {
	File   string `json:"file,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Length int    `json:"length,omitempty"`
}

// String renders the location as file:line:col.
func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Fix is a suggested textual replacement attached to a diagnostic.
type Fix struct {
	Description string `json:"description"`
	Replacement string `json:"replacement,omitempty"`
}

// Related points at a secondary location that explains a diagnostic.
type Related struct {
	Message  string   `json:"message"`
	Location Location `json:"location"`
}

// Diagnostic is one severity-tagged message with a stable code.
type Diagnostic struct {
	Severity Severity  `json:"severity"`
	Code     string    `json:"code"`
	Message  string    `json:"message"`
	Location Location  `json:"location"`
	Fixes    []Fix     `json:"fixes,omitempty"`
	Related  []Related `json:"related,omitempty"`
}

// String renders a single diagnostic line.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s [%s] %s: %s", d.Severity, d.Code, d.Location, d.Message)
}

// Set is an append-only diagnostic collection with per-severity counts.
// The zero value is ready to use.
type Set struct {
	diags  []Diagnostic
	counts [severityCount]int
}

// NewSet returns an empty diagnostic set.
func NewSet() *Set {
	return &Set{}
}

// Add appends a diagnostic and updates the severity counts. A severity
// outside the known range is clamped to SeverityError so the counts always
// sum to the set length.
func (s *Set) Add(d Diagnostic) {
	if int(d.Severity) >= severityCount {
		d.Severity = SeverityError
	}
	s.diags = append(s.diags, d)
	s.counts[d.Severity]++
}

// AddError appends an error diagnostic.
func (s *Set) AddError(code, message string, loc Location) {
	s.Add(Diagnostic{Severity: SeverityError, Code: code, Message: message, Location: loc})
}

// AddWarning appends a warning diagnostic.
func (s *Set) AddWarning(code, message string, loc Location) {
	s.Add(Diagnostic{Severity: SeverityWarning, Code: code, Message: message, Location: loc})
}

// AddInfo appends an info diagnostic.
func (s *Set) AddInfo(code, message string, loc Location) {
	s.Add(Diagnostic{Severity: SeverityInfo, Code: code, Message: message, Location: loc})
}

// AddHint appends a hint diagnostic.
func (s *Set) AddHint(code, message string, loc Location) {
	s.Add(Diagnostic{Severity: SeverityHint, Code: code, Message: message, Location: loc})
}

// Merge appends every diagnostic from other. The other set is not modified.
func (s *Set) Merge(other *Set) {
	if other == nil {
		return
	}
	for _, d := range other.diags {
		s.Add(d)
	}
}

// Clear removes all diagnostics and resets the counts.
func (s *Set) Clear() {
	s.diags = nil
	s.counts = [severityCount]int{}
}

// Len returns the total number of diagnostics.
func (s *Set) Len() int {
	return len(s.diags)
}

// Count returns the number of diagnostics with the given severity.
func (s *Set) Count(sev Severity) int {
	if int(sev) >= severityCount {
		return 0
	}
	return s.counts[sev]
}

// HasErrors reports whether the set contains at least one error.
func (s *Set) HasErrors() bool {
	return s.counts[SeverityError] > 0
}

// Diagnostics returns a copy of the live diagnostic list.
func (s *Set) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(s.diags))
	copy(out, s.diags)
	return out
}

// Sorted returns the diagnostics ordered by (file, line, column, severity).
// The live list is not reordered; output stays deterministic for CLI display.
func (s *Set) Sorted() []Diagnostic {
	out := s.Diagnostics()
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Location.File != b.Location.File {
			return a.Location.File < b.Location.File
		}
		if a.Location.Line != b.Location.Line {
			return a.Location.Line < b.Location.Line
		}
		if a.Location.Column != b.Location.Column {
			return a.Location.Column < b.Location.Column
		}
		return a.Severity < b.Severity
	})
	return out
}

// Format renders the whole set as text, one diagnostic per line, followed
// by a severity summary.
func (s *Set) Format() string {
	var sb strings.Builder
	for _, d := range s.Sorted() {
		sb.WriteString(d.String())
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "%d error(s), %d warning(s), %d info, %d hint(s)\n",
		s.counts[SeverityError], s.counts[SeverityWarning],
		s.counts[SeverityInfo], s.counts[SeverityHint])
	return sb.String()
}

// setJSON is the wire form of a Set. Counts are recomputed on decode so the
// summary can never drift from the list.
type setJSON struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// MarshalJSON implements json.Marshaler.
func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(setJSON{Diagnostics: s.diags})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Set) UnmarshalJSON(data []byte) error {
	var wire setJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	s.Clear()
	for _, d := range wire.Diagnostics {
		s.Add(d)
	}
	return nil
}
