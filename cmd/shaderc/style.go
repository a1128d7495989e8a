package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/compiling-org/WGSL-Shader-Studio-sub002/diag"
)

// Severity colors.
var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D93025")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#667085"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#22A06B"))
)

func severityStyle(s diag.Severity) lipgloss.Style {
	switch s {
	case diag.SeverityError:
		return errorStyle
	case diag.SeverityWarning:
		return warnStyle
	case diag.SeverityHint:
		return hintStyle
	default:
		return infoStyle
	}
}

// renderDiagnostics formats a set for the terminal, errors first.
func renderDiagnostics(ds *diag.Set) string {
	var sb strings.Builder
	for _, d := range ds.Sorted() {
		label := severityStyle(d.Severity).Render(d.Severity.String())
		sb.WriteString(label + " [" + d.Code + "] " + d.Location.String() + ": " + d.Message + "\n")
	}
	return sb.String()
}
