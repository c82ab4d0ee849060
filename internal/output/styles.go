package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sceriffo01/sp-dev-modernization/internal/domain"
)

// Styles holds all lipgloss styles for console output
var Styles = struct {
	// Log level styles
	Debug   lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	// Component styles
	Timestamp lipgloss.Style
	Page      lipgloss.Style
	Heading   lipgloss.Style

	// Summary styles
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Success lipgloss.Style
	Caution lipgloss.Style
	Danger  lipgloss.Style
}{
	Debug:   lipgloss.NewStyle().Foreground(lipgloss.Color("243")),            // Gray
	Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),             // Cyan
	Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),            // Orange
	Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // Red bold

	Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Page:      lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	Heading:   lipgloss.NewStyle().Foreground(lipgloss.Color("142")),

	Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("239")),
	Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	Value:   lipgloss.NewStyle().Bold(true),
	Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
	Caution: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
}

// DisableStyles strips colors from every style, used when stdout is not a terminal
func DisableStyles() {
	plain := lipgloss.NewStyle()
	Styles.Debug = plain
	Styles.Info = plain
	Styles.Warning = plain
	Styles.Error = plain
	Styles.Timestamp = plain
	Styles.Page = plain
	Styles.Heading = plain
	Styles.Header = plain
	Styles.Label = plain
	Styles.Value = plain
	Styles.Success = plain
	Styles.Caution = plain
	Styles.Danger = plain
}

// LevelStyle returns the appropriate style for a log level
func LevelStyle(level domain.LogLevel) lipgloss.Style {
	switch level {
	case domain.LogLevelDebug:
		return Styles.Debug
	case domain.LogLevelWarning:
		return Styles.Warning
	case domain.LogLevelError:
		return Styles.Error
	default:
		return Styles.Info
	}
}

// LevelIndicator returns a styled level indicator
func LevelIndicator(level domain.LogLevel) string {
	style := LevelStyle(level)
	switch level {
	case domain.LogLevelDebug:
		return style.Render("DBG")
	case domain.LogLevelInformation:
		return style.Render("INF")
	case domain.LogLevelWarning:
		return style.Render("WRN")
	case domain.LogLevelError:
		return style.Render("ERR")
	default:
		return style.Render("???")
	}
}

// StatusStyle returns a style based on page status
func StatusStyle(kind domain.StatusKind) lipgloss.Style {
	switch kind {
	case domain.StatusFailed:
		return Styles.Danger
	case domain.StatusSucceededWithIssues:
		return Styles.Caution
	default:
		return Styles.Success
	}
}

// StatusText returns styled status text
func StatusText(status domain.PageStatus) string {
	return StatusStyle(status.Kind).Render(status.String())
}
