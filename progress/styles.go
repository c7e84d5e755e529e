// Package progress renders live pipeline progress: an overall bar, a
// per-job status feed, and a running failure count.
//
// Two renderers are provided. Model is a Bubble Tea view for interactive
// terminals; PlainReporter writes one line per job for non-TTY output.
// Both consume the same coordinator events, so the information shown is
// identical. Detailed diagnostics never appear here; they go to the
// structured log.
package progress

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	primaryColor = lipgloss.Color("#7C3AED") // Purple
	successColor = lipgloss.Color("#10B981") // Green
	errorColor   = lipgloss.Color("#EF4444") // Red
	mutedColor   = lipgloss.Color("#6B7280") // Gray
)

// Styles for the progress view.
var (
	// TitleStyle for the run header.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// SuccessStyle for completed job lines.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// ErrorStyle for failed job lines and the failure counter.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// CounterStyle for the completed/total counter line.
	CounterStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)
