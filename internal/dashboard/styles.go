package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Dashboard color palette
const (
	// Semantic colors for percentage metrics
	ColorHealthy  = lipgloss.Color("#39FF14") // Neon green
	ColorWarning  = lipgloss.Color("#FFAA00") // Electric amber
	ColorCritical = lipgloss.Color("#FF0055") // Hot red-pink

	// Text colors
	ColorTextPrimary   = lipgloss.Color("#FFFFFF") // Pure white
	ColorTextSecondary = lipgloss.Color("#B4B4D0") // Lavender gray
	ColorTextMuted     = lipgloss.Color("#6B6B8D") // Purple-gray

	// Accent colors
	ColorAccent    = lipgloss.Color("#FF2E97") // Neon pink
	ColorAccentDim = lipgloss.Color("#BF40FF") // Neon purple

	// Border color for panels
	ColorBorder = lipgloss.Color("#2A2A4A")
)

// Thresholds for metric severity levels
const (
	WarningThreshold  = 50.0
	CriticalThreshold = 80.0
)

// Base styles for the dashboard
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorAccentDim)

	FrozenBadgeStyle = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	PromptTitleStyle = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorCritical)
)

// MetricColor returns the appropriate color for a percentage-based metric.
// Uses threshold-based coloring: green below 50%, amber 50-80%, red above 80%.
func MetricColor(percent float64) lipgloss.Color {
	switch {
	case percent > CriticalThreshold:
		return ColorCritical
	case percent >= WarningThreshold:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// MetricStyle returns a style with the appropriate foreground color for the metric.
func MetricStyle(percent float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(MetricColor(percent))
}

// ProgressBar renders a horizontal bar with the given width and percentage,
// colored by severity threshold.
func ProgressBar(width int, percent float64) string {
	if width < 1 {
		width = 1
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(float64(width) * percent / 100)
	if filled > width {
		filled = width
	}
	empty := width - filled

	bar := lipgloss.NewStyle().
		Foreground(MetricColor(percent)).
		Render(strings.Repeat("█", filled))
	rest := MutedStyle.Render(strings.Repeat("░", empty))

	return bar + rest
}
