// Package ui renders the terminal output of a run: progress lines, the final
// summary box and the optional INDEX.md preview.
package ui

import "github.com/charmbracelet/lipgloss"

// Exported constants.
const (
	// DefaultPadding is the horizontal padding inside boxes
	DefaultPadding = 2
	// DefaultWidth is used when the output is not a terminal
	DefaultWidth = 80
	// MaxDegradedShown caps the degraded paths listed in the summary
	MaxDegradedShown = 10
)

func AccentColor() lipgloss.Color { return lipgloss.Color(accentColorCode) }

// BoxStyle returns the style for boxes with padding
func BoxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(AccentColor()).
		Padding(1, DefaultPadding)
}

func DimColor() lipgloss.Color { return lipgloss.Color(dimColorCode) }

// DimStyle returns the style for dimmed text
func DimStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(DimColor())
}

func ErrorColor() lipgloss.Color { return lipgloss.Color(errorColorCode) }

// ErrorStyle returns the style for error messages
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ErrorColor()).
		Bold(true)
}

func HighlightColor() lipgloss.Color { return lipgloss.Color(highlightColorCode) }

// LabelStyle returns the style for labels
func LabelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(HighlightColor()).
		Bold(true)
}

func PrimaryColor() lipgloss.Color { return lipgloss.Color(primaryColorCode) }

func RenderBox(content string) string { return BoxStyle().Render(content) }

func RenderDim(text string) string { return DimStyle().Render(text) }

func RenderError(text string) string { return ErrorStyle().Render(text) }

func RenderLabel(text string) string { return LabelStyle().Render(text) }

func RenderSuccess(text string) string { return SuccessStyle().Render(text) }

func RenderTitle(text string) string { return TitleStyle().Render(text) }

func RenderWarning(text string) string { return WarningStyle().Render(text) }

func SuccessColor() lipgloss.Color { return lipgloss.Color(successColorCode) }

// SuccessStyle returns the style for success messages
func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(SuccessColor()).
		Bold(true)
}

// TitleStyle returns the style for titles
func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor())
}

func WarningColor() lipgloss.Color { return lipgloss.Color(warningColorCode) }

// WarningStyle returns the style for warning messages
func WarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(WarningColor()).
		Bold(true)
}

// unexported constants.
const (
	accentColorCode    = "62"  // Blue
	dimColorCode       = "240" // Dark gray
	errorColorCode     = "196" // Red
	highlightColorCode = "86"  // Cyan
	primaryColorCode   = "205" // Pink/purple
	successColorCode   = "42"  // Green
	warningColorCode   = "226"
)
