// Package output provides styled terminal rendering helpers for habitwatch.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color constants for consistent styling across the CLI.
var (
	// ColorPrimary is used for headers and emphasis.
	ColorPrimary = lipgloss.Color("#64b5f6")

	// ColorSuccess is used for completed habits and positive trends.
	ColorSuccess = lipgloss.Color("#66bb6a")

	// ColorError is used for broken streaks and negative trends.
	ColorError = lipgloss.Color("#ef5350")

	// ColorWarning is used for partial completions and caution indicators.
	ColorWarning = lipgloss.Color("#fff59d")

	// ColorMuted is used for secondary text and borders.
	ColorMuted = lipgloss.Color("#888888")

	// ColorWhite is used for primary text.
	ColorWhite = lipgloss.Color("#ffffff")
)

// heatColors are the background shades for heatmap cells, from empty to full.
var heatColors = []lipgloss.Color{
	lipgloss.Color("#2d333b"),
	lipgloss.Color("#0e4429"),
	lipgloss.Color("#006d32"),
	lipgloss.Color("#26a641"),
	lipgloss.Color("#39d353"),
}

// Styles provides reusable lipgloss styles.
var (
	// StyleHeader is used for section headers.
	StyleHeader = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	// StyleSuccess is used for positive values.
	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StyleError is used for negative values.
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)

	// StyleWarning is used for cautionary values.
	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// StyleMuted is used for de-emphasized text.
	StyleMuted = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleBold is used for emphasized text.
	StyleBold = lipgloss.NewStyle().
			Bold(true)

	// StyleLabel is used for metric labels.
	StyleLabel = lipgloss.NewStyle().
			Width(24)

	// StyleValue is used for metric values.
	StyleValue = lipgloss.NewStyle().
			Bold(true).
			Width(12)
)

// noColor tracks whether color output is disabled.
var noColor bool

// SetNoColor disables or enables color output globally.
// When disabled, all package-level styles are reassigned to unstyled renderers.
func SetNoColor(disabled bool) {
	noColor = disabled
	if disabled {
		plain := lipgloss.NewStyle()
		StyleHeader = plain
		StyleSuccess = plain
		StyleError = plain
		StyleWarning = plain
		StyleMuted = plain
		StyleBold = plain
		StyleLabel = plain.Width(24)
		StyleValue = plain.Width(12)
	}
}

// IsNoColor returns whether color output is currently disabled.
func IsNoColor() bool {
	return noColor
}

// AutoColor disables color when stdout is not a terminal or the NO_COLOR
// convention is in effect. An explicit config value wins over detection.
func AutoColor(configColor bool) {
	if !configColor {
		SetNoColor(true)
		return
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		SetNoColor(true)
		return
	}
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		SetNoColor(true)
	}
}
