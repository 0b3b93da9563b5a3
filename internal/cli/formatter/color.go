package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fluidguard/fluidguard/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// RiskBand is a display-only bucket of the 0–3 risk score.
type RiskBand string

const (
	BandLow      RiskBand = "low"
	BandModerate RiskBand = "moderate"
	BandHigh     RiskBand = "high"
)

// BandFor splits the score range into thirds.
func BandFor(score float64) RiskBand {
	switch {
	case score >= 2:
		return BandHigh
	case score >= 1:
		return BandModerate
	default:
		return BandLow
	}
}

// RiskColor returns the style for a risk score.
func RiskColor(score float64) lipgloss.Style {
	switch BandFor(score) {
	case BandHigh:
		return StyleRed
	case BandModerate:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// RiskIndicator returns a colored band label such as "● HIGH RISK".
func RiskIndicator(score float64) string {
	switch BandFor(score) {
	case BandHigh:
		return StyleRed.Render("● HIGH RISK")
	case BandModerate:
		return StyleYellow.Render("● MODERATE RISK")
	default:
		return StyleGreen.Render("● LOW RISK")
	}
}

// FlowBanner maps the flow advisory to its colored message.
func FlowBanner(a domain.FlowAdvisory) string {
	switch a {
	case domain.FlowHighWarning:
		return StyleYellow.Render("▲ High flow frequency detected.") +
			Dim(" Consider reducing it to minimise wear and corrosion risk.")
	case domain.FlowLowNotice:
		return StyleBlue.Render("○ Low flow frequency.") +
			Dim(" Generally safer, but verify fluid stagnation is not a risk.")
	case domain.FlowSafeRange:
		return StyleGreen.Render("✔ Flow frequency is within a safe operating range.")
	default:
		return StyleDim.Render(string(a))
	}
}

// MaintenanceBanner renders the adequacy verdict.
func MaintenanceBanner(adequate bool) string {
	if adequate {
		return StyleGreen.Render("✔ Your maintenance schedule is adequate.")
	}
	return StyleYellow.Render("▲ Maintenance interval too long.") +
		Dim(" Consider reducing it to avoid early rust.")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
