package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// MonthYear formats a date the way predictions are reported, e.g. "November 2018".
func MonthYear(t time.Time) string {
	return t.Format("January 2006")
}

// HumanDate returns an absolute date such as "Jan 2, 2018".
func HumanDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatDays converts a day count into years and days, e.g. "2y 103d".
func FormatDays(days int) string {
	if days <= 0 {
		return "0d"
	}
	y := days / 365
	d := days % 365
	if y > 0 && d > 0 {
		return fmt.Sprintf("%dy %dd", y, d)
	}
	if y > 0 {
		return fmt.Sprintf("%dy", y)
	}
	return fmt.Sprintf("%dd", d)
}

// FormatScore renders a risk score with two decimals against its maximum.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f / 3", score)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}
