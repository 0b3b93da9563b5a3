package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Field is one label/value line in a field list.
type Field struct {
	Label string
	Value string
}

// RenderFields renders labels in the dim style, padded so values line up.
// Widths are measured on visible text so styled values align correctly.
func RenderFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}

	width := 0
	for _, f := range fields {
		width = max(width, lipgloss.Width(f.Label))
	}

	const gap = 2

	var b strings.Builder
	for _, f := range fields {
		pad := width - lipgloss.Width(f.Label)
		b.WriteString(StyleDim.Render(f.Label))
		b.WriteString(strings.Repeat(" ", pad+gap))
		b.WriteString(f.Value)
		b.WriteString("\n")
	}
	return b.String()
}
