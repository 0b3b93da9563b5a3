package formatter

import (
	"fmt"
	"strings"

	"github.com/fluidguard/fluidguard/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderRiskGauge renders the risk score as a bar like [████░░░░] 1.50 / 3.
// Unlike a progress bar, fuller is worse: the bar is colored by risk band.
func RenderRiskGauge(score float64, width int) string {
	frac := score / domain.MaxRiskScore
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	empty := width - filled

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)
	return fmt.Sprintf("[%s] %s", RiskColor(score).Render(bar), FormatScore(score))
}
