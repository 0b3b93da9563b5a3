// Package engine computes corrosion risk predictions from pipeline parameters.
// Everything here is a pure function of its input: no clock, no I/O, no state.
package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/fluidguard/fluidguard/internal/domain"
)

const (
	corrosionScale   = 1000.0
	replacementScale = 2500.0

	// Thresholds on flow hours per day; the boundaries themselves are safe.
	highFlowHours = 16
	lowFlowHours  = 6

	minSuggestedIntervalDays = 30

	// Offsets beyond this are treated like a zero score.
	maxOffsetDays = math.MaxInt32
)

// MaterialFactor is the base contribution of the pipeline material.
func MaterialFactor(m domain.Material) float64 {
	switch m {
	case domain.MaterialIron, domain.MaterialDuralumin:
		return 1.0
	default:
		return 0.7
	}
}

// RawScore is the unclamped risk sum. Terms are added left to right so the
// result is reproducible bit for bit.
func RawScore(p domain.PipelineParameters) float64 {
	return MaterialFactor(p.Material) +
		p.DensityKgM3/1000 +
		p.TemperatureC/100 +
		float64(p.HumidityPct)/100 +
		float64(p.FlowHoursPerDay)/24 -
		float64(p.MaintenanceIntervalDays)/365
}

// RiskScore clamps the raw score to [0, MaxRiskScore]. NaN passes through.
func RiskScore(p domain.PipelineParameters) float64 {
	raw := RawScore(p)
	if math.IsNaN(raw) {
		return raw
	}
	return math.Min(math.Max(raw, 0), domain.MaxRiskScore)
}

// FlowAdvisoryFor depends on flow hours alone.
func FlowAdvisoryFor(flowHoursPerDay int) domain.FlowAdvisory {
	switch {
	case flowHoursPerDay > highFlowHours:
		return domain.FlowHighWarning
	case flowHoursPerDay < lowFlowHours:
		return domain.FlowLowNotice
	default:
		return domain.FlowSafeRange
	}
}

// AddDays adds whole calendar days to a civil date.
func AddDays(d time.Time, days int) time.Time {
	return domain.CivilDate(d).AddDate(0, 0, days)
}

// Evaluate produces the prediction for p. It does not validate ranges; the
// only failure is a zero (or NaN) risk score, reported as
// domain.ErrDegenerateRiskScore. In-range parameters never score below 0.1.
func Evaluate(p domain.PipelineParameters) (domain.PredictionResult, error) {
	score := RiskScore(p)
	if score == 0 || math.IsNaN(score) || replacementScale/score > maxOffsetDays {
		return domain.PredictionResult{}, fmt.Errorf("raw score %g: %w", RawScore(p), domain.ErrDegenerateRiskScore)
	}

	corrosionDays := int(math.Floor(corrosionScale / score))
	replacementDays := int(math.Floor(replacementScale / score))

	result := domain.PredictionResult{
		RiskScore:           score,
		CorrosionDays:       corrosionDays,
		ReplacementDays:     replacementDays,
		CorrosionStartDate:  AddDays(p.InstallDate, corrosionDays),
		ReplacementDate:     AddDays(p.InstallDate, replacementDays),
		MaintenanceAdequate: p.MaintenanceIntervalDays < corrosionDays/4,
		FlowAdvisory:        FlowAdvisoryFor(p.FlowHoursPerDay),
	}

	if !result.MaintenanceAdequate {
		suggested := max(minSuggestedIntervalDays, corrosionDays/5)
		result.SuggestedIntervalDays = &suggested
	}

	return result, nil
}
