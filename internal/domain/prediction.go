package domain

import "time"

// MaxRiskScore is the upper bound of the clamped risk score.
const MaxRiskScore = 3.0

// PredictionResult is derived entirely from one PipelineParameters value.
type PredictionResult struct {
	RiskScore             float64
	CorrosionDays         int
	ReplacementDays       int
	CorrosionStartDate    time.Time
	ReplacementDate       time.Time
	MaintenanceAdequate   bool
	SuggestedIntervalDays *int // nil when MaintenanceAdequate
	FlowAdvisory          FlowAdvisory
}
