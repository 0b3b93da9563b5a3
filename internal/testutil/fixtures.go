package testutil

import (
	"time"

	"github.com/fluidguard/fluidguard/internal/domain"
)

// ReferenceNow is a fixed "today" used by tests that depend on the clock.
var ReferenceNow = time.Date(2026, time.March, 15, 9, 30, 0, 0, time.UTC)

// FixedClock returns a clock function that always reports ReferenceNow.
func FixedClock() func() time.Time {
	return func() time.Time { return ReferenceNow }
}

// Parameter options
type ParamOption func(*domain.PipelineParameters)

func WithFluid(f domain.FluidType) ParamOption {
	return func(p *domain.PipelineParameters) {
		p.FluidType = f
	}
}

func WithMaterial(m domain.Material) ParamOption {
	return func(p *domain.PipelineParameters) {
		p.Material = m
	}
}

func WithTemperature(c float64) ParamOption {
	return func(p *domain.PipelineParameters) {
		p.TemperatureC = c
	}
}

func WithDensity(d float64) ParamOption {
	return func(p *domain.PipelineParameters) {
		p.DensityKgM3 = d
	}
}

func WithHumidity(pct int) ParamOption {
	return func(p *domain.PipelineParameters) {
		p.HumidityPct = pct
	}
}

func WithFlowHours(h int) ParamOption {
	return func(p *domain.PipelineParameters) {
		p.FlowHoursPerDay = h
	}
}

func WithMaintenanceInterval(days int) ParamOption {
	return func(p *domain.PipelineParameters) {
		p.MaintenanceIntervalDays = days
	}
}

func WithInstallDate(d time.Time) ParamOption {
	return func(p *domain.PipelineParameters) {
		p.InstallDate = d
	}
}

// NewTestParameters starts from the form defaults and applies opts.
func NewTestParameters(opts ...ParamOption) domain.PipelineParameters {
	p := domain.DefaultParameters()
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// HighRiskParameters is the iron pipeline whose raw score exceeds the cap.
func HighRiskParameters() domain.PipelineParameters {
	return NewTestParameters(
		WithMaterial(domain.MaterialIron),
		WithDensity(1000),
		WithTemperature(50),
		WithHumidity(60),
		WithFlowHours(12),
		WithMaintenanceInterval(180),
	)
}
