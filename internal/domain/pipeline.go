package domain

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the civil-date layout used for flags, files and JSON output.
const DateLayout = "2006-01-02"

// Parameter ranges accepted by the form layer.
const (
	MinTemperatureC = -10.0
	MaxTemperatureC = 150.0

	MinDensityKgM3 = 500.0
	MaxDensityKgM3 = 1500.0

	MinHumidityPct = 0
	MaxHumidityPct = 100

	MinFlowHoursPerDay = 0
	MaxFlowHoursPerDay = 24

	MinMaintenanceIntervalDays = 30
	MaxMaintenanceIntervalDays = 365
)

// Field names used in validation errors, parameter files and JSON output.
const (
	FieldFluidType               = "fluid_type"
	FieldTemperatureC            = "temperature_c"
	FieldDensityKgM3             = "density_kg_m3"
	FieldHumidityPct             = "humidity_pct"
	FieldMaterial                = "material"
	FieldInstallDate             = "install_date"
	FieldFlowHoursPerDay         = "flow_hours_per_day"
	FieldMaintenanceIntervalDays = "maintenance_interval_days"
)

// PipelineParameters is one submitted parameter set. It is passed by value
// and never mutated by the engine.
type PipelineParameters struct {
	FluidType               FluidType
	TemperatureC            float64
	DensityKgM3             float64
	HumidityPct             int
	Material                Material
	InstallDate             time.Time
	FlowHoursPerDay         int
	MaintenanceIntervalDays int
}

// DefaultParameters returns the values the form starts with.
func DefaultParameters() PipelineParameters {
	return PipelineParameters{
		FluidType:               FluidWater,
		TemperatureC:            MinTemperatureC,
		DensityKgM3:             MinDensityKgM3,
		HumidityPct:             60,
		Material:                MaterialIron,
		InstallDate:             time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC),
		FlowHoursPerDay:         12,
		MaintenanceIntervalDays: 180,
	}
}

// CivilDate truncates t to midnight UTC of its calendar day.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a civil date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}

// Validate checks every field against its documented range. The install
// date must not be after the calendar day of now. All violations are
// reported together.
func (p PipelineParameters) Validate(now time.Time) error {
	var v ValidationError

	if !p.FluidType.Valid() {
		v.add(FieldFluidType, fmt.Sprintf("unknown fluid type %q", p.FluidType))
	}
	if !p.Material.Valid() {
		v.add(FieldMaterial, fmt.Sprintf("unknown material %q", p.Material))
	}
	checkFloat(&v, FieldTemperatureC, p.TemperatureC, MinTemperatureC, MaxTemperatureC)
	checkFloat(&v, FieldDensityKgM3, p.DensityKgM3, MinDensityKgM3, MaxDensityKgM3)
	checkInt(&v, FieldHumidityPct, p.HumidityPct, MinHumidityPct, MaxHumidityPct)
	checkInt(&v, FieldFlowHoursPerDay, p.FlowHoursPerDay, MinFlowHoursPerDay, MaxFlowHoursPerDay)
	checkInt(&v, FieldMaintenanceIntervalDays, p.MaintenanceIntervalDays, MinMaintenanceIntervalDays, MaxMaintenanceIntervalDays)

	switch {
	case p.InstallDate.IsZero():
		v.add(FieldInstallDate, "is required")
	case CivilDate(p.InstallDate).After(CivilDate(now)):
		v.add(FieldInstallDate, fmt.Sprintf("%s is in the future", p.InstallDate.Format(DateLayout)))
	}

	if len(v.Violations) == 0 {
		return nil
	}
	return &v
}

// Clamp returns a copy with every numeric field pulled into range and a
// future install date moved to today. It also returns the names of the
// fields it changed. Enum fields cannot be clamped and are left as-is.
func (p PipelineParameters) Clamp(now time.Time) (PipelineParameters, []string) {
	var changed []string
	out := p

	out.TemperatureC = clampFloat(p.TemperatureC, MinTemperatureC, MaxTemperatureC)
	if out.TemperatureC != p.TemperatureC {
		changed = append(changed, FieldTemperatureC)
	}
	out.DensityKgM3 = clampFloat(p.DensityKgM3, MinDensityKgM3, MaxDensityKgM3)
	if out.DensityKgM3 != p.DensityKgM3 {
		changed = append(changed, FieldDensityKgM3)
	}
	out.HumidityPct = clampInt(p.HumidityPct, MinHumidityPct, MaxHumidityPct)
	if out.HumidityPct != p.HumidityPct {
		changed = append(changed, FieldHumidityPct)
	}
	out.FlowHoursPerDay = clampInt(p.FlowHoursPerDay, MinFlowHoursPerDay, MaxFlowHoursPerDay)
	if out.FlowHoursPerDay != p.FlowHoursPerDay {
		changed = append(changed, FieldFlowHoursPerDay)
	}
	out.MaintenanceIntervalDays = clampInt(p.MaintenanceIntervalDays, MinMaintenanceIntervalDays, MaxMaintenanceIntervalDays)
	if out.MaintenanceIntervalDays != p.MaintenanceIntervalDays {
		changed = append(changed, FieldMaintenanceIntervalDays)
	}

	today := CivilDate(now)
	if !p.InstallDate.IsZero() && CivilDate(p.InstallDate).After(today) {
		out.InstallDate = today
		changed = append(changed, FieldInstallDate)
	}

	return out, changed
}

func checkFloat(v *ValidationError, field string, val, lo, hi float64) {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		v.add(field, "must be a finite number")
		return
	}
	if val < lo || val > hi {
		v.add(field, fmt.Sprintf("%g is outside [%g, %g]", val, lo, hi))
	}
}

func checkInt(v *ValidationError, field string, val, lo, hi int) {
	if val < lo || val > hi {
		v.add(field, fmt.Sprintf("%d is outside [%d, %d]", val, lo, hi))
	}
}

// clampFloat maps NaN to lo so the clamped value is always usable.
func clampFloat(val, lo, hi float64) float64 {
	if math.IsNaN(val) {
		return lo
	}
	return math.Min(math.Max(val, lo), hi)
}

func clampInt(val, lo, hi int) int {
	return min(max(val, lo), hi)
}
