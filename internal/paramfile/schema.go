// Package paramfile reads pipeline parameter sets from JSON or YAML files.
package paramfile

// ParamsFile is the on-disk form of a parameter set. Every key is optional;
// absent keys keep the value of the base parameters they are applied to.
type ParamsFile struct {
	FluidType               *string  `json:"fluid_type,omitempty" yaml:"fluid_type,omitempty"`
	TemperatureC            *float64 `json:"temperature_c,omitempty" yaml:"temperature_c,omitempty"`
	DensityKgM3             *float64 `json:"density_kg_m3,omitempty" yaml:"density_kg_m3,omitempty"`
	HumidityPct             *int     `json:"humidity_pct,omitempty" yaml:"humidity_pct,omitempty"`
	Material                *string  `json:"material,omitempty" yaml:"material,omitempty"`
	InstallDate             *string  `json:"install_date,omitempty" yaml:"install_date,omitempty"`
	FlowHoursPerDay         *int     `json:"flow_hours_per_day,omitempty" yaml:"flow_hours_per_day,omitempty"`
	MaintenanceIntervalDays *int     `json:"maintenance_interval_days,omitempty" yaml:"maintenance_interval_days,omitempty"`
}
