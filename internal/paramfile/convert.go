package paramfile

import (
	"errors"
	"fmt"

	"github.com/fluidguard/fluidguard/internal/domain"
)

// ValidateSchema checks the values that cannot be represented in
// domain.PipelineParameters (unknown enums, malformed dates). Range checks
// are left to the input policy. All errors are returned together.
func ValidateSchema(f *ParamsFile) []error {
	var errs []error

	if f.FluidType != nil {
		if _, ok := domain.ParseFluidType(*f.FluidType); !ok {
			errs = append(errs, fmt.Errorf("%s: unknown fluid type %q", domain.FieldFluidType, *f.FluidType))
		}
	}
	if f.Material != nil {
		if _, ok := domain.ParseMaterial(*f.Material); !ok {
			errs = append(errs, fmt.Errorf("%s: unknown material %q", domain.FieldMaterial, *f.Material))
		}
	}
	if f.InstallDate != nil {
		if _, err := domain.ParseDate(*f.InstallDate); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", domain.FieldInstallDate, err))
		}
	}

	return errs
}

// Apply overlays the keys present in f onto base.
func (f *ParamsFile) Apply(base domain.PipelineParameters) (domain.PipelineParameters, error) {
	if errs := ValidateSchema(f); len(errs) > 0 {
		return base, errors.Join(errs...)
	}

	p := base
	if f.FluidType != nil {
		p.FluidType, _ = domain.ParseFluidType(*f.FluidType)
	}
	if f.Material != nil {
		p.Material, _ = domain.ParseMaterial(*f.Material)
	}
	if f.InstallDate != nil {
		p.InstallDate, _ = domain.ParseDate(*f.InstallDate)
	}
	p.TemperatureC = domain.FirstNonNil(p.TemperatureC, f.TemperatureC)
	p.DensityKgM3 = domain.FirstNonNil(p.DensityKgM3, f.DensityKgM3)
	p.HumidityPct = domain.FirstNonNil(p.HumidityPct, f.HumidityPct)
	p.FlowHoursPerDay = domain.FirstNonNil(p.FlowHoursPerDay, f.FlowHoursPerDay)
	p.MaintenanceIntervalDays = domain.FirstNonNil(p.MaintenanceIntervalDays, f.MaintenanceIntervalDays)
	return p, nil
}

// FromParameters converts a parameter set back to its file form.
func FromParameters(p domain.PipelineParameters) *ParamsFile {
	fluid := string(p.FluidType)
	material := string(p.Material)
	install := p.InstallDate.Format(domain.DateLayout)
	return &ParamsFile{
		FluidType:               &fluid,
		TemperatureC:            &p.TemperatureC,
		DensityKgM3:             &p.DensityKgM3,
		HumidityPct:             &p.HumidityPct,
		Material:                &material,
		InstallDate:             &install,
		FlowHoursPerDay:         &p.FlowHoursPerDay,
		MaintenanceIntervalDays: &p.MaintenanceIntervalDays,
	}
}
