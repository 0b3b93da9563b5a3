package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/fluidguard/fluidguard/internal/domain"
)

// formValues holds the string-backed values the parameter form edits.
type formValues struct {
	fluid       string
	temperature string
	density     string
	humidity    string
	material    string
	installDate string
	flowHours   string
	interval    string
}

func valuesFromParameters(p domain.PipelineParameters) *formValues {
	return &formValues{
		fluid:       string(p.FluidType),
		temperature: strconv.FormatFloat(p.TemperatureC, 'g', -1, 64),
		density:     strconv.FormatFloat(p.DensityKgM3, 'g', -1, 64),
		humidity:    strconv.Itoa(p.HumidityPct),
		material:    string(p.Material),
		installDate: p.InstallDate.Format(domain.DateLayout),
		flowHours:   strconv.Itoa(p.FlowHoursPerDay),
		interval:    strconv.Itoa(p.MaintenanceIntervalDays),
	}
}

// parameters converts the form values back into a parameter set. Range checks
// are left to the evaluate service; only conversion failures are reported here.
func (v *formValues) parameters() (domain.PipelineParameters, error) {
	var p domain.PipelineParameters
	var errs []error

	fluid, ok := domain.ParseFluidType(v.fluid)
	if !ok {
		errs = append(errs, fmt.Errorf("%s: unknown fluid type %q", domain.FieldFluidType, v.fluid))
	}
	p.FluidType = fluid

	material, ok := domain.ParseMaterial(v.material)
	if !ok {
		errs = append(errs, fmt.Errorf("%s: unknown material %q", domain.FieldMaterial, v.material))
	}
	p.Material = material

	var err error
	if p.TemperatureC, err = strconv.ParseFloat(strings.TrimSpace(v.temperature), 64); err != nil {
		errs = append(errs, fmt.Errorf("%s: not a number: %q", domain.FieldTemperatureC, v.temperature))
	}
	if p.DensityKgM3, err = strconv.ParseFloat(strings.TrimSpace(v.density), 64); err != nil {
		errs = append(errs, fmt.Errorf("%s: not a number: %q", domain.FieldDensityKgM3, v.density))
	}
	if p.HumidityPct, err = strconv.Atoi(strings.TrimSpace(v.humidity)); err != nil {
		errs = append(errs, fmt.Errorf("%s: not a whole number: %q", domain.FieldHumidityPct, v.humidity))
	}
	if p.InstallDate, err = domain.ParseDate(strings.TrimSpace(v.installDate)); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", domain.FieldInstallDate, err))
	}
	if p.FlowHoursPerDay, err = strconv.Atoi(strings.TrimSpace(v.flowHours)); err != nil {
		errs = append(errs, fmt.Errorf("%s: not a whole number: %q", domain.FieldFlowHoursPerDay, v.flowHours))
	}
	if p.MaintenanceIntervalDays, err = strconv.Atoi(strings.TrimSpace(v.interval)); err != nil {
		errs = append(errs, fmt.Errorf("%s: not a whole number: %q", domain.FieldMaintenanceIntervalDays, v.interval))
	}

	return p, errors.Join(errs...)
}

func fluidOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(domain.FluidTypes))
	for _, f := range domain.FluidTypes {
		opts = append(opts, huh.NewOption(f.Label(), string(f)))
	}
	return opts
}

func materialOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(domain.Materials))
	for _, m := range domain.Materials {
		opts = append(opts, huh.NewOption(m.Label(), string(m)))
	}
	return opts
}

// numberInput returns a huh.Input bound to value with the given validator.
func numberInput(title, description string, value *string, validate func(string) error) *huh.Input {
	return huh.NewInput().
		Title(title).
		Description(description).
		Placeholder(*value).
		Value(value).
		Validate(validate)
}

// dateInput returns a huh.Input for a required YYYY-MM-DD date.
func dateInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2018-01-01").
		Value(value).
		Validate(validateRequiredDate)
}

// parameterForm builds the two-page parameter form, pre-filled from v.
func parameterForm(v *formValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Fluid Type").
				Options(fluidOptions()...).
				Value(&v.fluid),
			numberInput("Temperature (°C)",
				fmt.Sprintf("%g to %g", domain.MinTemperatureC, domain.MaxTemperatureC),
				&v.temperature,
				validateFloatRange(domain.MinTemperatureC, domain.MaxTemperatureC)),
			numberInput("Density (kg/m³)",
				fmt.Sprintf("%g to %g", domain.MinDensityKgM3, domain.MaxDensityKgM3),
				&v.density,
				validateFloatRange(domain.MinDensityKgM3, domain.MaxDensityKgM3)),
			numberInput("Humidity (%)",
				fmt.Sprintf("%d to %d", domain.MinHumidityPct, domain.MaxHumidityPct),
				&v.humidity,
				validateIntRange(domain.MinHumidityPct, domain.MaxHumidityPct)),
		).Title("Fluid"),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Pipeline Material").
				Options(materialOptions()...).
				Value(&v.material),
			dateInput("Install Date (YYYY-MM-DD)", &v.installDate),
			numberInput("Flow (hours per day)",
				fmt.Sprintf("%d to %d", domain.MinFlowHoursPerDay, domain.MaxFlowHoursPerDay),
				&v.flowHours,
				validateIntRange(domain.MinFlowHoursPerDay, domain.MaxFlowHoursPerDay)),
			numberInput("Maintenance Interval (days)",
				fmt.Sprintf("%d to %d", domain.MinMaintenanceIntervalDays, domain.MaxMaintenanceIntervalDays),
				&v.interval,
				validateIntRange(domain.MinMaintenanceIntervalDays, domain.MaxMaintenanceIntervalDays)),
		).Title("Pipeline"),
	).WithTheme(fluidGuardHuhTheme()).WithShowHelp(false)
}
