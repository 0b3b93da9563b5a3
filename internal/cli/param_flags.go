package cli

import (
	"fmt"
	"strings"

	"github.com/fluidguard/fluidguard/internal/domain"
	"github.com/fluidguard/fluidguard/internal/paramfile"
	"github.com/spf13/pflag"
)

const (
	flagFluid       = "fluid"
	flagTemperature = "temperature"
	flagDensity     = "density"
	flagHumidity    = "humidity"
	flagMaterial    = "material"
	flagInstallDate = "install-date"
	flagFlowHours   = "flow-hours"
	flagInterval    = "maintenance-interval"
	flagFile        = "file"
)

// paramFlags binds one flag per pipeline parameter plus --file.
type paramFlags struct {
	fluid       string
	temperature float64
	density     float64
	humidity    int
	material    string
	installDate string
	flowHours   int
	interval    int
	file        string
}

func (f *paramFlags) register(fs *pflag.FlagSet) {
	d := domain.DefaultParameters()

	fluids := make([]string, 0, len(domain.FluidTypes))
	for _, ft := range domain.FluidTypes {
		fluids = append(fluids, string(ft))
	}
	materials := make([]string, 0, len(domain.Materials))
	for _, m := range domain.Materials {
		materials = append(materials, string(m))
	}

	fs.StringVar(&f.fluid, flagFluid, string(d.FluidType), "fluid type ("+strings.Join(fluids, ", ")+")")
	fs.Float64Var(&f.temperature, flagTemperature, d.TemperatureC,
		fmt.Sprintf("fluid temperature in °C (%g to %g)", domain.MinTemperatureC, domain.MaxTemperatureC))
	fs.Float64Var(&f.density, flagDensity, d.DensityKgM3,
		fmt.Sprintf("fluid density in kg/m³ (%g to %g)", domain.MinDensityKgM3, domain.MaxDensityKgM3))
	fs.IntVar(&f.humidity, flagHumidity, d.HumidityPct,
		fmt.Sprintf("ambient humidity in %% (%d to %d)", domain.MinHumidityPct, domain.MaxHumidityPct))
	fs.StringVar(&f.material, flagMaterial, string(d.Material), "pipeline material ("+strings.Join(materials, ", ")+")")
	fs.StringVar(&f.installDate, flagInstallDate, d.InstallDate.Format(domain.DateLayout), "install date (YYYY-MM-DD)")
	fs.IntVar(&f.flowHours, flagFlowHours, d.FlowHoursPerDay,
		fmt.Sprintf("hours of flow per day (%d to %d)", domain.MinFlowHoursPerDay, domain.MaxFlowHoursPerDay))
	fs.IntVar(&f.interval, flagInterval, d.MaintenanceIntervalDays,
		fmt.Sprintf("days between maintenance (%d to %d)", domain.MinMaintenanceIntervalDays, domain.MaxMaintenanceIntervalDays))
	fs.StringVarP(&f.file, flagFile, "f", "", "parameter file (.json, .yaml or .yml)")
}

// overlay returns the explicitly set flags as a parameter-file layer, so
// flags and files share one conversion path.
func (f *paramFlags) overlay(fs *pflag.FlagSet) *paramfile.ParamsFile {
	out := &paramfile.ParamsFile{}
	if fs.Changed(flagFluid) {
		out.FluidType = &f.fluid
	}
	if fs.Changed(flagTemperature) {
		out.TemperatureC = &f.temperature
	}
	if fs.Changed(flagDensity) {
		out.DensityKgM3 = &f.density
	}
	if fs.Changed(flagHumidity) {
		out.HumidityPct = &f.humidity
	}
	if fs.Changed(flagMaterial) {
		out.Material = &f.material
	}
	if fs.Changed(flagInstallDate) {
		out.InstallDate = &f.installDate
	}
	if fs.Changed(flagFlowHours) {
		out.FlowHoursPerDay = &f.flowHours
	}
	if fs.Changed(flagInterval) {
		out.MaintenanceIntervalDays = &f.interval
	}
	return out
}

// resolveParameters layers defaults, then the parameter file (from --file or
// defaultFile), then explicitly set flags.
func resolveParameters(fs *pflag.FlagSet, f *paramFlags, defaultFile string) (domain.PipelineParameters, error) {
	p := domain.DefaultParameters()

	if path := domain.FirstNonEmpty(f.file, defaultFile); path != "" {
		pf, err := paramfile.Load(path)
		if err != nil {
			return p, err
		}
		if p, err = pf.Apply(p); err != nil {
			return p, fmt.Errorf("%s: %w", path, err)
		}
	}

	p, err := f.overlay(fs).Apply(p)
	if err != nil {
		return p, fmt.Errorf("flags: %w", err)
	}
	return p, nil
}
