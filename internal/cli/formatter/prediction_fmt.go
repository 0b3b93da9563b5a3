package formatter

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/fluidguard/fluidguard/internal/app"
	"github.com/fluidguard/fluidguard/internal/domain"
	"github.com/fluidguard/fluidguard/internal/paramfile"
)

const gaugeWidth = 24

// FormatPrediction renders an evaluation as the result panel shown after the form.
func FormatPrediction(resp *app.EvaluateResponse) string {
	var b strings.Builder
	p := resp.Params
	r := resp.Result

	b.WriteString(Header("Pipeline"))
	b.WriteString("\n")
	b.WriteString(RenderFields([]Field{
		{Label: "Fluid", Value: StyleFg.Render(p.FluidType.Label())},
		{Label: "Material", Value: StyleFg.Render(p.Material.Label())},
		{Label: "Temperature", Value: fmt.Sprintf("%g °C", p.TemperatureC)},
		{Label: "Density", Value: fmt.Sprintf("%g kg/m³", p.DensityKgM3)},
		{Label: "Humidity", Value: fmt.Sprintf("%d%%", p.HumidityPct)},
		{Label: "Installed", Value: HumanDate(p.InstallDate)},
		{Label: "Flow", Value: fmt.Sprintf("%d h/day", p.FlowHoursPerDay)},
		{Label: "Maintenance", Value: fmt.Sprintf("every %d days", p.MaintenanceIntervalDays)},
	}))
	b.WriteString("\n")

	b.WriteString(Header("Prediction"))
	b.WriteString("\n")
	b.WriteString(RenderFields([]Field{
		{Label: "Risk score", Value: RenderRiskGauge(r.RiskScore, gaugeWidth) + "  " + RiskIndicator(r.RiskScore)},
		{
			Label: "Estimated Corrosion Starts",
			Value: Bold(MonthYear(r.CorrosionStartDate)) + "  " + Dim(fmt.Sprintf("(%d days, %s)", r.CorrosionDays, FormatDays(r.CorrosionDays))),
		},
		{
			Label: "Recommended Pipeline Replacement",
			Value: Bold(MonthYear(r.ReplacementDate)) + "  " + Dim(fmt.Sprintf("(%d days, %s)", r.ReplacementDays, FormatDays(r.ReplacementDays))),
		},
	}))
	b.WriteString("\n")

	b.WriteString(Header("Suggestions"))
	b.WriteString("\n")
	b.WriteString(MaintenanceBanner(r.MaintenanceAdequate))
	b.WriteString("\n")
	if r.SuggestedIntervalDays != nil {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			Dim("Suggested maintenance interval:"),
			StyleYellow.Render(fmt.Sprintf("every %d days", *r.SuggestedIntervalDays))))
	}
	b.WriteString(FlowBanner(r.FlowAdvisory))
	b.WriteString("\n")

	if len(resp.Clamped) > 0 {
		b.WriteString("\n")
		b.WriteString(StylePurple.Render("Adjusted into range: " + strings.Join(resp.Clamped, ", ")))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("Pipeline age: %d days (%s)", resp.PipelineAgeDays, FormatDays(resp.PipelineAgeDays))))
	if resp.ID != "" {
		b.WriteString(Dim("  ·  evaluation ") + TruncID(resp.ID))
	}

	return RenderBox("Fluid Guard", b.String())
}

// FormatEvaluateError renders a failed evaluation. Invalid fields are listed
// one per line so the form user can see every problem at once.
func FormatEvaluateError(err error) string {
	var b strings.Builder

	var evalErr *app.EvaluateError
	if !errors.As(err, &evalErr) {
		b.WriteString(StyleRed.Render("✖ " + err.Error()))
		return b.String()
	}

	switch evalErr.Code {
	case app.EvaluateErrInvalidInput:
		b.WriteString(StyleRed.Render("✖ Some parameters are invalid"))
	case app.EvaluateErrDegenerateRisk:
		b.WriteString(StyleRed.Render("✖ No meaningful prediction for these parameters"))
	default:
		b.WriteString(StyleRed.Render("✖ Evaluation failed"))
	}
	b.WriteString("\n")

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		for _, v := range verr.Violations {
			b.WriteString(fmt.Sprintf("  %s %s\n", StyleYellow.Render(v.Field), Dim(v.Message)))
		}
	} else {
		b.WriteString("  " + Dim(evalErr.Message) + "\n")
	}
	b.WriteString(Dim(string(evalErr.Code)))

	return b.String()
}

type predictionJSON struct {
	ID                    string                `json:"id"`
	Parameters            *paramfile.ParamsFile `json:"parameters"`
	RiskScore             float64               `json:"risk_score"`
	CorrosionDays         int                   `json:"corrosion_days"`
	ReplacementDays       int                   `json:"replacement_days"`
	CorrosionStartDate    string                `json:"corrosion_start_date"`
	ReplacementDate       string                `json:"replacement_date"`
	MaintenanceAdequate   bool                  `json:"maintenance_adequate"`
	SuggestedIntervalDays *int                  `json:"suggested_interval_days,omitempty"`
	FlowAdvisory          string                `json:"flow_advisory"`
	PipelineAgeDays       int                   `json:"pipeline_age_days"`
	Clamped               []string              `json:"clamped,omitempty"`
}

type errorJSON struct {
	Error errorBodyJSON `json:"error"`
}

type errorBodyJSON struct {
	Code       string                  `json:"code"`
	Message    string                  `json:"message"`
	Violations []domain.FieldViolation `json:"violations,omitempty"`
}

// FormatPredictionJSON renders an evaluation for machine consumption. The
// parameters object uses the same keys as a parameter file, so it can be fed
// back through --file.
func FormatPredictionJSON(resp *app.EvaluateResponse) (string, error) {
	r := resp.Result
	out := predictionJSON{
		ID:                    resp.ID,
		Parameters:            paramfile.FromParameters(resp.Params),
		RiskScore:             r.RiskScore,
		CorrosionDays:         r.CorrosionDays,
		ReplacementDays:       r.ReplacementDays,
		CorrosionStartDate:    r.CorrosionStartDate.Format(domain.DateLayout),
		ReplacementDate:       r.ReplacementDate.Format(domain.DateLayout),
		MaintenanceAdequate:   r.MaintenanceAdequate,
		SuggestedIntervalDays: r.SuggestedIntervalDays,
		FlowAdvisory:          string(r.FlowAdvisory),
		PipelineAgeDays:       resp.PipelineAgeDays,
		Clamped:               resp.Clamped,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding prediction: %w", err)
	}
	return string(data), nil
}

// FormatEvaluateErrorJSON renders a failed evaluation as a JSON error object.
func FormatEvaluateErrorJSON(err error) (string, error) {
	body := errorBodyJSON{Code: "ERROR", Message: err.Error()}

	var evalErr *app.EvaluateError
	if errors.As(err, &evalErr) {
		body.Code = string(evalErr.Code)
		body.Message = evalErr.Message
	}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		body.Violations = verr.Violations
	}

	data, mErr := json.MarshalIndent(errorJSON{Error: body}, "", "  ")
	if mErr != nil {
		return "", fmt.Errorf("encoding error: %w", mErr)
	}
	return string(data), nil
}
