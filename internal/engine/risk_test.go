package engine

import (
	"math"
	"testing"
	"time"

	"github.com/fluidguard/fluidguard/internal/domain"
	"github.com/fluidguard/fluidguard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEvaluate_HighRisk_ClampedToThree(t *testing.T) {
	p := testutil.NewTestParameters(
		testutil.WithMaterial(domain.MaterialIron),
		testutil.WithDensity(1000),
		testutil.WithTemperature(50),
		testutil.WithHumidity(60),
		testutil.WithFlowHours(12),
		testutil.WithMaintenanceInterval(180),
		testutil.WithInstallDate(date(2018, 1, 1)),
	)

	// raw = 1 + 1.0 + 0.5 + 0.6 + 0.5 - 0.493 ≈ 3.107
	assert.Greater(t, RawScore(p), 3.0)

	result, err := Evaluate(p)
	require.NoError(t, err)
	assert.Equal(t, 3.0, result.RiskScore)
	assert.Equal(t, 333, result.CorrosionDays)
	assert.Equal(t, 833, result.ReplacementDays)
	assert.Equal(t, date(2018, 11, 30), result.CorrosionStartDate)
	assert.Equal(t, date(2020, 4, 13), result.ReplacementDate)

	// 180 >= 333/4 = 83
	assert.False(t, result.MaintenanceAdequate)
	require.NotNil(t, result.SuggestedIntervalDays)
	assert.Equal(t, 66, *result.SuggestedIntervalDays)
	assert.Equal(t, domain.FlowSafeRange, result.FlowAdvisory)
}

func TestEvaluate_LowestInRangeScore(t *testing.T) {
	p := testutil.NewTestParameters(
		testutil.WithMaterial(domain.MaterialComposite),
		testutil.WithDensity(500),
		testutil.WithTemperature(-10),
		testutil.WithHumidity(0),
		testutil.WithFlowHours(0),
		testutil.WithMaintenanceInterval(365),
	)

	result, err := Evaluate(p)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, result.RiskScore, 1e-9)
	assert.Equal(t, 10000, result.CorrosionDays)
	assert.Equal(t, 25000, result.ReplacementDays)

	// 365 < 10000/4
	assert.True(t, result.MaintenanceAdequate)
	assert.Nil(t, result.SuggestedIntervalDays)
	assert.Equal(t, domain.FlowLowNotice, result.FlowAdvisory)
}

func TestEvaluate_MidRange_NotAdequate(t *testing.T) {
	p := testutil.NewTestParameters(
		testutil.WithMaterial(domain.MaterialCopper),
		testutil.WithDensity(1000),
		testutil.WithTemperature(20),
		testutil.WithHumidity(50),
		testutil.WithFlowHours(12),
		testutil.WithMaintenanceInterval(180),
		testutil.WithInstallDate(date(2020, 2, 1)),
	)

	result, err := Evaluate(p)
	require.NoError(t, err)
	assert.InDelta(t, 2.40685, result.RiskScore, 1e-5)
	assert.Equal(t, 415, result.CorrosionDays)
	assert.Equal(t, 1038, result.ReplacementDays)
	assert.Equal(t, date(2021, 3, 22), result.CorrosionStartDate)
	assert.Equal(t, date(2022, 12, 5), result.ReplacementDate)
	assert.False(t, result.MaintenanceAdequate)
	require.NotNil(t, result.SuggestedIntervalDays)
	assert.Equal(t, 83, *result.SuggestedIntervalDays)
}

func TestEvaluate_MidRange_Adequate(t *testing.T) {
	p := testutil.NewTestParameters(
		testutil.WithMaterial(domain.MaterialDuralumin),
		testutil.WithDensity(800),
		testutil.WithTemperature(25),
		testutil.WithHumidity(40),
		testutil.WithFlowHours(4),
		testutil.WithMaintenanceInterval(90),
		testutil.WithInstallDate(date(2019, 12, 31)),
	)

	result, err := Evaluate(p)
	require.NoError(t, err)
	assert.Equal(t, 421, result.CorrosionDays)
	assert.Equal(t, 1054, result.ReplacementDays)
	assert.Equal(t, date(2021, 2, 24), result.CorrosionStartDate)
	assert.Equal(t, date(2022, 11, 19), result.ReplacementDate)
	assert.True(t, result.MaintenanceAdequate)
	assert.Nil(t, result.SuggestedIntervalDays)
	assert.Equal(t, domain.FlowLowNotice, result.FlowAdvisory)
}

func TestEvaluate_ZeroScore_IsDegenerate(t *testing.T) {
	// Only reachable with out-of-range input: density and temperature far
	// below the form limits.
	p := testutil.NewTestParameters(
		testutil.WithMaterial(domain.MaterialComposite),
		testutil.WithDensity(0),
		testutil.WithTemperature(-100),
		testutil.WithHumidity(0),
		testutil.WithFlowHours(0),
		testutil.WithMaintenanceInterval(365),
	)
	require.LessOrEqual(t, RawScore(p), 0.0)
	assert.Equal(t, 0.0, RiskScore(p))

	result, err := Evaluate(p)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDegenerateRiskScore)
	assert.Equal(t, domain.PredictionResult{}, result)
}

func TestEvaluate_NaNInput_IsDegenerate(t *testing.T) {
	p := testutil.NewTestParameters(testutil.WithTemperature(math.NaN()))

	_, err := Evaluate(p)
	assert.ErrorIs(t, err, domain.ErrDegenerateRiskScore)
}

func TestEvaluate_TinyScore_IsDegenerate(t *testing.T) {
	// Raw score just above zero would overflow the day offsets.
	p := testutil.NewTestParameters(
		testutil.WithMaterial(domain.MaterialComposite),
		testutil.WithDensity(0),
		testutil.WithTemperature(-70+1e-12),
		testutil.WithHumidity(0),
		testutil.WithFlowHours(0),
		testutil.WithMaintenanceInterval(0),
	)

	_, err := Evaluate(p)
	assert.ErrorIs(t, err, domain.ErrDegenerateRiskScore)
}

func TestMaterialFactor(t *testing.T) {
	tests := []struct {
		material domain.Material
		want     float64
	}{
		{domain.MaterialIron, 1.0},
		{domain.MaterialDuralumin, 1.0},
		{domain.MaterialAluminium, 0.7},
		{domain.MaterialCopper, 0.7},
		{domain.MaterialComposite, 0.7},
	}
	for _, tt := range tests {
		t.Run(string(tt.material), func(t *testing.T) {
			assert.Equal(t, tt.want, MaterialFactor(tt.material))
		})
	}
}

func TestFlowAdvisoryFor_Boundaries(t *testing.T) {
	tests := []struct {
		flow int
		want domain.FlowAdvisory
	}{
		{0, domain.FlowLowNotice},
		{3, domain.FlowLowNotice},
		{5, domain.FlowLowNotice},
		{6, domain.FlowSafeRange},
		{10, domain.FlowSafeRange},
		{16, domain.FlowSafeRange},
		{17, domain.FlowHighWarning},
		{20, domain.FlowHighWarning},
		{24, domain.FlowHighWarning},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FlowAdvisoryFor(tt.flow), "flow=%d", tt.flow)
	}
}

func TestEvaluate_FlowAdvisoryIndependentOfScore(t *testing.T) {
	for _, m := range domain.Materials {
		p := testutil.NewTestParameters(testutil.WithMaterial(m), testutil.WithFlowHours(20))
		result, err := Evaluate(p)
		require.NoError(t, err)
		assert.Equal(t, domain.FlowHighWarning, result.FlowAdvisory, "material=%s", m)
	}
}

func TestAddDays_CalendarRollover(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		days  int
		want  time.Time
	}{
		{"month rollover", date(2018, 1, 1), 333, date(2018, 11, 30)},
		{"leap day", date(2024, 2, 28), 1, date(2024, 2, 29)},
		{"non-leap february", date(2023, 2, 28), 1, date(2023, 3, 1)},
		{"year rollover", date(2019, 12, 31), 1, date(2020, 1, 1)},
		{"across leap year", date(2018, 1, 1), 833, date(2020, 4, 13)},
		{"long offset", date(2018, 1, 1), 25000, date(2086, 6, 13)},
		{"zero", date(2021, 7, 15), 0, date(2021, 7, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddDays(tt.start, tt.days))
		})
	}
}

func TestAddDays_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2018, 1, 1, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, date(2018, 1, 2), AddDays(start, 1))
}
