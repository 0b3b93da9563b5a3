package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fluidguard/fluidguard/internal/app"
	"github.com/fluidguard/fluidguard/internal/config"
	"github.com/fluidguard/fluidguard/internal/service"
	"github.com/fluidguard/fluidguard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires an App with a fixed clock and default configuration.
func testApp(t *testing.T) *App {
	t.Helper()
	return &App{
		Evaluate: service.NewEvaluateService(testutil.FixedClock()),
		Config:   config.DefaultConfig(),
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeParams(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func decodePrediction(t *testing.T, out string) map[string]any {
	t.Helper()
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded), out)
	return decoded
}

// --- root command ---

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	output, err := executeCmd(t, testApp(t))
	require.NoError(t, err)
	assert.Contains(t, output, "fluidguard")
	assert.Contains(t, output, "evaluate")
	assert.Contains(t, output, "watch")
}

func TestRootCmd_NonInteractiveShowsHelp(t *testing.T) {
	a := testApp(t)
	a.IsInteractive = func() bool { return false }

	output, err := executeCmd(t, a)
	require.NoError(t, err)
	assert.Contains(t, output, "Usage:")
}

func TestRootCmd_RejectsPositionalArgs(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "iron")
	assert.Error(t, err)
}

// --- evaluate command ---

func TestEvaluateCmd_FormDefaults(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "evaluate")
	require.NoError(t, err)

	assert.Contains(t, out, "2.01 / 3")
	assert.Contains(t, out, "May 2019")
	assert.Contains(t, out, "May 2021")
	assert.Contains(t, out, "every 99 days")
	assert.Contains(t, out, "Pipeline age: 2995 days")
}

func TestEvaluateCmd_JSON_HighRiskIron(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "evaluate",
		"--material", "iron", "--density", "1000", "--temperature", "50",
		"--humidity", "60", "--flow-hours", "12", "--maintenance-interval", "180",
		"--install-date", "2018-01-01", "--output", "json")
	require.NoError(t, err)

	decoded := decodePrediction(t, out)
	assert.Equal(t, 3.0, decoded["risk_score"])
	assert.Equal(t, 333.0, decoded["corrosion_days"])
	assert.Equal(t, 833.0, decoded["replacement_days"])
	assert.Equal(t, "2018-11-30", decoded["corrosion_start_date"])
	assert.Equal(t, "2020-04-13", decoded["replacement_date"])
	assert.Equal(t, false, decoded["maintenance_adequate"])
	assert.Equal(t, 66.0, decoded["suggested_interval_days"])
	assert.Equal(t, "safe_range", decoded["flow_advisory"])
	assert.NotEmpty(t, decoded["id"])
}

func TestEvaluateCmd_FileThenFlagOverride(t *testing.T) {
	path := writeParams(t, "pipe.yaml", "material: composite\nhumidity_pct: 60\n")

	out, err := executeCmd(t, testApp(t), "evaluate", "--file", path, "-o", "json")
	require.NoError(t, err)
	decoded := decodePrediction(t, out)
	assert.Equal(t, 585.0, decoded["corrosion_days"])
	assert.Equal(t, "2022-01-04", decoded["replacement_date"])

	out, err = executeCmd(t, testApp(t), "evaluate", "--file", path, "--material", "iron", "-o", "json")
	require.NoError(t, err)
	decoded = decodePrediction(t, out)
	assert.Equal(t, 498.0, decoded["corrosion_days"])
}

func TestEvaluateCmd_ParamsFileFromConfig(t *testing.T) {
	a := testApp(t)
	a.Config.ParamsFile = writeParams(t, "pipe.json", `{"flow_hours_per_day": 20}`)
	a.Config.Output = config.OutputJSON

	out, err := executeCmd(t, a, "evaluate")
	require.NoError(t, err)
	decoded := decodePrediction(t, out)
	assert.Equal(t, "high_flow_warning", decoded["flow_advisory"])
	assert.Equal(t, 427.0, decoded["corrosion_days"])
}

func TestEvaluateCmd_OutOfRangeRejected(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "evaluate", "--humidity", "140", "--flow-hours", "30")
	require.Error(t, err)

	var evalErr *app.EvaluateError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, app.EvaluateErrInvalidInput, evalErr.Code)
	assert.Equal(t, []string{"humidity_pct", "flow_hours_per_day"}, evalErr.Fields)
	assert.Contains(t, out, "Some parameters are invalid")
	assert.NotContains(t, out, "Estimated Corrosion Starts")
}

func TestEvaluateCmd_OutOfRangeJSONError(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "evaluate", "--humidity", "140", "-o", "json")
	require.Error(t, err)
	assert.Contains(t, out, `"code": "INVALID_INPUT"`)
	assert.Contains(t, out, `"field": "humidity_pct"`)
}

func TestEvaluateCmd_ClampPolicy(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "evaluate", "--humidity", "140", "--input-policy", "clamp", "-o", "json")
	require.NoError(t, err)

	decoded := decodePrediction(t, out)
	assert.Equal(t, []any{"humidity_pct"}, decoded["clamped"])
	assert.Equal(t, 415.0, decoded["corrosion_days"])
	params := decoded["parameters"].(map[string]any)
	assert.Equal(t, 100.0, params["humidity_pct"])
}

func TestEvaluateCmd_TodayFlagMakesInstallDateFuture(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "evaluate", "--today", "2017-06-01")
	require.Error(t, err)
	assert.Contains(t, out, "install_date")
}

func TestEvaluateCmd_TodayFlagChangesAgeOnly(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "evaluate", "--today", "2019-01-01", "-o", "json")
	require.NoError(t, err)
	decoded := decodePrediction(t, out)
	assert.Equal(t, 365.0, decoded["pipeline_age_days"])
	assert.Equal(t, 498.0, decoded["corrosion_days"])
}

func TestEvaluateCmd_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"output", []string{"--output", "xml"}, "--output"},
		{"policy", []string{"--input-policy", "ignore"}, "--input-policy"},
		{"today", []string{"--today", "tomorrow"}, "--today"},
		{"material", []string{"--material", "wood"}, "material"},
		{"fluid", []string{"--fluid", "mercury"}, "fluid_type"},
		{"install date", []string{"--install-date", "2018/01/01"}, "install_date"},
		{"missing file", []string{"--file", "/nonexistent/pipe.yaml"}, "pipe.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCmd(t, testApp(t), append([]string{"evaluate"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEvaluateCmd_AcceptsEnumLabels(t *testing.T) {
	out, err := executeCmd(t, testApp(t), "evaluate", "--fluid", "Crude Oil", "--material", "Duralumin", "-o", "json")
	require.NoError(t, err)
	params := decodePrediction(t, out)["parameters"].(map[string]any)
	assert.Equal(t, "crude_oil", params["fluid_type"])
	assert.Equal(t, "duralumin", params["material"])
}

// --- watch command ---

// syncBuffer is a bytes.Buffer safe for one writer and one polling reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchCmd_RequiresFile(t *testing.T) {
	_, err := executeCmd(t, testApp(t), "watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--file")
}

func TestWatchCmd_RendersOnStartAndOnChange(t *testing.T) {
	path := writeParams(t, "pipe.yaml", "material: iron\n")

	root := NewRootCmd(testApp(t))
	out := &syncBuffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs([]string{"watch", "--file", path, "-o", "json"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	waitFor := func(substr string) {
		t.Helper()
		deadline := time.After(5 * time.Second)
		tick := time.NewTicker(50 * time.Millisecond)
		defer tick.Stop()
		for !strings.Contains(out.String(), substr) {
			select {
			case <-tick.C:
			case <-deadline:
				t.Fatalf("timed out waiting for %q in output:\n%s", substr, out.String())
			}
		}
	}

	waitFor(`"material": "iron"`)

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for !strings.Contains(out.String(), `"material": "composite"`) {
		select {
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte("material: composite\n"), 0644))
		case <-deadline:
			t.Fatalf("timed out waiting for reload:\n%s", out.String())
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchCmd_InvalidPolicyFailsBeforeWatching(t *testing.T) {
	path := writeParams(t, "pipe.yaml", "material: iron\n")
	_, err := executeCmd(t, testApp(t), "watch", "--file", path, "--input-policy", "maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--input-policy")
}

func TestWatchCmd_KeepsPolicyAndTodayAcrossRenameSaves(t *testing.T) {
	path := writeParams(t, "pipe.yaml", "humidity_pct: 140\n")
	tmp := path + ".tmp"

	root := NewRootCmd(testApp(t))
	out := &syncBuffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs([]string{"watch", "--file", path, "-o", "json", "--input-policy", "clamp", "--today", "2019-01-01"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for !strings.Contains(out.String(), `"material": "composite"`) {
		select {
		case <-tick.C:
			require.NoError(t, os.WriteFile(tmp, []byte("material: composite\nhumidity_pct: 150\n"), 0644))
			require.NoError(t, os.Rename(tmp, path))
		case <-deadline:
			t.Fatalf("timed out waiting for reload:\n%s", out.String())
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}

	got := out.String()
	assert.NotContains(t, got, "INVALID_INPUT")
	// 2018-01-01 to 2019-01-01, for the initial render and the reload.
	assert.GreaterOrEqual(t, strings.Count(got, `"pipeline_age_days": 365`), 2)
	assert.GreaterOrEqual(t, strings.Count(got, `"humidity_pct"`), 4)
}
