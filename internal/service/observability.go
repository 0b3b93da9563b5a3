package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/fluidguard/fluidguard/internal/app"
	"github.com/fluidguard/fluidguard/internal/domain"
)

// EvaluationEvent describes one call to the evaluate use case.
type EvaluationEvent struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	// Params is the parameter set as submitted, before any clamping.
	Params  domain.PipelineParameters
	Policy  domain.InputPolicy
	Clamped []string
	// Result is nil when the evaluation failed.
	Result *domain.PredictionResult
	Err    error
}

func (e EvaluationEvent) Success() bool {
	return e.Err == nil
}

// EvaluationObserver receives one event per evaluation.
type EvaluationObserver interface {
	ObserveEvaluation(ctx context.Context, event EvaluationEvent)
}

// NoopEvaluationObserver ignores all events.
type NoopEvaluationObserver struct{}

func (NoopEvaluationObserver) ObserveEvaluation(context.Context, EvaluationEvent) {}

type logEvaluationObserver struct {
	logger *slog.Logger
}

// NewLogEvaluationObserver writes one structured line per evaluation to w.
// Failed evaluations are logged at WARN.
func NewLogEvaluationObserver(w io.Writer) EvaluationObserver {
	if w == nil {
		return NoopEvaluationObserver{}
	}
	return &logEvaluationObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logEvaluationObserver) ObserveEvaluation(ctx context.Context, e EvaluationEvent) {
	attrs := []slog.Attr{
		slog.String("evaluation_id", e.ID),
		slog.Int64("duration_ms", e.Duration.Milliseconds()),
		slog.Bool("success", e.Success()),
		slog.Group("params",
			slog.String("fluid", string(e.Params.FluidType)),
			slog.String("material", string(e.Params.Material)),
			slog.String("policy", string(e.Policy)),
		),
	}
	if len(e.Clamped) > 0 {
		attrs = append(attrs, slog.Any("clamped", e.Clamped))
	}
	if r := e.Result; r != nil {
		attrs = append(attrs, slog.Group("result",
			slog.Float64("risk_score", r.RiskScore),
			slog.Int("corrosion_days", r.CorrosionDays),
			slog.Bool("maintenance_adequate", r.MaintenanceAdequate),
			slog.String("flow_advisory", string(r.FlowAdvisory)),
		))
	}

	level := slog.LevelInfo
	if e.Err != nil {
		level = slog.LevelWarn
		var evalErr *app.EvaluateError
		if errors.As(e.Err, &evalErr) {
			attrs = append(attrs, slog.String("code", string(evalErr.Code)))
		}
		attrs = append(attrs, slog.String("error", e.Err.Error()))
	}
	o.logger.LogAttrs(ctx, level, "evaluation", attrs...)
}

// evaluationObservers fans an event out to every non-nil observer.
type evaluationObservers []EvaluationObserver

func newEvaluationObservers(observers []EvaluationObserver) evaluationObservers {
	var out evaluationObservers
	for _, obs := range observers {
		if obs != nil {
			out = append(out, obs)
		}
	}
	return out
}

func (all evaluationObservers) ObserveEvaluation(ctx context.Context, e EvaluationEvent) {
	for _, obs := range all {
		obs.ObserveEvaluation(ctx, e)
	}
}
