package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fluidguard/fluidguard/internal/app"
	"github.com/fluidguard/fluidguard/internal/domain"
	"github.com/fluidguard/fluidguard/internal/engine"
	"github.com/google/uuid"
)

type evaluateService struct {
	clock     func() time.Time
	observers evaluationObservers
}

// NewEvaluateService returns the service the form layer calls once per
// submitted parameter set. A nil clock means time.Now.
func NewEvaluateService(clock func() time.Time, observers ...EvaluationObserver) EvaluateService {
	if clock == nil {
		clock = time.Now
	}
	return &evaluateService{
		clock:     clock,
		observers: newEvaluationObservers(observers),
	}
}

func (s *evaluateService) Evaluate(ctx context.Context, req app.EvaluateRequest) (resp *app.EvaluateResponse, err error) {
	startedAt := time.Now().UTC()
	id := uuid.New().String()
	defer func() {
		event := EvaluationEvent{
			ID:        id,
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Params:    req.Params,
			Policy:    req.Policy,
			Err:       err,
		}
		if resp != nil {
			event.Result = &resp.Result
			event.Clamped = resp.Clamped
		}
		s.observers.ObserveEvaluation(ctx, event)
	}()

	now := s.clock()
	if req.Now != nil {
		now = *req.Now
	}

	params := req.Params
	var clamped []string

	switch req.Policy {
	case domain.PolicyClamp:
		params, clamped = params.Clamp(now)
	case domain.PolicyReject, "":
	default:
		return nil, &app.EvaluateError{
			Code:    app.EvaluateErrInvalidPolicy,
			Message: fmt.Sprintf("unknown input policy %q", req.Policy),
		}
	}

	if err := params.Validate(now); err != nil {
		var verr *domain.ValidationError
		var fieldNames []string
		if errors.As(err, &verr) {
			fieldNames = verr.Fields()
		}
		return nil, &app.EvaluateError{
			Code:    app.EvaluateErrInvalidInput,
			Message: err.Error(),
			Fields:  fieldNames,
			Err:     err,
		}
	}

	result, err := engine.Evaluate(params)
	if err != nil {
		code := app.EvaluateErrInvalidInput
		if errors.Is(err, domain.ErrDegenerateRiskScore) {
			code = app.EvaluateErrDegenerateRisk
		}
		return nil, &app.EvaluateError{Code: code, Message: err.Error(), Err: err}
	}
	return &app.EvaluateResponse{
		ID:              id,
		Params:          params,
		Result:          result,
		Clamped:         clamped,
		PipelineAgeDays: daysBetween(params.InstallDate, now),
		EvaluatedAt:     now,
	}, nil
}

// daysBetween counts whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(domain.CivilDate(b).Sub(domain.CivilDate(a)).Hours() / 24)
}
