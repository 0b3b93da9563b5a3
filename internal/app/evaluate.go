package app

import (
	"time"

	"github.com/fluidguard/fluidguard/internal/domain"
)

type EvaluateRequest struct {
	Params domain.PipelineParameters
	// Now overrides the service clock; used for install-date checks and the
	// pipeline age diagnostic.
	Now    *time.Time
	Policy domain.InputPolicy
}

func NewEvaluateRequest(params domain.PipelineParameters) EvaluateRequest {
	return EvaluateRequest{
		Params: params,
		Policy: domain.PolicyReject,
	}
}

type EvaluateResponse struct {
	ID string
	// Params is the parameter set actually evaluated, after clamping.
	Params domain.PipelineParameters
	Result domain.PredictionResult
	// Clamped lists the fields the clamp policy changed.
	Clamped []string
	// PipelineAgeDays is days since install; diagnostic only, not an input
	// to the prediction.
	PipelineAgeDays int
	EvaluatedAt     time.Time
}

type EvaluateErrorCode string

const (
	EvaluateErrInvalidInput   EvaluateErrorCode = "INVALID_INPUT"
	EvaluateErrDegenerateRisk EvaluateErrorCode = "DEGENERATE_RISK_SCORE"
	EvaluateErrInvalidPolicy  EvaluateErrorCode = "INVALID_POLICY"
)

type EvaluateError struct {
	Code    EvaluateErrorCode
	Message string
	Fields  []string
	Err     error
}

func (e *EvaluateError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *EvaluateError) Unwrap() error {
	return e.Err
}
