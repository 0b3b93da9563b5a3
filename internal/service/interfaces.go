package service

import (
	"context"

	"github.com/fluidguard/fluidguard/internal/app"
)

type EvaluateService interface {
	Evaluate(ctx context.Context, req app.EvaluateRequest) (*app.EvaluateResponse, error)
}

var _ app.EvaluateUseCase = (EvaluateService)(nil)
