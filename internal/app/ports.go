package app

import "context"

type EvaluateUseCase interface {
	Evaluate(ctx context.Context, req EvaluateRequest) (*EvaluateResponse, error)
}
