package in

import (
	"context"

	"chalk/internal/modules/assistant/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.PluginInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Ask(ctx context.Context, input dto.AskInput) (dto.AskOutput, error)
}
