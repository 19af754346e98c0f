package usecase

import (
	"context"

	"chalk/internal/modules/assistant/dto"
	assistantin "chalk/internal/modules/assistant/port/in"
	"chalk/internal/modules/assistant/service"
)

type Interactor struct {
	svc *service.AssistantService
}

func NewInteractor(svc *service.AssistantService) assistantin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Ask(ctx context.Context, input dto.AskInput) (dto.AskOutput, error) {
	return i.svc.Ask(ctx, input)
}
