package in

import (
	"context"

	"chalk/internal/modules/assistant/dto"
	assistantin "chalk/internal/modules/assistant/port/in"
)

type CLIHandler struct {
	usecase assistantin.Usecase
}

func NewCLIHandler(usecase assistantin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.PluginInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) Ask(ctx context.Context, plugin, question, lessonID string) (dto.AskOutput, error) {
	return h.usecase.Ask(ctx, dto.AskInput{Plugin: plugin, Question: question, LessonID: lessonID})
}
