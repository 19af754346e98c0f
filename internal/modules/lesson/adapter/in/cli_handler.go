package in

import (
	"context"

	"chalk/internal/modules/lesson/dto"
	lessonin "chalk/internal/modules/lesson/port/in"
)

type CLIHandler struct {
	usecase lessonin.Usecase
}

func NewCLIHandler(usecase lessonin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListLessons(ctx context.Context) ([]dto.LessonOutput, error) {
	return h.usecase.ListLessons(ctx)
}

func (h CLIHandler) GetLesson(ctx context.Context, id string) (dto.LessonDetailOutput, error) {
	return h.usecase.GetLesson(ctx, id)
}

func (h CLIHandler) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	return h.usecase.Reindex(ctx)
}

func (h CLIHandler) Seed(ctx context.Context) (dto.SeedOutput, error) {
	return h.usecase.Seed(ctx)
}

func (h CLIHandler) FormulaSheet(ctx context.Context) (string, error) {
	return h.usecase.FormulaSheet(ctx)
}
