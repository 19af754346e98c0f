package in

import (
	"context"

	"chalk/internal/modules/lesson/dto"
)

type Usecase interface {
	ListLessons(ctx context.Context) ([]dto.LessonOutput, error)
	GetLesson(ctx context.Context, id string) (dto.LessonDetailOutput, error)
	MarkCompleted(ctx context.Context, id string) error
	Reindex(ctx context.Context) (dto.ReindexOutput, error)
	FormulaSheet(ctx context.Context) (string, error)
	Seed(ctx context.Context) (dto.SeedOutput, error)
}
