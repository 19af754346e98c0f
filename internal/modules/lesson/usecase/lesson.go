package usecase

import (
	"context"

	"chalk/internal/modules/lesson/domain"
	"chalk/internal/modules/lesson/dto"
	lessonin "chalk/internal/modules/lesson/port/in"
	"chalk/internal/modules/lesson/service"
)

type Interactor struct {
	svc *service.LessonService
}

func NewInteractor(svc *service.LessonService) lessonin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ListLessons(ctx context.Context) ([]dto.LessonOutput, error) {
	lessons, err := i.svc.ListLessons(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LessonOutput, 0, len(lessons))
	for _, lesson := range lessons {
		out = append(out, dto.LessonOutput{
			ID:        lesson.ID,
			Title:     lesson.Title,
			Chapter:   lesson.Chapter,
			Order:     lesson.Order,
			Format:    string(lesson.Format),
			Completed: lesson.Completed,
		})
	}
	return out, nil
}

func (i *Interactor) GetLesson(ctx context.Context, id string) (dto.LessonDetailOutput, error) {
	lesson, err := i.svc.GetLesson(ctx, id)
	if err != nil {
		return dto.LessonDetailOutput{}, err
	}
	return dto.LessonDetailOutput{
		ID:           lesson.ID,
		Title:        lesson.Title,
		Chapter:      lesson.Chapter,
		Order:        lesson.Order,
		Format:       string(lesson.Format),
		Path:         lesson.Path,
		Completed:    lesson.Completed,
		Body:         toSegments(domain.Segments(lesson.Body)),
		Continuation: toSegments(domain.Segments(lesson.Continuation)),
	}, nil
}

func (i *Interactor) MarkCompleted(ctx context.Context, id string) error {
	return i.svc.MarkCompleted(ctx, id)
}

func (i *Interactor) Reindex(ctx context.Context) (dto.ReindexOutput, error) {
	indexed, removed, err := i.svc.Reindex(ctx)
	if err != nil {
		return dto.ReindexOutput{}, err
	}
	return dto.ReindexOutput{Indexed: indexed, Removed: removed}, nil
}

func (i *Interactor) FormulaSheet(ctx context.Context) (string, error) {
	return i.svc.FormulaSheet(ctx)
}

func (i *Interactor) Seed(ctx context.Context) (dto.SeedOutput, error) {
	written, skipped, err := i.svc.Seed(ctx)
	if err != nil {
		return dto.SeedOutput{}, err
	}
	return dto.SeedOutput{Written: written, Skipped: skipped}, nil
}

func toSegments(in []domain.Segment) []dto.Segment {
	out := make([]dto.Segment, 0, len(in))
	for _, seg := range in {
		out = append(out, dto.Segment{Kind: string(seg.Kind), Text: seg.Text})
	}
	return out
}
