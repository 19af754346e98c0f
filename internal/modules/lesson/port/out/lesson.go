package out

import (
	"context"

	"chalk/internal/modules/lesson/domain"
)

type LessonStore interface {
	List(ctx context.Context) ([]domain.Lesson, error)
	FindByID(ctx context.Context, id string) (domain.Lesson, error)
	// WriteIfMissing creates a vault-relative file and reports whether it was written.
	WriteIfMissing(ctx context.Context, relPath, content string) (bool, error)
}

type PDFReader interface {
	ReadPages(ctx context.Context, path string) ([]string, error)
}

type LessonIndex interface {
	Upsert(ctx context.Context, lesson domain.Lesson) error
	DeleteExcept(ctx context.Context, keepIDs []string) (int, error)
	List(ctx context.Context) ([]domain.IndexEntry, error)
	MarkCompleted(ctx context.Context, id string) error
}

type FormulaSource interface {
	Load(ctx context.Context) (string, error)
}
