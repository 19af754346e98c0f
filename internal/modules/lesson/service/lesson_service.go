package service

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"slices"
	"strings"

	"chalk/internal/modules/lesson/domain"
	lessonout "chalk/internal/modules/lesson/port/out"
	apperrors "chalk/internal/platform/errors"
	"chalk/internal/platform/markdown"

	"go.uber.org/zap"
)

//go:embed seed
var seedFS embed.FS

const seedRoot = "seed"

var displayFormula = regexp.MustCompile(`(?s)\$\$(.+?)\$\$`)

type LessonService struct {
	store    lessonout.LessonStore
	index    lessonout.LessonIndex
	formulas lessonout.FormulaSource
	logger   *zap.Logger
}

func NewLessonService(store lessonout.LessonStore, index lessonout.LessonIndex, formulas lessonout.FormulaSource, logger *zap.Logger) *LessonService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LessonService{store: store, index: index, formulas: formulas, logger: logger}
}

// ListLessons returns vault lessons ordered by chapter, then order, then title.
// Completion comes from the index; lessons missing from it count as unfinished.
func (s *LessonService) ListLessons(ctx context.Context) ([]domain.Lesson, error) {
	lessons, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := s.completion(ctx)
	if err != nil {
		return nil, err
	}
	for i := range lessons {
		if entry, ok := completed[lessons[i].ID]; ok {
			lessons[i].Completed = entry.Completed
			lessons[i].CompletedAt = entry.CompletedAt
		}
	}
	slices.SortStableFunc(lessons, func(a, b domain.Lesson) int {
		return domain.CompareListed(a.Chapter, a.Order, a.Title, b.Chapter, b.Order, b.Title)
	})
	return lessons, nil
}

func (s *LessonService) GetLesson(ctx context.Context, id string) (domain.Lesson, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Lesson{}, fmt.Errorf("lesson id is required: %w", apperrors.ErrInvalidInput)
	}
	lesson, err := s.store.FindByID(ctx, id)
	if err != nil {
		return domain.Lesson{}, err
	}
	completed, err := s.completion(ctx)
	if err != nil {
		return domain.Lesson{}, err
	}
	if entry, ok := completed[lesson.ID]; ok {
		lesson.Completed = entry.Completed
		lesson.CompletedAt = entry.CompletedAt
	}
	return lesson, nil
}

// MarkCompleted flags a lesson as finished. A lesson that was added to the
// vault after the last reindex is projected first.
func (s *LessonService) MarkCompleted(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("lesson id is required: %w", apperrors.ErrInvalidInput)
	}
	err := s.index.MarkCompleted(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		lesson, findErr := s.store.FindByID(ctx, id)
		if findErr != nil {
			return findErr
		}
		if err := s.index.Upsert(ctx, lesson); err != nil {
			return err
		}
		err = s.index.MarkCompleted(ctx, id)
	}
	if err != nil {
		return err
	}
	s.logger.Info("lesson completed", zap.String("lesson_id", id))
	return nil
}

func (s *LessonService) Reindex(ctx context.Context) (int, int, error) {
	lessons, err := s.store.List(ctx)
	if err != nil {
		return 0, 0, err
	}
	keep := make([]string, 0, len(lessons))
	for _, lesson := range lessons {
		if err := s.index.Upsert(ctx, lesson); err != nil {
			return 0, 0, err
		}
		keep = append(keep, lesson.ID)
	}
	removed, err := s.index.DeleteExcept(ctx, keep)
	if err != nil {
		return 0, 0, err
	}
	s.logger.Info("lessons reindexed", zap.Int("indexed", len(keep)), zap.Int("removed", removed))
	return len(keep), removed, nil
}

// FormulaSheet returns the vault formula sheet, falling back to the bundled
// one. Display formulas are rewritten into fenced blocks of unicode math.
func (s *LessonService) FormulaSheet(ctx context.Context) (string, error) {
	content, err := s.formulas.Load(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		raw, readErr := seedFS.ReadFile(seedRoot + "/formulas.md")
		if readErr != nil {
			return "", fmt.Errorf("read bundled formula sheet: %w", readErr)
		}
		content, err = string(raw), nil
	}
	if err != nil {
		return "", err
	}
	return displayFormula.ReplaceAllStringFunc(content, func(match string) string {
		inner := displayFormula.FindStringSubmatch(match)[1]
		return "```\n" + markdown.PrettyTeX(strings.TrimSpace(inner)) + "\n```"
	}), nil
}

// Seed copies the bundled sample lessons into the vault without overwriting
// files the learner already has.
func (s *LessonService) Seed(ctx context.Context) ([]string, []string, error) {
	var written, skipped []string
	err := fs.WalkDir(seedFS, seedRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		content, err := seedFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read seed %s: %w", path, err)
		}
		rel := strings.TrimPrefix(path, seedRoot+"/")
		ok, err := s.store.WriteIfMissing(ctx, rel, string(content))
		if err != nil {
			return err
		}
		if ok {
			written = append(written, rel)
		} else {
			skipped = append(skipped, rel)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return written, skipped, nil
}

func (s *LessonService) completion(ctx context.Context) (map[string]domain.IndexEntry, error) {
	entries, err := s.index.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.IndexEntry, len(entries))
	for _, entry := range entries {
		out[entry.ID] = entry
	}
	return out, nil
}
