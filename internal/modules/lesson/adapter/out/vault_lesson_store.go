package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chalk/internal/modules/lesson/domain"
	lessonout "chalk/internal/modules/lesson/port/out"
	apperrors "chalk/internal/platform/errors"
	"chalk/internal/platform/markdown"
	"chalk/internal/platform/slug"

	"github.com/bmatcuk/doublestar/v4"
)

const lessonsDir = "lessons"

type VaultLessonStore struct {
	vaultPath string
	pdf       lessonout.PDFReader
}

func NewVaultLessonStore(vaultPath string, pdf lessonout.PDFReader) lessonout.LessonStore {
	return &VaultLessonStore{vaultPath: vaultPath, pdf: pdf}
}

func (s *VaultLessonStore) List(ctx context.Context) ([]domain.Lesson, error) {
	root := filepath.Join(s.vaultPath, lessonsDir)
	if _, err := os.Stat(root); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	matches, err := doublestar.Glob(os.DirFS(root), "**/*.{md,pdf}")
	if err != nil {
		return nil, fmt.Errorf("glob lessons: %w", err)
	}
	sort.Strings(matches)

	seen := make(map[string]string, len(matches))
	out := make([]domain.Lesson, 0, len(matches))
	for _, rel := range matches {
		path := filepath.Join(root, filepath.FromSlash(rel))
		lesson, err := s.load(ctx, path)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[lesson.ID]; ok {
			return nil, fmt.Errorf("duplicate lesson id %q in %s and %s: %w", lesson.ID, prev, path, apperrors.ErrInvalidInput)
		}
		seen[lesson.ID] = path
		out = append(out, lesson)
	}
	return out, nil
}

func (s *VaultLessonStore) FindByID(ctx context.Context, id string) (domain.Lesson, error) {
	lessons, err := s.List(ctx)
	if err != nil {
		return domain.Lesson{}, err
	}
	for _, lesson := range lessons {
		if lesson.ID == id {
			return lesson, nil
		}
	}
	return domain.Lesson{}, fmt.Errorf("lesson %q: %w", id, apperrors.ErrNotFound)
}

func (s *VaultLessonStore) WriteIfMissing(_ context.Context, relPath, content string) (bool, error) {
	clean := filepath.Clean(filepath.FromSlash(relPath))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return false, fmt.Errorf("path %q escapes the vault: %w", relPath, apperrors.ErrInvalidInput)
	}
	target := filepath.Join(s.vaultPath, clean)
	if _, err := os.Stat(target); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat %s: %w", target, err)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return false, fmt.Errorf("create lesson directory: %w", err)
	}
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", target, err)
	}
	return true, nil
}

func (s *VaultLessonStore) load(ctx context.Context, path string) (domain.Lesson, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.Lesson{}, fmt.Errorf("stat %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	lesson := domain.Lesson{
		ID:        slug.Make(name),
		Title:     name,
		Chapter:   filepath.Base(filepath.Dir(path)),
		Path:      path,
		UpdatedAt: info.ModTime().UTC(),
	}
	if filepath.Dir(path) == filepath.Join(s.vaultPath, lessonsDir) {
		lesson.Chapter = ""
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		lesson.Format = domain.FormatPDF
		pages, err := s.pdf.ReadPages(ctx, path)
		if err != nil {
			return domain.Lesson{}, fmt.Errorf("read pdf lesson %s: %w", path, err)
		}
		if len(pages) > 0 {
			lesson.Body = pages[0]
			lesson.Continuation = strings.Join(pages[1:], "\n\n")
		}
	} else {
		lesson.Format = domain.FormatMarkdown
		content, err := os.ReadFile(path)
		if err != nil {
			return domain.Lesson{}, fmt.Errorf("read %s: %w", path, err)
		}
		meta, body, err := markdown.SplitFrontmatter(string(content))
		if err != nil {
			return domain.Lesson{}, fmt.Errorf("parse %s: %w", path, err)
		}
		applyFrontmatter(&lesson, meta)
		lesson.Body, lesson.Continuation = domain.SplitContinuation(body)
	}

	if err := lesson.Validate(); err != nil {
		return domain.Lesson{}, fmt.Errorf("decode lesson %s: %w", path, err)
	}
	return lesson, nil
}

func applyFrontmatter(lesson *domain.Lesson, meta map[string]any) {
	if v := asString(meta["id"]); v != "" {
		lesson.ID = v
	}
	if v := asString(meta["title"]); v != "" {
		lesson.Title = v
	}
	if v := asString(meta["chapter"]); v != "" {
		lesson.Chapter = v
	}
	lesson.Order = asInt(meta["order"])
}

func asString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	default:
		return fmt.Sprint(v)
	}
}

func asInt(v any) int {
	switch x := v.(type) {
	case int:
		return x
	case int64:
		return int(x)
	case float64:
		return int(x)
	case string:
		var out int
		_, _ = fmt.Sscanf(x, "%d", &out)
		return out
	default:
		return 0
	}
}
