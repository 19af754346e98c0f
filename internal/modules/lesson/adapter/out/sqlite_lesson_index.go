package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"chalk/internal/modules/lesson/domain"
	lessonout "chalk/internal/modules/lesson/port/out"
	"chalk/internal/platform/clock"
	apperrors "chalk/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

type SQLiteLessonIndex struct {
	db    *sql.DB
	clock clock.Clock
}

func NewSQLiteLessonIndex(dbPath string, clk clock.Clock) (*SQLiteLessonIndex, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	index := &SQLiteLessonIndex{db: db, clock: clk}
	if err := index.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return index, nil
}

var _ lessonout.LessonIndex = (*SQLiteLessonIndex)(nil)

func (s *SQLiteLessonIndex) Close() error {
	return s.db.Close()
}

func (s *SQLiteLessonIndex) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS lessons (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  chapter TEXT NOT NULL,
  lesson_order INTEGER NOT NULL,
  path TEXT NOT NULL,
  format TEXT NOT NULL,
  completed INTEGER NOT NULL DEFAULT 0,
  completed_at TEXT,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create lessons table: %w", err)
	}
	return nil
}

// Upsert refreshes the projected metadata and leaves completion untouched.
func (s *SQLiteLessonIndex) Upsert(ctx context.Context, lesson domain.Lesson) error {
	const stmt = `
INSERT INTO lessons (id, title, chapter, lesson_order, path, format, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  title=excluded.title,
  chapter=excluded.chapter,
  lesson_order=excluded.lesson_order,
  path=excluded.path,
  format=excluded.format,
  updated_at=excluded.updated_at;
`
	updated := lesson.UpdatedAt
	if updated.IsZero() {
		updated = s.clock.Now()
	}
	_, err := s.db.ExecContext(ctx, stmt,
		lesson.ID,
		lesson.Title,
		lesson.Chapter,
		lesson.Order,
		lesson.Path,
		string(lesson.Format),
		updated.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("upsert lesson: %w", err)
	}
	return nil
}

func (s *SQLiteLessonIndex) DeleteExcept(ctx context.Context, keepIDs []string) (int, error) {
	query := `DELETE FROM lessons`
	args := make([]any, 0, len(keepIDs))
	if len(keepIDs) > 0 {
		query += ` WHERE id NOT IN (?` + strings.Repeat(",?", len(keepIDs)-1) + `)`
		for _, id := range keepIDs {
			args = append(args, id)
		}
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("prune lessons: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune lessons: %w", err)
	}
	return int(n), nil
}

func (s *SQLiteLessonIndex) List(ctx context.Context) ([]domain.IndexEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, title, chapter, lesson_order, path, format, completed, COALESCE(completed_at, '')
FROM lessons`)
	if err != nil {
		return nil, fmt.Errorf("query lessons: %w", err)
	}
	defer rows.Close()

	var out []domain.IndexEntry
	for rows.Next() {
		var (
			entry       domain.IndexEntry
			format      string
			completed   int
			completedAt string
		)
		if err := rows.Scan(&entry.ID, &entry.Title, &entry.Chapter, &entry.Order, &entry.Path, &format, &completed, &completedAt); err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		entry.Format = domain.Format(format)
		entry.Completed = completed != 0
		if completedAt != "" {
			entry.CompletedAt, _ = time.Parse(timeLayout, completedAt)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lessons: %w", err)
	}
	slices.SortStableFunc(out, func(a, b domain.IndexEntry) int {
		return domain.CompareListed(a.Chapter, a.Order, a.Title, b.Chapter, b.Order, b.Title)
	})
	return out, nil
}

// MarkCompleted keeps the first completion time when called again.
func (s *SQLiteLessonIndex) MarkCompleted(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE lessons
SET completed = 1, completed_at = COALESCE(completed_at, ?)
WHERE id = ?`, s.clock.Now().Format(timeLayout), id)
	if err != nil {
		return fmt.Errorf("mark lesson completed: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark lesson completed: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("lesson %q: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
