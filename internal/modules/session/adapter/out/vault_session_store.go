package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chalk/internal/modules/session/domain"
	sessionout "chalk/internal/modules/session/port/out"
	"chalk/internal/platform/markdown"
	"chalk/internal/platform/slug"
)

const (
	dayIndexName  = "index.md"
	dayIndexStart = "<!-- chalk:sessions:start -->"
	dayIndexEnd   = "<!-- chalk:sessions:end -->"
	timeLayout    = "2006-01-02T15:04:05Z07:00"
)

type VaultSessionStore struct {
	vaultPath string
}

func NewVaultSessionStore(vaultPath string) sessionout.SessionStore {
	return &VaultSessionStore{vaultPath: vaultPath}
}

// Save writes one note per session and refreshes the managed list in the
// day's index note.
func (s *VaultSessionStore) Save(_ context.Context, session domain.Session) (string, error) {
	date := session.StartedAt
	dir := filepath.Join(s.vaultPath, "sessions", date.Format("2006"), date.Format("01"), date.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create session dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.md", date.Format("150405"), slug.Make(session.LessonTitle))
	path := filepath.Join(dir, name)

	lessons := make([]map[string]any, 0, len(session.Lessons))
	for _, visit := range session.Lessons {
		lessons = append(lessons, map[string]any{
			"id":        visit.LessonID,
			"title":     visit.Title,
			"completed": visit.Completed,
		})
	}
	meta := map[string]any{
		"schema_version":    domain.SchemaVersion,
		"id":                session.ID,
		"lesson_id":         session.LessonID,
		"started_at":        session.StartedAt.Format(timeLayout),
		"ended_at":          session.EndedAt.Format(timeLayout),
		"duration_minutes":  session.DurationMin,
		"lessons":           lessons,
		"questions_asked":   session.Questions,
		"lessons_completed": session.CompletedCount(),
		"abandoned":         session.Abandoned,
	}
	rendered, err := markdown.RenderFrontmatter(meta, sessionBody(session))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write session note: %w", err)
	}
	if err := s.refreshDayIndex(dir, date.Format("2006-01-02")); err != nil {
		return "", err
	}
	return path, nil
}

func sessionBody(session domain.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Study session %s\n\n", session.StartedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "- Duration: %d minutes\n", session.DurationMin)
	fmt.Fprintf(&b, "- Questions asked: %d\n", session.Questions)
	if session.Abandoned {
		b.WriteString("- Closed on the next start\n")
	}
	b.WriteString("\n## Lessons\n\n")
	for _, visit := range session.Lessons {
		mark := " "
		if visit.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "- [%s] %s\n", mark, visit.Title)
	}
	return b.String()
}

func (s *VaultSessionStore) refreshDayIndex(dir, day string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read session dir: %w", err)
	}
	links := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == dayIndexName || filepath.Ext(name) != ".md" {
			continue
		}
		links = append(links, "- [["+strings.TrimSuffix(name, ".md")+"]]")
	}
	sort.Strings(links)

	indexPath := filepath.Join(dir, dayIndexName)
	body := "# Sessions " + day + "\n"
	if existing, err := os.ReadFile(indexPath); err == nil {
		body = string(existing)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read day index: %w", err)
	}
	body = markdown.ReplaceManagedBlock(body, dayIndexStart, dayIndexEnd, strings.Join(links, "\n"))
	if err := os.WriteFile(indexPath, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write day index: %w", err)
	}
	return nil
}
