package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"chalk/internal/modules/session/domain"
	sessionout "chalk/internal/modules/session/port/out"
	apperrors "chalk/internal/platform/errors"
)

// FileActiveSessionStore keeps the running session in
// <vault>/.chalk/active-session.json.
type FileActiveSessionStore struct {
	path string
}

func NewFileActiveSessionStore(vaultPath string) sessionout.ActiveSessionStore {
	return &FileActiveSessionStore{path: filepath.Join(vaultPath, ".chalk", "active-session.json")}
}

func (s *FileActiveSessionStore) SaveActive(_ context.Context, session domain.ActiveSession) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create active session dir: %w", err)
	}
	payload, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal active session: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write active session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace active session: %w", err)
	}
	return nil
}

func (s *FileActiveSessionStore) LoadActive(_ context.Context) (domain.ActiveSession, error) {
	payload, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.ActiveSession{}, apperrors.ErrNoActiveSession
	}
	if err != nil {
		return domain.ActiveSession{}, fmt.Errorf("read active session: %w", err)
	}
	var active domain.ActiveSession
	if err := json.Unmarshal(payload, &active); err != nil {
		return domain.ActiveSession{}, fmt.Errorf("decode active session: %w", err)
	}
	if active.SessionID == "" || active.LessonID == "" {
		return domain.ActiveSession{}, apperrors.ErrNoActiveSession
	}
	return active, nil
}

func (s *FileActiveSessionStore) ClearActive(_ context.Context) error {
	err := os.Remove(s.path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("clear active session: %w", err)
}
