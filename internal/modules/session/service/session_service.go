package service

import (
	"context"
	"fmt"
	"strings"

	"chalk/internal/modules/session/domain"
	sessionout "chalk/internal/modules/session/port/out"
	"chalk/internal/platform/clock"
	apperrors "chalk/internal/platform/errors"
	"chalk/internal/platform/id"
)

type SessionService struct {
	clock clock.Clock
	idGen id.Generator
	store sessionout.SessionStore
}

func NewSessionService(clock clock.Clock, idGen id.Generator, store sessionout.SessionStore) *SessionService {
	return &SessionService{clock: clock, idGen: idGen, store: store}
}

func (s *SessionService) Start(_ context.Context, lessonID, lessonTitle string) (domain.ActiveSession, error) {
	if strings.TrimSpace(lessonID) == "" {
		return domain.ActiveSession{}, fmt.Errorf("lesson id is required: %w", apperrors.ErrInvalidInput)
	}
	return domain.ActiveSession{
		SessionID:   s.idGen.New(),
		LessonID:    lessonID,
		LessonTitle: lessonTitle,
		StartedAt:   s.clock.Now(),
	}, nil
}

// End writes the session note. Lessons default to the opening lesson when
// the caller did not track any visits.
func (s *SessionService) End(ctx context.Context, active domain.ActiveSession, lessons []domain.LessonVisit, questions int, abandoned bool) (domain.Session, string, error) {
	if questions < 0 {
		return domain.Session{}, "", fmt.Errorf("question count must be non-negative: %w", apperrors.ErrInvalidInput)
	}
	endedAt := s.clock.Now()
	duration := int(endedAt.Sub(active.StartedAt).Minutes())
	if duration < 0 {
		duration = 0
	}
	if len(lessons) == 0 {
		lessons = []domain.LessonVisit{{LessonID: active.LessonID, Title: active.LessonTitle}}
	}
	session := domain.Session{
		ID:          active.SessionID,
		LessonID:    active.LessonID,
		LessonTitle: active.LessonTitle,
		StartedAt:   active.StartedAt,
		EndedAt:     endedAt,
		DurationMin: duration,
		Lessons:     lessons,
		Questions:   questions,
		Abandoned:   abandoned,
	}
	path, err := s.store.Save(ctx, session)
	if err != nil {
		return domain.Session{}, "", err
	}
	return session, path, nil
}
