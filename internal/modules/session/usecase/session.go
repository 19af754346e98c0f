package usecase

import (
	"context"
	"errors"
	"fmt"

	"chalk/internal/modules/session/domain"
	sessiondto "chalk/internal/modules/session/dto"
	sessionin "chalk/internal/modules/session/port/in"
	sessionout "chalk/internal/modules/session/port/out"
	"chalk/internal/modules/session/service"
	apperrors "chalk/internal/platform/errors"

	"go.uber.org/zap"
)

type Interactor struct {
	svc         *service.SessionService
	activeStore sessionout.ActiveSessionStore
	logger      *zap.Logger
}

func NewInteractor(svc *service.SessionService, activeStore sessionout.ActiveSessionStore, logger *zap.Logger) sessionin.Usecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{svc: svc, activeStore: activeStore, logger: logger}
}

// Start opens a session. A session left active by a previous run is written
// out as abandoned first.
func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.StartOutput, error) {
	active, err := i.svc.Start(ctx, input.LessonID, input.LessonTitle)
	if err != nil {
		return sessiondto.StartOutput{}, err
	}

	recovered := ""
	stale, err := i.activeStore.LoadActive(ctx)
	switch {
	case err == nil:
		_, path, endErr := i.svc.End(ctx, stale, nil, 0, true)
		if endErr != nil {
			return sessiondto.StartOutput{}, fmt.Errorf("close stale session: %w", endErr)
		}
		recovered = path
		i.logger.Warn("closed abandoned study session", zap.String("session_id", stale.SessionID), zap.String("path", path))
	case !errors.Is(err, apperrors.ErrNoActiveSession):
		return sessiondto.StartOutput{}, err
	}

	if err := i.activeStore.SaveActive(ctx, active); err != nil {
		return sessiondto.StartOutput{}, err
	}
	i.logger.Info("study session started", zap.String("session_id", active.SessionID), zap.String("lesson_id", active.LessonID))
	return sessiondto.StartOutput{
		SessionID:     active.SessionID,
		LessonID:      active.LessonID,
		StartedAt:     active.StartedAt,
		RecoveredPath: recovered,
	}, nil
}

func (i *Interactor) End(ctx context.Context, input sessiondto.EndInput) (sessiondto.EndOutput, error) {
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return sessiondto.EndOutput{}, err
	}
	if input.SessionID != "" && input.SessionID != active.SessionID {
		return sessiondto.EndOutput{}, fmt.Errorf("session id mismatch: %w", apperrors.ErrInvalidInput)
	}

	visits := make([]domain.LessonVisit, 0, len(input.Lessons))
	for _, visit := range input.Lessons {
		visits = append(visits, domain.LessonVisit{LessonID: visit.LessonID, Title: visit.Title, Completed: visit.Completed})
	}
	session, path, err := i.svc.End(ctx, active, visits, input.Questions, false)
	if err != nil {
		return sessiondto.EndOutput{}, err
	}
	if err := i.activeStore.ClearActive(ctx); err != nil {
		return sessiondto.EndOutput{}, err
	}
	i.logger.Info("study session ended",
		zap.String("session_id", session.ID),
		zap.Int("lessons", len(session.Lessons)),
		zap.Int("questions", session.Questions),
		zap.String("path", path),
	)
	return sessiondto.EndOutput{
		SessionID:   session.ID,
		Path:        path,
		DurationMin: session.DurationMin,
		Lessons:     len(session.Lessons),
		Completed:   session.CompletedCount(),
		Questions:   session.Questions,
	}, nil
}

func (i *Interactor) GetActive(ctx context.Context) (sessiondto.ActiveSessionOutput, error) {
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return sessiondto.ActiveSessionOutput{}, err
	}
	return sessiondto.ActiveSessionOutput{
		SessionID:   active.SessionID,
		LessonID:    active.LessonID,
		LessonTitle: active.LessonTitle,
		StartedAt:   active.StartedAt,
	}, nil
}
