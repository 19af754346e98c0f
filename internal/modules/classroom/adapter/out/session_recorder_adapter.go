package out

import (
	"context"

	"chalk/internal/modules/classroom/domain"
	classroomout "chalk/internal/modules/classroom/port/out"
	sessiondto "chalk/internal/modules/session/dto"
	sessionin "chalk/internal/modules/session/port/in"
)

type SessionRecorderAdapter struct {
	sessions sessionin.Usecase
}

func NewSessionRecorderAdapter(sessions sessionin.Usecase) classroomout.SessionRecorder {
	return &SessionRecorderAdapter{sessions: sessions}
}

func (a *SessionRecorderAdapter) Start(ctx context.Context, lessonID, lessonTitle string) (string, error) {
	out, err := a.sessions.Start(ctx, sessiondto.StartInput{LessonID: lessonID, LessonTitle: lessonTitle})
	if err != nil {
		return "", err
	}
	return out.SessionID, nil
}

func (a *SessionRecorderAdapter) Finish(ctx context.Context, summary domain.StudySummary) (string, error) {
	visits := make([]sessiondto.LessonVisit, 0, len(summary.Lessons))
	for _, visit := range summary.Lessons {
		visits = append(visits, sessiondto.LessonVisit{LessonID: visit.LessonID, Title: visit.Title, Completed: visit.Completed})
	}
	out, err := a.sessions.End(ctx, sessiondto.EndInput{
		SessionID: summary.SessionID,
		Lessons:   visits,
		Questions: summary.Questions,
	})
	if err != nil {
		return "", err
	}
	return out.Path, nil
}
