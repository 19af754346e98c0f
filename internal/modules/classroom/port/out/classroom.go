package out

import (
	"context"
	"time"

	"chalk/internal/modules/classroom/domain"
)

type Clipboard interface {
	Write(text string) error
}

type Handle interface {
	Cancel()
}

// Scheduler runs fire every interval until the handle is cancelled. Firings
// must be delivered on the goroutine that owns session state.
type Scheduler interface {
	ScheduleRecurring(interval time.Duration, fire func()) Handle
}

type Assistant interface {
	Ask(ctx context.Context, question, lessonID, lessonTitle string) (string, error)
}

type LessonProgress interface {
	MarkCompleted(ctx context.Context, lessonID string) error
}

type SessionRecorder interface {
	Start(ctx context.Context, lessonID, lessonTitle string) (string, error)
	Finish(ctx context.Context, summary domain.StudySummary) (string, error)
}

type ExternalLauncher interface {
	Open(ctx context.Context, target string) error
}
