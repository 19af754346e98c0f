package service_test

import (
	"errors"
	"time"

	classroomout "chalk/internal/modules/classroom/port/out"
)

type fakeClipboard struct {
	written []string
	err     error
}

func (c *fakeClipboard) Write(text string) error {
	c.written = append(c.written, text)
	return c.err
}

type fakeHost struct {
	cleared int
}

func (h *fakeHost) ClearSelection() { h.cleared++ }

// manualScheduler fires only when the test calls Fire.
type manualScheduler struct {
	tasks     []*manualTask
	intervals []time.Duration
}

type manualTask struct {
	fire      func()
	cancelled bool
}

func (t *manualTask) Cancel() { t.cancelled = true }

func (s *manualScheduler) ScheduleRecurring(interval time.Duration, fire func()) classroomout.Handle {
	task := &manualTask{fire: fire}
	s.tasks = append(s.tasks, task)
	s.intervals = append(s.intervals, interval)
	return task
}

// Fire delivers one firing to every live task, mirroring a real timer that
// stops delivering after cancellation.
func (s *manualScheduler) Fire() {
	for _, task := range s.tasks {
		if !task.cancelled {
			task.fire()
		}
	}
}

func (s *manualScheduler) live() int {
	count := 0
	for _, task := range s.tasks {
		if !task.cancelled {
			count++
		}
	}
	return count
}

var errClipboardDenied = errors.New("clipboard denied")
