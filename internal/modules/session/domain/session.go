package domain

import "time"

const SchemaVersion = 1

// ActiveSession is persisted while the TUI runs so that a crashed session can
// still be written out on the next start.
type ActiveSession struct {
	SessionID   string    `json:"session_id"`
	LessonID    string    `json:"lesson_id"`
	LessonTitle string    `json:"lesson_title"`
	StartedAt   time.Time `json:"started_at"`
}

type LessonVisit struct {
	LessonID  string
	Title     string
	Completed bool
}

type Session struct {
	ID          string
	LessonID    string
	LessonTitle string
	StartedAt   time.Time
	EndedAt     time.Time
	DurationMin int
	Lessons     []LessonVisit
	Questions   int
	Abandoned   bool
}

// CompletedCount reports how many visited lessons were revealed to the end.
func (s Session) CompletedCount() int {
	n := 0
	for _, visit := range s.Lessons {
		if visit.Completed {
			n++
		}
	}
	return n
}
