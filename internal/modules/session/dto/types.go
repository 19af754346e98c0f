package dto

import "time"

type StartInput struct {
	LessonID    string
	LessonTitle string
}

type StartOutput struct {
	SessionID string
	LessonID  string
	StartedAt time.Time
	// RecoveredPath is set when a stale session was closed first.
	RecoveredPath string
}

type LessonVisit struct {
	LessonID  string
	Title     string
	Completed bool
}

type EndInput struct {
	SessionID string
	Lessons   []LessonVisit
	Questions int
}

type EndOutput struct {
	SessionID   string
	Path        string
	DurationMin int
	Lessons     int
	Completed   int
	Questions   int
}

type ActiveSessionOutput struct {
	SessionID   string
	LessonID    string
	LessonTitle string
	StartedAt   time.Time
}
