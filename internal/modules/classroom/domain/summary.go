package domain

// LessonVisit records one lesson opened during a study session.
type LessonVisit struct {
	LessonID  string
	Title     string
	Completed bool
}

// StudySummary is what survives a study session. Notes and transcript text
// are never part of it.
type StudySummary struct {
	SessionID string
	Lessons   []LessonVisit
	Questions int
}

func (s *StudySummary) Visit(lessonID, title string) {
	for _, visit := range s.Lessons {
		if visit.LessonID == lessonID {
			return
		}
	}
	s.Lessons = append(s.Lessons, LessonVisit{LessonID: lessonID, Title: title})
}

func (s *StudySummary) MarkCompleted(lessonID string) {
	for i := range s.Lessons {
		if s.Lessons[i].LessonID == lessonID {
			s.Lessons[i].Completed = true
		}
	}
}
