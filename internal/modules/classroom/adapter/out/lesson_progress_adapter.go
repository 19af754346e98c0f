package out

import (
	"context"

	classroomout "chalk/internal/modules/classroom/port/out"
	lessonin "chalk/internal/modules/lesson/port/in"
)

type LessonProgressAdapter struct {
	lessons lessonin.Usecase
}

func NewLessonProgressAdapter(lessons lessonin.Usecase) classroomout.LessonProgress {
	return &LessonProgressAdapter{lessons: lessons}
}

func (a *LessonProgressAdapter) MarkCompleted(ctx context.Context, lessonID string) error {
	return a.lessons.MarkCompleted(ctx, lessonID)
}
