package out

import (
	"context"

	assistantdto "chalk/internal/modules/assistant/dto"
	assistantin "chalk/internal/modules/assistant/port/in"
	classroomout "chalk/internal/modules/classroom/port/out"
	apperrors "chalk/internal/platform/errors"
)

// AssistantAdapter asks the configured assistant plugin.
type AssistantAdapter struct {
	assistant assistantin.Usecase
	plugin    string
}

func NewAssistantAdapter(assistant assistantin.Usecase, plugin string) classroomout.Assistant {
	return &AssistantAdapter{assistant: assistant, plugin: plugin}
}

func (a *AssistantAdapter) Ask(ctx context.Context, question, lessonID, lessonTitle string) (string, error) {
	if a.assistant == nil || a.plugin == "" {
		return "", apperrors.ErrNoAssistant
	}
	out, err := a.assistant.Ask(ctx, assistantdto.AskInput{
		Plugin:      a.plugin,
		Question:    question,
		LessonID:    lessonID,
		LessonTitle: lessonTitle,
	})
	if err != nil {
		return "", err
	}
	return out.Answer, nil
}
