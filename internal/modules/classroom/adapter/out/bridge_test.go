package out_test

import (
	"context"
	"errors"
	"testing"

	assistantdto "chalk/internal/modules/assistant/dto"
	classroomout "chalk/internal/modules/classroom/adapter/out"
	"chalk/internal/modules/classroom/domain"
	lessondto "chalk/internal/modules/lesson/dto"
	sessiondto "chalk/internal/modules/session/dto"
	apperrors "chalk/internal/platform/errors"
)

type fakeAssistant struct {
	input assistantdto.AskInput
}

func (f *fakeAssistant) List(context.Context) ([]assistantdto.PluginInfo, error) { return nil, nil }
func (f *fakeAssistant) Doctor(context.Context) ([]assistantdto.DoctorResult, error) {
	return nil, nil
}
func (f *fakeAssistant) Ask(_ context.Context, input assistantdto.AskInput) (assistantdto.AskOutput, error) {
	f.input = input
	return assistantdto.AskOutput{Plugin: input.Plugin, Answer: "a limit is where f(x) heads"}, nil
}

type fakeLessons struct {
	completed []string
}

func (f *fakeLessons) ListLessons(context.Context) ([]lessondto.LessonOutput, error) { return nil, nil }
func (f *fakeLessons) GetLesson(context.Context, string) (lessondto.LessonDetailOutput, error) {
	return lessondto.LessonDetailOutput{}, nil
}
func (f *fakeLessons) MarkCompleted(_ context.Context, id string) error {
	f.completed = append(f.completed, id)
	return nil
}
func (f *fakeLessons) Reindex(context.Context) (lessondto.ReindexOutput, error) {
	return lessondto.ReindexOutput{}, nil
}
func (f *fakeLessons) FormulaSheet(context.Context) (string, error) { return "", nil }
func (f *fakeLessons) Seed(context.Context) (lessondto.SeedOutput, error) {
	return lessondto.SeedOutput{}, nil
}

type fakeSessions struct {
	start sessiondto.StartInput
	end   sessiondto.EndInput
}

func (f *fakeSessions) Start(_ context.Context, input sessiondto.StartInput) (sessiondto.StartOutput, error) {
	f.start = input
	return sessiondto.StartOutput{SessionID: "sess-1", LessonID: input.LessonID}, nil
}
func (f *fakeSessions) End(_ context.Context, input sessiondto.EndInput) (sessiondto.EndOutput, error) {
	f.end = input
	return sessiondto.EndOutput{SessionID: input.SessionID, Path: "/vault/sessions/note.md"}, nil
}
func (f *fakeSessions) GetActive(context.Context) (sessiondto.ActiveSessionOutput, error) {
	return sessiondto.ActiveSessionOutput{}, apperrors.ErrNoActiveSession
}

func TestAssistantAdapterUsesConfiguredPlugin(t *testing.T) {
	t.Parallel()
	fake := &fakeAssistant{}
	adapter := classroomout.NewAssistantAdapter(fake, "glossary")
	answer, err := adapter.Ask(context.Background(), "limit", "what-is-a-limit", "1. What is a Limit?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if answer != "a limit is where f(x) heads" || fake.input.Plugin != "glossary" || fake.input.LessonID != "what-is-a-limit" {
		t.Fatalf("unexpected call: %q %+v", answer, fake.input)
	}

	unconfigured := classroomout.NewAssistantAdapter(fake, "")
	if _, err := unconfigured.Ask(context.Background(), "limit", "", ""); !errors.Is(err, apperrors.ErrNoAssistant) {
		t.Fatalf("expected ErrNoAssistant, got %v", err)
	}
}

func TestLessonProgressAdapterMarksCompletion(t *testing.T) {
	t.Parallel()
	fake := &fakeLessons{}
	if err := classroomout.NewLessonProgressAdapter(fake).MarkCompleted(context.Background(), "the-mean"); err != nil {
		t.Fatalf("mark completed: %v", err)
	}
	if len(fake.completed) != 1 || fake.completed[0] != "the-mean" {
		t.Fatalf("unexpected completions: %v", fake.completed)
	}
}

func TestSessionRecorderAdapterMapsSummary(t *testing.T) {
	t.Parallel()
	fake := &fakeSessions{}
	recorder := classroomout.NewSessionRecorderAdapter(fake)

	id, err := recorder.Start(context.Background(), "what-is-a-limit", "1. What is a Limit?")
	if err != nil || id != "sess-1" {
		t.Fatalf("unexpected start: %q %v", id, err)
	}
	path, err := recorder.Finish(context.Background(), domain.StudySummary{
		SessionID: "sess-1",
		Lessons:   []domain.LessonVisit{{LessonID: "what-is-a-limit", Title: "1. What is a Limit?", Completed: true}},
		Questions: 2,
	})
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if path != "/vault/sessions/note.md" || fake.end.Questions != 2 || len(fake.end.Lessons) != 1 || !fake.end.Lessons[0].Completed {
		t.Fatalf("unexpected end call: %q %+v", path, fake.end)
	}
}
