package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"chalk/internal/modules/classroom/domain"
	"chalk/internal/modules/classroom/dto"
	classroomin "chalk/internal/modules/classroom/port/in"
	classroomout "chalk/internal/modules/classroom/port/out"
	"chalk/internal/modules/classroom/service"
	"chalk/internal/modules/classroom/usecase"
	apperrors "chalk/internal/platform/errors"
)

type stepScheduler struct {
	tasks []*stepTask
}

type stepTask struct {
	fire      func()
	cancelled bool
}

func (t *stepTask) Cancel() { t.cancelled = true }

func (s *stepScheduler) ScheduleRecurring(_ time.Duration, fire func()) classroomout.Handle {
	task := &stepTask{fire: fire}
	s.tasks = append(s.tasks, task)
	return task
}

func (s *stepScheduler) Fire() {
	for _, task := range s.tasks {
		if !task.cancelled {
			task.fire()
		}
	}
}

func (s *stepScheduler) live() int {
	count := 0
	for _, task := range s.tasks {
		if !task.cancelled {
			count++
		}
	}
	return count
}

type fakeHost struct{ cleared int }

func (h *fakeHost) ClearSelection() { h.cleared++ }

type fakeClipboard struct{ text string }

func (c *fakeClipboard) Write(text string) error {
	c.text = text
	return nil
}

type fakeProgress struct{ completed []string }

func (p *fakeProgress) MarkCompleted(_ context.Context, lessonID string) error {
	p.completed = append(p.completed, lessonID)
	return nil
}

type fakeRecorder struct {
	started  int
	finished []domain.StudySummary
}

func (r *fakeRecorder) Start(context.Context, string, string) (string, error) {
	r.started++
	return "session-1", nil
}

func (r *fakeRecorder) Finish(_ context.Context, summary domain.StudySummary) (string, error) {
	r.finished = append(r.finished, summary)
	return "/vault/sessions/x.md", nil
}

type fakeAssistant struct{ asked []string }

func (a *fakeAssistant) Ask(_ context.Context, question, _, _ string) (string, error) {
	a.asked = append(a.asked, question)
	return "A limit is the value f(x) approaches.", nil
}

type fakeLauncher struct{ opened string }

func (l *fakeLauncher) Open(_ context.Context, target string) error {
	l.opened = target
	return nil
}

type harness struct {
	uc        classroomin.Usecase
	sched     *stepScheduler
	progress  *fakeProgress
	recorder  *fakeRecorder
	assistant *fakeAssistant
	launcher  *fakeLauncher
	clipboard *fakeClipboard
	host      *fakeHost
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		sched:     &stepScheduler{},
		progress:  &fakeProgress{},
		recorder:  &fakeRecorder{},
		assistant: &fakeAssistant{},
		launcher:  &fakeLauncher{},
		clipboard: &fakeClipboard{},
		host:      &fakeHost{},
	}
	h.uc = usecase.NewInteractor(
		service.NewSelectionService(h.clipboard, nil),
		h.sched,
		usecase.Ports{Assistant: h.assistant, Progress: h.progress, Recorder: h.recorder, Launcher: h.launcher},
		usecase.Settings{RevealInterval: 120 * time.Millisecond, GraphingURL: "https://www.desmos.com/calculator"},
		nil,
	)
	return h
}

func (h *harness) begin(t *testing.T, id string, words ...string) {
	t.Helper()
	segments := make([]dto.Segment, 0, len(words))
	for _, word := range words {
		segments = append(segments, dto.Segment{Kind: "text", Text: word})
	}
	input := dto.BeginInput{LessonID: id, LessonTitle: "Lesson " + id, Segments: segments}
	if err := h.uc.Begin(context.Background(), input, h.host); err != nil {
		t.Fatalf("begin %s: %v", id, err)
	}
}

func TestPanelsThroughUsecase(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.begin(t, "limits", "a")

	if err := h.uc.Activate(dto.PanelCalculator); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if err := h.uc.Activate(dto.PanelFormulaSheet); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if h.uc.IsActive(dto.PanelCalculator) || !h.uc.IsActive(dto.PanelFormulaSheet) {
		t.Fatalf("formula sheet should replace calculator")
	}
	if err := h.uc.Deactivate(dto.PanelCalculator); err != nil {
		t.Fatalf("stale deactivate: %v", err)
	}
	if h.uc.Snapshot().ActivePanel != dto.PanelFormulaSheet {
		t.Fatalf("stale close must not affect the active panel")
	}
	if err := h.uc.Activate(dto.Panel("whiteboard")); !errors.Is(err, domain.ErrUnknownPanel) {
		t.Fatalf("expected unknown panel error, got %v", err)
	}
}

func TestContinueRevealsAndMarksProgress(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.begin(t, "limits", "the", "limit", "of", "f", "exists")

	if h.uc.IsRevealing() {
		t.Fatalf("reveal must wait for continue")
	}
	if !h.uc.Continue() {
		t.Fatalf("continue should start the reveal")
	}
	if h.uc.Continue() {
		t.Fatalf("second continue should be ignored")
	}
	for i := 0; i < 4; i++ {
		h.sched.Fire()
	}
	snap := h.uc.Snapshot()
	if snap.Reveal.Revealed != 4 || !snap.Reveal.ShowMarker {
		t.Fatalf("unexpected reveal mid-way: %+v", snap.Reveal)
	}
	h.sched.Fire()
	snap = h.uc.Snapshot()
	if snap.Reveal.Active || !snap.Reveal.Complete || snap.Reveal.ShowMarker {
		t.Fatalf("unexpected reveal after completion: %+v", snap.Reveal)
	}
	if len(h.progress.completed) != 0 {
		t.Fatalf("the timer callback must not write progress, got %v", h.progress.completed)
	}
	done := h.uc.TakeCompleted()
	if len(done) != 1 || done[0] != "limits" {
		t.Fatalf("expected limits queued as completed, got %v", done)
	}
	if again := h.uc.TakeCompleted(); len(again) != 0 {
		t.Fatalf("completions should be handed out once, got %v", again)
	}
	if err := h.uc.RecordProgress(context.Background(), "limits"); err != nil {
		t.Fatalf("record progress: %v", err)
	}
	if len(h.progress.completed) != 1 || h.progress.completed[0] != "limits" {
		t.Fatalf("expected lesson marked completed, got %v", h.progress.completed)
	}
	if h.sched.live() != 0 {
		t.Fatalf("timer should be cancelled after completion")
	}
}

func TestLessonSwitchTearsDownReveal(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.begin(t, "limits", "a", "b", "c")
	h.uc.Continue()
	h.sched.Fire()
	_ = h.uc.Activate(dto.PanelNotes)
	h.uc.SetNotes("keep me")

	h.begin(t, "derivatives", "x", "y")
	if h.sched.live() != 0 {
		t.Fatalf("previous reveal timer should be cancelled on lesson switch")
	}
	snap := h.uc.Snapshot()
	if snap.LessonID != "derivatives" || snap.Reveal.Revealed != 0 || snap.Reveal.Started {
		t.Fatalf("new lesson should start with a fresh reveal: %+v", snap)
	}
	if snap.Notes != "keep me" || snap.ActivePanel != dto.PanelNotes {
		t.Fatalf("session state should survive lesson switch: %+v", snap)
	}
	if h.recorder.started != 1 {
		t.Fatalf("study session should start once, got %d", h.recorder.started)
	}
}

func TestReopeningCurrentLessonKeepsReveal(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.begin(t, "limits", "a", "b")
	h.uc.Continue()
	h.sched.Fire()
	h.sched.Fire()

	h.begin(t, "limits", "a", "b")
	snap := h.uc.Snapshot()
	if snap.Reveal.Revealed != 2 || !snap.Reveal.Complete || !snap.Reveal.Started {
		t.Fatalf("reopen must keep the finished reveal: %+v", snap.Reveal)
	}
	if h.uc.Continue() {
		t.Fatalf("continue after reopen must not restart the reveal")
	}
	if len(h.recorder.finished) != 0 || h.recorder.started != 1 {
		t.Fatalf("reopen should not touch the study session")
	}
}

func TestReturningToLessonKeepsItsReveal(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.begin(t, "limits", "a", "b", "c")
	h.uc.Continue()
	h.sched.Fire()

	h.begin(t, "derivatives", "x")
	h.uc.Continue()
	h.sched.Fire()

	h.begin(t, "limits", "a", "b", "c")
	snap := h.uc.Snapshot()
	if snap.LessonID != "limits" || snap.Reveal.Revealed != 1 || snap.Reveal.Active {
		t.Fatalf("limits should come back halted at 1: %+v", snap.Reveal)
	}
	if !h.uc.Continue() {
		t.Fatalf("continue should resume the interrupted reveal")
	}
	h.sched.Fire()
	h.sched.Fire()
	snap = h.uc.Snapshot()
	if !snap.Reveal.Complete || snap.Reveal.Revealed != 3 {
		t.Fatalf("resumed reveal should finish: %+v", snap.Reveal)
	}

	h.begin(t, "derivatives", "x")
	if snap := h.uc.Snapshot(); !snap.Reveal.Complete || h.uc.Continue() {
		t.Fatalf("derivatives should stay complete: %+v", snap.Reveal)
	}
	done := h.uc.TakeCompleted()
	if len(done) != 2 || done[0] != "derivatives" || done[1] != "limits" {
		t.Fatalf("unexpected completions: %v", done)
	}
}

func TestSelectionFlowsThroughUsecase(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.begin(t, "limits", "a")

	if !h.uc.ContextMenuRequested("approaches", 4, 2) {
		t.Fatalf("menu should open")
	}
	snap := h.uc.Snapshot()
	if !snap.HasPending || snap.Pending.Text != "approaches" || snap.Pending.AnchorX != 4 {
		t.Fatalf("unexpected pending: %+v", snap)
	}
	question, ok := h.uc.AskAssistant()
	if !ok || question != "approaches" {
		t.Fatalf("unexpected ask: %q %v", question, ok)
	}
	if h.host.cleared != 1 {
		t.Fatalf("host highlight should be cleared")
	}
	reply, err := h.uc.Reply(context.Background(), dto.ReplyInput{Question: question, LessonID: "limits"})
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	h.uc.AppendAssistantReply(reply)
	snap = h.uc.Snapshot()
	if len(snap.Transcript) != 2 || !snap.Transcript[0].FromLearner || snap.Transcript[1].FromLearner {
		t.Fatalf("unexpected transcript: %+v", snap.Transcript)
	}
	if snap.ActivePanel != dto.PanelChat {
		t.Fatalf("chat should be active, got %s", snap.ActivePanel)
	}

	h.uc.ContextMenuRequested("slope", 0, 0)
	if !h.uc.Copy() || h.clipboard.text != "slope" {
		t.Fatalf("copy should write to clipboard")
	}
	if h.uc.DismissMenu() {
		t.Fatalf("dismiss with nothing pending should report false")
	}
}

func TestSendChatClearsDraft(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.uc.SetDraft("what is c?")
	if _, ok := h.uc.SendChat("   "); ok {
		t.Fatalf("blank chat should be ignored")
	}
	text, ok := h.uc.SendChat(" what is c? ")
	if !ok || text != "what is c?" {
		t.Fatalf("unexpected send: %q %v", text, ok)
	}
	if h.uc.Snapshot().Draft != "" {
		t.Fatalf("draft should be cleared after send")
	}
}

func TestReplyWithoutAssistant(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewSelectionService(nil, nil), &stepScheduler{}, usecase.Ports{}, usecase.Settings{}, nil)
	if _, err := uc.Reply(context.Background(), dto.ReplyInput{Question: "why"}); !errors.Is(err, apperrors.ErrNoAssistant) {
		t.Fatalf("expected ErrNoAssistant, got %v", err)
	}
}

func TestLaunchGraphingTool(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	target, err := h.uc.LaunchGraphingTool(context.Background())
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	if target != "https://www.desmos.com/calculator" || h.launcher.opened != target {
		t.Fatalf("unexpected launch target: %q opened=%q", target, h.launcher.opened)
	}
}

func TestEndRecordsSummaryWithoutNotes(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.begin(t, "limits", "a")
	h.uc.Continue()
	h.sched.Fire()
	h.uc.SetNotes("private")
	h.uc.SendChat("question one")
	h.begin(t, "derivatives", "b", "c")
	h.uc.Continue()

	out, err := h.uc.End(context.Background())
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	if out.SessionID != "session-1" || out.Lessons != 2 || out.Questions != 1 || out.Path == "" {
		t.Fatalf("unexpected end output: %+v", out)
	}
	if h.sched.live() != 0 {
		t.Fatalf("end should cancel the running reveal")
	}
	summary := h.recorder.finished[0]
	if !summary.Lessons[0].Completed || summary.Lessons[1].Completed {
		t.Fatalf("unexpected completion flags: %+v", summary.Lessons)
	}
	if _, err := h.uc.End(context.Background()); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("second end should report no active session, got %v", err)
	}
}

func TestBeginRejectsUnknownSegmentKind(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	input := dto.BeginInput{LessonID: "x", Segments: []dto.Segment{{Kind: "image", Text: "plot"}}}
	if err := h.uc.Begin(context.Background(), input, h.host); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
