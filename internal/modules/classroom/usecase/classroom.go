package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"chalk/internal/modules/classroom/domain"
	"chalk/internal/modules/classroom/dto"
	classroomin "chalk/internal/modules/classroom/port/in"
	classroomout "chalk/internal/modules/classroom/port/out"
	"chalk/internal/modules/classroom/service"
	apperrors "chalk/internal/platform/errors"
	"chalk/internal/platform/logging"
)

const sideEffectTimeout = 3 * time.Second

// Ports groups the optional side channels. Any of them may be nil.
type Ports struct {
	Assistant classroomout.Assistant
	Progress  classroomout.LessonProgress
	Recorder  classroomout.SessionRecorder
	Launcher  classroomout.ExternalLauncher
}

type Settings struct {
	RevealInterval time.Duration
	GraphingURL    string
}

type lessonRef struct {
	id    string
	title string
}

// Interactor owns the one SessionState of the process.
type Interactor struct {
	selection *service.SelectionService
	scheduler classroomout.Scheduler
	ports     Ports
	settings  Settings
	logger    *zap.Logger

	state   domain.SessionState
	host    classroomin.SelectionHost
	reveal  *service.RevealController
	reveals map[string]*service.RevealController
	lesson  lessonRef
	summary domain.StudySummary
	begun   bool
	// completed lessons whose progress write is still owed
	completed []string
}

func NewInteractor(selection *service.SelectionService, scheduler classroomout.Scheduler, ports Ports, settings Settings, logger *zap.Logger) classroomin.Usecase {
	return &Interactor{
		selection: selection,
		scheduler: scheduler,
		ports:     ports,
		settings:  settings,
		logger:    logging.OrNop(logger),
		reveals:   map[string]*service.RevealController{},
	}
}

// Begin opens a lesson. The first call also starts the study session. Later
// calls halt the current reveal and keep panels, notes and transcript; each
// lesson keeps its own reveal for the rest of the session, so returning to a
// lesson shows what was already revealed. Reopening the current lesson only
// rebinds the host.
func (i *Interactor) Begin(ctx context.Context, input dto.BeginInput, host classroomin.SelectionHost) error {
	if strings.TrimSpace(input.LessonID) == "" {
		return fmt.Errorf("%w: lesson id is required", apperrors.ErrInvalidInput)
	}
	if i.begun && input.LessonID == i.lesson.id {
		i.host = host
		return nil
	}
	segments, err := toDomainSegments(input.Segments)
	if err != nil {
		return err
	}
	if i.reveal != nil {
		i.reveal.Stop()
	}
	if !i.begun {
		i.begun = true
		if i.ports.Recorder != nil {
			sessionID, err := i.ports.Recorder.Start(ctx, input.LessonID, input.LessonTitle)
			if err != nil {
				i.logger.Warn("study session start failed", zap.Error(err))
			}
			i.summary.SessionID = sessionID
		}
	}
	i.host = host
	i.lesson = lessonRef{id: input.LessonID, title: input.LessonTitle}
	i.summary.Visit(input.LessonID, input.LessonTitle)
	reveal, seen := i.reveals[input.LessonID]
	if !seen {
		lessonID := input.LessonID
		reveal = service.NewRevealController(segments, i.scheduler, i.interval(), func() { i.revealFinished(lessonID) }, i.logger)
		i.reveals[input.LessonID] = reveal
	}
	i.reveal = reveal
	i.logger.Info("lesson opened",
		zap.String("lesson_id", input.LessonID),
		zap.Int("segments", reveal.State().Len()),
		zap.Int("revealed", reveal.State().Revealed()),
	)
	return nil
}

func (i *Interactor) Activate(panel dto.Panel) error {
	id, err := domain.ParsePanel(string(panel))
	if err != nil {
		return err
	}
	i.state.Panels.Activate(id)
	return nil
}

func (i *Interactor) Deactivate(panel dto.Panel) error {
	id, err := domain.ParsePanel(string(panel))
	if err != nil {
		return err
	}
	i.state.Panels.Deactivate(id)
	return nil
}

func (i *Interactor) Toggle(panel dto.Panel) error {
	id, err := domain.ParsePanel(string(panel))
	if err != nil {
		return err
	}
	i.state.Panels.Toggle(id)
	return nil
}

func (i *Interactor) IsActive(panel dto.Panel) bool {
	id, err := domain.ParsePanel(string(panel))
	if err != nil {
		return false
	}
	return i.state.Panels.IsActive(id)
}

func (i *Interactor) SelectionCommitted(raw string) bool {
	return i.selection.OnSelectionCommitted(&i.state, i.host, raw)
}

func (i *Interactor) ContextMenuRequested(raw string, x, y int) bool {
	return i.selection.OnContextMenuRequested(&i.state, raw, x, y)
}

func (i *Interactor) AskAssistant() (string, bool) {
	return i.selection.ResolveAskAssistant(&i.state, i.host)
}

func (i *Interactor) AddToNotes() bool {
	return i.selection.ResolveAddToNotes(&i.state, i.host)
}

func (i *Interactor) Copy() bool {
	return i.selection.ResolveCopy(&i.state, i.host)
}

func (i *Interactor) DismissMenu() bool {
	return i.selection.Dismiss(&i.state, i.host)
}

// SendChat appends a typed learner message and clears the draft.
func (i *Interactor) SendChat(text string) (string, bool) {
	trimmed, ok := domain.NormalizeSelection(text)
	if !ok {
		return "", false
	}
	i.state.AppendTranscript(domain.TranscriptEntry{Text: trimmed, FromLearner: true})
	i.state.Draft = ""
	return trimmed, true
}

func (i *Interactor) SetDraft(text string) {
	i.state.Draft = text
}

func (i *Interactor) SetNotes(text string) {
	i.state.Notes.Set(text)
}

func (i *Interactor) AppendAssistantReply(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	i.state.AppendTranscript(domain.TranscriptEntry{Text: text})
}

// Continue starts the reveal of the current lesson's continuation.
func (i *Interactor) Continue() bool {
	if i.reveal == nil {
		return false
	}
	return i.reveal.Start()
}

func (i *Interactor) IsRevealing() bool {
	return i.reveal != nil && i.reveal.IsRevealing()
}

func (i *Interactor) Reply(ctx context.Context, input dto.ReplyInput) (string, error) {
	if i.ports.Assistant == nil {
		return "", apperrors.ErrNoAssistant
	}
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return "", fmt.Errorf("%w: question is required", apperrors.ErrInvalidInput)
	}
	return i.ports.Assistant.Ask(ctx, question, input.LessonID, input.LessonTitle)
}

func (i *Interactor) LaunchGraphingTool(ctx context.Context) (string, error) {
	target := strings.TrimSpace(i.settings.GraphingURL)
	if target == "" {
		return "", fmt.Errorf("%w: graphing url is not configured", apperrors.ErrInvalidInput)
	}
	if i.ports.Launcher == nil {
		return target, fmt.Errorf("external launcher is not configured")
	}
	if err := i.ports.Launcher.Open(ctx, target); err != nil {
		return target, err
	}
	return target, nil
}

func (i *Interactor) Snapshot() dto.Snapshot {
	out := dto.Snapshot{
		LessonID:    i.lesson.id,
		LessonTitle: i.lesson.title,
		ActivePanel: dto.Panel(i.state.Panels.Active().String()),
		Notes:       i.state.Notes.String(),
		Draft:       i.state.Draft,
	}
	for _, entry := range i.state.Transcript() {
		out.Transcript = append(out.Transcript, dto.TranscriptEntry{Text: entry.Text, FromLearner: entry.FromLearner})
	}
	if pending, ok := i.state.Pending(); ok {
		out.HasPending = true
		out.Pending = dto.PendingSelection{Text: pending.Text, AnchorX: pending.AnchorX, AnchorY: pending.AnchorY}
	}
	if i.reveal != nil {
		state := i.reveal.State()
		out.Reveal = dto.RevealView{
			Segments:   toDTOSegments(state.Visible()),
			Revealed:   state.Revealed(),
			Total:      state.Len(),
			Active:     state.Active(),
			Started:    state.Started(),
			Complete:   state.Complete(),
			ShowMarker: state.ShowMarker(),
		}
	}
	return out
}

// End tears down the reveal and writes the study summary.
func (i *Interactor) End(ctx context.Context) (dto.EndOutput, error) {
	if i.reveal != nil {
		i.reveal.Stop()
	}
	if !i.begun {
		return dto.EndOutput{}, apperrors.ErrNoActiveSession
	}
	i.begun = false
	i.reveals = map[string]*service.RevealController{}
	i.summary.Questions = i.state.LearnerQuestions()
	out := dto.EndOutput{
		SessionID: i.summary.SessionID,
		Lessons:   len(i.summary.Lessons),
		Questions: i.summary.Questions,
	}
	if i.ports.Recorder == nil || i.summary.SessionID == "" {
		return out, nil
	}
	path, err := i.ports.Recorder.Finish(ctx, i.summary)
	if err != nil {
		return out, fmt.Errorf("record study session: %w", err)
	}
	out.Path = path
	return out, nil
}

// revealFinished queues the index write for RecordProgress.
func (i *Interactor) revealFinished(lessonID string) {
	i.summary.MarkCompleted(lessonID)
	i.completed = append(i.completed, lessonID)
}

// TakeCompleted returns and clears the lessons whose reveal finished since
// the last call.
func (i *Interactor) TakeCompleted() []string {
	out := i.completed
	i.completed = nil
	return out
}

// RecordProgress marks a lesson completed in the index. It touches no
// session state.
func (i *Interactor) RecordProgress(ctx context.Context, lessonID string) error {
	if i.ports.Progress == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, sideEffectTimeout)
	defer cancel()
	if err := i.ports.Progress.MarkCompleted(ctx, lessonID); err != nil {
		i.logger.Warn("mark lesson completed failed", zap.String("lesson_id", lessonID), zap.Error(err))
		return fmt.Errorf("mark %s completed: %w", lessonID, err)
	}
	return nil
}

func (i *Interactor) interval() time.Duration {
	if i.settings.RevealInterval <= 0 {
		return 120 * time.Millisecond
	}
	return i.settings.RevealInterval
}

func toDomainSegments(in []dto.Segment) ([]domain.Segment, error) {
	out := make([]domain.Segment, 0, len(in))
	for _, segment := range in {
		kind, err := parseSegmentKind(segment.Kind)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.Segment{Kind: kind, Text: segment.Text})
	}
	return out, nil
}

func toDTOSegments(in []domain.Segment) []dto.Segment {
	out := make([]dto.Segment, 0, len(in))
	for _, segment := range in {
		out = append(out, dto.Segment{Kind: segment.Kind.String(), Text: segment.Text})
	}
	return out
}

func parseSegmentKind(kind string) (domain.SegmentKind, error) {
	switch kind {
	case "", "text":
		return domain.SegmentText, nil
	case "formula":
		return domain.SegmentFormula, nil
	case "break":
		return domain.SegmentBreak, nil
	default:
		return 0, fmt.Errorf("%w: unknown segment kind %q", apperrors.ErrInvalidInput, kind)
	}
}
