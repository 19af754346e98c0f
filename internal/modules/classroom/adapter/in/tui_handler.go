package in

import (
	"context"

	"chalk/internal/modules/classroom/dto"
	classroomin "chalk/internal/modules/classroom/port/in"
)

// TUIHandler exposes the classroom to the terminal UI.
type TUIHandler struct {
	usecase classroomin.Usecase
}

func NewTUIHandler(usecase classroomin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Begin(ctx context.Context, lessonID, lessonTitle string, segments []dto.Segment, host classroomin.SelectionHost) error {
	return h.usecase.Begin(ctx, dto.BeginInput{LessonID: lessonID, LessonTitle: lessonTitle, Segments: segments}, host)
}

func (h TUIHandler) Toggle(panel string) error {
	return h.usecase.Toggle(dto.Panel(panel))
}

func (h TUIHandler) Activate(panel string) error {
	return h.usecase.Activate(dto.Panel(panel))
}

func (h TUIHandler) Deactivate(panel string) error {
	return h.usecase.Deactivate(dto.Panel(panel))
}

func (h TUIHandler) SelectionCommitted(raw string) bool {
	return h.usecase.SelectionCommitted(raw)
}

func (h TUIHandler) ContextMenuRequested(raw string, x, y int) bool {
	return h.usecase.ContextMenuRequested(raw, x, y)
}

func (h TUIHandler) AskAssistant() (string, bool) {
	return h.usecase.AskAssistant()
}

func (h TUIHandler) AddToNotes() bool {
	return h.usecase.AddToNotes()
}

func (h TUIHandler) Copy() bool {
	return h.usecase.Copy()
}

func (h TUIHandler) DismissMenu() bool {
	return h.usecase.DismissMenu()
}

func (h TUIHandler) SendChat(text string) (string, bool) {
	return h.usecase.SendChat(text)
}

func (h TUIHandler) SetDraft(text string) {
	h.usecase.SetDraft(text)
}

func (h TUIHandler) SetNotes(text string) {
	h.usecase.SetNotes(text)
}

func (h TUIHandler) AppendAssistantReply(text string) {
	h.usecase.AppendAssistantReply(text)
}

func (h TUIHandler) Continue() bool {
	return h.usecase.Continue()
}

func (h TUIHandler) IsRevealing() bool {
	return h.usecase.IsRevealing()
}

func (h TUIHandler) TakeCompleted() []string {
	return h.usecase.TakeCompleted()
}

func (h TUIHandler) RecordProgress(ctx context.Context, lessonID string) error {
	return h.usecase.RecordProgress(ctx, lessonID)
}

func (h TUIHandler) Snapshot() dto.Snapshot {
	return h.usecase.Snapshot()
}

func (h TUIHandler) Reply(ctx context.Context, question, lessonID, lessonTitle string) (string, error) {
	return h.usecase.Reply(ctx, dto.ReplyInput{Question: question, LessonID: lessonID, LessonTitle: lessonTitle})
}

func (h TUIHandler) LaunchGraphingTool(ctx context.Context) (string, error) {
	return h.usecase.LaunchGraphingTool(ctx)
}

func (h TUIHandler) End(ctx context.Context) (dto.EndOutput, error) {
	return h.usecase.End(ctx)
}
