package in

import (
	"context"

	"chalk/internal/modules/classroom/dto"
)

// SelectionHost owns the on-screen highlight of the lesson pane.
type SelectionHost interface {
	ClearSelection()
}

// Usecase is driven from a single goroutine. Reply, LaunchGraphingTool and
// RecordProgress do not touch session state and may run from a background
// command.
type Usecase interface {
	Begin(ctx context.Context, input dto.BeginInput, host SelectionHost) error

	Activate(panel dto.Panel) error
	Deactivate(panel dto.Panel) error
	Toggle(panel dto.Panel) error
	IsActive(panel dto.Panel) bool

	SelectionCommitted(raw string) bool
	ContextMenuRequested(raw string, x, y int) bool
	AskAssistant() (string, bool)
	AddToNotes() bool
	Copy() bool
	DismissMenu() bool

	SendChat(text string) (string, bool)
	SetDraft(text string)
	SetNotes(text string)
	AppendAssistantReply(text string)

	Continue() bool
	IsRevealing() bool
	TakeCompleted() []string
	RecordProgress(ctx context.Context, lessonID string) error

	Reply(ctx context.Context, input dto.ReplyInput) (string, error)
	LaunchGraphingTool(ctx context.Context) (string, error)

	Snapshot() dto.Snapshot
	End(ctx context.Context) (dto.EndOutput, error)
}
