package service

import (
	"go.uber.org/zap"

	"chalk/internal/modules/classroom/domain"
	classroomin "chalk/internal/modules/classroom/port/in"
	classroomout "chalk/internal/modules/classroom/port/out"
	"chalk/internal/platform/logging"
)

// SelectionService routes captured lesson text into chat, notes or the
// clipboard. Every path that consumes a selection also clears the pending
// menu and the host highlight.
type SelectionService struct {
	clipboard classroomout.Clipboard
	logger    *zap.Logger
}

func NewSelectionService(clipboard classroomout.Clipboard, logger *zap.Logger) *SelectionService {
	return &SelectionService{clipboard: clipboard, logger: logging.OrNop(logger)}
}

// OnSelectionCommitted sends a finished selection straight to chat.
func (s *SelectionService) OnSelectionCommitted(state *domain.SessionState, host classroomin.SelectionHost, raw string) bool {
	text, ok := domain.NormalizeSelection(raw)
	if !ok {
		return false
	}
	state.AppendTranscript(domain.TranscriptEntry{Text: text, FromLearner: true})
	state.Panels.Activate(domain.PanelChat)
	state.Draft = ""
	s.consume(state, host)
	return true
}

// OnContextMenuRequested opens the menu for the selection at (x, y). A blank
// selection dismisses any open menu instead.
func (s *SelectionService) OnContextMenuRequested(state *domain.SessionState, raw string, x, y int) bool {
	text, ok := domain.NormalizeSelection(raw)
	if !ok {
		state.ClearPending()
		return false
	}
	state.SetPending(text, x, y)
	return true
}

func (s *SelectionService) ResolveAskAssistant(state *domain.SessionState, host classroomin.SelectionHost) (string, bool) {
	pending, ok := state.Pending()
	if !ok || pending.Text == "" {
		return "", false
	}
	state.AppendTranscript(domain.TranscriptEntry{Text: pending.Text, FromLearner: true})
	state.Panels.Activate(domain.PanelChat)
	s.consume(state, host)
	return pending.Text, true
}

func (s *SelectionService) ResolveAddToNotes(state *domain.SessionState, host classroomin.SelectionHost) bool {
	pending, ok := state.Pending()
	if !ok || pending.Text == "" {
		return false
	}
	state.Notes.Append(pending.Text)
	state.Panels.Activate(domain.PanelNotes)
	s.consume(state, host)
	return true
}

// ResolveCopy never fails from the caller's point of view; clipboard errors
// are logged and dropped.
func (s *SelectionService) ResolveCopy(state *domain.SessionState, host classroomin.SelectionHost) bool {
	pending, ok := state.Pending()
	if !ok || pending.Text == "" {
		return false
	}
	if s.clipboard != nil {
		if err := s.clipboard.Write(pending.Text); err != nil {
			s.logger.Warn("clipboard write failed", zap.Error(err), zap.Int("chars", len(pending.Text)))
		}
	}
	s.consume(state, host)
	return true
}

func (s *SelectionService) Dismiss(state *domain.SessionState, host classroomin.SelectionHost) bool {
	_, had := state.Pending()
	s.consume(state, host)
	return had
}

func (s *SelectionService) consume(state *domain.SessionState, host classroomin.SelectionHost) {
	state.ClearPending()
	if host != nil {
		host.ClearSelection()
	}
}
