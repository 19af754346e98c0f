package domain

import "strings"

type TranscriptEntry struct {
	Text        string
	FromLearner bool
}

type NotesBuffer struct {
	text string
}

// Append adds a line, separated from existing content by a newline.
func (n *NotesBuffer) Append(text string) {
	if n.text == "" {
		n.text = text
		return
	}
	n.text += "\n" + text
}

func (n *NotesBuffer) Set(text string) {
	n.text = text
}

func (n NotesBuffer) String() string {
	return n.text
}

// PendingSelection is the text awaiting a context-menu action. Anchor
// coordinates are terminal cells relative to the lesson pane.
type PendingSelection struct {
	Text    string
	AnchorX int
	AnchorY int
}

type SessionState struct {
	Panels     Panels
	Notes      NotesBuffer
	Draft      string
	transcript []TranscriptEntry
	pending    *PendingSelection
}

func (s *SessionState) AppendTranscript(entry TranscriptEntry) {
	s.transcript = append(s.transcript, entry)
}

// Transcript returns a copy; callers cannot rewrite history.
func (s *SessionState) Transcript() []TranscriptEntry {
	out := make([]TranscriptEntry, len(s.transcript))
	copy(out, s.transcript)
	return out
}

func (s *SessionState) SetPending(text string, x, y int) {
	s.pending = &PendingSelection{Text: text, AnchorX: x, AnchorY: y}
}

func (s *SessionState) ClearPending() {
	s.pending = nil
}

func (s *SessionState) Pending() (PendingSelection, bool) {
	if s.pending == nil {
		return PendingSelection{}, false
	}
	return *s.pending, true
}

// LearnerQuestions counts learner-originated transcript entries.
func (s *SessionState) LearnerQuestions() int {
	count := 0
	for _, entry := range s.transcript {
		if entry.FromLearner {
			count++
		}
	}
	return count
}

// NormalizeSelection trims raw host text; ok is false for blank input.
func NormalizeSelection(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	return trimmed, trimmed != ""
}
