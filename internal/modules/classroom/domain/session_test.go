package domain_test

import (
	"testing"

	"chalk/internal/modules/classroom/domain"
)

func TestNotesAppendJoinsWithNewline(t *testing.T) {
	t.Parallel()
	notes := domain.NotesBuffer{}
	notes.Append("first")
	notes.Append("second")
	if notes.String() != "first\nsecond" {
		t.Fatalf("unexpected notes: %q", notes.String())
	}
	notes.Set("")
	notes.Append("fresh")
	if notes.String() != "fresh" {
		t.Fatalf("append to empty buffer should not add newline: %q", notes.String())
	}
}

func TestTranscriptIsCopied(t *testing.T) {
	t.Parallel()
	state := &domain.SessionState{}
	state.AppendTranscript(domain.TranscriptEntry{Text: "why?", FromLearner: true})
	entries := state.Transcript()
	entries[0].Text = "rewritten"
	if state.Transcript()[0].Text != "why?" {
		t.Fatalf("transcript must not be mutable through copies")
	}
	if state.LearnerQuestions() != 1 {
		t.Fatalf("expected one learner question")
	}
}

func TestPendingSelectionLastWriterWins(t *testing.T) {
	t.Parallel()
	state := &domain.SessionState{}
	state.SetPending("one", 1, 1)
	state.SetPending("two", 5, 2)
	pending, ok := state.Pending()
	if !ok || pending.Text != "two" || pending.AnchorX != 5 {
		t.Fatalf("unexpected pending: %+v ok=%v", pending, ok)
	}
	state.ClearPending()
	if _, ok := state.Pending(); ok {
		t.Fatalf("pending should be cleared")
	}
}

func TestNormalizeSelection(t *testing.T) {
	t.Parallel()
	if _, ok := domain.NormalizeSelection(" \n\t "); ok {
		t.Fatalf("whitespace selection should be rejected")
	}
	text, ok := domain.NormalizeSelection("  limit  ")
	if !ok || text != "limit" {
		t.Fatalf("unexpected normalization: %q %v", text, ok)
	}
}
