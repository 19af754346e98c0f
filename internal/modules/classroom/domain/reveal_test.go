package domain_test

import (
	"testing"

	"chalk/internal/modules/classroom/domain"
)

func words(texts ...string) []domain.Segment {
	out := make([]domain.Segment, 0, len(texts))
	for _, text := range texts {
		out = append(out, domain.Segment{Kind: domain.SegmentText, Text: text})
	}
	return out
}

func TestRevealAdvancesToCompletion(t *testing.T) {
	t.Parallel()
	state := domain.NewRevealState(words("a", "b", "c"))
	if !state.Begin() {
		t.Fatalf("expected begin to start reveal")
	}
	for i := 1; i <= 3; i++ {
		done := state.Advance()
		if state.Revealed() != i {
			t.Fatalf("expected %d revealed, got %d", i, state.Revealed())
		}
		if done != (i == 3) {
			t.Fatalf("advance %d: done=%v", i, done)
		}
	}
	if state.Active() {
		t.Fatalf("reveal should be inactive after completion")
	}
	if state.ShowMarker() {
		t.Fatalf("marker should be hidden after completion")
	}
	if state.Advance() {
		t.Fatalf("advance after completion should be ignored")
	}
	if state.Revealed() != 3 {
		t.Fatalf("revealed must not exceed segment count, got %d", state.Revealed())
	}
}

func TestRevealBeginIsIdempotent(t *testing.T) {
	t.Parallel()
	state := domain.NewRevealState(words("a", "b"))
	state.Begin()
	state.Advance()
	if state.Begin() {
		t.Fatalf("second begin should be a no-op")
	}
	if state.Revealed() != 1 {
		t.Fatalf("begin must not reset progress, got %d", state.Revealed())
	}
}

func TestRevealEmptyCompletesImmediately(t *testing.T) {
	t.Parallel()
	state := domain.NewRevealState(nil)
	if state.Begin() {
		t.Fatalf("empty reveal should not start")
	}
	if !state.Complete() || state.Active() {
		t.Fatalf("empty reveal should be complete and inactive")
	}
}

func TestRevealVisibleIsPrefix(t *testing.T) {
	t.Parallel()
	state := domain.NewRevealState(words("limits", "approach", "values"))
	state.Begin()
	state.Advance()
	state.Advance()
	visible := state.Visible()
	if len(visible) != 2 || visible[0].Text != "limits" || visible[1].Text != "approach" {
		t.Fatalf("unexpected visible prefix: %+v", visible)
	}
	if !state.ShowMarker() {
		t.Fatalf("marker should show while revealing")
	}
}

func TestRevealHaltStopsWithoutCompleting(t *testing.T) {
	t.Parallel()
	state := domain.NewRevealState(words("a", "b"))
	state.Begin()
	state.Halt()
	if state.Advance() || state.Revealed() != 0 {
		t.Fatalf("halted reveal should ignore advances")
	}
	if state.Begin() {
		t.Fatalf("halted reveal should not restart")
	}
}

func TestRevealResumeKeepsRevealedCount(t *testing.T) {
	t.Parallel()
	state := domain.NewRevealState(words("a", "b", "c"))
	if state.Resume() {
		t.Fatalf("a reveal that never started cannot resume")
	}
	state.Begin()
	state.Advance()
	state.Halt()
	if !state.Resume() || !state.Active() || state.Revealed() != 1 {
		t.Fatalf("resume should continue from 1, got revealed=%d active=%t", state.Revealed(), state.Active())
	}
	if state.Resume() {
		t.Fatalf("resume while active should be ignored")
	}
	state.Advance()
	state.Advance()
	state.Halt()
	if state.Resume() {
		t.Fatalf("a complete reveal cannot resume")
	}
}
