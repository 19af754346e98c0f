package domain

import "fmt"

type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentFormula
	SegmentBreak
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentText:
		return "text"
	case SegmentFormula:
		return "formula"
	case SegmentBreak:
		return "break"
	default:
		return fmt.Sprintf("segment(%d)", int(k))
	}
}

type Segment struct {
	Kind SegmentKind
	Text string
}

// RevealState tracks a word-by-word reveal of a fixed segment sequence.
type RevealState struct {
	segments []Segment
	revealed int
	active   bool
	started  bool
}

func NewRevealState(segments []Segment) *RevealState {
	copied := make([]Segment, len(segments))
	copy(copied, segments)
	return &RevealState{segments: copied}
}

// Begin marks the reveal as running. It reports false when the reveal already
// started or there is nothing left to show.
func (r *RevealState) Begin() bool {
	if r.started || r.active || r.Complete() {
		return false
	}
	r.started = true
	r.active = true
	return true
}

// Advance shows one more segment and reports whether the sequence is now fully
// revealed. Calls while inactive are ignored.
func (r *RevealState) Advance() bool {
	if !r.active {
		return false
	}
	r.revealed++
	if r.revealed > len(r.segments) {
		panic(fmt.Sprintf("reveal overran: revealed=%d segments=%d", r.revealed, len(r.segments)))
	}
	if r.revealed == len(r.segments) {
		r.active = false
		return true
	}
	return false
}

// Halt stops the reveal without completing it.
func (r *RevealState) Halt() {
	r.active = false
}

// Resume continues a halted reveal from where it stopped. The revealed count
// is kept.
func (r *RevealState) Resume() bool {
	if !r.started || r.active || r.Complete() {
		return false
	}
	r.active = true
	return true
}

func (r *RevealState) Active() bool   { return r.active }
func (r *RevealState) Started() bool  { return r.started }
func (r *RevealState) Revealed() int  { return r.revealed }
func (r *RevealState) Len() int       { return len(r.segments) }
func (r *RevealState) Complete() bool { return r.revealed == len(r.segments) }

// Visible returns the revealed prefix in order.
func (r *RevealState) Visible() []Segment {
	out := make([]Segment, r.revealed)
	copy(out, r.segments[:r.revealed])
	return out
}

func (r *RevealState) ShowMarker() bool {
	return r.active && r.revealed < len(r.segments)
}
