package dto

type Panel string

const (
	PanelNone         Panel = "none"
	PanelChapters     Panel = "chapters"
	PanelNotes        Panel = "notes"
	PanelCalculator   Panel = "calculator"
	PanelFormulaSheet Panel = "formulas"
	PanelGraphingTool Panel = "graphing"
	PanelChat         Panel = "chat"
)

type Segment struct {
	Kind string
	Text string
}

type BeginInput struct {
	LessonID    string
	LessonTitle string
	Segments    []Segment
}

type ReplyInput struct {
	Question    string
	LessonID    string
	LessonTitle string
}

type TranscriptEntry struct {
	Text        string
	FromLearner bool
}

type PendingSelection struct {
	Text    string
	AnchorX int
	AnchorY int
}

type RevealView struct {
	Segments   []Segment
	Revealed   int
	Total      int
	Active     bool
	Started    bool
	Complete   bool
	ShowMarker bool
}

type Snapshot struct {
	LessonID    string
	LessonTitle string
	ActivePanel Panel
	Transcript  []TranscriptEntry
	Notes       string
	Draft       string
	HasPending  bool
	Pending     PendingSelection
	Reveal      RevealView
}

type EndOutput struct {
	SessionID string
	Path      string
	Lessons   int
	Questions int
}
