package domain

import (
	"fmt"
	"strings"
	"time"
)

type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
)

// ContinueMarker separates the static lesson text from the part revealed on
// demand.
const ContinueMarker = "<!-- chalk:continue -->"

const SchemaVersion = 1

type Lesson struct {
	ID           string
	Title        string
	Chapter      string
	Order        int
	Path         string
	Format       Format
	Body         string
	Continuation string
	Completed    bool
	CompletedAt  time.Time
	UpdatedAt    time.Time
}

func (f Format) Validate() error {
	switch f {
	case FormatMarkdown, FormatPDF:
		return nil
	default:
		return fmt.Errorf("unsupported lesson format %q", string(f))
	}
}

func (l Lesson) Validate() error {
	if err := l.Format.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(l.ID) == "" {
		return fmt.Errorf("lesson id is required")
	}
	if strings.TrimSpace(l.Title) == "" {
		return fmt.Errorf("lesson title is required")
	}
	return nil
}

// SplitContinuation cuts body at the first continue marker. Without a marker
// the whole body is static.
func SplitContinuation(body string) (string, string) {
	idx := strings.Index(body, ContinueMarker)
	if idx < 0 {
		return body, ""
	}
	return body[:idx], body[idx+len(ContinueMarker):]
}

// IndexEntry is the projected view of a lesson kept in the sqlite index.
type IndexEntry struct {
	ID          string
	Title       string
	Chapter     string
	Order       int
	Path        string
	Format      Format
	Completed   bool
	CompletedAt time.Time
}
