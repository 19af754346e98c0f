package domain

import (
	"strings"

	"chalk/internal/platform/markdown"
)

type SegmentKind string

const (
	SegmentText    SegmentKind = "text"
	SegmentFormula SegmentKind = "formula"
	SegmentBreak   SegmentKind = "break"
)

type Segment struct {
	Kind SegmentKind
	Text string
}

// Segments splits lesson text into reveal units: one per word, one per inline
// $...$ or display $$...$$ formula, and one break per paragraph or list item
// boundary. Formula text is converted to its unicode display form.
func Segments(text string) []Segment {
	var out []Segment
	pendingBreak := false
	for _, rawLine := range joinDisplayMath(strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")) {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "<!--") {
			if len(out) > 0 {
				pendingBreak = true
			}
			continue
		}
		line, structural := stripBlockPrefix(line)
		if structural && len(out) > 0 {
			pendingBreak = true
		}
		if pendingBreak {
			out = appendBreak(out)
			pendingBreak = false
		}
		out = append(out, segmentLine(line)...)
		if structural {
			pendingBreak = true
		}
	}
	return out
}

// joinDisplayMath folds a $$ block spread over several lines into one line.
// A block never crosses a blank line.
func joinDisplayMath(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		for strings.Count(line, "$$")%2 == 1 && i+1 < len(lines) && strings.TrimSpace(lines[i+1]) != "" {
			i++
			line += " " + strings.TrimSpace(lines[i])
		}
		out = append(out, line)
	}
	return out
}

func appendBreak(out []Segment) []Segment {
	if len(out) == 0 || out[len(out)-1].Kind == SegmentBreak {
		return out
	}
	return append(out, Segment{Kind: SegmentBreak})
}

// stripBlockPrefix removes heading hashes and bullet markers. Headings and
// list items always stand on their own line.
func stripBlockPrefix(line string) (string, bool) {
	switch {
	case strings.HasPrefix(line, "#"):
		return strings.TrimSpace(strings.TrimLeft(line, "#")), true
	case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
		return "• " + strings.TrimSpace(line[2:]), true
	default:
		return line, false
	}
}

func segmentLine(line string) []Segment {
	var out []Segment
	for line != "" {
		start := strings.Index(line, "$")
		if start < 0 {
			out = appendWords(out, line)
			break
		}
		delim := "$"
		if strings.HasPrefix(line[start:], "$$") {
			delim = "$$"
		}
		open := start + len(delim)
		end := strings.Index(line[open:], delim)
		if end < 0 {
			out = appendWords(out, line)
			break
		}
		end += open
		out = appendWords(out, line[:start])
		formula := strings.TrimSpace(line[open:end])
		if formula != "" {
			out = append(out, Segment{Kind: SegmentFormula, Text: markdown.PrettyTeX(formula)})
		}
		line = line[end+len(delim):]
	}
	return out
}

func appendWords(out []Segment, text string) []Segment {
	for _, word := range strings.Fields(text) {
		out = append(out, Segment{Kind: SegmentText, Text: word})
	}
	return out
}
