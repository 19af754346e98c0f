package out

import (
	"context"
	"fmt"
	"strings"

	lessonout "chalk/internal/modules/lesson/port/out"

	"rsc.io/pdf"
)

type LocalPDFReader struct{}

func NewLocalPDFReader() lessonout.PDFReader {
	return &LocalPDFReader{}
}

// ReadPages extracts the text runs of every page, one string per page.
func (r *LocalPDFReader) ReadPages(ctx context.Context, path string) ([]string, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	total := doc.NumPage()
	pages := make([]string, 0, total)
	for n := 1; n <= total; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := doc.Page(n)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		content := p.Content()
		parts := make([]string, 0, len(content.Text))
		for _, text := range content.Text {
			if strings.TrimSpace(text.S) == "" {
				continue
			}
			parts = append(parts, text.S)
		}
		pages = append(pages, strings.Join(parts, " "))
	}
	return pages, nil
}
