package extractor

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/acarvalho/docaudit/internal/annotated"
	"github.com/fumiama/go-docx"
)

// DOCXExtractor handles .docx files. Word documents have no fixed
// pagination, so paragraphs drive the approximate-position markers.
type DOCXExtractor struct {
	MarkerInterval int
}

func (p *DOCXExtractor) Extract(r io.Reader, filename string) (annotated.Text, error) {
	// go-docx needs a ReadSeeker+size, so buffer the input.
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}

	var paragraphs []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	return buildFlat(paragraphs, p.MarkerInterval), nil
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
