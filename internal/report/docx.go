package report

import (
	"fmt"
	"io"

	"github.com/fumiama/go-docx"
)

// correctionColor is the run color for suggested text, hex RGB.
const correctionColor = "FF0000"

// WriteCorrectedDOCX writes the reconstructed document as a .docx.
// Corrections come out as red bold runs; everything else is plain text.
func WriteCorrectedDOCX(w io.Writer, title string, paragraphs []Paragraph) error {
	doc := docx.New().WithDefaultTheme()

	heading := doc.AddParagraph()
	heading.AddText(title).Size("32").Bold()

	for _, para := range paragraphs {
		p := doc.AddParagraph()
		for _, seg := range para.Segments {
			run := p.AddText(seg.Text)
			if seg.Correction {
				run.Color(correctionColor).Bold()
			}
		}
	}

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}
