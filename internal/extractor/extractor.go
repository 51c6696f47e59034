package extractor

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/acarvalho/docaudit/internal/annotated"
)

// Extractor converts raw document bytes into annotated text with
// position markers.
type Extractor interface {
	Extract(r io.Reader, filename string) (annotated.Text, error)
}

// Options tunes extraction behavior.
type Options struct {
	// MarkerInterval is how many paragraphs apart approximate-position
	// markers are placed in non-paginated sources.
	MarkerInterval int
	// FallbackPdftotext enables the pdftotext CLI fallback for PDFs.
	FallbackPdftotext bool
}

// DefaultMarkerInterval is the paragraph spacing between position
// markers for sources without real pagination.
const DefaultMarkerInterval = 20

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string, opts Options) (Extractor, error) {
	if opts.MarkerInterval <= 0 {
		opts.MarkerInterval = DefaultMarkerInterval
	}
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextExtractor{MarkerInterval: opts.MarkerInterval}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{MarkerInterval: opts.MarkerInterval}, nil
	case ".html", ".htm":
		return &HTMLExtractor{MarkerInterval: opts.MarkerInterval}, nil
	case ".pdf":
		return &PDFExtractor{FallbackPdftotext: opts.FallbackPdftotext}, nil
	case ".docx":
		return &DOCXExtractor{MarkerInterval: opts.MarkerInterval}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// UnreadableError signals that a document yielded too little
// machine-readable text to review, most often an image-only scan.
type UnreadableError struct {
	Chars int
	Min   int
}

func (e *UnreadableError) Error() string {
	return fmt.Sprintf("document yielded %d chars of text (minimum %d): likely a scanned image-only document with no machine-readable text", e.Chars, e.Min)
}

// Extract dispatches on the filename, runs the extractor, and applies
// the minimum-content guard. minChars <= 0 disables the guard.
func Extract(r io.Reader, filename string, minChars int, opts Options) (annotated.Text, error) {
	ex, err := ForFile(filename, opts)
	if err != nil {
		return "", err
	}
	text, err := ex.Extract(r, filename)
	if err != nil {
		return "", err
	}
	if n := annotated.ContentLen(text); minChars > 0 && n < minChars {
		return "", &UnreadableError{Chars: n, Min: minChars}
	}
	return text, nil
}

// buildFlat assembles annotated text from a flat paragraph sequence,
// inserting an approximate-position marker every interval paragraphs.
// Paragraphs are numbered from 1; blank paragraphs must already be gone.
func buildFlat(paragraphs []string, interval int) annotated.Text {
	if interval <= 0 {
		interval = DefaultMarkerInterval
	}
	var sb strings.Builder
	for i, para := range paragraphs {
		if i%interval == 0 {
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(annotated.ParagraphMarker(i + 1))
		}
		sb.WriteString("\n")
		sb.WriteString(para)
	}
	return annotated.Text(sb.String())
}

// cleanLines drops lines with no non-whitespace content and trims
// trailing whitespace from the rest.
func cleanLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, strings.TrimRight(line, " \t\r"))
	}
	return out
}
