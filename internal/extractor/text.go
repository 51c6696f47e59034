package extractor

import (
	"bufio"
	"io"
	"strings"

	"github.com/acarvalho/docaudit/internal/annotated"
)

// TextExtractor handles plain text files. Paragraphs are blank-line
// separated blocks.
type TextExtractor struct {
	MarkerInterval int
}

func (p *TextExtractor) Extract(r io.Reader, filename string) (annotated.Text, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			paragraphs = append(paragraphs, current.String())
			current.Reset()
		}
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return "", err
	}

	return buildFlat(paragraphs, p.MarkerInterval), nil
}
