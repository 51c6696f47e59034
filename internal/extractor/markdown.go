package extractor

import (
	"bytes"
	"io"
	"strings"

	"github.com/acarvalho/docaudit/internal/annotated"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor handles Markdown files using goldmark. Headings and
// block content are flattened into one paragraph stream; there is no
// real pagination, so markers are paragraph-based.
type MarkdownExtractor struct {
	MarkerInterval int
}

func (p *MarkdownExtractor) Extract(r io.Reader, filename string) (annotated.Text, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var paragraphs []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		var t string
		if h, ok := n.(*ast.Heading); ok {
			t = string(h.Text(src))
		} else {
			t = blockText(n, src)
		}
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		for _, line := range cleanLines(t) {
			paragraphs = append(paragraphs, line)
		}
	}

	return buildFlat(paragraphs, p.MarkerInterval), nil
}

// blockText gets the text content of a goldmark AST node.
func blockText(n ast.Node, src []byte) string {
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		var buf bytes.Buffer
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
			buf.WriteByte('\n')
		}
		return strings.TrimSpace(buf.String())
	}
	// Container blocks (lists, quotes) carry text on their children.
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := blockText(c, src); t != "" {
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(t)
		}
	}
	return strings.TrimSpace(buf.String())
}
