package extractor

import (
	"strings"
	"testing"

	"github.com/acarvalho/docaudit/internal/annotated"
)

func TestMarkdownExtractor_HeadingsAndParagraphs(t *testing.T) {
	input := `# Relatório

Texto introdutório.

## Enquadramento

Conteúdo do enquadramento.
`
	p := &MarkdownExtractor{}
	text, err := p.Extract(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	plain := annotated.StripMarkers(text)
	for _, want := range []string{"Relatório", "Texto introdutório.", "Enquadramento", "Conteúdo do enquadramento."} {
		if !strings.Contains(plain, want) {
			t.Errorf("expected output to contain %q, got %q", want, plain)
		}
	}
	if !strings.Contains(string(text), annotated.ParagraphMarker(1)) {
		t.Errorf("expected a leading paragraph marker, got %q", text)
	}
}

func TestMarkdownExtractor_CodeBlocksKept(t *testing.T) {
	input := "# Referência\n\nIntro.\n\n```\nArt. 18.º do RJAIA\n```\n\nTexto depois do bloco.\n"

	p := &MarkdownExtractor{}
	text, err := p.Extract(strings.NewReader(input), "ref.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	plain := annotated.StripMarkers(text)
	if !strings.Contains(plain, "Art. 18.º do RJAIA") {
		t.Errorf("expected code block content preserved, got %q", plain)
	}
	if !strings.Contains(plain, "Texto depois do bloco.") {
		t.Errorf("expected post-code text, got %q", plain)
	}
}

func TestMarkdownExtractor_ListItemsFlattened(t *testing.T) {
	input := "Medidas:\n\n- Primeira medida de minimização\n- Segunda medida de minimização\n"

	p := &MarkdownExtractor{}
	text, err := p.Extract(strings.NewReader(input), "lista.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	plain := annotated.StripMarkers(text)
	if !strings.Contains(plain, "Primeira medida de minimização") {
		t.Errorf("expected list items in output, got %q", plain)
	}
}

func TestMarkdownExtractor_EmptyInput(t *testing.T) {
	p := &MarkdownExtractor{}
	text, err := p.Extract(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if annotated.ContentLen(text) != 0 {
		t.Errorf("expected no content for empty input, got %q", text)
	}
}
