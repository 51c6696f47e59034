package extractor

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/acarvalho/docaudit/internal/annotated"
)

func TestTextExtractor_MarkerEveryInterval(t *testing.T) {
	var sb strings.Builder
	for i := 1; i <= 45; i++ {
		fmt.Fprintf(&sb, "Parágrafo número %d com conteúdo suficiente.\n\n", i)
	}

	p := &TextExtractor{MarkerInterval: 20}
	text, err := p.Extract(strings.NewReader(sb.String()), "doc.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(string(text), "\n")
	var markers []string
	for _, line := range lines {
		if annotated.IsMarker(line) {
			markers = append(markers, line)
		}
	}
	want := []string{"<<<PARAGRAPH~1>>>", "<<<PARAGRAPH~21>>>", "<<<PARAGRAPH~41>>>"}
	if len(markers) != len(want) {
		t.Fatalf("expected markers %v, got %v", want, markers)
	}
	for i := range want {
		if markers[i] != want[i] {
			t.Errorf("marker %d: expected %q, got %q", i, want[i], markers[i])
		}
	}
}

func TestTextExtractor_BlankLinesDropped(t *testing.T) {
	input := "primeira\n\n\n\nsegunda\n   \nterceira\n"
	p := &TextExtractor{MarkerInterval: 20}
	text, err := p.Extract(strings.NewReader(input), "doc.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, line := range strings.Split(string(text), "\n") {
		if strings.TrimSpace(line) == "" {
			t.Errorf("blank line survived extraction: %q", text)
		}
	}
}

func TestExtract_TooLittleTextIsUnreadable(t *testing.T) {
	_, err := Extract(strings.NewReader("quase nada"), "doc.txt", 50, Options{})
	if err == nil {
		t.Fatal("expected unreadable-document error")
	}
	var uErr *UnreadableError
	if !errors.As(err, &uErr) {
		t.Fatalf("expected UnreadableError, got %T: %v", err, err)
	}
	if uErr.Min != 50 {
		t.Errorf("expected threshold 50 in error, got %d", uErr.Min)
	}
}

func TestExtract_GuardCountsContentNotMarkers(t *testing.T) {
	// 10 paragraphs of 6 chars = 60 content chars; markers must not be
	// what pushes it over the threshold.
	input := strings.Repeat("abcdef\n\n", 10)
	text, err := Extract(strings.NewReader(input), "doc.txt", 50, Options{MarkerInterval: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if annotated.ContentLen(text) != 60 {
		t.Errorf("expected 60 content chars, got %d", annotated.ContentLen(text))
	}
}

func TestForFile_UnsupportedExtension(t *testing.T) {
	if _, err := ForFile("planilha.xlsx", Options{}); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestIsSupportedExtension(t *testing.T) {
	supported := []string{"a.pdf", "b.docx", "c.txt", "d.md", "e.html"}
	for _, name := range supported {
		if !IsSupportedExtension(name) {
			t.Errorf("expected %q to be supported", name)
		}
	}
	if IsSupportedExtension("f.xlsx") {
		t.Error("xlsx should not be supported")
	}
}
