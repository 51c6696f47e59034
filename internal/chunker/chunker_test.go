package chunker

import (
	"strings"
	"testing"
)

func TestSplit_PartitionReconstructsInput(t *testing.T) {
	inputs := []string{
		"one line",
		"a\nb\nc\n",
		"<<<PAGE 1>>>\nsome content here\nmore content\n<<<PAGE 2>>>\nfinal page text",
		strings.Repeat("linha de texto razoavelmente comprida para encher chunks\n", 400),
		"trailing newline kept\n",
		"\n\n\n",
	}
	for _, input := range inputs {
		for _, budget := range []int{10, 50, 1000, DefaultBudget} {
			chunks := Split(input, budget)
			if got := strings.Join(chunks, ""); got != input {
				t.Errorf("budget %d: joined chunks != input\ninput:  %q\njoined: %q", budget, input, got)
			}
		}
	}
}

func TestSplit_ChunkSizeBound(t *testing.T) {
	input := strings.Repeat("uma linha com tamanho moderado\n", 100)
	budget := 200
	for i, c := range Split(input, budget) {
		if len(c) > budget {
			t.Errorf("chunk %d: length %d exceeds budget %d", i, len(c), budget)
		}
	}
}

func TestSplit_OversizedLineBecomesOwnChunk(t *testing.T) {
	long := strings.Repeat("x", 500)
	input := "short\n" + long + "\nalso short"
	chunks := Split(input, 100)

	found := false
	for i, c := range chunks {
		if len(c) <= 100 {
			continue
		}
		// Any over-budget chunk must be a single line.
		if strings.Count(strings.TrimSuffix(c, "\n"), "\n") != 0 {
			t.Errorf("chunk %d is over budget and spans multiple lines: %q", i, c)
		}
		found = true
	}
	if !found {
		t.Fatal("expected the 500-char line to surface as an over-budget chunk")
	}
}

func TestSplit_BoundariesFallOnLineBreaks(t *testing.T) {
	input := "alpha beta\ngamma delta\nepsilon zeta\nfinal"
	for _, budget := range []int{5, 12, 25, 100} {
		chunks := Split(input, budget)
		for i, c := range chunks[:max(len(chunks)-1, 0)] {
			if !strings.HasSuffix(c, "\n") {
				t.Errorf("budget %d: chunk %d does not end at a line break: %q", budget, i, c)
			}
		}
	}
}

func TestSplit_PageMarkerScenario(t *testing.T) {
	input := "<<<PAGE 1>>>\nA projeto visa instalar.\n<<<PAGE 2>>>\nReferencia DL 151/2013 errada."
	chunks := Split(input, 20)

	if len(chunks) < 3 {
		t.Fatalf("expected at least 3 chunks, got %d: %q", len(chunks), chunks)
	}
	if got := strings.Join(chunks, ""); got != input {
		t.Errorf("joined chunks != input: %q", got)
	}
	for i, c := range chunks {
		if len(c) > 20 && strings.Count(strings.TrimSuffix(c, "\n"), "\n") != 0 {
			t.Errorf("chunk %d over budget without being a single line: %q", i, c)
		}
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	if chunks := Split("", 100); chunks != nil {
		t.Errorf("expected nil chunks for empty input, got %v", chunks)
	}
}

func TestSplit_ZeroBudgetUsesDefault(t *testing.T) {
	input := strings.Repeat("texto\n", 10)
	chunks := Split(input, 0)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk under the default budget, got %d", len(chunks))
	}
	if chunks[0] != input {
		t.Errorf("chunk should be the whole input, got %q", chunks[0])
	}
}
