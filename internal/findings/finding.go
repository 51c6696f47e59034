// Package findings models the structured observations returned by the
// review model and parses its (sometimes malformed) JSON output.
package findings

// Categories the review model is instructed to use. The wire values are
// Portuguese because the model contract and the rendered artifacts are.
const (
	CategoryTypo   = "Gralha"
	CategorySyntax = "Sintaxe"
	CategoryLegal  = "Legislação"
	CategoryOther  = "Outro"
)

// Severity levels, lowest to highest.
const (
	SeverityLow    = "Baixa"
	SeverityMedium = "Média"
	SeverityHigh   = "Alta"
)

// Finding is one observation from the review model. Detected and
// Suggestion may be empty, never meaningfully null: absent fields
// normalize to the zero string.
type Finding struct {
	Location   string `json:"localizacao"`
	Category   string `json:"categoria"`
	Severity   string `json:"gravidade"`
	Detected   string `json:"texto_detetado"`
	Problem    string `json:"problema,omitempty"`
	Suggestion string `json:"sugestao"`
}

// SeverityRank returns a numeric rank for sorting and summary logic
// (higher = more severe, unknown = 0).
func SeverityRank(s string) int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// Summary aggregates counts over a findings list for report headers.
type Summary struct {
	Total  int `json:"total"`
	High   int `json:"alta"`
	Legal  int `json:"legislacao"`
	Typos  int `json:"gralhas"`
	Syntax int `json:"sintaxe"`
}

// Summarize computes report summary counts.
func Summarize(list []Finding) Summary {
	s := Summary{Total: len(list)}
	for _, f := range list {
		if f.Severity == SeverityHigh {
			s.High++
		}
		switch f.Category {
		case CategoryLegal:
			s.Legal++
		case CategoryTypo:
			s.Typos++
		case CategorySyntax:
			s.Syntax++
		}
	}
	return s
}
