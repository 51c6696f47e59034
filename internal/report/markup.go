// Package report renders the two run artifacts: the PDF audit report
// and the corrected copy of the reviewed document.
package report

import (
	"sort"
	"strings"

	"github.com/acarvalho/docaudit/internal/annotated"
	"github.com/acarvalho/docaudit/internal/findings"
)

// minMatchLen guards against false-positive matches on short detected
// fragments: a finding participates in substitution only when its
// detected text is longer than this.
const minMatchLen = 4

// Segment is a contiguous piece of a reconstructed paragraph.
// Correction marks model-suggested replacement text, which renderers
// set apart visually (red, bold).
type Segment struct {
	Text       string
	Correction bool
}

// Paragraph is one reconstructed paragraph of the corrected document.
type Paragraph struct {
	Segments []Segment
}

// Reconstruct regenerates the document text with findings' suggestions
// substituted in. Position markers are stripped first; the remaining
// text splits into paragraphs on line breaks, dropping empty ones.
//
// Matching is literal-substring and deliberately best-effort: for each
// paragraph the longest matching detected text wins, only its first
// occurrence is replaced, and at most one correction applies per
// paragraph. Unmatched paragraphs pass through byte-for-byte. Perfect
// substitution would need a real diff algorithm, which this is not.
func Reconstruct(text annotated.Text, list []findings.Finding) []Paragraph {
	// Longest detected text first, so the most specific match wins over
	// any of its own substrings.
	candidates := make([]findings.Finding, 0, len(list))
	for _, f := range list {
		if len(strings.TrimSpace(f.Detected)) > minMatchLen {
			candidates = append(candidates, f)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(strings.TrimSpace(candidates[i].Detected)) > len(strings.TrimSpace(candidates[j].Detected))
	})

	var out []Paragraph
	for _, para := range strings.Split(annotated.StripMarkers(text), "\n") {
		if strings.TrimSpace(para) == "" {
			continue
		}
		out = append(out, reconstructParagraph(para, candidates))
	}
	return out
}

// reconstructParagraph applies the single best match, if any.
// candidates must be sorted by detected length descending.
func reconstructParagraph(para string, candidates []findings.Finding) Paragraph {
	for _, f := range candidates {
		detected := strings.TrimSpace(f.Detected)
		idx := strings.Index(para, detected)
		if idx < 0 {
			continue
		}
		var segs []Segment
		if before := para[:idx]; before != "" {
			segs = append(segs, Segment{Text: before})
		}
		segs = append(segs, Segment{Text: strings.TrimSpace(f.Suggestion), Correction: true})
		if after := para[idx+len(detected):]; after != "" {
			segs = append(segs, Segment{Text: after})
		}
		return Paragraph{Segments: segs}
	}
	return Paragraph{Segments: []Segment{{Text: para}}}
}

// PlainText flattens a reconstructed paragraph back to a string.
func (p Paragraph) PlainText() string {
	var sb strings.Builder
	for _, s := range p.Segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
