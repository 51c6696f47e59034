// Package chunker splits annotated text into submission-sized chunks.
package chunker

import "strings"

// DefaultBudget is the per-chunk character budget. It sits comfortably
// under the review service's request size limit.
const DefaultBudget = 12000

// Split breaks text into chunks of at most budget characters without
// ever splitting a line. It is a greedy single pass: lines accumulate
// until the next one would cross the budget, then the accumulator is
// flushed and restarted. A single line longer than the budget becomes
// its own over-budget chunk; no further splitting is attempted.
//
// Concatenating the returned chunks in order reproduces text exactly:
// chunks partition the input with no overlap and no gaps. A position
// marker may fall on the last line of one chunk with its content
// starting the next; callers live with that boundary coarseness.
func Split(text string, budget int) []string {
	if budget <= 0 {
		budget = DefaultBudget
	}
	if text == "" {
		return nil
	}

	// SplitAfter keeps each line's trailing newline inside the line,
	// which is what makes the chunks an exact partition.
	lines := strings.SplitAfter(text, "\n")

	var chunks []string
	var acc strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		if acc.Len() > 0 && acc.Len()+len(line) >= budget {
			chunks = append(chunks, acc.String())
			acc.Reset()
		}
		acc.WriteString(line)
	}
	if acc.Len() > 0 {
		chunks = append(chunks, acc.String())
	}
	return chunks
}
