package annotated

import (
	"fmt"
	"regexp"
	"strings"
)

// Text is extracted document text with synthetic position-marker lines
// interleaved between content lines. Markers let the reviewer localize a
// finding to an approximate page or paragraph; they are stripped before
// any final artifact is rendered.
type Text string

// markerRe matches a whole marker line. The delimiter pattern is reserved
// and chosen not to collide with natural document text (best-effort).
var markerRe = regexp.MustCompile(`^<<<(PAGE [0-9]+|PARAGRAPH~[0-9]+)>>>$`)

// PageMarker returns the marker line for page n (1-based).
func PageMarker(n int) string {
	return fmt.Sprintf("<<<PAGE %d>>>", n)
}

// ParagraphMarker returns the approximate-position marker for the
// cumulative paragraph index n.
func ParagraphMarker(n int) string {
	return fmt.Sprintf("<<<PARAGRAPH~%d>>>", n)
}

// IsMarker reports whether a line is a position marker.
func IsMarker(line string) bool {
	return markerRe.MatchString(strings.TrimSpace(line))
}

// StripMarkers removes all marker lines, returning plain content text.
func StripMarkers(t Text) string {
	lines := strings.Split(string(t), "\n")
	out := lines[:0:0]
	for _, line := range lines {
		if IsMarker(line) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// ContentLen returns the number of content characters, markers excluded.
// Used by the unreadable-document guard.
func ContentLen(t Text) int {
	n := 0
	for _, line := range strings.Split(string(t), "\n") {
		if IsMarker(line) {
			continue
		}
		n += len(strings.TrimSpace(line))
	}
	return n
}
