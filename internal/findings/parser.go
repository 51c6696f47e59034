package findings

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// MalformedResponseError means the model response stayed unparsable
// even after the repair pass. The chunk's findings are lost; the run
// continues without them.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed review response after repair: %v (raw: %s)", e.Err, truncate(e.Raw, 200))
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

var codeBlockRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// StripCodeFence removes the markdown code fence the model commonly
// wraps around JSON output.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

// Parse turns a raw model response into normalized findings. It strips
// fence markup, attempts a strict parse, and on failure runs Repair and
// tries once more. A lone object is treated as a one-element list.
func Parse(raw string) ([]Finding, error) {
	cleaned := StripCodeFence(raw)

	list, err := parseStrict(cleaned)
	if err == nil {
		return normalize(list), nil
	}

	repaired := Repair(cleaned)
	list, err2 := parseStrict(repaired)
	if err2 != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}
	return normalize(list), nil
}

func parseStrict(s string) ([]Finding, error) {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "{") {
		var one Finding
		if err := json.Unmarshal([]byte(trimmed), &one); err != nil {
			return nil, err
		}
		return []Finding{one}, nil
	}
	var list []Finding
	if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Repair applies best-effort string patches to close a truncated JSON
// list: trim trailing whitespace; if the closing bracket is missing,
// drop a dangling comma, close an unterminated string (odd quote
// count), close unbalanced objects, and append the bracket. Repair is
// idempotent: input that already ends with the closing bracket is
// returned unchanged.
func Repair(s string) string {
	s = strings.TrimRight(s, " \t\r\n")
	if strings.HasSuffix(s, "]") {
		return s
	}
	s = strings.TrimRight(s, ",")
	if strings.Count(s, `"`)%2 == 1 {
		s += `"`
	}
	for i := strings.Count(s, "{") - strings.Count(s, "}"); i > 0; i-- {
		s += "}"
	}
	return s + "]"
}

// normalize fills in defaults for fields the model omitted.
func normalize(list []Finding) []Finding {
	out := make([]Finding, 0, len(list))
	for _, f := range list {
		if f.Location == "" {
			f.Location = "N/D"
		}
		if f.Category == "" {
			f.Category = CategoryOther
		}
		out = append(out, f)
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
