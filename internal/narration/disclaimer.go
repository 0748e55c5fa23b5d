package narration

import "strings"

// Disclaimer must survive composition and refinement character for character.
const Disclaimer = "Fee does not include follow-up or escalation services which will be quoted for separately as required."

// HasDisclaimer reports whether text carries the disclaimer verbatim.
func HasDisclaimer(text string) bool {
	return strings.Contains(text, Disclaimer)
}

// Segment is a run of output text. Disclaimer segments are styled apart
// from the surrounding narration.
type Segment struct {
	Text       string `json:"text"`
	Disclaimer bool   `json:"disclaimer,omitempty"`
}

// Segments splits text around the first disclaimer occurrence. Text without
// the disclaimer is returned as a single segment; empty parts are dropped.
func Segments(text string) []Segment {
	before, after, found := strings.Cut(text, Disclaimer)
	if !found {
		return []Segment{{Text: text}}
	}
	var out []Segment
	if before != "" {
		out = append(out, Segment{Text: before})
	}
	out = append(out, Segment{Text: Disclaimer, Disclaimer: true})
	if after != "" {
		out = append(out, Segment{Text: after})
	}
	return out
}
