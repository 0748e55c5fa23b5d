package narration

import (
	"fmt"
	"strings"
)

const (
	urgencyFeeSentence      = " Note: An urgency fee of %s has been applied for this application."
	urgencyFallbackSentence = " Note: An urgency fee for this urgent application has been clearly stated."
	timeSpentSentence       = " Total time spent since last invoice: %s."
	timeSpentFallback       = " Time spent since last invoice dated _________ has been included."
)

// Adjustments are the optional sentences appended after the template text.
type Adjustments struct {
	Urgent           bool   `json:"urgent"`
	UrgencyFee       string `json:"urgency_fee,omitempty"`
	IncludeTimeSpent bool   `json:"include_time_spent"`
	TimeSpentDetails string `json:"time_spent_details,omitempty"`
}

// Compose fills description with values and appends the adjustment
// sentences, urgency first. Every occurrence of a token present in values is
// replaced by its trimmed value; a blank value leaves the token in place.
// Fee and detail text are trimmed too, and blank text selects the generic
// sentence.
func Compose(description string, values map[string]string, adj Adjustments) string {
	text := fill(description, values)

	var b strings.Builder
	b.WriteString(text)
	if adj.Urgent {
		if fee := strings.TrimSpace(adj.UrgencyFee); fee != "" {
			fmt.Fprintf(&b, urgencyFeeSentence, fee)
		} else {
			b.WriteString(urgencyFallbackSentence)
		}
	}
	if adj.IncludeTimeSpent {
		if detail := strings.TrimSpace(adj.TimeSpentDetails); detail != "" {
			fmt.Fprintf(&b, timeSpentSentence, detail)
		} else {
			b.WriteString(timeSpentFallback)
		}
	}
	return b.String()
}

// fill replaces whole tokens in a single left-to-right pass over the
// description, so a value that itself looks like a token is never
// substituted again and the result does not depend on map iteration order.
func fill(description string, values map[string]string) string {
	if len(values) == 0 {
		return description
	}
	var b strings.Builder
	b.Grow(len(description))
	rest := description
	for {
		start := strings.IndexByte(rest, '<')
		if start < 0 {
			b.WriteString(rest)
			return b.String()
		}
		end := strings.IndexByte(rest[start+1:], '>')
		if end < 0 {
			b.WriteString(rest)
			return b.String()
		}
		if end == 0 {
			b.WriteString(rest[:start+1])
			rest = rest[start+1:]
			continue
		}
		tokenEnd := start + 1 + end + 1
		token := rest[start:tokenEnd]
		b.WriteString(rest[:start])
		if v := strings.TrimSpace(values[token]); v != "" {
			b.WriteString(v)
		} else {
			b.WriteString(token)
		}
		rest = rest[tokenEnd:]
	}
}
