package narration

import "strings"

// Placeholders returns the distinct <token> substrings of description in
// first-occurrence order. A token is '<', one or more characters other than
// '>', then '>'. Tokens are compared by exact string equality.
func Placeholders(description string) []string {
	var out []string
	seen := make(map[string]bool)
	for i := 0; i < len(description); i++ {
		if description[i] != '<' {
			continue
		}
		end := strings.IndexByte(description[i+1:], '>')
		if end < 0 {
			break
		}
		if end == 0 {
			// "<>" has no body; resume scanning after '<'.
			continue
		}
		token := description[i : i+1+end+1]
		if !seen[token] {
			seen[token] = true
			out = append(out, token)
		}
		i += end + 1
	}
	return out
}

// Label is the human-readable name of a placeholder: the token without its
// angle brackets.
func Label(token string) string {
	return strings.NewReplacer("<", "", ">", "").Replace(token)
}
