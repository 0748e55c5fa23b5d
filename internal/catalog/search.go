package catalog

import "strings"

// Search returns the templates whose category, sub-category or type contains
// query, compared case-insensitively. An empty query matches everything.
// Results keep catalog order.
func (c *Catalog) Search(query string) []Template {
	q := strings.ToLower(query)
	out := make([]Template, 0, len(c.templates))
	for _, t := range c.templates {
		if t.matches(q) {
			out = append(out, t)
		}
	}
	return out
}

// matches reports whether the lower-cased query occurs in the template's
// category, sub-category or type.
func (t Template) matches(lowerQuery string) bool {
	if lowerQuery == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Category), lowerQuery) ||
		strings.Contains(strings.ToLower(t.Type), lowerQuery) ||
		strings.Contains(strings.ToLower(t.SubCategory), lowerQuery)
}
