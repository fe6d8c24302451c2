package moderation

import (
	"strings"
)

// defaultBlocklist is the stock term list shipped with the service. It can be
// replaced wholesale through configuration.
var defaultBlocklist = []string{
	"stupid", "idiot", "useless", "trash", "hell", "damn", "rubbish", "fucked", "lazy",
}

// Filter screens submitted complaint text against a blocklist. Matching is
// case-insensitive and substring-based, not word-boundary-aware: a short
// blocked term matches inside a longer innocuous word. Classification is pure
// and deterministic; it runs once at complaint creation and the verdict is
// never re-evaluated.
type Filter struct {
	terms []string
}

// NewFilter creates a Filter from the given terms. Terms are case-folded and
// blank entries are dropped. An empty term list yields a filter that flags
// nothing.
func NewFilter(terms []string) *Filter {
	folded := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			folded = append(folded, t)
		}
	}
	return &Filter{terms: folded}
}

// NewDefaultFilter creates a Filter with the stock blocklist.
func NewDefaultFilter() *Filter {
	return NewFilter(defaultBlocklist)
}

// Classify reports whether the concatenated heading and description contain
// any blocklisted term.
func (f *Filter) Classify(heading, description string) bool {
	text := strings.ToLower(heading + " " + description)
	for _, term := range f.terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
