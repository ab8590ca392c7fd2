package filter

import (
	"strings"
)

// TitleFilter matches titles that contain any of a set of keywords, such as
// the internship allow-list ("intern", "trainee", "graduate", ...).
// Matching is a case-insensitive substring test. An empty keyword list matches all.
type TitleFilter struct {
	keywords []string
}

// NewTitleFilter returns a filter over the given keywords.
func NewTitleFilter(keywords []string) *TitleFilter {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	return &TitleFilter{keywords: lowered}
}

// Match reports whether title contains any keyword.
func (f *TitleFilter) Match(title string) bool {
	if len(f.keywords) == 0 {
		return true
	}
	titleLower := strings.ToLower(title)
	for _, kw := range f.keywords {
		if strings.Contains(titleLower, kw) {
			return true
		}
	}
	return false
}
