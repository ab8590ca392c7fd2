package adapter

import (
	"net/url"
	"strings"
	"unicode"
)

// Encoding selects how search inputs are substituted into a URL template.
type Encoding int

const (
	// EncodeQuery query-escapes inputs ("Data Intern" -> "Data+Intern").
	EncodeQuery Encoding = iota
	// EncodeInternshipSlug turns inputs into lower-case path slugs and drops
	// the words "intern"/"internship", which the site already implies
	// ("Python Developer Intern" -> "python-developer").
	EncodeInternshipSlug
)

// buildSearchURL fills the {keyword} and {location} placeholders of tmpl.
func buildSearchURL(tmpl string, enc Encoding, keyword, location string) string {
	encode := url.QueryEscape
	if enc == EncodeInternshipSlug {
		encode = internshipSlug
	}
	return strings.NewReplacer(
		"{keyword}", encode(strings.TrimSpace(keyword)),
		"{location}", encode(strings.TrimSpace(location)),
	).Replace(tmpl)
}

func internshipSlug(s string) string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	kept := words[:0]
	for _, w := range words {
		if w == "intern" || w == "internship" || w == "internships" {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, "-")
}

// capped returns at most n leading items; n <= 0 means no cap.
func capped(items []string, n int) []string {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
