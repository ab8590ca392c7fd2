// Package dedup collapses postings that describe the same role.
package dedup

import (
	"strings"

	"github.com/amishk599/interndigest/internal/model"
)

// Key is the identity of a posting for deduplication: title and company,
// trimmed and lower-cased.
type Key struct {
	Title   string
	Company string
}

// KeyOf returns the dedup key for p.
func KeyOf(p model.Posting) Key {
	return Key{
		Title:   strings.ToLower(strings.TrimSpace(p.Title)),
		Company: strings.ToLower(strings.TrimSpace(p.Company)),
	}
}

// Dedupe keeps the first posting for each key and drops the rest, whatever
// their source. Input order is preserved, so a source only wins a tie if its
// postings come first.
func Dedupe(postings []model.Posting) []model.Posting {
	seen := make(map[Key]struct{}, len(postings))
	out := make([]model.Posting, 0, len(postings))
	for _, p := range postings {
		k := KeyOf(p)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, p)
	}
	return out
}
