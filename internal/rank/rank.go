// Package rank orders deduplicated postings by source priority and caps the
// report size.
package rank

import (
	"sort"

	"github.com/amishk599/interndigest/internal/model"
)

// DefaultMaxSize is the report size used when Options.MaxSize is zero.
const DefaultMaxSize = 30

var priority = map[model.Source]int{
	model.SourceLinkedIn:    1,
	model.SourceIndeed:      2,
	model.SourceInternshala: 3,
	model.SourceNaukri:      4,
	model.SourceFallback:    5,
}

// Priority returns the rank of src; lower sorts first. Unknown sources sort last.
func Priority(src model.Source) int {
	if p, ok := priority[src]; ok {
		return p
	}
	return len(priority) + 1
}

// Options controls Rank.
type Options struct {
	MaxSize   int  // truncation bound, DefaultMaxSize when zero
	ByRecency bool // newer postings first within a priority
}

// Rank returns a stably sorted copy of postings, ordered by source priority,
// truncated to opts.MaxSize. The input slice is not modified.
func Rank(postings []model.Posting, opts Options) []model.Posting {
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	out := make([]model.Posting, len(postings))
	copy(out, postings)

	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := Priority(out[i].Source), Priority(out[j].Source)
		if pi != pj {
			return pi < pj
		}
		if opts.ByRecency {
			return out[i].PostedDate.After(out[j].PostedDate)
		}
		return false
	})

	if len(out) > maxSize {
		out = out[:maxSize]
	}
	return out
}
