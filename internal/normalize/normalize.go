// Package normalize turns raw card extractions into canonical postings.
package normalize

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/amishk599/interndigest/internal/model"
)

var (
	// ErrMissingTitle is returned for cards whose title is empty after trimming.
	ErrMissingTitle = errors.New("posting has no title")
	// ErrNoURL is returned when neither the card link nor the search URL is absolute.
	ErrNoURL = errors.New("posting has no absolute URL")
)

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// Posting builds a Posting from raw card fields. Missing optional fields get
// sentinel defaults, relative links are resolved against the search URL, and
// the posted date falls back to runDate.
func Posting(raw model.RawPosting, src model.Source, runDate time.Time) (model.Posting, error) {
	title := Text(raw.Title)
	if title == "" {
		return model.Posting{}, ErrMissingTitle
	}

	link, err := ResolveURL(raw.Link, raw.SearchURL)
	if err != nil {
		return model.Posting{}, fmt.Errorf("normalize %q: %w", title, err)
	}

	return model.Posting{
		Title:        title,
		Company:      orDefault(Text(raw.Company), model.CompanyNotListed),
		Location:     orDefault(Text(raw.Location), Text(raw.SearchLocation)),
		Compensation: orDefault(Text(raw.Compensation), model.CompensationUnstated),
		URL:          link,
		Source:       src,
		PostedDate:   postedDate(raw.PostedDate, runDate),
	}, nil
}

// Text applies NFKC normalization, trims, and collapses internal whitespace
// runs (including newlines from multi-line layouts) to single spaces.
func Text(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}

// ResolveURL returns href as an absolute http(s) URL, resolving relative
// references against base. When href is empty or unusable, base itself is
// returned if it is absolute.
func ResolveURL(href, base string) (string, error) {
	baseURL, baseErr := url.Parse(strings.TrimSpace(base))
	baseOK := baseErr == nil && isAbsoluteHTTP(baseURL)

	href = strings.TrimSpace(href)
	if href != "" {
		if ref, err := url.Parse(href); err == nil {
			if isAbsoluteHTTP(ref) {
				return ref.String(), nil
			}
			if baseOK && ref.Scheme == "" {
				return baseURL.ResolveReference(ref).String(), nil
			}
		}
	}

	if baseOK {
		return baseURL.String(), nil
	}
	return "", ErrNoURL
}

// Date truncates t to midnight in its own location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func postedDate(raw string, runDate time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, runDate.Location()); err == nil {
			return Date(t)
		}
	}
	return Date(runDate)
}

func isAbsoluteHTTP(u *url.URL) bool {
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
