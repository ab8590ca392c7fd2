package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	goerrors "github.com/go-errors/errors"

	"github.com/amishk599/interndigest/internal/dedup"
	"github.com/amishk599/interndigest/internal/filter"
	"github.com/amishk599/interndigest/internal/model"
	"github.com/amishk599/interndigest/internal/normalize"
	"github.com/amishk599/interndigest/internal/ratelimit"
)

// Ensure HTMLAdapter implements model.PostingFetcher.
var _ model.PostingFetcher = (*HTMLAdapter)(nil)

var errNoCards = errors.New("no job cards matched any selector")

// SiteProfile is everything that distinguishes one job site from another:
// where to search, how much to fetch, and how to read its cards.
type SiteProfile struct {
	Source    model.Source
	SearchURL string // template with {keyword} and {location} placeholders
	Encoding  Encoding
	Headers   map[string]string // added to the browser header set

	MaxKeywords  int
	MaxLocations int
	MaxCards     int // cards processed per (keyword, location) pair
	MinDelay     time.Duration
	MaxDelay     time.Duration
	Timeout      time.Duration

	// InternshipsOnly skips the title allow-list for sites that list nothing else.
	InternshipsOnly bool

	Cards        []string // card selectors, most specific markup variant first
	Title        Chain
	Company      Chain
	Location     Chain
	Compensation Chain
	Link         Chain
	PostedDate   Chain
}

// HTMLAdapter scrapes one job site's search result pages according to its
// SiteProfile.
type HTMLAdapter struct {
	profile SiteProfile
	client  *http.Client
	pacer   *ratelimit.Pacer
	titles  *filter.TitleFilter
	logger  *slog.Logger
	now     func() time.Time
}

// NewHTMLAdapter creates an adapter for profile. titles is the internship
// allow-list applied to card titles.
func NewHTMLAdapter(profile SiteProfile, titles *filter.TitleFilter, logger *slog.Logger) *HTMLAdapter {
	return &HTMLAdapter{
		profile: profile,
		client:  &http.Client{Timeout: profile.Timeout},
		pacer:   ratelimit.NewPacer(profile.MinDelay, profile.MaxDelay),
		titles:  titles,
		logger:  logger.With("source", string(profile.Source)),
		now:     time.Now,
	}
}

// Source returns the site this adapter scrapes.
func (a *HTMLAdapter) Source() model.Source {
	return a.profile.Source
}

// Profile returns the adapter's site profile.
func (a *HTMLAdapter) Profile() SiteProfile {
	return a.profile
}

// FetchPostings searches every (keyword, location) pair within the profile
// caps and returns the postings found. Failed pairs and unreadable cards are
// logged and skipped; a failure escaping the loop yields an empty result.
func (a *HTMLAdapter) FetchPostings(ctx context.Context, keywords, locations []string) (postings []model.Posting) {
	defer func() {
		if r := recover(); r != nil {
			err := goerrors.Wrap(r, 2)
			a.logger.Error("adapter failed, discarding results", "error", err, "stack", err.ErrorStack())
			postings = nil
		}
	}()

	runDate := a.now()
	a.pacer.Reset()

	seen := make(map[dedup.Key]struct{})
	pairs, failed := 0, 0
	for _, keyword := range capped(keywords, a.profile.MaxKeywords) {
		for _, location := range capped(locations, a.profile.MaxLocations) {
			if err := a.pacer.Wait(ctx); err != nil {
				a.logger.Warn("stopping early", "error", err)
				return postings
			}
			pairs++

			found, err := a.searchPair(ctx, keyword, location, runDate)
			if err != nil {
				failed++
				a.logPairError(keyword, location, err)
				continue
			}

			for _, p := range found {
				k := dedup.KeyOf(p)
				if _, dup := seen[k]; dup {
					continue
				}
				seen[k] = struct{}{}
				postings = append(postings, p)
			}
		}
	}

	a.logger.Info("source scraped",
		"pairs", pairs,
		"failed_pairs", failed,
		"postings", len(postings),
	)
	return postings
}

// searchPair fetches one search page and converts its cards into postings.
func (a *HTMLAdapter) searchPair(ctx context.Context, keyword, location string, runDate time.Time) ([]model.Posting, error) {
	searchURL := buildSearchURL(a.profile.SearchURL, a.profile.Encoding, keyword, location)
	a.logger.Debug("searching", "keyword", keyword, "location", location, "url", searchURL)

	doc, err := a.fetchDocument(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	cards, selector := findCards(doc, a.profile.Cards)
	if cards == nil {
		return nil, fmt.Errorf("%s: %w", searchURL, errNoCards)
	}
	total := cards.Length()
	if a.profile.MaxCards > 0 && total > a.profile.MaxCards {
		cards = cards.Slice(0, a.profile.MaxCards)
	}
	a.logger.Debug("found cards", "keyword", keyword, "location", location, "selector", selector, "cards", total)

	var postings []model.Posting
	cards.Each(func(i int, card *goquery.Selection) {
		raw, err := a.parseCard(card)
		if err != nil {
			a.logger.Debug("skipping card", "index", i, "error", err)
			return
		}
		raw.SearchURL = searchURL
		raw.SearchLocation = location

		if !a.profile.InternshipsOnly && !a.titles.Match(raw.Title) {
			a.logger.Debug("skipping non-internship title", "title", raw.Title)
			return
		}

		p, err := normalize.Posting(raw, a.profile.Source, runDate)
		if err != nil {
			a.logger.Debug("skipping card", "index", i, "error", err)
			return
		}
		postings = append(postings, p)
	})
	return postings, nil
}

// parseCard runs every field chain over card. A panic inside a selector is
// turned into an error so only this card is lost.
func (a *HTMLAdapter) parseCard(card *goquery.Selection) (raw model.RawPosting, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = goerrors.Wrap(r, 2)
		}
	}()

	raw = model.RawPosting{
		Title:        a.profile.Title.Extract(card),
		Company:      a.profile.Company.Extract(card),
		Location:     a.profile.Location.Extract(card),
		Compensation: a.profile.Compensation.Extract(card),
		Link:         a.profile.Link.Extract(card),
		PostedDate:   a.profile.PostedDate.Extract(card),
	}
	if normalize.Text(raw.Title) == "" {
		return raw, normalize.ErrMissingTitle
	}
	return raw, nil
}

func (a *HTMLAdapter) fetchDocument(ctx context.Context, searchURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, &model.FetchError{URL: searchURL, Err: err}
	}
	setBrowserHeaders(req, a.profile.Headers)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &model.FetchError{URL: searchURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &model.FetchError{URL: searchURL, StatusCode: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &model.FetchError{URL: searchURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("parse html: %w", err)}
	}
	return doc, nil
}

func (a *HTMLAdapter) logPairError(keyword, location string, err error) {
	var fetchErr *model.FetchError
	switch {
	case errors.As(err, &fetchErr) && fetchErr.Blocked():
		a.logger.Warn("blocked by site, skipping search", "keyword", keyword, "location", location, "status", fetchErr.StatusCode)
	case errors.As(err, &fetchErr):
		a.logger.Warn("search failed, skipping", "keyword", keyword, "location", location, "status", fetchErr.StatusCode, "error", err)
	case errors.Is(err, errNoCards):
		a.logger.Info("no job cards found", "keyword", keyword, "location", location)
	default:
		a.logger.Warn("search failed, skipping", "keyword", keyword, "location", location, "error", err)
	}
}
