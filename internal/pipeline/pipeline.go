// Package pipeline drives one digest run: scrape every source, aggregate,
// dedupe, rank, render, deliver and archive.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goerrors "github.com/go-errors/errors"
	"github.com/google/uuid"

	"github.com/amishk599/interndigest/internal/dedup"
	"github.com/amishk599/interndigest/internal/model"
	"github.com/amishk599/interndigest/internal/rank"
	"github.com/amishk599/interndigest/internal/report"
)

// Options holds the search inputs and report settings for a run.
type Options struct {
	Keywords   []string
	Locations  []string
	MaxSize    int
	ByRecency  bool
	Subject    string // subject prefix; date and count are appended
	Recipients []string
}

// SourceResult records what one adapter contributed.
type SourceResult struct {
	Source model.Source
	Count  int
	Failed bool // the adapter panicked and its results were discarded
}

// Result is the outcome of a run.
type Result struct {
	ID      string
	RunDate time.Time
	State   State

	Sources   []SourceResult
	Aggregate []model.Posting // everything scraped, before dedup
	Unique    int
	Postings  []model.Posting // the digest, ranked and truncated

	FallbackUsed bool
	Subject      string
	HTML         string
	Text         string
	Delivered    bool
	DeliveryErr  error
}

// Scraped is the number of postings collected before dedup.
func (r Result) Scraped() int { return len(r.Aggregate) }

// Status summarizes the run for the final log line and exit reporting.
// Delivery failures do not change it.
func (r Result) Status() string {
	if r.FallbackUsed {
		return "completed, fallback used"
	}
	return "completed"
}

// Record converts the result into its archived form.
func (r Result) Record() model.RunRecord {
	rec := model.RunRecord{
		ID:           r.ID,
		RunAt:        r.RunDate,
		Scraped:      r.Scraped(),
		Unique:       r.Unique,
		Sent:         len(r.Postings),
		FallbackUsed: r.FallbackUsed,
		Delivered:    r.Delivered,
		Postings:     r.Postings,
	}
	if r.DeliveryErr != nil {
		rec.DeliveryErr = r.DeliveryErr.Error()
	}
	return rec
}

// Driver runs adapters in a fixed order and turns their output into a digest.
type Driver struct {
	fetchers []model.PostingFetcher
	sender   model.Sender
	store    model.RunStore
	opts     Options
	logger   *slog.Logger

	now     func() time.Time
	newID   func() string
	observe func(State, string)
}

// NewDriver creates a driver. fetchers run in the order given, which should
// be source priority order so dedup keeps the preferred source's copy.
func NewDriver(
	fetchers []model.PostingFetcher,
	sender model.Sender,
	store model.RunStore,
	opts Options,
	logger *slog.Logger,
) *Driver {
	return &Driver{
		fetchers: fetchers,
		sender:   sender,
		store:    store,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Observe registers fn to be called on every state transition. detail names
// the source while scraping and is empty otherwise.
func (d *Driver) Observe(fn func(s State, detail string)) {
	d.observe = fn
}

// Run performs a full digest run. It never aborts: failed sources are
// skipped, an empty harvest is replaced by fallback postings, and a delivery
// failure is recorded in the result.
func (d *Driver) Run(ctx context.Context) Result {
	res := d.Collect(ctx)

	// An interrupt only cuts scraping short. Whatever was collected is still
	// delivered and archived; sender and store timeouts bound these calls.
	dctx := context.WithoutCancel(ctx)

	d.enter(&res, StateDelivering, "")
	msg := model.Message{
		Subject:    res.Subject,
		HTMLBody:   res.HTML,
		TextBody:   res.Text,
		Recipients: d.opts.Recipients,
		Postings:   res.Postings,
	}
	if err := d.sender.Send(dctx, msg); err != nil {
		res.DeliveryErr = err
		d.logger.Error("delivery failed", "run_id", res.ID, "error", err)
	} else {
		res.Delivered = true
	}

	if err := d.store.SaveRun(dctx, res.Record()); err != nil {
		d.logger.Warn("failed to archive run", "run_id", res.ID, "error", err)
	}

	d.enter(&res, StateDone, "")
	d.logger.Info("run finished",
		"run_id", res.ID,
		"status", res.Status(),
		"scraped", res.Scraped(),
		"unique", res.Unique,
		"sent", len(res.Postings),
		"delivered", res.Delivered,
	)
	return res
}

// Collect runs every step up to and including rendering, without delivering
// or archiving. It backs previews and dry runs.
func (d *Driver) Collect(ctx context.Context) Result {
	res := Result{ID: d.newID(), RunDate: d.now()}
	d.enter(&res, StateInit, "")
	d.logger.Info("run started", "run_id", res.ID, "sources", len(d.fetchers))

	for _, f := range d.fetchers {
		if err := ctx.Err(); err != nil {
			d.logger.Warn("interrupted, skipping remaining sources", "source", string(f.Source()), "error", err)
			break
		}
		d.enter(&res, StateScraping, string(f.Source()))

		postings, failed := d.fetchOne(ctx, f)
		res.Sources = append(res.Sources, SourceResult{Source: f.Source(), Count: len(postings), Failed: failed})
		res.Aggregate = append(res.Aggregate, postings...)
	}

	d.enter(&res, StateAggregating, "")
	if len(res.Aggregate) == 0 {
		d.logger.Warn("no postings from any source, using fallback data")
		res.Aggregate = rank.FallbackPostings(res.RunDate)
		res.FallbackUsed = true
	}

	d.enter(&res, StateDeduplicating, "")
	unique := dedup.Dedupe(res.Aggregate)
	res.Unique = len(unique)

	d.enter(&res, StateRanking, "")
	res.Postings = rank.Rank(unique, rank.Options{MaxSize: d.opts.MaxSize, ByRecency: d.opts.ByRecency})

	d.logger.Info("digest assembled",
		"scraped", res.Scraped(),
		"unique", res.Unique,
		"sent", len(res.Postings),
		"summary", report.SummaryLine(report.Summarize(res.Postings)),
	)

	d.enter(&res, StateRendering, "")
	res.Subject = report.Subject(d.opts.Subject, res.RunDate, len(res.Postings))
	res.Text = report.RenderText(res.Postings, res.RunDate)
	html, err := report.Render(res.Postings, res.RunDate)
	if err != nil {
		d.logger.Error("html render failed, sending plain text only", "error", err)
	} else {
		res.HTML = html
	}
	return res
}

// fetchOne invokes a single adapter. A panic escaping the adapter is logged
// and yields no postings.
func (d *Driver) fetchOne(ctx context.Context, f model.PostingFetcher) (postings []model.Posting, failed bool) {
	src := string(f.Source())
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err := goerrors.Wrap(r, 2)
			d.logger.Error("source failed", "source", src, "error", err, "stack", err.ErrorStack())
			postings, failed = nil, true
		}
	}()

	postings = f.FetchPostings(ctx, d.opts.Keywords, d.opts.Locations)
	if len(postings) == 0 {
		d.logger.Warn("source returned no postings", "source", src, "elapsed", time.Since(start).Round(time.Millisecond))
	} else {
		d.logger.Info("source done", "source", src, "postings", len(postings), "elapsed", time.Since(start).Round(time.Millisecond))
	}
	return postings, false
}

func (d *Driver) enter(res *Result, s State, detail string) {
	res.State = s
	d.logger.Debug("state", "run_id", res.ID, "state", s.String(), "detail", detail)
	if d.observe != nil {
		d.observe(s, detail)
	}
}

// String renders a one-line summary of the run.
func (r Result) String() string {
	return fmt.Sprintf("run %s: %s (scraped=%d unique=%d sent=%d delivered=%t)",
		r.ID, r.Status(), r.Scraped(), r.Unique, len(r.Postings), r.Delivered)
}
