package model

import (
	"context"
	"time"
)

// Source identifies the job site a posting came from. The set is closed and
// fixed at build time; see the Source* constants.
type Source string

const (
	SourceLinkedIn    Source = "LinkedIn"
	SourceIndeed      Source = "Indeed India"
	SourceInternshala Source = "Internshala"
	SourceNaukri      Source = "Naukri.com"
	SourceFallback    Source = "Sample Data"
)

// Sources lists every known source in priority order.
var Sources = []Source{SourceLinkedIn, SourceIndeed, SourceInternshala, SourceNaukri, SourceFallback}

// Known reports whether s belongs to the closed source set.
func (s Source) Known() bool {
	for _, k := range Sources {
		if s == k {
			return true
		}
	}
	return false
}

// Sentinel values substituted for fields a site does not expose.
const (
	CompanyNotListed     = "Company Not Listed"
	CompensationUnstated = "Not Mentioned"
)

// Posting is the unified representation of one listing from any source.
// It is built once by the normalizer and treated as immutable afterwards.
type Posting struct {
	Title        string
	Company      string
	Location     string
	Compensation string    // stipend or salary text as shown by the site
	URL          string    // absolute apply link, or the search URL it was found on
	Source       Source
	PostedDate   time.Time // date only; the run date when the site does not say
}

// RawPosting is what an adapter pulls out of a single job card before
// normalization. Empty strings mean "not found".
type RawPosting struct {
	Title        string
	Company      string
	Location     string
	Compensation string
	Link         string // href as found in the markup, possibly relative
	PostedDate   string

	SearchURL      string // page the card was found on
	SearchLocation string // location input used for the search
}

// PostingFetcher collects postings from one job site. Implementations never
// fail the caller: fetch and parse problems shrink the result instead.
type PostingFetcher interface {
	Source() Source
	FetchPostings(ctx context.Context, keywords, locations []string) []Posting
}

// Message is a rendered digest ready for delivery.
type Message struct {
	Subject    string
	HTMLBody   string
	TextBody   string
	Recipients []string
	// Postings behind the bodies, for senders with their own layout (Slack).
	Postings []Posting
}

// Sender delivers a digest (email, Slack, log).
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// RunRecord is the archived outcome of one pipeline run.
type RunRecord struct {
	ID           string
	RunAt        time.Time
	Scraped      int
	Unique       int
	Sent         int
	FallbackUsed bool
	Delivered    bool
	DeliveryErr  string
	Postings     []Posting
}

// RunStore archives pipeline runs. It is never read back into a run.
type RunStore interface {
	SaveRun(ctx context.Context, run RunRecord) error
	RecentRuns(ctx context.Context, limit int) ([]RunRecord, error)
}
