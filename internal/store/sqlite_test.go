package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/amishk599/interndigest/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(id string, at time.Time) model.RunRecord {
	return model.RunRecord{
		ID:          id,
		RunAt:       at,
		Scraped:     12,
		Unique:      9,
		Sent:        2,
		Delivered:   false,
		DeliveryErr: "smtp: auth failed",
		Postings: []model.Posting{
			{
				Title: "Data Intern", Company: "Acme", Location: "Pune", Compensation: "₹10,000",
				URL: "https://example.com/1", Source: model.SourceLinkedIn,
				PostedDate: time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC),
			},
			{
				Title: "Web Intern", Company: model.CompanyNotListed, Location: "Remote",
				Compensation: model.CompensationUnstated, URL: "https://example.com/2",
				Source: model.SourceNaukri, PostedDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			},
		},
	}
}

func TestSaveRunThenRecentRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 14, 6, 30, 0, 0, time.UTC)

	if err := s.SaveRun(ctx, sampleRun("run-1", at)); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	runs, err := s.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	r := runs[0]
	if r.ID != "run-1" || !r.RunAt.Equal(at) || r.Scraped != 12 || r.Unique != 9 || r.Sent != 2 {
		t.Errorf("run = %+v", r)
	}
	if r.Delivered || r.DeliveryErr != "smtp: auth failed" || r.FallbackUsed {
		t.Errorf("delivery fields = delivered:%v err:%q fallback:%v", r.Delivered, r.DeliveryErr, r.FallbackUsed)
	}
	if len(r.Postings) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(r.Postings))
	}
	if r.Postings[0].Title != "Data Intern" || r.Postings[1].Source != model.SourceNaukri {
		t.Errorf("postings out of order: %+v", r.Postings)
	}
	if !r.Postings[1].PostedDate.Equal(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("PostedDate = %v", r.Postings[1].PostedDate)
	}
}

func TestRecentRunsNewestFirstWithLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		if err := s.SaveRun(ctx, sampleRun(fmt.Sprintf("run-%d", i), base.Add(time.Duration(i)*24*time.Hour))); err != nil {
			t.Fatalf("SaveRun %d: %v", i, err)
		}
	}

	runs, err := s.RecentRuns(ctx, 3)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	for i, want := range []string{"run-4", "run-3", "run-2"} {
		if runs[i].ID != want {
			t.Errorf("runs[%d] = %s, want %s", i, runs[i].ID, want)
		}
	}
}

func TestSaveRunReplacesSameID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	run := sampleRun("run-x", time.Now())

	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("first SaveRun: %v", err)
	}
	run.Delivered = true
	run.DeliveryErr = ""
	run.Postings = run.Postings[:1]
	if err := s.SaveRun(ctx, run); err != nil {
		t.Fatalf("second SaveRun: %v", err)
	}

	runs, err := s.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 || !runs[0].Delivered || len(runs[0].Postings) != 1 {
		t.Errorf("expected replaced run, got %+v", runs)
	}
}

func TestCleanupRemovesOldKeepsFresh(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveRun(ctx, sampleRun("old", time.Now().Add(-48*time.Hour))); err != nil {
		t.Fatalf("SaveRun old: %v", err)
	}
	if err := s.SaveRun(ctx, sampleRun("fresh", time.Now())); err != nil {
		t.Fatalf("SaveRun fresh: %v", err)
	}

	if err := s.Cleanup(ctx, 24*time.Hour); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}

	runs, err := s.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != "fresh" {
		t.Fatalf("expected only the fresh run, got %+v", runs)
	}

	var orphans int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM run_postings WHERE run_id = 'old'").Scan(&orphans); err != nil {
		t.Fatalf("counting postings: %v", err)
	}
	if orphans != 0 {
		t.Errorf("expected old postings removed, %d remain", orphans)
	}
}

func TestRecentRunsEmpty(t *testing.T) {
	s := newTestStore(t)
	runs, err := s.RecentRuns(context.Background(), 5)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestNopStore(t *testing.T) {
	var s model.RunStore = NewNopStore()
	if err := s.SaveRun(context.Background(), sampleRun("x", time.Now())); err != nil {
		t.Errorf("SaveRun = %v", err)
	}
	runs, err := s.RecentRuns(context.Background(), 5)
	if err != nil || len(runs) != 0 {
		t.Errorf("RecentRuns = %v, %v", runs, err)
	}
}
