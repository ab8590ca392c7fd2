package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amishk599/interndigest/internal/adapter"
	"github.com/amishk599/interndigest/internal/config"
	"github.com/amishk599/interndigest/internal/model"
	"github.com/amishk599/interndigest/internal/pipeline"
)

func TestBuildFetchers_PriorityOrder(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sources := []config.SourceConfig{
		{Name: "naukri", Enabled: true},
		{Name: "internshala", Enabled: true},
		{Name: "linkedin", Enabled: true},
		{Name: "indeed", Enabled: true},
	}

	fetchers := buildFetchers(sources, config.DefaultTitleKeywords, logger)

	want := []model.Source{model.SourceLinkedIn, model.SourceIndeed, model.SourceInternshala, model.SourceNaukri}
	if len(fetchers) != len(want) {
		t.Fatalf("expected %d fetchers, got %d", len(want), len(fetchers))
	}
	for i, f := range fetchers {
		if f.Source() != want[i] {
			t.Errorf("fetchers[%d] = %s, want %s", i, f.Source(), want[i])
		}
	}
}

func TestApplyOverrides(t *testing.T) {
	base := adapter.NaukriProfile()
	got := applyOverrides(base, config.SourceConfig{
		Name:        "naukri",
		MaxKeywords: 1,
		MaxDelay:    9 * time.Second,
	})

	if got.MaxKeywords != 1 || got.MaxDelay != 9*time.Second {
		t.Errorf("overrides not applied: %+v", got)
	}
	if got.MaxLocations != base.MaxLocations || got.MinDelay != base.MinDelay || got.Timeout != base.Timeout {
		t.Errorf("zero-valued overrides should keep defaults: %+v", got)
	}
}

// closeTracker is a run store that records whether it was closed.
type closeTracker struct {
	closed bool
}

func (s *closeTracker) SaveRun(context.Context, model.RunRecord) error { return nil }
func (s *closeTracker) RecentRuns(context.Context, int) ([]model.RunRecord, error) {
	return nil, nil
}
func (s *closeTracker) Cleanup(context.Context, time.Duration) error { return nil }
func (s *closeTracker) Close() error {
	s.closed = true
	return nil
}

func TestFinishRun(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	failed := pipeline.Result{ID: "r1", DeliveryErr: errors.New("smtp down")}

	tests := []struct {
		name       string
		res        pipeline.Result
		strict     bool
		wantCode   int
		wantClosed bool
	}{
		{"delivered", pipeline.Result{ID: "r0", Delivered: true}, true, 0, false},
		{"failed lenient", failed, false, 0, false},
		{"failed strict", failed, true, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs := &closeTracker{}
			if code := finishRun(tt.res, runs, tt.strict, logger); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if runs.closed != tt.wantClosed {
				t.Errorf("store closed = %v, want %v", runs.closed, tt.wantClosed)
			}
		})
	}
}
