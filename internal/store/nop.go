package store

import (
	"context"
	"time"

	"github.com/amishk599/interndigest/internal/model"
)

// NopStore is a no-op store used in dry-run mode and when the store path is
// empty. Nothing is archived, so history is always empty.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) SaveRun(ctx context.Context, run model.RunRecord) error { return nil }
func (s *NopStore) RecentRuns(ctx context.Context, limit int) ([]model.RunRecord, error) {
	return nil, nil
}
func (s *NopStore) Cleanup(ctx context.Context, olderThan time.Duration) error { return nil }
func (s *NopStore) Close() error                                               { return nil }
