// Package store persists conversion-run history.
package store

import (
	"context"

	"github.com/deen-commerce/orderlink/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus
	Limit  int
}

// Store defines the run-history persistence interface.
type Store interface {
	CreateRun(ctx context.Context, input string) (*model.Run, error)
	CompleteRun(ctx context.Context, runID string, summary model.RunSummary) error
	FailRun(ctx context.Context, runID, reason string) error
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	Migrate(ctx context.Context) error
	Close() error
}
