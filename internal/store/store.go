// Package store persists generation runs to a local history database so past
// batches can be listed, re-fetched and exported.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/policyforge/casegen/internal/model"
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = eris.New("run not found")

// RunFilter narrows a run listing.
type RunFilter struct {
	Limit  int
	Offset int
}

// Store is the run-history backend.
type Store interface {
	Migrate(ctx context.Context) error
	SaveRun(ctx context.Context, req model.GenerateRequest, resp *model.GenerateResponse) (*model.Run, error)
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)
	DeleteRun(ctx context.Context, runID string) error
	Close() error
}
