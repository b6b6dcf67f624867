package careers

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// PartialWriteError reports that the core application row persisted but the
// denormalized answers projection failed. The submission is still a success.
type PartialWriteError struct {
	ApplicationID string
	Err           error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("application %s stored, answers projection failed: %v", e.ApplicationID, e.Err)
}

func (e *PartialWriteError) Unwrap() error { return e.Err }

// Diagnostics is a coarse operational read for the health endpoint.
type Diagnostics struct {
	Backend          string `json:"backend"`
	JobCount         int    `json:"jobCount"`
	ApplicationCount int    `json:"applicationCount"`
}

// Storage is the facade the HTTP layer consumes. Three interchangeable
// implementations exist: Google Sheets backed, Postgres backed, and
// in-memory. Every list operation is a full scan of the backing region.
type Storage interface {
	GetAllJobs(ctx context.Context) ([]Job, error)
	GetActiveJobs(ctx context.Context) ([]Job, error)
	GetJob(ctx context.Context, id string) (*Job, error)
	CreateJob(ctx context.Context, data NewJob) (*Job, error)
	UpdateJob(ctx context.Context, id string, update JobUpdate) (*Job, error)
	DeleteJob(ctx context.Context, id string) error
	SearchJobs(ctx context.Context, keyword string) ([]Job, error)

	GetAllApplications(ctx context.Context) ([]Application, error)
	GetApplicationsForJob(ctx context.Context, jobID string) ([]Application, error)
	GetApplication(ctx context.Context, id string) (*Application, error)
	// CreateApplication may return both a record and a *PartialWriteError
	// when the core row persisted but the answers projection did not.
	CreateApplication(ctx context.Context, data NewApplication) (*Application, error)
	UpdateApplicationStatus(ctx context.Context, id, status, notes string) (*Application, error)

	Diagnostics(ctx context.Context) (Diagnostics, error)
}
