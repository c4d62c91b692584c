package ports

import (
	"context"
	"time"

	"github.com/linkroom/linkroom-api/internal/core/domain"
)

// ListJobsFilter carries all query parameters for listing jobs. The public
// listing is always scoped to published, non-hidden documents.
type ListJobsFilter struct {
	JobType    string // optional: filter by job type
	RemoteType string // optional: filter by remote type
	Search     string // optional: partial match on title or company_name
	Page       int    // 1-based
	Limit      int    // max rows per page (capped at 100 by the service)
}

// JobRepository defines persistence operations for job postings.
type JobRepository interface {
	// Create inserts a new job document and fills in its generated ID.
	Create(ctx context.Context, j *domain.Job) error
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	// List returns a page of published, non-hidden jobs and the total count.
	List(ctx context.Context, filter ListJobsFilter) ([]*domain.Job, int64, error)
	// ListPublished returns all published, non-hidden jobs (alert matching).
	ListPublished(ctx context.Context) ([]*domain.Job, error)
	IncrementViewCount(ctx context.Context, id string) error

	// UpsertBySourceHash inserts or updates an ingested job keyed by its
	// source hash. Reports whether a new document was created.
	UpsertBySourceHash(ctx context.Context, j *domain.Job) (created bool, err error)

	// HideStale marks hidden every non-hidden job created before cutoff or
	// whose expires_at has passed relative to now, in one batched write.
	// Returns the number of jobs newly hidden.
	HideStale(ctx context.Context, cutoff, now time.Time) (int64, error)
}
