package ports

import (
	"context"
	"time"

	"github.com/linkroom/linkroom-api/internal/core/domain"
)

// PostJobInput carries all data needed to post a job. Actor fields come from
// the authenticated identity, never from the request body.
type PostJobInput struct {
	ActorID     string
	ActorRole   string
	ActorOrgID  string
	Title       string
	Description string
	CompanyName string // optional, defaulted per role
	JobType     string
	RemoteType  string
	Location    string
	ExpiresAt   *time.Time
}

// PostJobResult is returned after a successful post.
type PostJobResult struct {
	ID string
}

// IngestJobInput is an externally sourced job posting. SourceURL keys the
// upsert: repeated ingestion of the same URL updates the existing job.
type IngestJobInput struct {
	SourceURL   string
	Title       string
	Description string
	CompanyName string
	JobType     string
	RemoteType  string
	Location    string
	ExpiresAt   *time.Time
}

// IngestJobResult reports the upsert outcome.
type IngestJobResult struct {
	ID      string
	Created bool
}

// ListJobsInput carries parameters for the public job listing.
type ListJobsInput struct {
	JobType    string
	RemoteType string
	Search     string
	Page       int
	Limit      int
}

// ListJobsResult is returned by ListJobs.
type ListJobsResult struct {
	Items      []*domain.Job
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// JobService defines use-case operations on job postings.
type JobService interface {
	// PostJob verifies role and credit balance, then decrements one credit
	// and creates the job as one conflict-checked unit.
	PostJob(ctx context.Context, input PostJobInput) (*PostJobResult, error)
	// AdminPostJob creates an ad-eligible job without touching any balance.
	AdminPostJob(ctx context.Context, input PostJobInput) (*PostJobResult, error)
	GetJob(ctx context.Context, id string) (*domain.Job, error)
	ListJobs(ctx context.Context, input ListJobsInput) (*ListJobsResult, error)
	TrackView(ctx context.Context, id string) error
	IngestJob(ctx context.Context, input IngestJobInput) (*IngestJobResult, error)
	// ExpireJobs hides every non-hidden job older than the retention window
	// or past its explicit expiry. Idempotent; safe to invoke on overlap.
	ExpireJobs(ctx context.Context, now time.Time, retention time.Duration) (int64, error)
}
