package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/linkroom/linkroom-api/internal/core/domain"
	"github.com/linkroom/linkroom-api/internal/core/ports"
	"github.com/linkroom/linkroom-api/internal/metrics"
)

const (
	// maxPostAttempts bounds the conditional-decrement retry loop so two
	// accounts hammering the same balance cannot spin forever.
	maxPostAttempts = 3

	defaultEmployerCompany = "Unnamed Company"
	defaultAdminCompany    = "Linkroom"

	maxListLimit = 100
)

type JobService struct {
	accounts ports.AccountRepository
	jobs     ports.JobRepository
	logger   zerolog.Logger
}

func NewJobService(accounts ports.AccountRepository, jobs ports.JobRepository, logger zerolog.Logger) *JobService {
	return &JobService{accounts: accounts, jobs: jobs, logger: logger}
}

// PostJob posts a job on behalf of an employer, consuming one credit. The
// check-decrement-create sequence runs as a conflict-checked unit: the
// decrement only commits against the balance that was read, and a failed job
// insert refunds the consumed credit. Concurrent posts against a single
// remaining credit yield exactly one success.
func (s *JobService) PostJob(ctx context.Context, input ports.PostJobInput) (*ports.PostJobResult, error) {
	if input.ActorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if input.ActorRole != domain.RoleEmployer {
		return nil, domain.ErrPermissionDenied
	}
	if input.Title == "" || input.Description == "" {
		return nil, fmt.Errorf("%w: title and description are required", domain.ErrInvalidArgument)
	}

	for attempt := 1; attempt <= maxPostAttempts; attempt++ {
		account, err := s.accounts.FindByID(ctx, input.ActorID)
		if err != nil {
			return nil, err
		}
		if account.Tokens <= 0 {
			return nil, domain.ErrNoCredits
		}

		err = s.accounts.ConsumeToken(ctx, account.ID, account.Tokens)
		if errors.Is(err, domain.ErrCreditConflict) {
			metrics.CreditConflictsTotal.Inc()
			s.logger.Debug().Str("account_id", account.ID).Int("attempt", attempt).Msg("credit decrement conflict, retrying")
			continue
		}
		if err != nil {
			return nil, err
		}

		result, err := s.createJob(ctx, input, false, account.OrgID)
		if err != nil {
			// Compensate the consumed credit so no debit exists without a job.
			if refundErr := s.accounts.RefundToken(ctx, account.ID); refundErr != nil {
				s.logger.Error().Err(refundErr).Str("account_id", account.ID).Msg("credit refund failed after job create error")
			}
			return nil, err
		}

		metrics.JobsPostedTotal.WithLabelValues(domain.RoleEmployer).Inc()
		s.logger.Info().Str("job_id", result.ID).Str("account_id", account.ID).Int("tokens_before", account.Tokens).Msg("job posted")
		return result, nil
	}

	return nil, domain.ErrCreditConflict
}

// AdminPostJob posts an ad-eligible job without any credit check.
func (s *JobService) AdminPostJob(ctx context.Context, input ports.PostJobInput) (*ports.PostJobResult, error) {
	if input.ActorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if input.ActorRole != domain.RoleAdmin {
		return nil, domain.ErrPermissionDenied
	}
	if input.Title == "" || input.Description == "" {
		return nil, fmt.Errorf("%w: title and description are required", domain.ErrInvalidArgument)
	}

	result, err := s.createJob(ctx, input, true, "")
	if err != nil {
		return nil, err
	}

	metrics.JobsPostedTotal.WithLabelValues(domain.RoleAdmin).Inc()
	s.logger.Info().Str("job_id", result.ID).Str("account_id", input.ActorID).Msg("admin job posted")
	return result, nil
}

func (s *JobService) createJob(ctx context.Context, input ports.PostJobInput, adminPost bool, orgID string) (*ports.PostJobResult, error) {
	now := time.Now().UTC()

	companyName := input.CompanyName
	if companyName == "" {
		companyName = defaultEmployerCompany
		if adminPost {
			companyName = defaultAdminCompany
		}
	}

	job := &domain.Job{
		Title:          input.Title,
		Description:    input.Description,
		CompanyName:    companyName,
		OrgID:          orgID,
		PostedByUserID: input.ActorID,
		IsAdminPost:    adminPost,
		Status:         domain.JobStatusPublished,
		JobType:        input.JobType,
		RemoteType:     input.RemoteType,
		Location:       input.Location,
		ExpiresAt:      input.ExpiresAt,
		PublishedAt:    &now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		s.logger.Error().Err(err).Msg("failed to create job")
		return nil, err
	}
	return &ports.PostJobResult{ID: job.ID}, nil
}

// GetJob returns a single visible job.
func (s *JobService) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: job id is required", domain.ErrInvalidArgument)
	}
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Hidden {
		return nil, domain.ErrJobNotFound
	}
	return job, nil
}

// ListJobs returns a page of published, non-hidden jobs.
func (s *JobService) ListJobs(ctx context.Context, input ports.ListJobsInput) (*ports.ListJobsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	items, total, err := s.jobs.List(ctx, ports.ListJobsFilter{
		JobType:    input.JobType,
		RemoteType: input.RemoteType,
		Search:     input.Search,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListJobsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// TrackView increments a job's view counter.
func (s *JobService) TrackView(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: job id is required", domain.ErrInvalidArgument)
	}
	return s.jobs.IncrementViewCount(ctx, id)
}

// IngestJob upserts an externally sourced posting keyed by a content hash of
// its source URL, so repeated ingestion of the same URL updates in place.
// Ingested posts carry no paid organisation and are ad-eligible like admin
// posts.
func (s *JobService) IngestJob(ctx context.Context, input ports.IngestJobInput) (*ports.IngestJobResult, error) {
	if input.SourceURL == "" || input.Title == "" || input.Description == "" {
		return nil, fmt.Errorf("%w: source_url, title and description are required", domain.ErrInvalidArgument)
	}

	now := time.Now().UTC()
	job := &domain.Job{
		Title:       input.Title,
		Description: input.Description,
		CompanyName: input.CompanyName,
		IsAdminPost: true,
		Status:      domain.JobStatusPublished,
		JobType:     input.JobType,
		RemoteType:  input.RemoteType,
		Location:    input.Location,
		SourceURL:   input.SourceURL,
		SourceHash:  sourceHash(input.SourceURL),
		ExpiresAt:   input.ExpiresAt,
		PublishedAt: &now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.jobs.UpsertBySourceHash(ctx, job)
	if err != nil {
		s.logger.Error().Err(err).Str("source_url", input.SourceURL).Msg("failed to ingest job")
		return nil, err
	}

	result := "updated"
	if created {
		result = "created"
	}
	metrics.JobsIngestedTotal.WithLabelValues(result).Inc()
	s.logger.Info().Str("job_id", job.ID).Str("source_url", input.SourceURL).Bool("created", created).Msg("job ingested")

	return &ports.IngestJobResult{ID: job.ID, Created: created}, nil
}

// ExpireJobs hides all non-hidden jobs created before now-retention or past
// their explicit expiry, in a single batched write. Running it again over
// the same data hides nothing further.
func (s *JobService) ExpireJobs(ctx context.Context, now time.Time, retention time.Duration) (int64, error) {
	cutoff := now.Add(-retention)
	n, err := s.jobs.HideStale(ctx, cutoff, now)
	if err != nil {
		s.logger.Error().Err(err).Msg("expiry sweep failed")
		return 0, err
	}

	metrics.JobsExpiredTotal.Add(float64(n))
	s.logger.Info().Int64("hidden", n).Time("cutoff", cutoff).Msg("expiry sweep completed")
	return n, nil
}

// sourceHash returns the hex SHA-256 of a source URL.
func sourceHash(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}
