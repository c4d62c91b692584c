package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/linkroom/linkroom-api/internal/core/domain"
	"github.com/linkroom/linkroom-api/internal/core/ports"
	"github.com/linkroom/linkroom-api/internal/metrics"
)

type ApplicationService struct {
	accounts     ports.AccountRepository
	jobs         ports.JobRepository
	applications ports.ApplicationRepository
	cache        ports.ApplicationListingCache
	logger       zerolog.Logger
}

func NewApplicationService(
	accounts ports.AccountRepository,
	jobs ports.JobRepository,
	applications ports.ApplicationRepository,
	cache ports.ApplicationListingCache,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		accounts:     accounts,
		jobs:         jobs,
		applications: applications,
		cache:        cache,
		logger:       logger,
	}
}

// Apply submits a job seeker's application to a published job.
func (s *ApplicationService) Apply(ctx context.Context, input ports.ApplyInput) (*ports.ApplyResult, error) {
	if input.ActorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if input.ActorRole != domain.RoleJobSeeker {
		return nil, domain.ErrPermissionDenied
	}
	if input.JobID == "" {
		return nil, fmt.Errorf("%w: job id is required", domain.ErrInvalidArgument)
	}

	job, err := s.jobs.FindByID(ctx, input.JobID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusPublished || job.Hidden {
		return nil, domain.ErrJobNotPublished
	}

	// Friendly pre-check; the unique (job_id, applicant_user_id) index is
	// what actually fences a concurrent duplicate apply.
	exists, err := s.applications.ExistsForJobAndApplicant(ctx, input.JobID, input.ActorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrAlreadyApplied
	}

	now := time.Now().UTC()
	application := &domain.Application{
		JobID:           input.JobID,
		OrgID:           job.OrgID,
		ApplicantUserID: input.ActorID,
		Status:          domain.ApplicationSubmitted,
		CoverLetter:     input.CoverLetter,
		CVURLOverride:   input.CVURLOverride,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.applications.Create(ctx, application); err != nil {
		return nil, err
	}

	s.invalidateListing(ctx, input.ActorID)
	metrics.ApplicationsTotal.WithLabelValues("applied").Inc()
	s.logger.Info().Str("application_id", application.ID).Str("job_id", input.JobID).Str("applicant_id", input.ActorID).Msg("application submitted")

	return &ports.ApplyResult{Success: true, ApplicationID: application.ID}, nil
}

// Withdraw transitions the caller's own application to withdrawn. Calling it
// on an already-withdrawn application succeeds without side effects.
func (s *ApplicationService) Withdraw(ctx context.Context, input ports.WithdrawInput) (*ports.WithdrawResult, error) {
	if input.ActorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if input.ApplicationID == "" {
		return nil, fmt.Errorf("%w: application id is required", domain.ErrInvalidArgument)
	}

	application, err := s.applications.FindByID(ctx, input.ApplicationID)
	if err != nil {
		return nil, err
	}
	if application.ApplicantUserID != input.ActorID {
		return nil, domain.ErrPermissionDenied
	}

	if application.Status == domain.ApplicationWithdrawn {
		return &ports.WithdrawResult{Success: true, Status: domain.ApplicationWithdrawn}, nil
	}
	if !application.Status.Withdrawable() {
		return nil, domain.ErrNotWithdrawable
	}

	// Conditional write: matches only documents still in a withdrawable
	// state, so a concurrent review action cannot be overwritten.
	if err := s.applications.Withdraw(ctx, input.ApplicationID, time.Now().UTC()); err != nil {
		// A racing withdraw of the same application may have landed
		// between the read above and the conditional write. That is the
		// state this call was asking for, so report success.
		if errors.Is(err, domain.ErrNotWithdrawable) {
			current, readErr := s.applications.FindByID(ctx, input.ApplicationID)
			if readErr == nil && current.Status == domain.ApplicationWithdrawn {
				return &ports.WithdrawResult{Success: true, Status: domain.ApplicationWithdrawn}, nil
			}
		}
		return nil, err
	}

	s.invalidateListing(ctx, input.ActorID)
	metrics.ApplicationsTotal.WithLabelValues("withdrawn").Inc()
	s.logger.Info().Str("application_id", input.ApplicationID).Str("applicant_id", input.ActorID).Msg("application withdrawn")

	return &ports.WithdrawResult{Success: true, Status: domain.ApplicationWithdrawn}, nil
}

// ListMine returns the caller's applications, newest first.
func (s *ApplicationService) ListMine(ctx context.Context, actorID string) ([]*domain.Application, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return s.applications.ListByApplicant(ctx, actorID)
}

// invalidateListing drops the cached application listing for an account.
// Cache trouble never fails the write that triggered it.
func (s *ApplicationService) invalidateListing(ctx context.Context, accountID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, accountID); err != nil {
		s.logger.Warn().Err(err).Str("account_id", accountID).Msg("failed to invalidate application listing cache")
	}
}
