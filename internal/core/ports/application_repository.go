package ports

import (
	"context"
	"time"

	"github.com/linkroom/linkroom-api/internal/core/domain"
)

// ApplicationRepository persists job applications. The store enforces a
// unique (job_id, applicant_user_id) index, so a concurrent duplicate apply
// fails at insert time with domain.ErrAlreadyApplied even when both requests
// passed the existence pre-check.
type ApplicationRepository interface {
	// Create inserts the application and fills in its generated ID.
	Create(ctx context.Context, a *domain.Application) error
	FindByID(ctx context.Context, id string) (*domain.Application, error)
	ExistsForJobAndApplicant(ctx context.Context, jobID, applicantUserID string) (bool, error)
	ListByApplicant(ctx context.Context, applicantUserID string) ([]*domain.Application, error)

	// Withdraw conditionally transitions the application to withdrawn,
	// matching only documents whose current status is still withdrawable.
	// Returns domain.ErrNotWithdrawable when the condition did not match.
	Withdraw(ctx context.Context, id string, at time.Time) error
}
