package ports

import (
	"context"

	"github.com/linkroom/linkroom-api/internal/core/domain"
)

// ApplyInput carries a job seeker's application.
type ApplyInput struct {
	ActorID       string
	ActorRole     string
	JobID         string
	CoverLetter   string // optional
	CVURLOverride string // optional
}

// ApplyResult is returned after a successful apply.
type ApplyResult struct {
	Success       bool
	ApplicationID string
}

// WithdrawInput identifies the application to withdraw; only its owner may.
type WithdrawInput struct {
	ActorID       string
	ApplicationID string
}

// WithdrawResult reports the resulting status.
type WithdrawResult struct {
	Success bool
	Status  domain.ApplicationStatus
}

// ApplicationService governs the application lifecycle.
type ApplicationService interface {
	Apply(ctx context.Context, input ApplyInput) (*ApplyResult, error)
	// Withdraw is idempotent: an already-withdrawn application returns
	// success without error.
	Withdraw(ctx context.Context, input WithdrawInput) (*WithdrawResult, error)
	ListMine(ctx context.Context, actorID string) ([]*domain.Application, error)
}
