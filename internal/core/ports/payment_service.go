package ports

import (
	"context"

	"github.com/linkroom/linkroom-api/internal/core/domain"
)

// CreatePaymentInput initiates a payment for a plan on behalf of an
// organisation. The actor must own the organisation.
type CreatePaymentInput struct {
	ActorID string
	OrgID   string
	PlanID  string
	UserID  string
}

// CreatePaymentResult is the processor redirect handle plus the reference
// used later for verification.
type CreatePaymentResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// VerifyPaymentInput reconciles a processor reference.
type VerifyPaymentInput struct {
	ActorID   string
	Reference string
}

// VerifyPaymentResult carries the activated settlement.
type VerifyPaymentResult struct {
	Success    bool
	Settlement *domain.Settlement
}

// PaymentService implements the two-phase payment settlement workflow.
type PaymentService interface {
	CreatePayment(ctx context.Context, input CreatePaymentInput) (*CreatePaymentResult, error)
	// VerifyPayment is idempotent per reference: re-invocation after the
	// first success converges to the same active settlement.
	VerifyPayment(ctx context.Context, input VerifyPaymentInput) (*VerifyPaymentResult, error)
}
