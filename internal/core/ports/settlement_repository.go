package ports

import (
	"context"
	"time"

	"github.com/linkroom/linkroom-api/internal/core/domain"
)

// SettlementActivation carries the entitlement computed on verified success.
type SettlementActivation struct {
	ExpiresAt           *time.Time // subscription plans
	RemainingJobCredits int        // credit-bundle plans
	LastPaymentStatus   string
	StartedAt           time.Time
	UpdatedAt           time.Time
}

// SettlementRepository persists payment settlements, keyed by the external
// processor reference.
type SettlementRepository interface {
	// CreatePending inserts a settlement in pending state and fills in its
	// generated ID. The reference is unique across settlements.
	CreatePending(ctx context.Context, s *domain.Settlement) error
	FindByReference(ctx context.Context, reference string) (*domain.Settlement, error)

	// Activate transitions the settlement pending → active, matching only a
	// document still in pending state. Reports whether this call performed
	// the transition; false means it was already active, the idempotent
	// replay case.
	Activate(ctx context.Context, reference string, upd SettlementActivation) (bool, error)
}
