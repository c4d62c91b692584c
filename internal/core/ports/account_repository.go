package ports

import (
	"context"

	"github.com/linkroom/linkroom-api/internal/core/domain"
)

// AccountRepository persists accounts and their credit ledger.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	UpdateOrgID(ctx context.Context, id, orgID string) error

	// ConsumeToken performs the conditional decrement of the post-job
	// transaction: the balance is decremented by 1 only if it still equals
	// observed. Returns domain.ErrCreditConflict when the condition did not
	// match, so the caller can re-read and retry within its budget.
	ConsumeToken(ctx context.Context, id string, observed int) error

	// RefundToken compensates a consumed credit when the paired job
	// creation failed.
	RefundToken(ctx context.Context, id string) error

	// GrantTokens adds n credits, used when a credit-bundle settlement
	// activates.
	GrantTokens(ctx context.Context, id string, n int) error
}
