package ports

import (
	"context"
	"time"

	"github.com/linkroom/linkroom-api/internal/core/domain"
)

// OrganisationRepository persists organisations.
type OrganisationRepository interface {
	// Create inserts the organisation and fills in its generated ID.
	Create(ctx context.Context, org *domain.Organisation) error
	FindByID(ctx context.Context, id string) (*domain.Organisation, error)
}

// PlanRepository reads the pricing catalog. Plans are read-only here.
type PlanRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Plan, error)
}

// AlertRepository persists job alerts.
type AlertRepository interface {
	// Create inserts the alert and fills in its generated ID.
	Create(ctx context.Context, a *domain.Alert) error
	ListActive(ctx context.Context) ([]*domain.Alert, error)
	StampSent(ctx context.Context, id string, at time.Time) error
}
