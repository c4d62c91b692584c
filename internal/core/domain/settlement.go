package domain

import "time"

// SettlementStatus represents the payment settlement lifecycle.
type SettlementStatus string

const (
	SettlementPending SettlementStatus = "pending"
	SettlementActive  SettlementStatus = "active"
)

// Settlement records one payment transaction's lifecycle, keyed by the
// processor's reference string. Exactly one settlement exists per reference;
// it transitions pending → active at most once.
type Settlement struct {
	ID          string           `json:"id" bson:"_id,omitempty"`
	OrgID       string           `json:"org_id" bson:"org_id"`
	UserID      string           `json:"user_id" bson:"user_id"`
	PlanID      string           `json:"plan_id" bson:"plan_id"`
	PlanType    PlanType         `json:"type" bson:"type"`
	Status      SettlementStatus `json:"status" bson:"status"`
	PaystackRef string           `json:"paystack_ref" bson:"paystack_ref"`

	// Entitlement computed on verified success: subscriptions get an expiry,
	// credit bundles get a grant count.
	ExpiresAt           *time.Time `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
	RemainingJobCredits int        `json:"remaining_job_credits,omitempty" bson:"remaining_job_credits,omitempty"`

	LastPaymentStatus string     `json:"last_payment_status,omitempty" bson:"last_payment_status,omitempty"`
	StartedAt         *time.Time `json:"started_at,omitempty" bson:"started_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" bson:"updated_at"`
}
