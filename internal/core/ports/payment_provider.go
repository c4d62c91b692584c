package ports

import "context"

// TransactionMetadata is attached to the provider transaction so the
// purchase can be reconstructed on verification.
type TransactionMetadata struct {
	OrgID    string `json:"org_id"`
	PlanID   string `json:"plan_id"`
	UserID   string `json:"user_id"`
	PlanName string `json:"plan_name,omitempty"`
}

// InitializeTransactionInput starts a payment with the external processor.
// Amount is in minor currency units (cents/kobo).
type InitializeTransactionInput struct {
	Email    string
	Amount   int64
	Currency string
	Metadata TransactionMetadata
}

// InitializeTransactionResult is the redirect handle returned by the processor.
type InitializeTransactionResult struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// TransactionStatus is the authoritative outcome fetched from the processor.
type TransactionStatus struct {
	Status   string // "success", "failed", "abandoned", ...
	Metadata TransactionMetadata
}

// Success reports whether the processor settled the transaction.
func (t TransactionStatus) Success() bool { return t.Status == "success" }

// PaymentProvider abstracts the external payment processor. Implementations
// bound every call with a timeout and never retry; retry policy belongs to
// the caller.
type PaymentProvider interface {
	InitializeTransaction(ctx context.Context, in InitializeTransactionInput) (*InitializeTransactionResult, error)
	VerifyTransaction(ctx context.Context, reference string) (*TransactionStatus, error)
}
