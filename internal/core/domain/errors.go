package domain

import "errors"

// Sentinel errors form the fixed failure taxonomy shared by all core
// operations. The transport layer maps each one to a deterministic HTTP
// status; services never return raw driver errors to handlers.

// Identity and access.
var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Input and lookup.
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountExists       = errors.New("account already exists")
	ErrOrgNotFound         = errors.New("organisation not found")
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrPlanNotFound        = errors.New("plan not found")
	ErrSettlementNotFound  = errors.New("settlement not found")
)

// Preconditions and state.
var (
	// ErrNoCredits is returned when a posting account's credit balance is
	// already zero before the transactional decrement is attempted.
	ErrNoCredits = errors.New("no job credits remaining")
	// ErrCreditConflict is returned when the conditional decrement lost a
	// race against a concurrent posting and the retry budget ran out.
	ErrCreditConflict       = errors.New("credit balance changed concurrently")
	ErrAlreadyApplied       = errors.New("application already exists for this job")
	ErrJobNotPublished      = errors.New("job is not accepting applications")
	ErrNotWithdrawable      = errors.New("application can no longer be withdrawn")
	ErrPaymentNotSuccessful = errors.New("payment verification failed")
)

// ErrPaymentProvider wraps failures talking to the external payment
// processor. Callers treat it as internal and never retry automatically.
var ErrPaymentProvider = errors.New("payment provider request failed")
