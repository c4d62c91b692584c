package ports

import "context"

// Mailer sends a single email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// AlertDelivery is one alert email ready to be dispatched.
type AlertDelivery struct {
	AccountID string
	Email     string
	Subject   string
	Body      string
}

// AlertDispatcher enqueues alert deliveries for asynchronous sending.
type AlertDispatcher interface {
	Enqueue(d AlertDelivery)
}

// ApplicationListingCache caches the per-account application listing.
// Apply and withdraw invalidate the acting account's entry.
type ApplicationListingCache interface {
	GetListing(ctx context.Context, accountID string) ([]byte, error)
	SetListing(ctx context.Context, accountID string, payload []byte) error
	Invalidate(ctx context.Context, accountID string) error
}
