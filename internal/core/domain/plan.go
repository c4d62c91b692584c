package domain

// PlanType distinguishes recurring subscriptions from discrete credit bundles.
type PlanType string

const (
	PlanTypeSubscription PlanType = "subscription"
	PlanTypeJobCredits   PlanType = "job_credits"
)

// Plan is a read-only catalog entity. Price is in major currency units;
// the payment provider receives it multiplied into minor units.
type Plan struct {
	ID             string   `json:"id" bson:"_id,omitempty"`
	Name           string   `json:"name" bson:"name"`
	Type           PlanType `json:"type" bson:"type"`
	Price          int64    `json:"price" bson:"price"`
	Currency       string   `json:"currency" bson:"currency"`
	DurationMonths int      `json:"duration_months,omitempty" bson:"duration_months,omitempty"`
	JobCredits     int      `json:"job_credits,omitempty" bson:"job_credits,omitempty"`
}

// DefaultPlans is the catalog seeded at startup. Seeding is an upsert, so
// price changes here propagate on the next boot without touching existing
// settlements.
func DefaultPlans() []Plan {
	return []Plan{
		{ID: "single-post", Name: "Single Post", Type: PlanTypeJobCredits, Price: 150, Currency: "ZAR", JobCredits: 1},
		{ID: "bundle-five", Name: "Five Post Bundle", Type: PlanTypeJobCredits, Price: 600, Currency: "ZAR", JobCredits: 5},
		{ID: "monthly-unlimited", Name: "Monthly Unlimited", Type: PlanTypeSubscription, Price: 950, Currency: "ZAR", DurationMonths: 1},
	}
}
