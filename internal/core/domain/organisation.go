package domain

import "time"

// Organisation is owned by exactly one employer account. Job credits bought
// for the organisation are granted to the owner account's token balance, so
// the organisation itself carries no separate counter.
type Organisation struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	OwnerUserID string    `json:"owner_user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
