package domain

import "time"

const (
	RoleJobSeeker = "job_seeker"
	RoleEmployer  = "employer"
	RoleAdmin     = "admin"
)

// ValidRole reports whether role is one of the three known account roles.
func ValidRole(role string) bool {
	return role == RoleJobSeeker || role == RoleEmployer || role == RoleAdmin
}

// Account models an authenticated actor. Tokens is the consumable credit
// balance employer accounts spend when posting jobs; it is the ledger of
// record for the post-job transaction. Accounts are never hard-deleted.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	OrgID        string    `json:"org_id,omitempty"`
	Tokens       int       `json:"tokens"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
