package domain

import "time"

// ApplicationStatus represents the lifecycle state of a job application.
type ApplicationStatus string

const (
	ApplicationSubmitted   ApplicationStatus = "submitted"
	ApplicationViewed      ApplicationStatus = "viewed"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationHired       ApplicationStatus = "hired"
	ApplicationWithdrawn   ApplicationStatus = "withdrawn"
)

// validTransitions defines the allowed state machine transitions.
// rejected, hired and withdrawn are terminal.
var validTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationSubmitted:   {ApplicationViewed, ApplicationWithdrawn},
	ApplicationViewed:      {ApplicationShortlisted, ApplicationWithdrawn},
	ApplicationShortlisted: {ApplicationRejected, ApplicationHired, ApplicationWithdrawn},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Withdrawable reports whether the applicant may still withdraw.
func (s ApplicationStatus) Withdrawable() bool {
	return s.CanTransitionTo(ApplicationWithdrawn)
}

// Terminal reports whether no further transitions are possible.
func (s ApplicationStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// Application is one job seeker's application to one job. Uniqueness per
// (job, applicant) pair is enforced by a compound index in the store.
type Application struct {
	ID              string            `json:"id" bson:"_id,omitempty"`
	JobID           string            `json:"job_id" bson:"job_id"`
	OrgID           string            `json:"org_id,omitempty" bson:"org_id,omitempty"`
	ApplicantUserID string            `json:"applicant_user_id" bson:"applicant_user_id"`
	Status          ApplicationStatus `json:"status" bson:"status"`
	CoverLetter     string            `json:"cover_letter,omitempty" bson:"cover_letter,omitempty"`
	CVURLOverride   string            `json:"cv_url_override,omitempty" bson:"cv_url_override,omitempty"`
	WithdrawnAt     *time.Time        `json:"withdrawn_at,omitempty" bson:"withdrawn_at,omitempty"`
	CreatedAt       time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" bson:"updated_at"`
}
