package domain

import "time"

const (
	AlertFrequencyDaily  = "daily"
	AlertFrequencyWeekly = "weekly"
)

// AlertCriteria narrows which published jobs match an alert. Empty fields
// match everything.
type AlertCriteria struct {
	JobType    string `json:"job_type,omitempty" bson:"job_type,omitempty"`
	RemoteType string `json:"remote_type,omitempty" bson:"remote_type,omitempty"`
}

// Alert is a job seeker's saved search that is mailed on a schedule.
type Alert struct {
	ID         string        `json:"id" bson:"_id,omitempty"`
	UserID     string        `json:"user_id" bson:"user_id"`
	Email      string        `json:"email" bson:"email"`
	Criteria   AlertCriteria `json:"criteria" bson:"criteria"`
	Frequency  string        `json:"frequency" bson:"frequency"`
	IsActive   bool          `json:"is_active" bson:"is_active"`
	LastSentAt *time.Time    `json:"last_sent_at,omitempty" bson:"last_sent_at,omitempty"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at"`
}

// Due reports whether the alert should fire at now given its frequency.
func (a Alert) Due(now time.Time) bool {
	if a.LastSentAt == nil {
		return true
	}
	window := 24 * time.Hour
	if a.Frequency == AlertFrequencyWeekly {
		window = 7 * 24 * time.Hour
	}
	return now.Sub(*a.LastSentAt) >= window
}

// Matches reports whether a job satisfies the alert criteria.
func (c AlertCriteria) Matches(j *Job) bool {
	if c.JobType != "" && c.JobType != j.JobType {
		return false
	}
	if c.RemoteType != "" && c.RemoteType != j.RemoteType {
		return false
	}
	return true
}
