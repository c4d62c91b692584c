package domain

import "time"

// JobStatus represents the publication state of a job posting.
type JobStatus string

const (
	JobStatusDraft     JobStatus = "draft"
	JobStatusPublished JobStatus = "published"
	JobStatusClosed    JobStatus = "closed"
)

// Job is a single job posting. Admin posts are ad-eligible; paid employer
// posts are not. Jobs are hidden by the expiry sweep, never deleted.
type Job struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	Title          string    `json:"title" bson:"title"`
	Description    string    `json:"description" bson:"description"`
	CompanyName    string    `json:"company_name" bson:"company_name"`
	OrgID          string    `json:"org_id,omitempty" bson:"org_id,omitempty"`
	PostedByUserID string    `json:"posted_by_user_id" bson:"posted_by_user_id"`
	IsAdminPost    bool      `json:"is_admin_post" bson:"is_admin_post"`
	Status         JobStatus `json:"status" bson:"status"`
	JobType        string    `json:"job_type,omitempty" bson:"job_type,omitempty"`
	RemoteType     string    `json:"remote_type,omitempty" bson:"remote_type,omitempty"`
	Location       string    `json:"location,omitempty" bson:"location,omitempty"`
	ViewCount      int64     `json:"view_count" bson:"view_count"`

	// SourceURL and SourceHash are set only for externally ingested jobs.
	// SourceHash keys the ingest upsert so re-ingesting the same URL
	// updates the existing document.
	SourceURL  string `json:"source_url,omitempty" bson:"source_url,omitempty"`
	SourceHash string `json:"-" bson:"source_hash,omitempty"`

	Hidden      bool       `json:"hidden" bson:"hidden"`
	HiddenAt    *time.Time `json:"hidden_at,omitempty" bson:"hidden_at,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty" bson:"published_at,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}
