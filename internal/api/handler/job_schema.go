package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type postJobRequest struct {
	Title       string     `json:"title"        validate:"required,min=3"`
	Description string     `json:"description"  validate:"required"`
	CompanyName string     `json:"company_name"`
	JobType     string     `json:"job_type"     validate:"omitempty,oneof=full_time part_time contract internship"`
	RemoteType  string     `json:"remote_type"  validate:"omitempty,oneof=remote hybrid onsite"`
	Location    string     `json:"location"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

type postJobResponse struct {
	ID string `json:"id"`
}

type ingestJobRequest struct {
	SourceURL   string     `json:"source_url"   validate:"required,url"`
	Title       string     `json:"title"        validate:"required"`
	Description string     `json:"description"  validate:"required"`
	CompanyName string     `json:"company_name"`
	JobType     string     `json:"job_type"`
	RemoteType  string     `json:"remote_type"`
	Location    string     `json:"location"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

type ingestJobResponse struct {
	ID      string `json:"id"`
	Created bool   `json:"created"`
}

// jobResponse is the transport shape of a job posting. Hidden jobs are
// filtered before this layer, so the flag is not exposed.
type jobResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CompanyName string     `json:"company_name"`
	IsAdminPost bool       `json:"is_admin_post"`
	JobType     string     `json:"job_type,omitempty"`
	RemoteType  string     `json:"remote_type,omitempty"`
	Location    string     `json:"location,omitempty"`
	ViewCount   int64      `json:"view_count"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listJobsResponse struct {
	Data       []jobResponse      `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type expireJobsResponse struct {
	Hidden int64 `json:"hidden"`
}
