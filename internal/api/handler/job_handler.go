package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/linkroom/linkroom-api/internal/core/domain"
	"github.com/linkroom/linkroom-api/internal/core/ports"
)

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	service      ports.JobService
	jobRetention time.Duration
}

func NewJobHandler(service ports.JobService, jobRetention time.Duration) *JobHandler {
	return &JobHandler{service: service, jobRetention: jobRetention}
}

// Post handles POST /v1/jobs.
//
// @Summary      Post a job (consumes one credit)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postJobRequest  true  "Job details"
// @Success      201   {object}  postJobResponse
// @Failure      400   {object}  map[string]string
// @Failure      402   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/jobs [post]
func (h *JobHandler) Post(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req postJobRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.service.PostJob(c.Request().Context(), ports.PostJobInput{
		ActorID:     claims.UserID,
		ActorRole:   claims.Role,
		ActorOrgID:  claims.OrgID,
		Title:       req.Title,
		Description: req.Description,
		CompanyName: req.CompanyName,
		JobType:     req.JobType,
		RemoteType:  req.RemoteType,
		Location:    req.Location,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, postJobResponse{ID: result.ID})
}

// AdminPost handles POST /v1/admin/jobs.
//
// @Summary      Post an ad-eligible job without consuming credits
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      postJobRequest  true  "Job details"
// @Success      201   {object}  postJobResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/admin/jobs [post]
func (h *JobHandler) AdminPost(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req postJobRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.service.AdminPostJob(c.Request().Context(), ports.PostJobInput{
		ActorID:     claims.UserID,
		ActorRole:   claims.Role,
		Title:       req.Title,
		Description: req.Description,
		CompanyName: req.CompanyName,
		JobType:     req.JobType,
		RemoteType:  req.RemoteType,
		Location:    req.Location,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, postJobResponse{ID: result.ID})
}

// Get handles GET /v1/jobs/:id.
//
// @Summary      Get a job by id
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  jobResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.service.GetJob(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobResponse(job))
}

// List handles GET /v1/jobs.
//
// @Summary      List published jobs
// @Tags         jobs
// @Produce      json
// @Param        job_type     query     string  false  "Filter by job type"
// @Param        remote_type  query     string  false  "Filter by remote type"
// @Param        search       query     string  false  "Partial match on title or company"
// @Param        page         query     int     false  "Page (1-based)"
// @Param        limit        query     int     false  "Page size (max 100)"
// @Success      200  {object}  listJobsResponse
// @Router       /v1/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListJobs(c.Request().Context(), ports.ListJobsInput{
		JobType:    c.QueryParam("job_type"),
		RemoteType: c.QueryParam("remote_type"),
		Search:     c.QueryParam("search"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return err
	}

	items := make([]jobResponse, 0, len(result.Items))
	for _, j := range result.Items {
		items = append(items, toJobResponse(j))
	}

	return c.JSON(http.StatusOK, listJobsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// TrackView handles POST /v1/jobs/:id/view.
//
// @Summary      Record a job detail view
// @Tags         jobs
// @Param        id   path  string  true  "Job id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/jobs/{id}/view [post]
func (h *JobHandler) TrackView(c echo.Context) error {
	if err := h.service.TrackView(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Ingest handles POST /v1/ingest/jobs (API-key guarded).
//
// @Summary      Ingest an externally sourced job
// @Tags         ingest
// @Accept       json
// @Produce      json
// @Param        body  body      ingestJobRequest  true  "Scraped job"
// @Success      200   {object}  ingestJobResponse
// @Success      201   {object}  ingestJobResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/ingest/jobs [post]
func (h *JobHandler) Ingest(c echo.Context) error {
	var req ingestJobRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.service.IngestJob(c.Request().Context(), ports.IngestJobInput{
		SourceURL:   req.SourceURL,
		Title:       req.Title,
		Description: req.Description,
		CompanyName: req.CompanyName,
		JobType:     req.JobType,
		RemoteType:  req.RemoteType,
		Location:    req.Location,
		ExpiresAt:   req.ExpiresAt,
	})
	if err != nil {
		return err
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	return c.JSON(status, ingestJobResponse{ID: result.ID, Created: result.Created})
}

// Expire handles POST /v1/internal/expire-jobs (admin only). It triggers the
// same sweep the scheduler runs, for manual or external cron invocation.
//
// @Summary      Hide stale and expired jobs
// @Tags         internal
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  expireJobsResponse
// @Failure      403  {object}  map[string]string
// @Router       /v1/internal/expire-jobs [post]
func (h *JobHandler) Expire(c echo.Context) error {
	hidden, err := h.service.ExpireJobs(c.Request().Context(), time.Now().UTC(), h.jobRetention)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, expireJobsResponse{Hidden: hidden})
}

func toJobResponse(j *domain.Job) jobResponse {
	return jobResponse{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		CompanyName: j.CompanyName,
		IsAdminPost: j.IsAdminPost,
		JobType:     j.JobType,
		RemoteType:  j.RemoteType,
		Location:    j.Location,
		ViewCount:   j.ViewCount,
		PublishedAt: j.PublishedAt,
		ExpiresAt:   j.ExpiresAt,
		CreatedAt:   j.CreatedAt,
	}
}
