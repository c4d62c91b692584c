package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/linkroom/linkroom-api/internal/core/ports"
)

// ApplicationHandler handles HTTP requests for job applications. Reads go
// through the per-account listing cache; writes invalidate it downstream in
// the service.
type ApplicationHandler struct {
	service ports.ApplicationService
	cache   ports.ApplicationListingCache
	logger  zerolog.Logger
}

func NewApplicationHandler(service ports.ApplicationService, cache ports.ApplicationListingCache, logger zerolog.Logger) *ApplicationHandler {
	return &ApplicationHandler{service: service, cache: cache, logger: logger}
}

type applyRequest struct {
	JobID         string `json:"job_id"          validate:"required"`
	CoverLetter   string `json:"cover_letter"    validate:"max=5000"`
	CVURLOverride string `json:"cv_url_override" validate:"omitempty,url"`
}

type applyResponse struct {
	Success       bool   `json:"success"`
	ApplicationID string `json:"application_id"`
}

type withdrawResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

type applicationResponse struct {
	ID          string     `json:"id"`
	JobID       string     `json:"job_id"`
	Status      string     `json:"status"`
	CoverLetter string     `json:"cover_letter,omitempty"`
	WithdrawnAt *time.Time `json:"withdrawn_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type listApplicationsResponse struct {
	Data []applicationResponse `json:"data"`
}

// Apply handles POST /v1/applications.
//
// @Summary      Apply to a job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      applyRequest  true  "Application details"
// @Success      201   {object}  applyResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/applications [post]
func (h *ApplicationHandler) Apply(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req applyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.service.Apply(c.Request().Context(), ports.ApplyInput{
		ActorID:       claims.UserID,
		ActorRole:     claims.Role,
		JobID:         req.JobID,
		CoverLetter:   req.CoverLetter,
		CVURLOverride: req.CVURLOverride,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, applyResponse{Success: result.Success, ApplicationID: result.ApplicationID})
}

// Withdraw handles DELETE /v1/applications/:id.
//
// @Summary      Withdraw an application
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application id"
// @Success      200  {object}  withdrawResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/applications/{id} [delete]
func (h *ApplicationHandler) Withdraw(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	result, err := h.service.Withdraw(c.Request().Context(), ports.WithdrawInput{
		ActorID:       claims.UserID,
		ApplicationID: c.Param("id"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, withdrawResponse{Success: result.Success, Status: string(result.Status)})
}

// ListMine handles GET /v1/applications.
//
// @Summary      List the caller's applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listApplicationsResponse
// @Router       /v1/applications [get]
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	if cached, err := h.cache.GetListing(ctx, claims.UserID); err == nil && cached != nil {
		return c.JSONBlob(http.StatusOK, cached)
	} else if err != nil {
		h.logger.Warn().Err(err).Str("user_id", claims.UserID).Msg("listing cache read failed")
	}

	apps, err := h.service.ListMine(ctx, claims.UserID)
	if err != nil {
		return err
	}

	resp := listApplicationsResponse{Data: make([]applicationResponse, 0, len(apps))}
	for _, a := range apps {
		resp.Data = append(resp.Data, applicationResponse{
			ID:          a.ID,
			JobID:       a.JobID,
			Status:      string(a.Status),
			CoverLetter: a.CoverLetter,
			WithdrawnAt: a.WithdrawnAt,
			CreatedAt:   a.CreatedAt,
		})
	}

	if payload, err := json.Marshal(resp); err == nil {
		if err := h.cache.SetListing(ctx, claims.UserID, payload); err != nil {
			h.logger.Warn().Err(err).Str("user_id", claims.UserID).Msg("listing cache write failed")
		}
	}

	return c.JSON(http.StatusOK, resp)
}
