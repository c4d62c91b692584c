package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/linkroom/linkroom-api/internal/core/domain"
	"github.com/linkroom/linkroom-api/internal/core/service"
)

// AlertHandler handles HTTP requests for job alerts.
type AlertHandler struct {
	service *service.AlertService
}

func NewAlertHandler(service *service.AlertService) *AlertHandler {
	return &AlertHandler{service: service}
}

type createAlertRequest struct {
	Email      string `json:"email"       validate:"omitempty,email"`
	JobType    string `json:"job_type"    validate:"omitempty,oneof=full_time part_time contract internship"`
	RemoteType string `json:"remote_type" validate:"omitempty,oneof=remote hybrid onsite"`
	Frequency  string `json:"frequency"   validate:"required,oneof=daily weekly"`
}

type createAlertResponse struct {
	ID string `json:"id"`
}

// Create handles POST /v1/alerts.
//
// @Summary      Create a job alert
// @Tags         alerts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAlertRequest  true  "Alert criteria"
// @Success      201   {object}  createAlertResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/alerts [post]
func (h *AlertHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createAlertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	email := req.Email
	if email == "" {
		email = claims.Email
	}

	alert, err := h.service.CreateAlert(c.Request().Context(), claims.UserID, claims.Role, email,
		domain.AlertCriteria{JobType: req.JobType, RemoteType: req.RemoteType}, req.Frequency)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createAlertResponse{ID: alert.ID})
}
