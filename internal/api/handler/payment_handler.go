package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/linkroom/linkroom-api/internal/core/domain"
	"github.com/linkroom/linkroom-api/internal/core/ports"
)

// PaymentHandler handles HTTP requests for the payment workflow.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type createPaymentRequest struct {
	OrgID  string `json:"org_id"  validate:"required"`
	PlanID string `json:"plan_id" validate:"required"`
	UserID string `json:"user_id"`
}

type createPaymentResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyPaymentResponse struct {
	Success    bool               `json:"success"`
	Settlement *domain.Settlement `json:"settlement"`
}

// Create handles POST /v1/payments.
//
// @Summary      Initiate a payment for a plan
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPaymentRequest  true  "Purchase details"
// @Success      201   {object}  createPaymentResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /v1/payments [post]
func (h *PaymentHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	result, err := h.service.CreatePayment(c.Request().Context(), ports.CreatePaymentInput{
		ActorID: claims.UserID,
		OrgID:   req.OrgID,
		PlanID:  req.PlanID,
		UserID:  req.UserID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createPaymentResponse{
		AuthorizationURL: result.AuthorizationURL,
		AccessCode:       result.AccessCode,
		Reference:        result.Reference,
	})
}

// Verify handles GET /v1/payments/verify/:reference.
//
// @Summary      Verify a payment and activate its settlement
// @Tags         payments
// @Produce      json
// @Security     BearerAuth
// @Param        reference  path      string  true  "Processor reference"
// @Success      200        {object}  verifyPaymentResponse
// @Failure      404        {object}  map[string]string
// @Failure      422        {object}  map[string]string
// @Failure      502        {object}  map[string]string
// @Router       /v1/payments/verify/{reference} [get]
func (h *PaymentHandler) Verify(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	result, err := h.service.VerifyPayment(c.Request().Context(), ports.VerifyPaymentInput{
		ActorID:   claims.UserID,
		Reference: c.Param("reference"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, verifyPaymentResponse{Success: result.Success, Settlement: result.Settlement})
}
