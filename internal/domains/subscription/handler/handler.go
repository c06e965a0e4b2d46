package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"readgrid-backend/internal/domains/subscription/gateway/wayforpay"
	"readgrid-backend/internal/domains/subscription/model"
	"readgrid-backend/internal/domains/subscription/service"
	"readgrid-backend/internal/shared/middleware"
	"readgrid-backend/internal/shared/response"
)

type SubscriptionHandler struct {
	subscriptionService service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionService: subscriptionService,
	}
}

// CreatePayment builds the WayForPay checkout payload
// POST /api/v1/payment/create
func (h *SubscriptionHandler) CreatePayment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	checkout, err := h.subscriptionService.CreatePayment(c.Request.Context(), userID, &req)
	if err != nil {
		statusCode, errCode := mapSubscriptionError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, checkout)
}

// Callback receives the gateway's payment notification. The body is
// answered directly, not wrapped in the API envelope: the gateway
// expects the bare acknowledgement shape.
// POST /api/v1/payment/callback
func (h *SubscriptionHandler) Callback(c *gin.Context) {
	var cb wayforpay.Callback
	if err := c.ShouldBindJSON(&cb); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	ack, err := h.subscriptionService.HandleCallback(c.Request.Context(), &cb)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, ack)
}

// DemoActivate grants premium without the gateway
// POST /api/v1/payment/demo-activate
func (h *SubscriptionHandler) DemoActivate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	status, err := h.subscriptionService.DemoActivate(c.Request.Context(), userID, &req)
	if err != nil {
		statusCode, errCode := mapSubscriptionError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, status)
}

// Cancel drops the active subscription
// POST /api/v1/subscription/cancel
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	if err := h.subscriptionService.Cancel(c.Request.Context(), userID); err != nil {
		statusCode, errCode := mapSubscriptionError(err)
		response.ErrorResponse(c, statusCode, errCode, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Subscription cancelled",
	})
}

// mapSubscriptionError maps subscription error to HTTP status code
func mapSubscriptionError(err error) (int, string) {
	if subErr, ok := err.(*model.SubscriptionError); ok {
		switch subErr.Code {
		case model.ErrCodeNoActiveSubscription, model.ErrCodeInvalidPlan:
			return http.StatusBadRequest, subErr.Code
		case model.ErrCodeInvalidSignature:
			return http.StatusForbidden, subErr.Code
		case model.ErrCodeUserNotFound:
			return http.StatusNotFound, subErr.Code
		default:
			return http.StatusInternalServerError, "INTERNAL_ERROR"
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}
