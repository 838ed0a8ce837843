package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "ledgerspace/internal/errors"
	"ledgerspace/internal/models"
	"ledgerspace/internal/services"
)

// PaymentMethodHandler handles payment-method requests
type PaymentMethodHandler struct {
	paymentMethodService services.PaymentMethodServicer
}

// NewPaymentMethodHandler creates a new PaymentMethodHandler
func NewPaymentMethodHandler(paymentMethodService services.PaymentMethodServicer) *PaymentMethodHandler {
	return &PaymentMethodHandler{paymentMethodService: paymentMethodService}
}

// CreatePaymentMethodRequest represents the payment-method creation payload
type CreatePaymentMethodRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// PaymentMethodResponse represents a payment method in responses
type PaymentMethodResponse struct {
	ID          uint   `json:"id"`
	WorkspaceID uint   `json:"workspace_id"`
	Name        string `json:"name"`
}

// Create adds a payment method to a workspace
// @Summary     Add a payment method
// @Description Add a named payment method; asking for an existing name returns the existing method
// @Tags        payment-methods
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Workspace ID"
// @Param       request body CreatePaymentMethodRequest true "Payment method data"
// @Success     201 {object} PaymentMethodResponse "Payment method"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a member"
// @Router      /workspaces/{id}/payment-methods [post]
func (h *PaymentMethodHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	workspaceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	method, err := h.paymentMethodService.AddPaymentMethod(userID, workspaceID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"payment_method": method})
}

// List returns a workspace's payment methods
// @Summary     List payment methods
// @Description List a workspace's payment methods, ordered by name
// @Tags        payment-methods
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Workspace ID"
// @Success     200 {array} PaymentMethodResponse "Payment methods"
// @Failure     400 {object} ErrorResponse "Invalid workspace ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a member"
// @Router      /workspaces/{id}/payment-methods [get]
func (h *PaymentMethodHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	workspaceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	methods, err := h.paymentMethodService.ListPaymentMethods(userID, workspaceID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if methods == nil {
		methods = []models.PaymentMethod{}
	}

	c.JSON(http.StatusOK, gin.H{"payment_methods": methods})
}
