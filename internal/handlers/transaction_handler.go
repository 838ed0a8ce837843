package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "ledgerspace/internal/errors"
	"ledgerspace/internal/models"
	"ledgerspace/internal/services"
)

// TransactionHandler handles transaction-related requests
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the transaction creation payload.
// Amount is in cents. WorkspaceID is optional; when omitted the active
// workspace is used, provisioning a personal one if the user has none.
type CreateTransactionRequest struct {
	WorkspaceID     *uint      `json:"workspace_id"`
	Type            string     `json:"type" binding:"required,transaction_type"`
	Amount          int64      `json:"amount" binding:"required,gt=0"`
	Description     string     `json:"description" binding:"required,min=1,max=255"`
	Category        string     `json:"category" binding:"required,min=1,max=100"`
	PaymentMethodID *uint      `json:"payment_method_id"`
	Date            *time.Time `json:"date"`
}

// TransactionResponse represents a transaction in responses
type TransactionResponse struct {
	ID              uint      `json:"id"`
	WorkspaceID     uint      `json:"workspace_id"`
	UserID          uint      `json:"user_id"`
	Type            string    `json:"type"`
	Amount          int64     `json:"amount"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	PaymentMethodID *uint     `json:"payment_method_id,omitempty"`
	Date            time.Time `json:"date"`
}

// Create handles transaction creation
// @Summary     Record a transaction
// @Description Record an income or expense transaction in a workspace
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction data"
// @Success     201 {object} TransactionResponse "Transaction recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a workspace member"
// @Failure     404 {object} ErrorResponse "Payment method not found"
// @Router      /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.TransactionInput{
		WorkspaceID:     req.WorkspaceID,
		Type:            models.TransactionType(req.Type),
		Amount:          req.Amount,
		Description:     req.Description,
		Category:        req.Category,
		PaymentMethodID: req.PaymentMethodID,
	}
	if req.Date != nil {
		input.Date = *req.Date
	}

	transaction, err := h.transactionService.AddTransaction(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// Get returns a single transaction
// @Summary     Get a transaction
// @Description Get a transaction from a workspace the user belongs to
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     200 {object} TransactionResponse "Transaction"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// Delete removes a transaction
// @Summary     Delete a transaction
// @Description Permanently delete a transaction; the audit trail keeps a snapshot
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Transaction ID"
// @Success     204 "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// listTransactionsQuery represents the optional listing filters
type listTransactionsQuery struct {
	Type  string `form:"type" binding:"omitempty,transaction_type"`
	Month string `form:"month" binding:"omitempty,year_month"`
}

// ListByWorkspace lists a workspace's transactions
// @Summary     List workspace transactions
// @Description List a workspace's transactions, newest date first, with optional type/month filters
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Workspace ID"
// @Param       type query string false "Filter by type (income or expense)"
// @Param       month query string false "Filter by calendar month (YYYY-MM)"
// @Success     200 {array} TransactionResponse "Transactions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a member"
// @Router      /workspaces/{id}/transactions [get]
func (h *TransactionHandler) ListByWorkspace(c *gin.Context) {
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

	var query listTransactionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.ListFilter{Month: query.Month}
	if query.Type != "" {
		txType := models.TransactionType(query.Type)
		filter.Type = &txType
	}

	transactions, err := h.transactionService.ListWorkspaceTransactions(userID, workspaceID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}
