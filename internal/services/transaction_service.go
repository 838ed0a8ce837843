package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"ledgerspace/internal/cache"
	apperrors "ledgerspace/internal/errors"
	"ledgerspace/internal/models"
	"ledgerspace/internal/stats"
)

// transactionService handles transaction mutations and listings.
type transactionService struct {
	db               *gorm.DB
	workspaceService WorkspaceServicer
	auditService     AuditServicer
	txCache          *cache.TransactionCache
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, workspaceService WorkspaceServicer, auditService AuditServicer, txCache *cache.TransactionCache) TransactionServicer {
	return &transactionService{
		db:               db,
		workspaceService: workspaceService,
		auditService:     auditService,
		txCache:          txCache,
	}
}

// AddTransaction validates and persists a transaction against the resolved
// workspace. When input.WorkspaceID is nil the active workspace is used,
// provisioning a personal workspace first if the user has none. The
// in-memory view is never updated optimistically: a persist failure leaves
// no trace.
func (s *transactionService) AddTransaction(userID uint, input TransactionInput) (*models.Transaction, error) {
	if input.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if input.Description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if input.Category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if input.Type != models.TransactionTypeIncome && input.Type != models.TransactionTypeExpense {
		return nil, apperrors.ErrInvalidTransactionType
	}

	var workspaceID uint
	if input.WorkspaceID != nil {
		if err := s.workspaceService.RequireMember(userID, *input.WorkspaceID); err != nil {
			return nil, err
		}
		workspaceID = *input.WorkspaceID
	} else {
		workspace, err := s.workspaceService.EnsureWorkspace(userID)
		if err != nil {
			return nil, err
		}
		workspaceID = workspace.ID
	}

	if input.PaymentMethodID != nil {
		var count int64
		if err := s.db.Model(&models.PaymentMethod{}).
			Where("id = ? AND workspace_id = ?", *input.PaymentMethodID, workspaceID).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrPaymentMethodNotFound
		}
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	transaction := &models.Transaction{
		UserID:          userID,
		WorkspaceID:     workspaceID,
		Type:            input.Type,
		Amount:          input.Amount,
		Description:     input.Description,
		Category:        input.Category,
		PaymentMethodID: input.PaymentMethodID,
		Date:            date,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.txCache.Invalidate(workspaceID)
	s.auditService.Log(userID, workspaceID, transaction.ID, "create", snapshot(transaction))

	return transaction, nil
}

// DeleteTransaction permanently removes a transaction from a workspace the
// caller belongs to. The audit entry keeps a snapshot of the deleted row;
// there is no undo. An unknown id changes nothing.
func (s *transactionService) DeleteTransaction(userID, transactionID uint) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.txCache.Invalidate(transaction.WorkspaceID)
	s.auditService.Log(userID, transaction.WorkspaceID, transaction.ID, "delete", snapshot(transaction))

	return nil
}

// GetTransactionByID retrieves a transaction from a workspace the caller
// belongs to. A transaction in a foreign workspace reports not-found
// rather than forbidden, so ids cannot be probed.
func (s *transactionService) GetTransactionByID(userID, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.First(&transaction, transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.workspaceService.RequireMember(userID, transaction.WorkspaceID); err != nil {
		return nil, apperrors.ErrTransactionNotFound
	}
	return &transaction, nil
}

// ListWorkspaceTransactions returns the workspace's full transaction list,
// date-descending, with optional type/month filters applied in memory by
// the aggregation engine. The full list is cached per workspace and
// invalidated on mutation.
func (s *transactionService) ListWorkspaceTransactions(userID, workspaceID uint, filter ListFilter) ([]models.Transaction, error) {
	if err := s.workspaceService.RequireMember(userID, workspaceID); err != nil {
		return nil, err
	}

	txns, err := s.loadWorkspaceTransactions(workspaceID)
	if err != nil {
		return nil, err
	}
	return stats.Filter(txns, filter.Type, filter.Month), nil
}

// loadWorkspaceTransactions reads through the per-workspace cache.
func (s *transactionService) loadWorkspaceTransactions(workspaceID uint) ([]models.Transaction, error) {
	if txns, found := s.txCache.Get(workspaceID); found {
		return txns, nil
	}

	var txns []models.Transaction
	if err := s.db.Where("workspace_id = ?", workspaceID).
		Order("date DESC").
		Find(&txns).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.txCache.Set(workspaceID, txns)
	return txns, nil
}

// snapshot captures the row fields recorded in the audit trail.
func snapshot(tx *models.Transaction) map[string]interface{} {
	details := map[string]interface{}{
		"type":         tx.Type,
		"amount":       tx.Amount,
		"description":  tx.Description,
		"category":     tx.Category,
		"date":         tx.Date,
		"workspace_id": tx.WorkspaceID,
	}
	if tx.PaymentMethodID != nil {
		details["payment_method_id"] = *tx.PaymentMethodID
	}
	return details
}
