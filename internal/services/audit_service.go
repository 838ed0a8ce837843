package services

import (
	"encoding/json"

	"gorm.io/gorm"

	apperrors "ledgerspace/internal/errors"
	"ledgerspace/internal/logger"
	"ledgerspace/internal/models"
	"ledgerspace/internal/pagination"
)

// auditService records the transaction audit trail.
type auditService struct {
	db               *gorm.DB
	workspaceService WorkspaceServicer
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB, workspaceService WorkspaceServicer) AuditServicer {
	return &auditService{db: db, workspaceService: workspaceService}
}

// Log records a transaction mutation with a snapshot of the affected row.
// Errors are logged but never propagate to avoid disrupting the main
// operation.
func (s *auditService) Log(userID, workspaceID, transactionID uint, action string, details map[string]interface{}) {
	var detailsJSON string
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			logger.Named("audit").Errorw("failed to marshal transaction log details", "error", err, "action", action)
			detailsJSON = "{}"
		} else {
			detailsJSON = string(data)
		}
	}

	entry := &models.TransactionLog{
		UserID:        userID,
		WorkspaceID:   workspaceID,
		TransactionID: transactionID,
		Action:        action,
		Details:       detailsJSON,
	}

	if err := s.db.Create(entry).Error; err != nil {
		logger.Named("audit").Errorw("failed to create transaction log entry",
			"error", err,
			"user_id", userID,
			"workspace_id", workspaceID,
			"transaction_id", transactionID,
			"action", action,
		)
	}
}

// ListWorkspaceLogs returns a paginated view of a workspace's audit trail,
// newest first. Members only.
func (s *auditService) ListWorkspaceLogs(userID, workspaceID uint, page pagination.PageRequest) (*pagination.PageResponse[models.TransactionLog], error) {
	if err := s.workspaceService.RequireMember(userID, workspaceID); err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.TransactionLog{}).Where("workspace_id = ?", workspaceID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var logs []models.TransactionLog
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&logs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(logs, page.Page, page.PageSize, totalItems)
	return &result, nil
}
