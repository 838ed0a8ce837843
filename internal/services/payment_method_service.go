package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "ledgerspace/internal/errors"
	"ledgerspace/internal/models"
)

// paymentMethodService handles payment-method business logic.
type paymentMethodService struct {
	db               *gorm.DB
	workspaceService WorkspaceServicer
}

// NewPaymentMethodService creates a new PaymentMethodServicer.
func NewPaymentMethodService(db *gorm.DB, workspaceService WorkspaceServicer) PaymentMethodServicer {
	return &paymentMethodService{db: db, workspaceService: workspaceService}
}

// AddPaymentMethod creates a payment method in the workspace. Creation is
// idempotent by case-insensitive name: asking for an existing name returns
// the existing method instead of a duplicate.
func (s *paymentMethodService) AddPaymentMethod(userID, workspaceID uint, name string) (*models.PaymentMethod, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "payment method name is required")
	}

	if err := s.workspaceService.RequireMember(userID, workspaceID); err != nil {
		return nil, err
	}

	var existing models.PaymentMethod
	err := s.db.Where("workspace_id = ? AND LOWER(name) = ?", workspaceID, strings.ToLower(name)).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	method := &models.PaymentMethod{
		UserID:      userID,
		WorkspaceID: workspaceID,
		Name:        name,
	}
	if err := s.db.Create(method).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent create won the race; return the surviving row.
			if err := s.db.Where("workspace_id = ? AND LOWER(name) = ?", workspaceID, strings.ToLower(name)).
				First(&existing).Error; err == nil {
				return &existing, nil
			}
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return method, nil
}

// ListPaymentMethods returns the workspace's payment methods, name
// ascending. Members only.
func (s *paymentMethodService) ListPaymentMethods(userID, workspaceID uint) ([]models.PaymentMethod, error) {
	if err := s.workspaceService.RequireMember(userID, workspaceID); err != nil {
		return nil, err
	}

	var methods []models.PaymentMethod
	if err := s.db.Where("workspace_id = ?", workspaceID).
		Order("name ASC").
		Find(&methods).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return methods, nil
}
