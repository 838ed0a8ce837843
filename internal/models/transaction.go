package models

import "time"

// TransactionType represents the type of transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a financial transaction owned by exactly one
// workspace. Amount is stored in cents so summation stays exact. Rows are
// immutable once created; deletion is permanent.
type Transaction struct {
	Base
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	WorkspaceID     uint            `gorm:"not null;index" json:"workspace_id"`
	Type            TransactionType `gorm:"not null" json:"type"`
	Amount          int64           `gorm:"type:bigint;not null" json:"amount"`
	Description     string          `gorm:"not null" json:"description"`
	Category        string          `gorm:"not null" json:"category"`
	PaymentMethodID *uint           `json:"payment_method_id,omitempty"`
	Date            time.Time       `gorm:"not null;index" json:"date"`

	Workspace     Workspace      `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	PaymentMethod *PaymentMethod `gorm:"foreignKey:PaymentMethodID" json:"payment_method,omitempty"`
}
