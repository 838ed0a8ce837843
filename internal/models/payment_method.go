package models

// PaymentMethod is a named payment instrument scoped to a workspace,
// created on demand from the transaction entry form. Never updated or
// deleted; names are unique per workspace (case-insensitive).
type PaymentMethod struct {
	Base
	UserID      uint   `gorm:"not null" json:"user_id"`
	WorkspaceID uint   `gorm:"not null;index" json:"workspace_id"`
	Name        string `gorm:"not null" json:"name"`
}
