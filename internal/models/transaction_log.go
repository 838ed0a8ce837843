package models

// TransactionLog records transaction mutations for traceability, not
// recoverability: Details holds a JSON snapshot of the affected row, but
// there is no undo.
type TransactionLog struct {
	Base
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	WorkspaceID   uint   `gorm:"not null;index" json:"workspace_id"`
	TransactionID uint   `gorm:"not null" json:"transaction_id"`
	Action        string `gorm:"not null" json:"action"`
	Details       string `json:"details,omitempty"`
}
