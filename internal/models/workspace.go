package models

// Workspace is a shared space that owns transactions and payment methods.
// Code is the short invite code members use to join; unique across all
// workspaces.
type Workspace struct {
	Base
	Name      string `gorm:"not null" json:"name"`
	Code      string `gorm:"uniqueIndex;not null;size:6" json:"code"`
	CreatedBy uint   `gorm:"not null" json:"created_by"`

	Members        []WorkspaceMember `gorm:"foreignKey:WorkspaceID" json:"members,omitempty"`
	Transactions   []Transaction     `gorm:"foreignKey:WorkspaceID" json:"transactions,omitempty"`
	PaymentMethods []PaymentMethod   `gorm:"foreignKey:WorkspaceID" json:"payment_methods,omitempty"`
}
