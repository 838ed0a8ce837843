package models

import "time"

// User represents a registered user. Profile display fields (first name,
// last name, email) are what other workspace members get to see.
type User struct {
	Base
	Email               string     `gorm:"uniqueIndex;not null" json:"email"`
	Password            string     `gorm:"not null" json:"-"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	IsActive            bool       `gorm:"default:true" json:"is_active"`
	RefreshTokenHash    string     `gorm:"size:64" json:"-"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`

	// LastWorkspaceID persists the active workspace across sessions. It may
	// point at a workspace the user has since left; resolution falls back to
	// the newest-created membership.
	LastWorkspaceID *uint `json:"last_workspace_id,omitempty"`

	Memberships  []WorkspaceMember `gorm:"foreignKey:UserID" json:"memberships,omitempty"`
	Transactions []Transaction     `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
}
