package models

import "time"

// MemberRole represents a member's role within a workspace.
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleMember MemberRole = "member"
)

// WorkspaceMember links a user to a workspace. At most one row exists per
// (workspace, user) pair; the unique index backs the idempotent join path.
type WorkspaceMember struct {
	Base
	WorkspaceID uint       `gorm:"not null;uniqueIndex:idx_workspace_user" json:"workspace_id"`
	UserID      uint       `gorm:"not null;uniqueIndex:idx_workspace_user" json:"user_id"`
	Role        MemberRole `gorm:"not null;default:'member'" json:"role"`
	JoinedAt    time.Time  `gorm:"not null" json:"joined_at"`

	Workspace Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
