package services

import (
	"time"

	"ledgerspace/internal/models"
	"ledgerspace/internal/pagination"
	"ledgerspace/internal/stats"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// CreateWorkspaceResult is the outcome of creating a workspace. The
// workspace insert and the owner-membership insert are separate writes;
// OwnerAdded is false when the second write failed and the caller should
// surface a warning (the membership is repairable via the join path).
type CreateWorkspaceResult struct {
	Workspace  *models.Workspace
	OwnerAdded bool
}

// MemberInfo is a membership row joined with the member's profile
// display fields.
type MemberInfo struct {
	ID          uint              `json:"id"`
	WorkspaceID uint              `json:"workspace_id"`
	UserID      uint              `json:"user_id"`
	Role        models.MemberRole `json:"role"`
	JoinedAt    time.Time         `json:"joined_at"`
	FirstName   string            `json:"first_name"`
	LastName    string            `json:"last_name"`
	Email       string            `json:"email"`
}

// WorkspaceServicer defines the contract for workspace membership logic.
type WorkspaceServicer interface {
	CreateWorkspace(userID uint, name string) (*CreateWorkspaceResult, error)
	CreatePersonalWorkspace(userID uint) (*models.Workspace, error)
	EnsureWorkspace(userID uint) (*models.Workspace, error)
	ListWorkspaces(userID uint) ([]models.Workspace, error)
	JoinWorkspace(userID uint, code string) (*models.Workspace, error)
	SwitchWorkspace(userID, workspaceID uint) (*models.Workspace, error)
	ActiveWorkspace(userID uint) (*models.Workspace, error)
	ListMembers(userID, workspaceID uint) ([]MemberInfo, error)
	RequireMember(userID, workspaceID uint) error
}

// TransactionInput holds the fields for creating a transaction.
// WorkspaceID nil means "the caller's active workspace", provisioning a
// personal workspace first when the user has none.
type TransactionInput struct {
	WorkspaceID     *uint
	Type            models.TransactionType
	Amount          int64
	Description     string
	Category        string
	PaymentMethodID *uint
	Date            time.Time
}

// ListFilter holds the optional in-memory filters for transaction listings.
type ListFilter struct {
	Type  *models.TransactionType
	Month string
}

// TransactionServicer defines the contract for transaction mutations and
// listings.
type TransactionServicer interface {
	AddTransaction(userID uint, input TransactionInput) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID uint) error
	GetTransactionByID(userID, transactionID uint) (*models.Transaction, error)
	ListWorkspaceTransactions(userID, workspaceID uint, filter ListFilter) ([]models.Transaction, error)
}

// PaymentMethodServicer defines the contract for payment-method logic.
type PaymentMethodServicer interface {
	AddPaymentMethod(userID, workspaceID uint, name string) (*models.PaymentMethod, error)
	ListPaymentMethods(userID, workspaceID uint) ([]models.PaymentMethod, error)
}

// WorkspaceSummary contains the aggregate balances for a workspace.
type WorkspaceSummary struct {
	Balance      int64 `json:"balance"`
	TotalIncome  int64 `json:"total_income"`
	TotalExpense int64 `json:"total_expense"`
	Transactions int   `json:"transactions"`
}

// StatsServicer answers aggregation queries over a workspace's full
// transaction list.
type StatsServicer interface {
	Summary(userID, workspaceID uint) (*WorkspaceSummary, error)
	Categories(userID, workspaceID uint, txType models.TransactionType) ([]stats.CategoryTotal, error)
	Monthly(userID, workspaceID uint, monthsBack int) ([]stats.MonthBucket, error)
}

// AuditServicer defines the contract for the transaction audit trail.
type AuditServicer interface {
	Log(userID, workspaceID, transactionID uint, action string, details map[string]interface{})
	ListWorkspaceLogs(userID, workspaceID uint, page pagination.PageRequest) (*pagination.PageResponse[models.TransactionLog], error)
}
