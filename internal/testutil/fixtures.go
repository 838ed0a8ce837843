package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"ledgerspace/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Test",
		LastName:  "User",
		IsActive:  true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestWorkspace creates a workspace with a unique invite code and the
// given user as owner member.
func CreateTestWorkspace(t *testing.T, db *gorm.DB, ownerID uint) *models.Workspace {
	t.Helper()

	n := nextID()
	workspace := &models.Workspace{
		Name:      fmt.Sprintf("Test Workspace %d", n),
		Code:      fmt.Sprintf("T%05d", n%100000),
		CreatedBy: ownerID,
	}
	if err := db.Create(workspace).Error; err != nil {
		t.Fatalf("failed to create test workspace: %v", err)
	}

	member := &models.WorkspaceMember{
		WorkspaceID: workspace.ID,
		UserID:      ownerID,
		Role:        models.MemberRoleOwner,
		JoinedAt:    time.Now(),
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create owner membership: %v", err)
	}
	return workspace
}

// AddTestMember adds a user to a workspace with the member role.
func AddTestMember(t *testing.T, db *gorm.DB, workspaceID, userID uint) *models.WorkspaceMember {
	t.Helper()

	member := &models.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        models.MemberRoleMember,
		JoinedAt:    time.Now(),
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create test membership: %v", err)
	}
	return member
}

// CreateTestTransaction creates a transaction of the given type and amount
// (in cents) dated now.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, workspaceID uint, txType models.TransactionType, amount int64) *models.Transaction {
	t.Helper()
	return CreateTestTransactionAt(t, db, userID, workspaceID, txType, amount, time.Now())
}

// CreateTestTransactionAt creates a transaction with an explicit date.
func CreateTestTransactionAt(t *testing.T, db *gorm.DB, userID, workspaceID uint, txType models.TransactionType, amount int64, date time.Time) *models.Transaction {
	t.Helper()

	n := nextID()
	tx := &models.Transaction{
		UserID:      userID,
		WorkspaceID: workspaceID,
		Type:        txType,
		Amount:      amount,
		Description: fmt.Sprintf("Test Transaction %d", n),
		Category:    "Other",
		Date:        date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestPaymentMethod creates a payment method in the workspace.
func CreateTestPaymentMethod(t *testing.T, db *gorm.DB, userID, workspaceID uint, name string) *models.PaymentMethod {
	t.Helper()

	method := &models.PaymentMethod{
		UserID:      userID,
		WorkspaceID: workspaceID,
		Name:        name,
	}
	if err := db.Create(method).Error; err != nil {
		t.Fatalf("failed to create test payment method: %v", err)
	}
	return method
}
