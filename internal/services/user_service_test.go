package services

import (
	"testing"
	"time"

	"ledgerspace/internal/models"
	"ledgerspace/internal/testutil"
)

func TestCreateUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewUserService(db)

	user, err := svc.CreateUser("Alice@Example.com", "secret123", "Alice", "Smith")
	testutil.AssertNoError(t, err)

	if user.Email != "alice@example.com" {
		t.Errorf("expected lowercased email, got %s", user.Email)
	}
	if user.Password == "secret123" {
		t.Error("expected password to be hashed")
	}
	if !svc.VerifyPassword(user, "secret123") {
		t.Error("expected stored hash to verify against the original password")
	}
	if svc.VerifyPassword(user, "wrong") {
		t.Error("expected wrong password to fail verification")
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewUserService(db)

	_, err := svc.CreateUser("dup@example.com", "secret123", "First", "User")
	testutil.AssertNoError(t, err)

	_, err = svc.CreateUser("DUP@example.com", "secret123", "Second", "User")
	testutil.AssertAppError(t, err, "DUPLICATE_EMAIL")
}

func TestCreateUser_MissingFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewUserService(db)

	_, err := svc.CreateUser("", "secret123", "A", "B")
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	_, err = svc.CreateUser("a@example.com", "", "A", "B")
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestAttemptLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewUserService(db)
	user := testutil.CreateTestUser(t, db)

	loggedIn, err := svc.AttemptLogin(user.Email, "password123")
	testutil.AssertNoError(t, err)
	if loggedIn.ID != user.ID {
		t.Errorf("expected user %d, got %d", user.ID, loggedIn.ID)
	}

	var refreshed models.User
	testutil.AssertNoError(t, db.First(&refreshed, user.ID).Error)
	if refreshed.LastLoginAt == nil {
		t.Error("expected last login timestamp to be set")
	}
}

func TestAttemptLogin_WrongPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewUserService(db)
	user := testutil.CreateTestUser(t, db)

	_, err := svc.AttemptLogin(user.Email, "nope")
	testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")

	var refreshed models.User
	testutil.AssertNoError(t, db.First(&refreshed, user.ID).Error)
	if refreshed.FailedLoginAttempts != 1 {
		t.Errorf("expected 1 failed attempt, got %d", refreshed.FailedLoginAttempts)
	}
}

func TestAttemptLogin_UnknownEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewUserService(db)

	_, err := svc.AttemptLogin("ghost@example.com", "password123")
	testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
}

func TestAttemptLogin_Lockout(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewUserService(db)
	user := testutil.CreateTestUser(t, db)

	for i := 0; i < maxFailedLogins; i++ {
		_, err := svc.AttemptLogin(user.Email, "nope")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	}

	// Even the correct password is rejected while locked.
	_, err := svc.AttemptLogin(user.Email, "password123")
	testutil.AssertAppError(t, err, "ACCOUNT_LOCKED")
}

func TestAttemptLogin_ResetsCounterOnSuccess(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewUserService(db)
	user := testutil.CreateTestUser(t, db)

	for i := 0; i < maxFailedLogins-1; i++ {
		_, _ = svc.AttemptLogin(user.Email, "nope")
	}

	_, err := svc.AttemptLogin(user.Email, "password123")
	testutil.AssertNoError(t, err)

	var refreshed models.User
	testutil.AssertNoError(t, db.First(&refreshed, user.ID).Error)
	if refreshed.FailedLoginAttempts != 0 {
		t.Errorf("expected failed attempts reset, got %d", refreshed.FailedLoginAttempts)
	}
}

func TestAttemptLogin_LockExpires(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewUserService(db)
	user := testutil.CreateTestUser(t, db)

	expired := time.Now().Add(-time.Minute)
	testutil.AssertNoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("locked_until", &expired).Error)

	_, err := svc.AttemptLogin(user.Email, "password123")
	testutil.AssertNoError(t, err)
}

func TestRefreshTokenHash(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	svc := NewUserService(db)
	user := testutil.CreateTestUser(t, db)

	testutil.AssertNoError(t, svc.StoreRefreshTokenHash(user.ID, "abc123"))

	hash, err := svc.GetRefreshTokenHash(user.ID)
	testutil.AssertNoError(t, err)
	if hash != "abc123" {
		t.Errorf("expected stored hash abc123, got %s", hash)
	}
}
