package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/linkbio/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// AccountStatus represents the status of an account
type AccountStatus string

const (
	AccountStatusActive      AccountStatus = "active"
	AccountStatusDeactivated AccountStatus = "deactivated"
)

// Password cost for bcrypt
const bcryptCost = 12

// Account represents a registered user of the platform. It owns the
// credentials; the public identity lives in the linkbio Profile aggregate,
// which shares the account's ID.
type Account struct {
	shared.BaseAggregateRoot
	Email        string
	PasswordHash string
	Status       AccountStatus
	LastLoginAt  *time.Time
}

// NewAccount creates an active account with the given credentials.
func NewAccount(email, password string) (*Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      passwordHash,
		Status:            AccountStatusActive,
	}, nil
}

// VerifyPassword checks if the provided password matches
func (a *Account) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	return err == nil
}

// RecordLogin updates the last login timestamp
func (a *Account) RecordLogin() {
	now := time.Now()
	a.LastLoginAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()
}

// IsActive returns true if the account can sign in
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// Deactivate blocks the account from signing in
func (a *Account) Deactivate() {
	a.Status = AccountStatusDeactivated
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// Validation functions

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}

	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
