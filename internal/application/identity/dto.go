package identity

import (
	"time"

	"github.com/google/uuid"
)

// SignupInput contains the input for account registration
type SignupInput struct {
	Email       string
	Password    string
	Username    string
	DisplayName string
}

// SignupResult contains the result of a successful signup
type SignupResult struct {
	User AccountInfo
}

// AccountInfo contains basic account information returned by auth operations
type AccountInfo struct {
	ID        uuid.UUID
	Email     string
	CreatedAt time.Time
}

// SigninInput contains the input for signing in
type SigninInput struct {
	Email    string
	Password string
}

// SigninResult contains the result of a successful signin
type SigninResult struct {
	Token     string
	ExpiresAt time.Time
	User      AccountInfo
}

// SignoutInput contains the input for signing out
type SignoutInput struct {
	UserID   uuid.UUID
	TokenJTI string
	TokenTTL time.Duration
}
