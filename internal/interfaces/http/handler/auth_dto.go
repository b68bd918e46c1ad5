package handler

import "time"

// SignupRequest is the request body for account registration. The field
// presence checks live in the service so that missing fields produce the
// MISSING_FIELDS message rather than a binding error.
type SignupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

// SigninRequest is the request body for signing in
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUser is the user object in auth responses
type AuthUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionInfo is the session object returned on signin
type SessionInfo struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// SignupResponse is the response body for a successful signup
type SignupResponse struct {
	User AuthUser `json:"user"`
}

// SigninResponse is the response body for a successful signin
type SigninResponse struct {
	User    AuthUser    `json:"user"`
	Session SessionInfo `json:"session"`
}
