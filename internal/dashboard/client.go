package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// APIError is a non-2xx response from the API, carrying the server's
// error message verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// Client issues the dashboard's commands against the HTTP API. Successful
// commands return a Patch for Reduce; failed commands return an error and
// no patch.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// NewClient creates a dashboard API client for the given base URL,
// e.g. "http://localhost:3000".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken installs the session token used on authenticated commands.
func (c *Client) SetToken(token string) {
	c.token = token
}

// NormalizeUsername lowercases the username and strips everything but
// ASCII letters and digits, matching the server's normalization.
func NormalizeUsername(username string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(username)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Signup registers a new account. The username is normalized before
// submission. Signup does not sign the new account in, so it returns no
// patch; the caller signs in as a separate command.
func (c *Client) Signup(ctx context.Context, email, password, username, displayName string) error {
	body := map[string]string{
		"email":       email,
		"password":    password,
		"username":    NormalizeUsername(username),
		"displayName": displayName,
	}
	return c.do(ctx, http.MethodPost, "/api/auth/signup", body, nil)
}

// Signin authenticates and returns the session patch.
func (c *Client) Signin(ctx context.Context, email, password string) (*SignedInPatch, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		User struct {
			ID    uuid.UUID `json:"id"`
			Email string    `json:"email"`
		} `json:"user"`
		Session struct {
			AccessToken string    `json:"access_token"`
			ExpiresAt   time.Time `json:"expires_at"`
		} `json:"session"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/signin", body, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Session.AccessToken
	return &SignedInPatch{Session: Session{
		Token:     resp.Session.AccessToken,
		ExpiresAt: resp.Session.ExpiresAt,
		UserID:    resp.User.ID,
		Email:     resp.User.Email,
	}}, nil
}

// Signout revokes the session server-side and returns the signed-out patch.
func (c *Client) Signout(ctx context.Context) (*SignedOutPatch, error) {
	if err := c.do(ctx, http.MethodPost, "/api/auth/signout", struct{}{}, nil); err != nil {
		return nil, err
	}
	c.token = ""
	return &SignedOutPatch{}, nil
}

// FetchProfile loads the caller's profile. An account without a profile
// row yields a patch with a nil profile.
func (c *Client) FetchProfile(ctx context.Context) (*ProfileLoadedPatch, error) {
	var row ProfileRow
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &row); err != nil {
		return nil, err
	}
	if row.Username == "" {
		// The fallback shape carries only id and email.
		return &ProfileLoadedPatch{Profile: nil}, nil
	}
	return &ProfileLoadedPatch{Profile: &row}, nil
}

// ProfileUpdate is the editable subset of the profile. Nil fields are
// left unchanged server-side.
type ProfileUpdate struct {
	Username        *string `json:"username,omitempty"`
	DisplayName     *string `json:"displayName,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	AvatarURL       *string `json:"avatarUrl,omitempty"`
	ThemeColor      *string `json:"themeColor,omitempty"`
	BackgroundColor *string `json:"backgroundColor,omitempty"`
}

// UpdateProfile submits the editable subset and returns the server's row.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*ProfileLoadedPatch, error) {
	var row ProfileRow
	if err := c.do(ctx, http.MethodPost, "/api/profile", update, &row); err != nil {
		return nil, err
	}
	return &ProfileLoadedPatch{Profile: &row}, nil
}

// FetchLinks loads the caller's links.
func (c *Client) FetchLinks(ctx context.Context) (*LinksLoadedPatch, error) {
	var rows []LinkRow
	if err := c.do(ctx, http.MethodGet, "/api/links", nil, &rows); err != nil {
		return nil, err
	}
	return &LinksLoadedPatch{Links: rows}, nil
}

// AddLink creates a link and returns the server's new row.
func (c *Client) AddLink(ctx context.Context, title, linkURL, description string) (*LinkAddedPatch, error) {
	body := map[string]string{"title": title, "url": linkURL, "description": description}
	var row LinkRow
	if err := c.do(ctx, http.MethodPost, "/api/links", body, &row); err != nil {
		return nil, err
	}
	return &LinkAddedPatch{Link: row}, nil
}

// LinkUpdate is the editable subset of a link. Nil fields are left
// unchanged server-side.
type LinkUpdate struct {
	Title       *string `json:"title,omitempty"`
	URL         *string `json:"url,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
	OrderIndex  *int    `json:"orderIndex,omitempty"`
}

// UpdateLink submits a partial link edit. A null response body means the
// server matched no owned row; that surfaces as ErrUnknownLink so the
// local state is left untouched.
func (c *Client) UpdateLink(ctx context.Context, linkID uuid.UUID, update LinkUpdate) (*LinkUpdatedPatch, error) {
	var row *LinkRow
	if err := c.do(ctx, http.MethodPut, "/api/links/"+linkID.String(), update, &row); err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrUnknownLink
	}
	return &LinkUpdatedPatch{Link: *row}, nil
}

// DeleteLink removes a link.
func (c *Client) DeleteLink(ctx context.Context, linkID uuid.UUID) (*LinkDeletedPatch, error) {
	if err := c.do(ctx, http.MethodDelete, "/api/links/"+linkID.String(), nil, nil); err != nil {
		return nil, err
	}
	return &LinkDeletedPatch{ID: linkID}, nil
}

// ReorderLinks submits a full ordering of the caller's links.
func (c *Client) ReorderLinks(ctx context.Context, ids []uuid.UUID) (*LinksReorderedPatch, error) {
	body := map[string][]uuid.UUID{"linkIds": ids}
	if err := c.do(ctx, http.MethodPut, "/api/links/reorder", body, nil); err != nil {
		return nil, err
	}
	return &LinksReorderedPatch{IDs: ids}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(data, &apiErr); err != nil || apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
