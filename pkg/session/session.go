package session

import (
	"context"
	"strings"
)

// Session is the persisted auth state. The zero value is the
// unauthenticated state.
type Session struct {
	Token string `json:"accessToken,omitempty"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// IsAuthenticated reports whether a bearer token is present. A non-empty
// token always originates from a successful login.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// Store persists the session across restarts.
type Store interface {
	// Get returns the current session; the zero Session when none is stored.
	Get(ctx context.Context) (Session, error)

	// SetToken stores a session after a successful login. An empty name is
	// derived from the email local-part.
	SetToken(ctx context.Context, token, email, name string) error

	// Clear removes the session. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// DisplayNameFromEmail derives a default display name from the part of the
// address before the '@'.
func DisplayNameFromEmail(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}
