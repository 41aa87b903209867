package session

import (
	"context"

	"github.com/google/uuid"
)

// Session is the server-side state tied to one browser via an opaque
// cookie token. Error is a one-shot message: reads through PopError
// clear it.
type Session struct {
	Token    string `json:"token"`
	UserID   *int64 `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Error    string `json:"error,omitempty"`
}

// LoggedIn reports whether a user identity is attached.
func (s *Session) LoggedIn() bool {
	return s != nil && s.UserID != nil
}

// Store persists sessions keyed by token.
type Store interface {
	// Get returns the session for token, or nil when unknown.
	Get(ctx context.Context, token string) (*Session, error)
	// Save writes the session under its token.
	Save(ctx context.Context, s *Session) error
	// Destroy removes the session. Destroying an unknown token is a no-op.
	Destroy(ctx context.Context, token string) error
	// SetError attaches a one-shot message to the session.
	SetError(ctx context.Context, token, msg string) error
	// PopError returns the pending one-shot message and clears it, so a
	// second read never sees it again.
	PopError(ctx context.Context, token string) (string, error)
}

// NewToken produces an opaque session token.
func NewToken() string {
	return uuid.NewString()
}
