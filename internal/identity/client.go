// Package identity resolves who is behind a session. A Client talks to the
// identity provider for one session; the Adapter turns its session into a
// domain.User.
package identity

import (
	"context"
	"time"

	"aubri-backend/internal/domain"
)

type Session struct {
	AccessToken string    `json:"access_token"`
	UserID      string    `json:"user_id"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type Event string

const (
	EventSignedIn  Event = "SIGNED_IN"
	EventSignedOut Event = "SIGNED_OUT"
)

type Listener func(event Event, session *Session)

type Client interface {
	// GetSession returns the live session, or nil when there is none.
	GetSession(ctx context.Context) (*Session, error)
	SignIn(ctx context.Context, creds domain.Credentials) (*Session, error)
	// SignUp registers the account with its profile claims and signs it in.
	SignUp(ctx context.Context, req domain.SignUpRequest) (*Session, error)
	SignOut(ctx context.Context) error
	OnAuthStateChange(fn Listener) (unsubscribe func())
}

// ProfileSource loads the profile a session belongs to.
type ProfileSource interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
