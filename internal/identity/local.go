package identity

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"aubri-backend/internal/apperrors"
	"aubri-backend/internal/domain"
	"aubri-backend/internal/logger"
	"aubri-backend/internal/repository"
	"aubri-backend/internal/security"
)

// Revocations remembers signed-out token ids until the token would have
// expired anyway.
type Revocations interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// LocalAuthority is the identity provider backed by the profiles table.
type LocalAuthority struct {
	profiles repository.ProfileRepository
	tokens   security.TokenManager
	revoked  Revocations
}

func NewLocalAuthority(profiles repository.ProfileRepository, tokens security.TokenManager, revoked Revocations) *LocalAuthority {
	if revoked == nil {
		revoked = NewMemoryRevocations()
	}
	return &LocalAuthority{profiles: profiles, tokens: tokens, revoked: revoked}
}

// NewClient returns a client bound to the session carried by token. An empty
// token starts with no session.
func (la *LocalAuthority) NewClient(token string) Client {
	return &localClient{auth: la, token: token, listeners: map[int]Listener{}}
}

func (la *LocalAuthority) verify(ctx context.Context, token string) (*Session, *security.SessionClaims, error) {
	claims, err := la.tokens.ValidateToken(token)
	if err != nil {
		return nil, nil, nil
	}
	revoked, err := la.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, err
	}
	if revoked {
		return nil, nil, nil
	}
	return sessionFrom(token, claims), claims, nil
}

func (la *LocalAuthority) issue(u *domain.User) (*Session, error) {
	token, claims, err := la.tokens.GenerateAccessToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}
	return sessionFrom(token, claims), nil
}

func sessionFrom(token string, claims *security.SessionClaims) *Session {
	s := &Session{AccessToken: token, UserID: claims.UserID()}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s
}

type localClient struct {
	auth *LocalAuthority

	mu        sync.Mutex
	token     string
	listeners map[int]Listener
	nextID    int
}

func (c *localClient) GetSession(ctx context.Context) (*Session, error) {
	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token == "" {
		return nil, nil
	}
	sess, _, err := c.auth.verify(ctx, token)
	return sess, err
}

func (c *localClient) SignIn(ctx context.Context, creds domain.Credentials) (*Session, error) {
	const op = "identity.sign_in"
	u, hash, err := c.auth.profiles.GetByEmail(ctx, strings.TrimSpace(creds.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthenticated(op, "invalid email or password")
		}
		return nil, err
	}
	if !security.CheckPassword(hash, creds.Password) {
		return nil, apperrors.Unauthenticated(op, "invalid email or password")
	}
	sess, err := c.auth.issue(u)
	if err != nil {
		return nil, apperrors.Store(op, err)
	}
	c.set(sess.AccessToken)
	c.emit(EventSignedIn, sess)
	return sess, nil
}

func (c *localClient) SignUp(ctx context.Context, req domain.SignUpRequest) (*Session, error) {
	const op = "identity.sign_up"
	email := strings.ToLower(strings.TrimSpace(req.Email))

	role := domain.ParseRole(string(req.Role))
	if role == domain.RoleAdmin {
		return nil, apperrors.Validation(op, "admin accounts cannot be self-registered",
			map[string]string{"role": "Must be one of: owner, agent, customer"})
	}

	_, _, err := c.auth.profiles.GetByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.Validation(op, "email already registered",
			map[string]string{"email": "Already registered"})
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Store(op, err)
	}
	u := &domain.User{Email: email, Name: strings.TrimSpace(req.Name), Role: role, AvatarURL: req.AvatarURL}
	if err := c.auth.profiles.Create(ctx, u, hash); err != nil {
		return nil, err
	}
	logger.Info("Profile registered", "userID", u.ID, "role", u.Role)

	sess, err := c.auth.issue(u)
	if err != nil {
		return nil, apperrors.Store(op, err)
	}
	c.set(sess.AccessToken)
	c.emit(EventSignedIn, sess)
	return sess, nil
}

func (c *localClient) SignOut(ctx context.Context) error {
	c.mu.Lock()
	token := c.token
	c.token = ""
	c.mu.Unlock()

	if token != "" {
		if claims, err := c.auth.tokens.ValidateToken(token); err == nil && claims.ExpiresAt != nil {
			if err := c.auth.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
				return apperrors.Store("identity.sign_out", err)
			}
		}
	}
	c.emit(EventSignedOut, nil)
	return nil
}

func (c *localClient) OnAuthStateChange(fn Listener) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *localClient) set(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *localClient) emit(ev Event, sess *Session) {
	c.mu.Lock()
	fns := make([]Listener, 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(ev, sess)
	}
}

type memoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewMemoryRevocations() Revocations {
	return &memoryRevocations{revoked: map[string]time.Time{}}
}

func (m *memoryRevocations) Revoke(_ context.Context, jti string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for id, exp := range m.revoked {
		if exp.Before(now) {
			delete(m.revoked, id)
		}
	}
	m.revoked[jti] = until
	return nil
}

func (m *memoryRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	exp, ok := m.revoked[jti]
	return ok && exp.After(time.Now()), nil
}
