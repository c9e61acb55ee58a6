package identity

import (
	"context"
	"log/slog"
	"sync"

	"aubri-backend/internal/apperrors"
	"aubri-backend/internal/domain"
	"aubri-backend/internal/logger"
)

type State int

const (
	StateUnresolved State = iota
	StateResolving
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateResolving:
		return "resolving"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	}
	return "unresolved"
}

// Adapter tracks the current user of one session. A session whose profile
// cannot be loaded resolves to anonymous.
type Adapter struct {
	client   Client
	profiles ProfileSource
	log      *slog.Logger

	mu          sync.Mutex
	state       State
	user        *domain.User
	session     *Session
	gen         uint64
	unsubscribe func()
}

func NewAdapter(client Client, profiles ProfileSource) *Adapter {
	return &Adapter{
		client:   client,
		profiles: profiles,
		log:      logger.WithService("identity"),
	}
}

// Start subscribes to session events and resolves the existing session.
func (a *Adapter) Start(ctx context.Context) {
	a.mu.Lock()
	if a.unsubscribe == nil {
		a.unsubscribe = a.client.OnAuthStateChange(func(ev Event, s *Session) {
			a.handle(ctx, ev, s)
		})
	}
	gen := a.begin()
	a.mu.Unlock()

	sess, err := a.client.GetSession(ctx)
	if err != nil {
		a.log.Warn("Session lookup failed", "error", err)
		a.settle(gen, nil, nil)
		return
	}
	a.resolve(ctx, gen, sess)
}

func (a *Adapter) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

func (a *Adapter) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// CurrentUser returns a copy of the resolved user, or nil when anonymous or
// not yet resolved.
func (a *Adapter) CurrentUser() *domain.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

func (a *Adapter) Session() *Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session == nil {
		return nil
	}
	s := *a.session
	return &s
}

func (a *Adapter) Login(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	a.mu.Lock()
	gen := a.begin()
	a.mu.Unlock()

	sess, err := a.client.SignIn(ctx, creds)
	if err != nil {
		a.settle(gen, nil, nil)
		return nil, err
	}
	return a.require(ctx, gen, sess, "identity.login")
}

func (a *Adapter) Signup(ctx context.Context, req domain.SignUpRequest) (*domain.User, error) {
	a.mu.Lock()
	gen := a.begin()
	a.mu.Unlock()

	sess, err := a.client.SignUp(ctx, req)
	if err != nil {
		a.settle(gen, nil, nil)
		return nil, err
	}
	return a.require(ctx, gen, sess, "identity.signup")
}

func (a *Adapter) Logout(ctx context.Context) error {
	a.mu.Lock()
	gen := a.begin()
	a.mu.Unlock()

	err := a.client.SignOut(ctx)
	// The local session is dropped even if the provider call failed.
	a.settle(gen, nil, nil)
	return err
}

// require resolves sess for an explicit sign-in. When a provider event
// superseded the call, its outcome stands and is accepted only if it is the
// same user.
func (a *Adapter) require(ctx context.Context, gen uint64, sess *Session, op string) (*domain.User, error) {
	if a.current(gen) {
		if u := a.resolve(ctx, gen, sess); u != nil {
			return u, nil
		}
	}
	if u := a.CurrentUser(); u != nil && sess != nil && u.ID == sess.UserID {
		return u, nil
	}
	return nil, apperrors.Unauthenticated(op, "your profile could not be loaded")
}

// handle applies a provider event. Every event supersedes whatever
// resolution is in flight, so a sign-out is never lost.
func (a *Adapter) handle(ctx context.Context, ev Event, sess *Session) {
	a.mu.Lock()
	gen := a.begin()
	a.mu.Unlock()

	switch ev {
	case EventSignedIn:
		a.resolve(ctx, gen, sess)
	default:
		a.settle(gen, nil, nil)
	}
}

func (a *Adapter) resolve(ctx context.Context, gen uint64, sess *Session) *domain.User {
	if sess == nil {
		a.settle(gen, nil, nil)
		return nil
	}
	u, err := a.profiles.GetByID(ctx, sess.UserID)
	if err != nil {
		a.log.Error("Profile lookup failed for live session", "userID", sess.UserID, "error", err)
		a.settle(gen, nil, nil)
		return nil
	}
	if !a.settle(gen, sess, u) {
		return nil
	}
	return u
}

func (a *Adapter) current(gen uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return gen == a.gen
}

// begin must be called with mu held.
func (a *Adapter) begin() uint64 {
	a.gen++
	a.state = StateResolving
	return a.gen
}

// settle records the outcome of resolution gen unless a newer one started,
// and reports whether it did.
func (a *Adapter) settle(gen uint64, sess *Session, u *domain.User) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if gen != a.gen {
		return false
	}
	a.session, a.user = sess, u
	if u != nil {
		a.state = StateAuthenticated
	} else {
		a.state = StateAnonymous
	}
	return true
}
