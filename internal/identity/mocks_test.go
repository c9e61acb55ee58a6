package identity

import (
	"context"

	"github.com/stretchr/testify/mock"

	"aubri-backend/internal/domain"
)

type MockClient struct {
	mock.Mock
	listener Listener
}

func (m *MockClient) GetSession(ctx context.Context) (*Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

func (m *MockClient) SignIn(ctx context.Context, creds domain.Credentials) (*Session, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	sess := args.Get(0).(*Session)
	if m.listener != nil {
		m.listener(EventSignedIn, sess)
	}
	return sess, args.Error(1)
}

func (m *MockClient) SignUp(ctx context.Context, req domain.SignUpRequest) (*Session, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Session), args.Error(1)
}

func (m *MockClient) SignOut(ctx context.Context) error {
	args := m.Called(ctx)
	if m.listener != nil {
		m.listener(EventSignedOut, nil)
	}
	return args.Error(0)
}

func (m *MockClient) OnAuthStateChange(fn Listener) func() {
	m.listener = fn
	return func() { m.listener = nil }
}

// fire simulates an event raised by the provider outside any adapter call.
func (m *MockClient) fire(ev Event, sess *Session) {
	if m.listener != nil {
		m.listener(ev, sess)
	}
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, u *domain.User, passwordHash string) error {
	args := m.Called(ctx, u, passwordHash)
	return args.Error(0)
}

func (m *MockProfileRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.User, string, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}
