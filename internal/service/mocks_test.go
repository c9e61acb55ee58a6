package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"aubri-backend/internal/domain"
)

type MockPropertyRepo struct {
	mock.Mock
}

func (m *MockPropertyRepo) Create(ctx context.Context, p *domain.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPropertyRepo) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Copy so callers mutating the result do not change the fixture.
	p := *args.Get(0).(*domain.Property)
	return &p, args.Error(1)
}
func (m *MockPropertyRepo) ListApproved(ctx context.Context) ([]domain.Property, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Property, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) ListByAgent(ctx context.Context, agentID string) ([]domain.Property, error) {
	args := m.Called(ctx, agentID)
	return args.Get(0).([]domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) ListAll(ctx context.Context) ([]domain.Property, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) UpdateStatus(ctx context.Context, ev *domain.ModerationEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}
func (m *MockPropertyRepo) ListModerationEvents(ctx context.Context, propertyID string) ([]domain.ModerationEvent, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]domain.ModerationEvent), args.Error(1)
}

type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByOwnerProperties(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) CompleteFinished(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
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

type MockListingCache struct {
	mock.Mock
}

func (m *MockListingCache) GetApproved(ctx context.Context) ([]domain.Property, bool) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]domain.Property), args.Bool(1)
}
func (m *MockListingCache) Generation(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockListingCache) SetApproved(ctx context.Context, gen int64, props []domain.Property) {
	m.Called(ctx, gen, props)
}
func (m *MockListingCache) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendModerationResult(ctx context.Context, owner *domain.User, p *domain.Property) error {
	args := m.Called(ctx, owner, p)
	return args.Error(0)
}
