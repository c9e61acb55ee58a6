package http

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"aubri-backend/internal/domain"
	"aubri-backend/internal/filter"
	"aubri-backend/internal/policy"
	"aubri-backend/internal/pricing"
	"aubri-backend/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, req domain.SignUpRequest) (*service.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}
func (m *MockAuthService) Login(ctx context.Context, creds domain.Credentials) (*service.AuthResult, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}
func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
func (m *MockAuthService) Resolve(ctx context.Context, token string) *domain.User {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.User)
}

type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) props(args mock.Arguments) ([]domain.Property, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Property), args.Error(1)
}
func (m *MockListingService) prop(args mock.Arguments) (*domain.Property, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockListingService) ListApproved(ctx context.Context) ([]domain.Property, error) {
	return m.props(m.Called(ctx))
}
func (m *MockListingService) Search(ctx context.Context, c filter.Criteria) ([]domain.Property, error) {
	return m.props(m.Called(ctx, c))
}
func (m *MockListingService) GetByID(ctx context.Context, actor *domain.User, id string) (*domain.Property, error) {
	return m.prop(m.Called(ctx, actor, id))
}
func (m *MockListingService) ListByOwner(ctx context.Context, actor *domain.User, ownerID string) ([]domain.Property, error) {
	return m.props(m.Called(ctx, actor, ownerID))
}
func (m *MockListingService) ListAssigned(ctx context.Context, actor *domain.User) ([]domain.Property, error) {
	return m.props(m.Called(ctx, actor))
}
func (m *MockListingService) ListAllForAdmin(ctx context.Context, actor *domain.User) ([]domain.Property, error) {
	return m.props(m.Called(ctx, actor))
}
func (m *MockListingService) Create(ctx context.Context, actor *domain.User, draft domain.PropertyDraft) (*domain.Property, error) {
	return m.prop(m.Called(ctx, actor, draft))
}
func (m *MockListingService) Approve(ctx context.Context, actor *domain.User, id string) (*domain.Property, error) {
	return m.prop(m.Called(ctx, actor, id))
}
func (m *MockListingService) Reject(ctx context.Context, actor *domain.User, id string) (*domain.Property, error) {
	return m.prop(m.Called(ctx, actor, id))
}
func (m *MockListingService) History(ctx context.Context, actor *domain.User, id string) ([]domain.ModerationEvent, error) {
	args := m.Called(ctx, actor, id)
	return args.Get(0).([]domain.ModerationEvent), args.Error(1)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Create(ctx context.Context, actor *domain.User, draft domain.BookingDraft) (*domain.Booking, error) {
	args := m.Called(ctx, actor, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) Quote(ctx context.Context, propertyID string, start, end time.Time) (*pricing.Quote, error) {
	args := m.Called(ctx, propertyID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Quote), args.Error(1)
}
func (m *MockBookingService) ListByCustomer(ctx context.Context, actor *domain.User, customerID string) ([]domain.Booking, error) {
	args := m.Called(ctx, actor, customerID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingService) ListByOwnerProperties(ctx context.Context, actor *domain.User, ownerID string) ([]domain.Booking, error) {
	args := m.Called(ctx, actor, ownerID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Home(ctx context.Context, actor *domain.User) (*service.Dashboard, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Dashboard), args.Error(1)
}
func (m *MockDashboardService) Load(ctx context.Context, actor *domain.User, view policy.View) (*service.Dashboard, error) {
	args := m.Called(ctx, actor, view)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Dashboard), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
