package service

import (
	"context"
	"time"

	"aubri-backend/internal/domain"
	"aubri-backend/internal/filter"
	"aubri-backend/internal/identity"
	"aubri-backend/internal/policy"
	"aubri-backend/internal/pricing"
)

// Every operation that acts for someone takes the actor explicitly; nil means
// anonymous.

type ListingService interface {
	ListApproved(ctx context.Context) ([]domain.Property, error)
	Search(ctx context.Context, c filter.Criteria) ([]domain.Property, error)
	GetByID(ctx context.Context, actor *domain.User, id string) (*domain.Property, error)
	ListByOwner(ctx context.Context, actor *domain.User, ownerID string) ([]domain.Property, error)
	ListAssigned(ctx context.Context, actor *domain.User) ([]domain.Property, error)
	ListAllForAdmin(ctx context.Context, actor *domain.User) ([]domain.Property, error)
	Create(ctx context.Context, actor *domain.User, draft domain.PropertyDraft) (*domain.Property, error)
	Approve(ctx context.Context, actor *domain.User, id string) (*domain.Property, error)
	Reject(ctx context.Context, actor *domain.User, id string) (*domain.Property, error)
	History(ctx context.Context, actor *domain.User, id string) ([]domain.ModerationEvent, error)
}

type BookingService interface {
	Create(ctx context.Context, actor *domain.User, draft domain.BookingDraft) (*domain.Booking, error)
	Quote(ctx context.Context, propertyID string, start, end time.Time) (*pricing.Quote, error)
	ListByCustomer(ctx context.Context, actor *domain.User, customerID string) ([]domain.Booking, error)
	ListByOwnerProperties(ctx context.Context, actor *domain.User, ownerID string) ([]domain.Booking, error)
}

type AuthResult struct {
	User    *domain.User      `json:"user"`
	Session *identity.Session `json:"session"`
	View    policy.View       `json:"view"`
}

type AuthService interface {
	Signup(ctx context.Context, req domain.SignUpRequest) (*AuthResult, error)
	Login(ctx context.Context, creds domain.Credentials) (*AuthResult, error)
	Logout(ctx context.Context, token string) error
	// Resolve returns the user behind token, or nil when the token carries no
	// usable session.
	Resolve(ctx context.Context, token string) *domain.User
}

type Dashboard struct {
	View         policy.View       `json:"view"`
	Links        []policy.NavLink  `json:"links"`
	Properties   []domain.Property `json:"properties,omitempty"`
	Bookings     []domain.Booking  `json:"bookings,omitempty"`
	PendingCount int               `json:"pending_count"`
}

type DashboardService interface {
	Home(ctx context.Context, actor *domain.User) (*Dashboard, error)
	Load(ctx context.Context, actor *domain.User, view policy.View) (*Dashboard, error)
}

type EmailService interface {
	SendModerationResult(ctx context.Context, owner *domain.User, p *domain.Property) error
}
