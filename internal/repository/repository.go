package repository

import (
	"context"
	"time"

	"aubri-backend/internal/domain"
)

// PropertyRepository is the store contract for listings. Implementations
// assign ids and creation times, and report failures as apperrors kinds.
type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	ListApproved(ctx context.Context) ([]domain.Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Property, error)
	ListByAgent(ctx context.Context, agentID string) ([]domain.Property, error)
	ListAll(ctx context.Context) ([]domain.Property, error)

	// UpdateStatus moves the listing from ev.From to ev.To and records ev in
	// the same transaction.
	UpdateStatus(ctx context.Context, ev *domain.ModerationEvent) error
	ListModerationEvents(ctx context.Context, propertyID string) ([]domain.ModerationEvent, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error)
	// ListByOwnerProperties joins bookings to properties. A failed join is
	// reported as apperrors.KindDegraded.
	ListByOwnerProperties(ctx context.Context, ownerID string) ([]domain.Booking, error)
	CompleteFinished(ctx context.Context, now time.Time) (int64, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, u *domain.User, passwordHash string) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail returns the profile and its password hash.
	GetByEmail(ctx context.Context, email string) (*domain.User, string, error)
}
