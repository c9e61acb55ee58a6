package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"aubri-backend/internal/apperrors"
	"aubri-backend/internal/domain"
	"aubri-backend/internal/logger"
	"aubri-backend/internal/policy"
	"aubri-backend/internal/pricing"
	"aubri-backend/internal/repository"
	"aubri-backend/internal/validator"
)

type bookingService struct {
	bookingRepo  repository.BookingRepository
	propertyRepo repository.PropertyRepository
	validate     *validator.Validator
	log          *slog.Logger
}

func NewBookingService(bookingRepo repository.BookingRepository, propertyRepo repository.PropertyRepository, validate *validator.Validator) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		validate:     validate,
		log:          logger.WithService("booking"),
	}
}

func (s *bookingService) Create(ctx context.Context, actor *domain.User, draft domain.BookingDraft) (*domain.Booking, error) {
	const op = "booking.create"
	if err := policy.Require(actor, policy.CapBookingCreate); err != nil {
		return nil, err
	}
	draft.StartDate, draft.EndDate = calendarDay(draft.StartDate), calendarDay(draft.EndDate)
	if err := s.validate.Validate(op, draft); err != nil {
		return nil, err
	}

	p, err := s.propertyRepo.GetByID(ctx, draft.PropertyID)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.PropertyStatusApproved {
		return nil, apperrors.Validation(op, "property is not open for booking",
			map[string]string{"property_id": "Property is not available"})
	}

	quote, err := pricing.QuoteFor(p, draft.StartDate, draft.EndDate)
	if err != nil {
		return nil, apperrors.Validation(op, err.Error(), map[string]string{"end_date": "Must be on or after start_date"})
	}
	// Zero means "let the server price it".
	if draft.TotalPrice != 0 && !quote.Matches(draft.TotalPrice) {
		return nil, apperrors.Validation(op, "total price does not match the listing price",
			map[string]string{"total_price": fmt.Sprintf("Expected %.2f", quote.Total)})
	}

	b := &domain.Booking{
		PropertyID: p.ID,
		CustomerID: actor.ID,
		StartDate:  draft.StartDate,
		EndDate:    draft.EndDate,
		TotalPrice: quote.Total,
		Status:     domain.BookingStatusPending,
		Type:       p.Category,
	}
	if err := s.bookingRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	s.log.Info("Booking requested", "bookingID", b.ID, "propertyID", b.PropertyID, "customerID", b.CustomerID, "total", b.TotalPrice)
	return b, nil
}

func (s *bookingService) Quote(ctx context.Context, propertyID string, start, end time.Time) (*pricing.Quote, error) {
	const op = "booking.quote"
	p, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.PropertyStatusApproved {
		return nil, apperrors.NotFound(op, "property %s not found", propertyID)
	}
	q, err := pricing.QuoteFor(p, calendarDay(start), calendarDay(end))
	if err != nil {
		return nil, apperrors.Validation(op, err.Error(), map[string]string{"end_date": "Must be on or after start_date"})
	}
	return &q, nil
}

// calendarDay pins t to midnight UTC of the day written in t's own zone. That
// is the value stored in the DATE columns, whatever the session time zone.
func calendarDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return pricing.DateOf(t).Time()
}

func (s *bookingService) ListByCustomer(ctx context.Context, actor *domain.User, customerID string) ([]domain.Booking, error) {
	if err := policy.Require(actor, policy.CapBookingListOwn); err != nil {
		return nil, err
	}
	if actor.ID != customerID && !actor.IsAdmin() {
		return nil, apperrors.Forbidden("booking.list_by_customer", "cannot list another customer's bookings")
	}
	return s.bookingRepo.ListByCustomer(ctx, customerID)
}

func (s *bookingService) ListByOwnerProperties(ctx context.Context, actor *domain.User, ownerID string) ([]domain.Booking, error) {
	if err := policy.Require(actor, policy.CapBookingListOwner); err != nil {
		return nil, err
	}
	if actor.ID != ownerID && !actor.IsAdmin() {
		return nil, apperrors.Forbidden("booking.list_by_owner_properties", "cannot list another owner's bookings")
	}
	bookings, err := s.bookingRepo.ListByOwnerProperties(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDegraded) {
			s.log.Warn("Owner bookings unavailable, returning empty list", "ownerID", ownerID, "error", err)
			return []domain.Booking{}, nil
		}
		return nil, err
	}
	return bookings, nil
}
