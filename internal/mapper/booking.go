package mapper

import (
	"time"

	"aubri-backend/internal/domain"
)

// BookingColumns lists the bookings table columns in BookingRecord.Targets order.
const BookingColumns = "id, property_id, customer_id, start_date, end_date, total_price, status, type, created_at"

type BookingRecord struct {
	ID         string     `json:"id"`
	PropertyID *string    `json:"property_id"`
	CustomerID *string    `json:"customer_id"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	TotalPrice *float64   `json:"total_price"`
	Status     *string    `json:"status"`
	Type       *string    `json:"type"`
	CreatedAt  *time.Time `json:"created_at"`
}

func (r *BookingRecord) Targets() []any {
	return []any{
		&r.ID, &r.PropertyID, &r.CustomerID, &r.StartDate, &r.EndDate,
		&r.TotalPrice, &r.Status, &r.Type, &r.CreatedAt,
	}
}

func BookingToDomain(r BookingRecord) domain.Booking {
	b := domain.Booking{
		ID:         r.ID,
		PropertyID: str(r.PropertyID),
		CustomerID: str(r.CustomerID),
		StartDate:  stamp(r.StartDate),
		EndDate:    stamp(r.EndDate),
		TotalPrice: num(r.TotalPrice),
		Status:     domain.BookingStatus(str(r.Status)),
		Type:       domain.PropertyCategory(str(r.Type)),
		CreatedAt:  stamp(r.CreatedAt),
	}
	if b.Status == "" {
		b.Status = domain.BookingStatusPending
	}
	return b
}

func BookingsToDomain(rs []BookingRecord) []domain.Booking {
	out := make([]domain.Booking, 0, len(rs))
	for _, r := range rs {
		out = append(out, BookingToDomain(r))
	}
	return out
}

func BookingFromDomain(b domain.Booking) BookingRecord {
	r := BookingRecord{
		ID:         b.ID,
		PropertyID: ptr(b.PropertyID),
		CustomerID: ptr(b.CustomerID),
		TotalPrice: &b.TotalPrice,
		Status:     ptr(string(b.Status)),
		Type:       ptr(string(b.Type)),
	}
	if !b.StartDate.IsZero() {
		r.StartDate = &b.StartDate
	}
	if !b.EndDate.IsZero() {
		r.EndDate = &b.EndDate
	}
	if !b.CreatedAt.IsZero() {
		r.CreatedAt = &b.CreatedAt
	}
	return r
}
