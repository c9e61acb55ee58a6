package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type Booking struct {
	ID         string           `json:"id"`
	PropertyID string           `json:"property_id"`
	CustomerID string           `json:"customer_id"`
	StartDate  time.Time        `json:"start_date"`
	EndDate    time.Time        `json:"end_date"`
	TotalPrice float64          `json:"total_price"`
	Status     BookingStatus    `json:"status"`
	Type       PropertyCategory `json:"type"` // category of the property when booked
	CreatedAt  time.Time        `json:"created_at"`
}

type BookingDraft struct {
	PropertyID string    `json:"property_id" validate:"required"`
	CustomerID string    `json:"customer_id"`
	StartDate  time.Time `json:"start_date" validate:"required"`
	EndDate    time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
	TotalPrice float64   `json:"total_price" validate:"gte=0"` // 0 lets the server compute it
}
