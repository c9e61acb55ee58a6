package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"aubri-backend/internal/apperrors"
	"aubri-backend/internal/domain"
	"aubri-backend/internal/logger"
	"aubri-backend/internal/mapper"
	"aubri-backend/internal/repository"
)

type bookingRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewBookingRepository(db *sql.DB, timeout time.Duration) repository.BookingRepository {
	return &bookingRepository{db: db, timeout: timeout}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	ctx, cancel := bounded(ctx, r.timeout)
	defer cancel()

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	rec := mapper.BookingFromDomain(*b)
	query := `INSERT INTO bookings (id, property_id, customer_id, start_date, end_date, total_price, status, type)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING created_at`
	logger.DatabaseCall("INSERT", "bookings", "bookingID", b.ID, "propertyID", b.PropertyID)
	err := r.db.QueryRowContext(ctx, query,
		rec.ID, rec.PropertyID, rec.CustomerID, rec.StartDate, rec.EndDate,
		rec.TotalPrice, rec.Status, rec.Type,
	).Scan(&b.CreatedAt)
	logger.DatabaseResult("INSERT", 1, err, "bookingID", b.ID)
	if err != nil {
		return apperrors.Store("bookings.create", err)
	}
	return nil
}

func (r *bookingRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	const op = "bookings.list_by_customer"
	ctx, cancel := bounded(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+mapper.BookingColumns+` FROM bookings WHERE customer_id = $1 ORDER BY created_at DESC`,
		customerID)
	if err != nil {
		return nil, apperrors.Store(op, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, apperrors.Store(op, err)
	}
	return bookings, nil
}

func (r *bookingRepository) ListByOwnerProperties(ctx context.Context, ownerID string) ([]domain.Booking, error) {
	const op = "bookings.list_by_owner_properties"
	ctx, cancel := bounded(ctx, r.timeout)
	defer cancel()

	query := `SELECT b.id, b.property_id, b.customer_id, b.start_date, b.end_date, b.total_price, b.status, b.type, b.created_at
	          FROM bookings b
	          JOIN properties p ON p.id = b.property_id
	          WHERE p.owner_id = $1
	          ORDER BY b.created_at DESC`
	logger.DatabaseCall("SELECT", "bookings JOIN properties", "ownerID", ownerID)
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err, "ownerID", ownerID)
		return nil, apperrors.Degraded(op, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, apperrors.Degraded(op, err)
	}
	logger.DatabaseResult("SELECT", int64(len(bookings)), nil, "ownerID", ownerID)
	return bookings, nil
}

func (r *bookingRepository) CompleteFinished(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := bounded(ctx, r.timeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = $1 WHERE status = $2 AND end_date < $3`,
		domain.BookingStatusCompleted, domain.BookingStatusConfirmed, now)
	if err != nil {
		return 0, apperrors.Store("bookings.complete_finished", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Store("bookings.complete_finished", err)
	}
	return n, nil
}

func scanBookings(rows *sql.Rows) ([]domain.Booking, error) {
	var recs []mapper.BookingRecord
	for rows.Next() {
		var rec mapper.BookingRecord
		if err := rows.Scan(rec.Targets()...); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return mapper.BookingsToDomain(recs), nil
}
