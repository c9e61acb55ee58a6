package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"

	"aubri-backend/internal/apperrors"
	"aubri-backend/internal/repository"
)

// DefaultQueryTimeout bounds every store call when no timeout is configured.
const DefaultQueryTimeout = 5 * time.Second

type Store struct {
	db *sql.DB
	repository.PropertyRepository
	repository.BookingRepository
	repository.ProfileRepository
}

func NewStore(db *sql.DB, timeout time.Duration) *Store {
	return &Store{
		db:                 db,
		PropertyRepository: NewPropertyRepository(db, timeout),
		BookingRepository:  NewBookingRepository(db, timeout),
		ProfileRepository:  NewProfileRepository(db, timeout),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func bounded(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// storeErr classifies a driver error. sql.ErrNoRows becomes NotFound.
func storeErr(op string, err error, what, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(op, "%s %s not found", what, id)
	}
	return apperrors.Store(op, err)
}
