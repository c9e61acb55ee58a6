package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"aubri-backend/internal/apperrors"
	"aubri-backend/internal/domain"
	"aubri-backend/internal/mapper"
	"aubri-backend/internal/repository"
)

type profileRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewProfileRepository(db *sql.DB, timeout time.Duration) repository.ProfileRepository {
	return &profileRepository{db: db, timeout: timeout}
}

func (r *profileRepository) Create(ctx context.Context, u *domain.User, passwordHash string) error {
	ctx, cancel := bounded(ctx, r.timeout)
	defer cancel()

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	rec := mapper.ProfileFromDomain(*u)
	query := `INSERT INTO profiles (id, email, name, role, avatar_url, verified, password_hash) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, rec.ID, rec.Email, rec.Name, rec.Role, rec.AvatarURL, rec.Verified, passwordHash)
	if err != nil {
		return apperrors.Store("profiles.create", err)
	}
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := bounded(ctx, r.timeout)
	defer cancel()

	var rec mapper.ProfileRecord
	query := `SELECT ` + mapper.ProfileColumns + ` FROM profiles WHERE id = $1`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(rec.Targets()...); err != nil {
		return nil, storeErr("profiles.get", err, "profile", id)
	}
	u := mapper.ProfileToDomain(rec)
	return &u, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.User, string, error) {
	ctx, cancel := bounded(ctx, r.timeout)
	defer cancel()

	var rec mapper.ProfileRecord
	var hash string
	query := `SELECT ` + mapper.ProfileColumns + `, password_hash FROM profiles WHERE LOWER(email) = LOWER($1)`
	if err := r.db.QueryRowContext(ctx, query, email).Scan(append(rec.Targets(), &hash)...); err != nil {
		return nil, "", storeErr("profiles.get_by_email", err, "profile", email)
	}
	u := mapper.ProfileToDomain(rec)
	return &u, hash, nil
}
