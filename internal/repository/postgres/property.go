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

type propertyRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPropertyRepository(db *sql.DB, timeout time.Duration) repository.PropertyRepository {
	return &propertyRepository{db: db, timeout: timeout}
}

func (r *propertyRepository) Create(ctx context.Context, p *domain.Property) error {
	ctx, cancel := bounded(ctx, r.timeout)
	defer cancel()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	rec := mapper.PropertyFromDomain(*p)
	query := `INSERT INTO properties (id, owner_id, agent_id, title, description, category, price, period, location, images, amenities, rating, reviews_count, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING created_at`
	logger.DatabaseCall("INSERT", "properties", "propertyID", p.ID, "ownerID", p.OwnerID)
	err := r.db.QueryRowContext(ctx, query,
		rec.ID, rec.OwnerID, rec.AgentID, rec.Title, rec.Description, rec.Category,
		rec.Price, rec.Period, rec.Location, rec.Images, rec.Amenities, rec.Rating,
		rec.ReviewsCount, rec.Status,
	).Scan(&p.CreatedAt)
	logger.DatabaseResult("INSERT", 1, err, "propertyID", p.ID)
	if err != nil {
		return apperrors.Store("properties.create", err)
	}
	return nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	ctx, cancel := bounded(ctx, r.timeout)
	defer cancel()

	var rec mapper.PropertyRecord
	query := `SELECT ` + mapper.PropertyColumns + ` FROM properties WHERE id = $1`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(rec.Targets()...); err != nil {
		return nil, storeErr("properties.get", err, "property", id)
	}
	p := mapper.PropertyToDomain(rec)
	return &p, nil
}

func (r *propertyRepository) ListApproved(ctx context.Context) ([]domain.Property, error) {
	return r.list(ctx, "properties.list_approved",
		`SELECT `+mapper.PropertyColumns+` FROM properties WHERE status = $1 ORDER BY created_at DESC`,
		domain.PropertyStatusApproved)
}

func (r *propertyRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Property, error) {
	return r.list(ctx, "properties.list_by_owner",
		`SELECT `+mapper.PropertyColumns+` FROM properties WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID)
}

func (r *propertyRepository) ListByAgent(ctx context.Context, agentID string) ([]domain.Property, error) {
	return r.list(ctx, "properties.list_by_agent",
		`SELECT `+mapper.PropertyColumns+` FROM properties WHERE agent_id = $1 ORDER BY created_at DESC`,
		agentID)
}

func (r *propertyRepository) ListAll(ctx context.Context) ([]domain.Property, error) {
	return r.list(ctx, "properties.list_all",
		`SELECT `+mapper.PropertyColumns+` FROM properties ORDER BY created_at DESC`)
}

func (r *propertyRepository) list(ctx context.Context, op, query string, args ...any) ([]domain.Property, error) {
	ctx, cancel := bounded(ctx, r.timeout)
	defer cancel()

	logger.DatabaseCall("SELECT", "properties", "op", op)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err, "op", op)
		return nil, apperrors.Store(op, err)
	}
	defer rows.Close()

	var recs []mapper.PropertyRecord
	for rows.Next() {
		var rec mapper.PropertyRecord
		if err := rows.Scan(rec.Targets()...); err != nil {
			return nil, apperrors.Store(op, err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(op, err)
	}
	logger.DatabaseResult("SELECT", int64(len(recs)), nil, "op", op)
	return mapper.PropertiesToDomain(recs), nil
}

func (r *propertyRepository) UpdateStatus(ctx context.Context, ev *domain.ModerationEvent) error {
	const op = "properties.update_status"
	ctx, cancel := bounded(ctx, r.timeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Store(op, err)
	}
	defer tx.Rollback()

	// Guarded on the previous status so a concurrent moderation is not overwritten.
	result, err := tx.ExecContext(ctx, `UPDATE properties SET status = $1 WHERE id = $2 AND status = $3`, ev.To, ev.PropertyID, ev.From)
	if err != nil {
		return apperrors.Store(op, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return apperrors.Store(op, err)
	}
	if n == 0 {
		var current string
		err := tx.QueryRowContext(ctx, `SELECT status FROM properties WHERE id = $1`, ev.PropertyID).Scan(&current)
		if err == sql.ErrNoRows {
			return apperrors.NotFound(op, "property %s not found", ev.PropertyID)
		}
		if err != nil {
			return apperrors.Store(op, err)
		}
		return apperrors.Validation(op, "listing status changed concurrently",
			map[string]string{"status": "Expected " + string(ev.From) + ", found " + current})
	}

	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO moderation_events (id, property_id, actor_id, from_status, to_status) VALUES ($1, $2, $3, $4, $5) RETURNING created_at`,
		ev.ID, ev.PropertyID, ev.ActorID, ev.From, ev.To,
	).Scan(&ev.CreatedAt)
	if err != nil {
		return apperrors.Store(op, err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Store(op, err)
	}
	logger.DatabaseResult("UPDATE", n, nil, "propertyID", ev.PropertyID, "status", ev.To)
	return nil
}

func (r *propertyRepository) ListModerationEvents(ctx context.Context, propertyID string) ([]domain.ModerationEvent, error) {
	const op = "moderation_events.list"
	ctx, cancel := bounded(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, property_id, actor_id, from_status, to_status, created_at FROM moderation_events WHERE property_id = $1 ORDER BY created_at DESC`,
		propertyID)
	if err != nil {
		return nil, apperrors.Store(op, err)
	}
	defer rows.Close()

	events := []domain.ModerationEvent{}
	for rows.Next() {
		var ev domain.ModerationEvent
		if err := rows.Scan(&ev.ID, &ev.PropertyID, &ev.ActorID, &ev.From, &ev.To, &ev.CreatedAt); err != nil {
			return nil, apperrors.Store(op, err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Store(op, err)
	}
	return events, nil
}
