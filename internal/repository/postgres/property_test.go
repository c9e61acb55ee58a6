package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aubri-backend/internal/apperrors"
	"aubri-backend/internal/domain"
)

var propertyCols = []string{"id", "owner_id", "agent_id", "title", "description", "category", "price", "period", "location", "images", "amenities", "rating", "reviews_count", "status", "created_at"}

func TestPropertyRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPropertyRepository(db, time.Second)
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	p := &domain.Property{
		OwnerID:   "u1",
		Title:     "Garden flat",
		Category:  domain.CategoryLongStay,
		Price:     900,
		Period:    domain.PeriodMonth,
		Location:  "Nairobi",
		Images:    []string{},
		Amenities: []string{"parking"},
		Status:    domain.PropertyStatusPending,
	}

	mock.ExpectQuery("INSERT INTO properties").
		WithArgs(sqlmock.AnyArg(), "u1", nil, "Garden flat", "", "long_stay", 900.0, "month", "Nairobi", sqlmock.AnyArg(), sqlmock.AnyArg(), 0.0, int32(0), "pending").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	err = repo.Create(context.Background(), p)
	assert.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, created, p.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPropertyRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPropertyRepository(db, time.Second)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(propertyCols).
			AddRow("p1", "u1", nil, "Beach hut", "Sea view", "short_stay", 150.0, nil, "Mombasa", "{https://img/1.jpg}", nil, nil, nil, "approved", time.Now())
		mock.ExpectQuery("SELECT (.+) FROM properties WHERE id = \\$1").
			WithArgs("p1").
			WillReturnRows(rows)

		p, err := repo.GetByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Beach hut", p.Title)
		assert.Equal(t, domain.PeriodNight, p.Period)
		assert.Equal(t, "https://img/1.jpg", p.PrimaryImage())
		assert.Equal(t, []string{}, p.Amenities)
		assert.Equal(t, domain.PropertyStatusApproved, p.Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM properties WHERE id = \\$1").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(propertyCols))

		p, err := repo.GetByID(ctx, "missing")
		assert.Nil(t, p)
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("StoreError", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM properties WHERE id = \\$1").
			WithArgs("p1").
			WillReturnError(errors.New("connection reset"))

		_, err := repo.GetByID(ctx, "p1")
		assert.Equal(t, apperrors.KindStore, apperrors.KindOf(err))
	})
}

func TestPropertyRepository_ListApproved(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPropertyRepository(db, time.Second)

	rows := sqlmock.NewRows(propertyCols).
		AddRow("p1", "u1", nil, "Beach hut", "", "short_stay", 150.0, "night", "Mombasa", "{}", "{wifi}", 4.5, int64(3), "approved", time.Now())
	mock.ExpectQuery("SELECT (.+) FROM properties WHERE status = \\$1 ORDER BY created_at DESC").
		WithArgs("approved").
		WillReturnRows(rows)

	props, err := repo.ListApproved(context.Background())
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, "p1", props[0].ID)
	assert.Equal(t, int32(3), props[0].ReviewsCount)
	assert.Equal(t, []string{"wifi"}, props[0].Amenities)
}

func TestPropertyRepository_ListAll_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPropertyRepository(db, time.Second)
	mock.ExpectQuery("SELECT (.+) FROM properties ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(propertyCols))

	props, err := repo.ListAll(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, props)
	assert.Len(t, props, 0)
}

func TestPropertyRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPropertyRepository(db, time.Second)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		ev := &domain.ModerationEvent{PropertyID: "p4", ActorID: "admin1", From: domain.PropertyStatusPending, To: domain.PropertyStatusApproved}

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE properties SET status = \\$1 WHERE id = \\$2 AND status = \\$3").
			WithArgs("approved", "p4", "pending").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO moderation_events").
			WithArgs(sqlmock.AnyArg(), "p4", "admin1", "pending", "approved").
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
		mock.ExpectCommit()

		err := repo.UpdateStatus(ctx, ev)
		assert.NoError(t, err)
		assert.NotEmpty(t, ev.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("StatusChangedUnderneath", func(t *testing.T) {
		ev := &domain.ModerationEvent{PropertyID: "p4", ActorID: "admin1", From: domain.PropertyStatusPending, To: domain.PropertyStatusRejected}

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE properties SET status").
			WithArgs("rejected", "p4", "pending").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT status FROM properties WHERE id = \\$1").
			WithArgs("p4").
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("approved"))
		mock.ExpectRollback()

		err := repo.UpdateStatus(ctx, ev)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
		assert.False(t, errors.Is(err, apperrors.ErrNotFound))
		var appErr *apperrors.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "Expected pending, found approved", appErr.Details["status"])
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MissingListing", func(t *testing.T) {
		ev := &domain.ModerationEvent{PropertyID: "p404", ActorID: "admin1", From: domain.PropertyStatusPending, To: domain.PropertyStatusApproved}

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE properties SET status").
			WithArgs("approved", "p404", "pending").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT status FROM properties").
			WithArgs("p404").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		err := repo.UpdateStatus(ctx, ev)
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AuditInsertFails", func(t *testing.T) {
		ev := &domain.ModerationEvent{PropertyID: "p4", ActorID: "admin1", From: domain.PropertyStatusPending, To: domain.PropertyStatusApproved}

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE properties SET status").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO moderation_events").
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err := repo.UpdateStatus(ctx, ev)
		assert.Equal(t, apperrors.KindStore, apperrors.KindOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
