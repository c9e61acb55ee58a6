package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"aubri-backend/internal/apperrors"
	"aubri-backend/internal/cache"
	"aubri-backend/internal/domain"
	"aubri-backend/internal/filter"
	"aubri-backend/internal/moderation"
	"aubri-backend/internal/validator"
)

var (
	adminUser    = &domain.User{ID: "admin1", Name: "Ama", Role: domain.RoleAdmin}
	ownerUser    = &domain.User{ID: "owner1", Name: "Kwame", Email: "kwame@example.com", Role: domain.RoleOwner}
	agentUser    = &domain.User{ID: "agent1", Name: "Efua", Role: domain.RoleAgent}
	customerUser = &domain.User{ID: "cust1", Name: "Yaw", Role: domain.RoleCustomer}
)

func approvedP1() *domain.Property {
	return &domain.Property{ID: "p1", OwnerID: "owner1", Title: "Beach Hut", Location: "Cape Coast",
		Category: domain.CategoryShortStay, Price: 150, Period: domain.PeriodNight, Status: domain.PropertyStatusApproved}
}

func pendingP4() *domain.Property {
	return &domain.Property{ID: "p4", OwnerID: "owner1", Title: "Loft", Location: "Accra",
		Category: domain.CategoryLongStay, Price: 1200, Period: domain.PeriodMonth, Status: domain.PropertyStatusPending}
}

type listingFixture struct {
	props    *MockPropertyRepo
	profiles *MockProfileRepo
	cache    *MockListingCache
	email    *MockEmailService
	svc      ListingService
}

func newListingFixture(allowReversal bool) *listingFixture {
	f := &listingFixture{
		props:    new(MockPropertyRepo),
		profiles: new(MockProfileRepo),
		cache:    new(MockListingCache),
		email:    new(MockEmailService),
	}
	f.svc = NewListingService(f.props, f.profiles, f.cache, f.email, moderation.NewWorkflow(allowReversal), validator.New())
	return f
}

func validDraft() domain.PropertyDraft {
	return domain.PropertyDraft{
		Title:     "Garden Flat",
		Category:  domain.CategoryLongStay,
		Price:     900,
		Location:  "Kumasi",
		Amenities: []string{"parking"},
	}
}

func TestListingService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Always pending", func(t *testing.T) {
		f := newListingFixture(true)
		f.props.On("Create", ctx, mock.AnythingOfType("*domain.Property")).Return(nil)

		draft := validDraft()
		draft.Status = domain.PropertyStatusApproved
		draft.OwnerID = "someone-else"

		p, err := f.svc.Create(ctx, ownerUser, draft)
		require.NoError(t, err)
		assert.Equal(t, domain.PropertyStatusPending, p.Status)
		assert.Equal(t, "owner1", p.OwnerID)
		assert.Equal(t, domain.PeriodMonth, p.Period)
		assert.Zero(t, p.Rating)
		assert.Zero(t, p.ReviewsCount)
		assert.Equal(t, []string{}, p.Images)
	})

	t.Run("Admin may create for an owner", func(t *testing.T) {
		f := newListingFixture(true)
		f.props.On("Create", ctx, mock.AnythingOfType("*domain.Property")).Return(nil)

		draft := validDraft()
		draft.OwnerID = "owner1"
		p, err := f.svc.Create(ctx, adminUser, draft)
		require.NoError(t, err)
		assert.Equal(t, "owner1", p.OwnerID)
		assert.Equal(t, domain.PropertyStatusPending, p.Status)
	})

	t.Run("Customer is forbidden", func(t *testing.T) {
		f := newListingFixture(true)
		_, err := f.svc.Create(ctx, customerUser, validDraft())
		assert.True(t, errors.Is(err, apperrors.ErrForbidden))
		f.props.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Invalid draft", func(t *testing.T) {
		f := newListingFixture(true)
		draft := validDraft()
		draft.Price = 0
		draft.Title = ""

		_, err := f.svc.Create(ctx, ownerUser, draft)
		var appErr *apperrors.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.KindValidation, appErr.Kind)
		assert.Contains(t, appErr.Details, "price")
		assert.Contains(t, appErr.Details, "title")
	})

	t.Run("Assigned agent must be an agent", func(t *testing.T) {
		f := newListingFixture(true)
		f.profiles.On("GetByID", ctx, "cust1").Return(customerUser, nil)

		draft := validDraft()
		draft.AgentID = "cust1"
		_, err := f.svc.Create(ctx, ownerUser, draft)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})
}

func TestListingService_ListApproved(t *testing.T) {
	ctx := context.Background()

	t.Run("Cache miss reads the store", func(t *testing.T) {
		f := newListingFixture(true)
		f.cache.On("GetApproved", ctx).Return(nil, false)
		f.cache.On("Generation", ctx).Return(int64(7), nil)
		// A stale row slipping through the store query is still dropped.
		f.props.On("ListApproved", ctx).Return([]domain.Property{*approvedP1(), *pendingP4()}, nil)
		f.cache.On("SetApproved", ctx, int64(7), mock.Anything).Return()

		props, err := f.svc.ListApproved(ctx)
		require.NoError(t, err)
		require.Len(t, props, 1)
		assert.Equal(t, "p1", props[0].ID)
		f.cache.AssertCalled(t, "SetApproved", ctx, int64(7), []domain.Property{*approvedP1()})
	})

	t.Run("Unreadable generation skips the cache write", func(t *testing.T) {
		f := newListingFixture(true)
		f.cache.On("GetApproved", ctx).Return(nil, false)
		f.cache.On("Generation", ctx).Return(int64(0), errors.New("redis down"))
		f.props.On("ListApproved", ctx).Return([]domain.Property{*approvedP1()}, nil)

		props, err := f.svc.ListApproved(ctx)
		require.NoError(t, err)
		assert.Len(t, props, 1)
		f.cache.AssertNotCalled(t, "SetApproved", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Cache hit skips the store", func(t *testing.T) {
		f := newListingFixture(true)
		f.cache.On("GetApproved", ctx).Return([]domain.Property{*approvedP1()}, true)

		props, err := f.svc.ListApproved(ctx)
		require.NoError(t, err)
		assert.Len(t, props, 1)
		f.props.AssertNotCalled(t, "ListApproved", mock.Anything)
	})

	t.Run("Store failure", func(t *testing.T) {
		f := newListingFixture(true)
		f.cache.On("GetApproved", ctx).Return(nil, false)
		f.cache.On("Generation", ctx).Return(int64(0), nil)
		f.props.On("ListApproved", ctx).Return([]domain.Property(nil), apperrors.Store("properties.list_approved", errors.New("down")))

		_, err := f.svc.ListApproved(ctx)
		assert.True(t, errors.Is(err, apperrors.ErrStore))
	})
}

func TestListingService_Search(t *testing.T) {
	ctx := context.Background()
	f := newListingFixture(true)
	free := domain.Property{ID: "p9", Title: "Shared Room", Location: "Tamale", Category: domain.CategoryShortStay, Price: 0, Status: domain.PropertyStatusApproved}
	f.cache.On("GetApproved", ctx).Return([]domain.Property{*approvedP1(), free}, true)

	zero := 0.0
	props, err := f.svc.Search(ctx, filter.Criteria{Category: "all", MaxPrice: &zero})
	require.NoError(t, err)
	require.Len(t, props, 1)
	assert.Equal(t, "p9", props[0].ID)

	_, err = f.svc.Search(ctx, filter.Criteria{Category: "castle"})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestListingService_GetByID(t *testing.T) {
	ctx := context.Background()
	f := newListingFixture(true)
	f.props.On("GetByID", ctx, "p1").Return(approvedP1(), nil)
	f.props.On("GetByID", ctx, "p4").Return(pendingP4(), nil)
	f.props.On("GetByID", ctx, "nope").Return(nil, apperrors.NotFound("properties.get", "property nope not found"))

	p, err := f.svc.GetByID(ctx, nil, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)

	_, err = f.svc.GetByID(ctx, nil, "p4")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	_, err = f.svc.GetByID(ctx, customerUser, "p4")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	p, err = f.svc.GetByID(ctx, ownerUser, "p4")
	require.NoError(t, err)
	assert.Equal(t, domain.PropertyStatusPending, p.Status)
	_, err = f.svc.GetByID(ctx, adminUser, "p4")
	assert.NoError(t, err)

	_, err = f.svc.GetByID(ctx, adminUser, "nope")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestListingService_Lists(t *testing.T) {
	ctx := context.Background()
	f := newListingFixture(true)
	f.props.On("ListByOwner", ctx, "owner1").Return([]domain.Property{*pendingP4(), *approvedP1()}, nil)
	f.props.On("ListByAgent", ctx, "agent1").Return([]domain.Property{}, nil)
	f.props.On("ListAll", ctx).Return([]domain.Property{*pendingP4(), *approvedP1()}, nil)

	props, err := f.svc.ListByOwner(ctx, ownerUser, "owner1")
	require.NoError(t, err)
	assert.Len(t, props, 2)

	_, err = f.svc.ListByOwner(ctx, &domain.User{ID: "owner2", Role: domain.RoleOwner}, "owner1")
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	_, err = f.svc.ListByOwner(ctx, adminUser, "owner1")
	assert.NoError(t, err)

	_, err = f.svc.ListAssigned(ctx, agentUser)
	assert.NoError(t, err)

	_, err = f.svc.ListAllForAdmin(ctx, ownerUser)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
	_, err = f.svc.ListAllForAdmin(ctx, nil)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthenticated))
	props, err = f.svc.ListAllForAdmin(ctx, adminUser)
	require.NoError(t, err)
	assert.Len(t, props, 2)
}

func TestListingService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("Pending to approved", func(t *testing.T) {
		f := newListingFixture(true)
		f.props.On("GetByID", ctx, "p4").Return(pendingP4(), nil)
		f.props.On("UpdateStatus", ctx, mock.MatchedBy(func(ev *domain.ModerationEvent) bool {
			return ev.PropertyID == "p4" && ev.ActorID == "admin1" &&
				ev.From == domain.PropertyStatusPending && ev.To == domain.PropertyStatusApproved
		})).Return(nil)
		f.cache.On("Invalidate", ctx).Return()
		f.profiles.On("GetByID", ctx, "owner1").Return(ownerUser, nil)
		f.email.On("SendModerationResult", ctx, ownerUser, mock.AnythingOfType("*domain.Property")).Return(nil)

		p, err := f.svc.Approve(ctx, adminUser, "p4")
		require.NoError(t, err)
		assert.Equal(t, domain.PropertyStatusApproved, p.Status)
		f.cache.AssertCalled(t, "Invalidate", ctx)
		f.email.AssertExpectations(t)
	})

	t.Run("Approve twice is a no-op", func(t *testing.T) {
		f := newListingFixture(true)
		f.props.On("GetByID", ctx, "p1").Return(approvedP1(), nil)

		for i := 0; i < 2; i++ {
			p, err := f.svc.Approve(ctx, adminUser, "p1")
			require.NoError(t, err)
			assert.Equal(t, domain.PropertyStatusApproved, p.Status)
		}
		f.props.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
		f.cache.AssertNotCalled(t, "Invalidate", mock.Anything)
	})

	t.Run("Non-admin is forbidden before any lookup", func(t *testing.T) {
		f := newListingFixture(true)
		_, err := f.svc.Approve(ctx, ownerUser, "p4")
		assert.True(t, errors.Is(err, apperrors.ErrForbidden))
		_, err = f.svc.Reject(ctx, customerUser, "p4")
		assert.True(t, errors.Is(err, apperrors.ErrForbidden))
		f.props.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("Unknown id", func(t *testing.T) {
		f := newListingFixture(true)
		f.props.On("GetByID", ctx, "ghost").Return(nil, apperrors.NotFound("properties.get", "property ghost not found"))

		_, err := f.svc.Approve(ctx, adminUser, "ghost")
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
		_, err = f.svc.Reject(ctx, adminUser, "ghost")
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("Notification failure does not fail moderation", func(t *testing.T) {
		f := newListingFixture(true)
		f.props.On("GetByID", ctx, "p1").Return(approvedP1(), nil)
		f.props.On("UpdateStatus", ctx, mock.Anything).Return(nil)
		f.cache.On("Invalidate", ctx).Return()
		f.profiles.On("GetByID", ctx, "owner1").Return(ownerUser, nil)
		f.email.On("SendModerationResult", ctx, ownerUser, mock.Anything).Return(errors.New("sendgrid down"))

		p, err := f.svc.Reject(ctx, adminUser, "p1")
		require.NoError(t, err)
		assert.Equal(t, domain.PropertyStatusRejected, p.Status)
	})

	t.Run("Reversal disabled", func(t *testing.T) {
		f := newListingFixture(false)
		f.props.On("GetByID", ctx, "p1").Return(approvedP1(), nil)

		_, err := f.svc.Reject(ctx, adminUser, "p1")
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		f.props.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	})
}

func TestListingService_RejectDuringFeedRead(t *testing.T) {
	ctx := context.Background()
	props := new(MockPropertyRepo)
	svc := NewListingService(props, new(MockProfileRepo), cache.NewMemoryCache(time.Minute), nil,
		moderation.NewWorkflow(true), validator.New())

	started := make(chan struct{})
	release := make(chan struct{})
	props.On("ListApproved", ctx).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return([]domain.Property{*approvedP1()}, nil).Once()
	props.On("ListApproved", ctx).Return([]domain.Property{}, nil)
	props.On("GetByID", ctx, "p1").Return(approvedP1(), nil)
	props.On("UpdateStatus", ctx, mock.Anything).Return(nil)

	done := make(chan []domain.Property)
	go func() {
		feed, _ := svc.ListApproved(ctx)
		done <- feed
	}()

	<-started
	_, err := svc.Reject(ctx, adminUser, "p1")
	require.NoError(t, err)
	close(release)
	<-done

	feed, err := svc.ListApproved(ctx)
	require.NoError(t, err)
	assert.Empty(t, feed, "rejected listing must leave the public feed")
	props.AssertNumberOfCalls(t, "ListApproved", 2)
}

func TestListingService_History(t *testing.T) {
	ctx := context.Background()
	f := newListingFixture(true)
	f.props.On("GetByID", ctx, "p1").Return(approvedP1(), nil)
	f.props.On("ListModerationEvents", ctx, "p1").Return([]domain.ModerationEvent{{ID: "e1", PropertyID: "p1"}}, nil)

	events, err := f.svc.History(ctx, ownerUser, "p1")
	require.NoError(t, err)
	assert.Len(t, events, 1)

	_, err = f.svc.History(ctx, customerUser, "p1")
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
}
