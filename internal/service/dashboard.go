package service

import (
	"context"

	"aubri-backend/internal/apperrors"
	"aubri-backend/internal/domain"
	"aubri-backend/internal/policy"
)

type dashboardService struct {
	listingSvc ListingService
	bookingSvc BookingService
}

func NewDashboardService(listingSvc ListingService, bookingSvc BookingService) DashboardService {
	return &dashboardService{listingSvc: listingSvc, bookingSvc: bookingSvc}
}

func (s *dashboardService) Home(ctx context.Context, actor *domain.User) (*Dashboard, error) {
	if actor == nil {
		return nil, denied("dashboard.home", policy.Decision{Redirect: policy.LoginPath})
	}
	return &Dashboard{View: policy.ResolveView(actor.Role), Links: policy.NavLinks(actor.Role)}, nil
}

func (s *dashboardService) Load(ctx context.Context, actor *domain.User, view policy.View) (*Dashboard, error) {
	const op = "dashboard.load"
	if d := policy.GuardView(actor, view); !d.Allowed {
		return nil, denied(op, d)
	}
	if actor == nil {
		return nil, apperrors.NotFound(op, "no dashboard at %s", view)
	}

	dash := &Dashboard{View: view, Links: policy.NavLinks(actor.Role)}
	var err error
	switch view {
	case policy.ViewAdmin:
		dash.Properties, err = s.listingSvc.ListAllForAdmin(ctx, actor)
		for _, p := range dash.Properties {
			if p.Status == domain.PropertyStatusPending {
				dash.PendingCount++
			}
		}
	case policy.ViewOwner:
		dash.Properties, err = s.listingSvc.ListByOwner(ctx, actor, actor.ID)
		if err == nil {
			dash.Bookings, err = s.bookingSvc.ListByOwnerProperties(ctx, actor, actor.ID)
		}
	case policy.ViewAgent:
		dash.Properties, err = s.listingSvc.ListAssigned(ctx, actor)
	case policy.ViewCustomer:
		dash.Bookings, err = s.bookingSvc.ListByCustomer(ctx, actor, actor.ID)
	default:
		return nil, apperrors.NotFound(op, "no dashboard at %s", view)
	}
	if err != nil {
		return nil, err
	}
	return dash, nil
}

// denied turns a routing decision into an error carrying the redirect target.
func denied(op string, d policy.Decision) error {
	details := map[string]string{"redirect": d.Redirect}
	if d.Redirect == policy.LoginPath {
		err := apperrors.Unauthenticated(op, "sign in to continue")
		err.Details = details
		return err
	}
	err := apperrors.Forbidden(op, "this dashboard belongs to another role")
	err.Details = details
	return err
}
