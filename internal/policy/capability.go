package policy

import (
	"aubri-backend/internal/apperrors"
	"aubri-backend/internal/domain"
)

type Capability string

const (
	CapListingCreate       Capability = "listing.create"
	CapListingModerate     Capability = "listing.moderate"
	CapListingListAll      Capability = "listing.list_all"
	CapListingListOwn      Capability = "listing.list_own"
	CapListingListAssigned Capability = "listing.list_assigned"
	CapBookingCreate       Capability = "booking.create"
	CapBookingListOwn      Capability = "booking.list_own"
	CapBookingListOwner    Capability = "booking.list_owner"
)

var capabilities = map[Capability][]domain.Role{
	CapListingCreate:       {domain.RoleOwner, domain.RoleAdmin},
	CapListingModerate:     {domain.RoleAdmin},
	CapListingListAll:      {domain.RoleAdmin},
	CapListingListOwn:      {domain.RoleOwner, domain.RoleAdmin},
	CapListingListAssigned: {domain.RoleAgent, domain.RoleAdmin},
	CapBookingCreate:       {domain.RoleCustomer},
	CapBookingListOwn:      {domain.RoleCustomer, domain.RoleAdmin},
	CapBookingListOwner:    {domain.RoleOwner, domain.RoleAdmin},
}

func Can(actor *domain.User, c Capability) bool {
	roles, ok := capabilities[c]
	if !ok {
		return false
	}
	return Authorize(actor, roles...).Allowed
}

// Require is Can as an error: Unauthenticated for anonymous actors, Forbidden
// for everyone else who lacks c.
func Require(actor *domain.User, c Capability) error {
	if actor == nil {
		return apperrors.Unauthenticated(string(c), "sign in to continue")
	}
	if !Can(actor, c) {
		return apperrors.Forbidden(string(c), "role %s may not %s", actor.Role, c)
	}
	return nil
}
