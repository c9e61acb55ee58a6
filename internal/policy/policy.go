// Package policy maps roles to dashboard views and decides who may do what.
package policy

import (
	"aubri-backend/internal/domain"
)

type View string

const (
	ViewAdmin    View = "/dashboard/admin"
	ViewOwner    View = "/dashboard/owner"
	ViewAgent    View = "/dashboard/agent"
	ViewCustomer View = "/dashboard/customer"

	LoginPath = "/login"
	HomePath  = "/"
)

// ResolveView returns the landing dashboard for role. Unknown roles get the
// customer dashboard.
func ResolveView(role domain.Role) View {
	switch role {
	case domain.RoleAdmin:
		return ViewAdmin
	case domain.RoleOwner:
		return ViewOwner
	case domain.RoleAgent:
		return ViewAgent
	}
	return ViewCustomer
}

type Decision struct {
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
}

// Authorize admits actor when it holds one of required. An empty required set
// admits any signed-in actor. Anonymous actors are sent to login, signed-in
// actors without the role are sent home.
func Authorize(actor *domain.User, required ...domain.Role) Decision {
	if actor == nil {
		return Decision{Redirect: LoginPath}
	}
	if len(required) == 0 {
		return Decision{Allowed: true}
	}
	for _, r := range required {
		if actor.Role == r {
			return Decision{Allowed: true}
		}
	}
	return Decision{Redirect: HomePath}
}

var viewRoles = map[View]domain.Role{
	ViewAdmin:    domain.RoleAdmin,
	ViewOwner:    domain.RoleOwner,
	ViewAgent:    domain.RoleAgent,
	ViewCustomer: domain.RoleCustomer,
}

// GuardView gates a dashboard view. Each dashboard belongs to exactly one role;
// views outside the table are public.
func GuardView(actor *domain.User, view View) Decision {
	role, gated := viewRoles[view]
	if !gated {
		return Decision{Allowed: true}
	}
	return Authorize(actor, role)
}

type NavLink struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

var roleLinks = map[domain.Role][]string{
	domain.RoleAdmin:    {"Users", "Approvals", "Revenue"},
	domain.RoleOwner:    {"My Properties", "Bookings", "Payouts"},
	domain.RoleAgent:    {"Assigned Homes", "Inspections", "Clients"},
	domain.RoleCustomer: {"Bookings", "Wishlist", "Payments"},
}

// NavLinks returns the sidebar for role: the overview of its own dashboard
// followed by the role's sections.
func NavLinks(role domain.Role) []NavLink {
	role = domain.ParseRole(string(role))
	links := []NavLink{{Name: "Overview", Path: string(ResolveView(role))}}
	for _, name := range roleLinks[role] {
		links = append(links, NavLink{Name: name, Path: "#"})
	}
	return links
}
