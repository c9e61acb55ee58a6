package domain

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOwner    Role = "owner"
	RoleAgent    Role = "agent"
	RoleCustomer Role = "customer"
)

// ParseRole returns the role named by s. Unknown or empty names fall back to
// customer, matching the sign-up default.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleOwner, RoleAgent, RoleCustomer:
		return Role(s)
	}
	return RoleCustomer
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOwner, RoleAgent, RoleCustomer:
		return true
	}
	return false
}

type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Verified  bool   `json:"verified"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Credentials is an email + password sign-in request.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignUpRequest carries the profile claims attached at registration.
type SignUpRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Name      string `json:"name" validate:"required"`
	Role      Role   `json:"role"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}
