package mapper

import (
	"aubri-backend/internal/domain"
)

const ProfileColumns = "id, email, name, role, avatar_url, verified"

type ProfileRecord struct {
	ID        string  `json:"id"`
	Email     *string `json:"email"`
	Name      *string `json:"name"`
	Role      *string `json:"role"`
	AvatarURL *string `json:"avatar_url"`
	Verified  *bool   `json:"verified"`
}

func (r *ProfileRecord) Targets() []any {
	return []any{&r.ID, &r.Email, &r.Name, &r.Role, &r.AvatarURL, &r.Verified}
}

func ProfileToDomain(r ProfileRecord) domain.User {
	u := domain.User{
		ID:        r.ID,
		Email:     str(r.Email),
		Name:      str(r.Name),
		Role:      domain.ParseRole(str(r.Role)),
		AvatarURL: str(r.AvatarURL),
	}
	if u.Name == "" {
		u.Name = "User"
	}
	if r.Verified != nil {
		u.Verified = *r.Verified
	}
	return u
}

func ProfileFromDomain(u domain.User) ProfileRecord {
	role := string(u.Role)
	return ProfileRecord{
		ID:        u.ID,
		Email:     ptr(u.Email),
		Name:      ptr(u.Name),
		Role:      &role,
		AvatarURL: ptr(u.AvatarURL),
		Verified:  &u.Verified,
	}
}
