package domain

import "time"

type PropertyCategory string

const (
	CategoryShortStay    PropertyCategory = "short_stay"
	CategoryLongStay     PropertyCategory = "long_stay"
	CategoryHirePurchase PropertyCategory = "hire_purchase"
)

func (c PropertyCategory) Valid() bool {
	switch c {
	case CategoryShortStay, CategoryLongStay, CategoryHirePurchase:
		return true
	}
	return false
}

// DefaultPeriod is the price period implied by the category.
func (c PropertyCategory) DefaultPeriod() PricePeriod {
	switch c {
	case CategoryShortStay:
		return PeriodNight
	case CategoryLongStay:
		return PeriodMonth
	case CategoryHirePurchase:
		return PeriodTotal
	}
	return ""
}

type PricePeriod string

const (
	PeriodNight PricePeriod = "night"
	PeriodMonth PricePeriod = "month"
	PeriodTotal PricePeriod = "total"
)

type PropertyStatus string

const (
	PropertyStatusPending  PropertyStatus = "pending"
	PropertyStatusApproved PropertyStatus = "approved"
	PropertyStatusRejected PropertyStatus = "rejected"
)

type Property struct {
	ID           string           `json:"id"`
	OwnerID      string           `json:"owner_id"`
	AgentID      string           `json:"agent_id,omitempty"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Category     PropertyCategory `json:"category"`
	Price        float64          `json:"price"`
	Period       PricePeriod      `json:"period,omitempty"`
	Location     string           `json:"location"`
	Images       []string         `json:"images"`    // first image is the primary one
	Amenities    []string         `json:"amenities"`
	Rating       float64          `json:"rating"`
	ReviewsCount int32            `json:"reviews_count"`
	Status       PropertyStatus   `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
}

func (p *Property) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// VisibleTo reports whether the listing may be shown to the given user.
// Approved listings are public; everything else is limited to the owner and admins.
func (p *Property) VisibleTo(u *User) bool {
	if p.Status == PropertyStatusApproved {
		return true
	}
	if u == nil {
		return false
	}
	return u.IsAdmin() || u.ID == p.OwnerID
}

// PropertyDraft is what an owner submits. Status, rating and review counts are
// server-assigned and not part of the draft.
type PropertyDraft struct {
	OwnerID     string           `json:"owner_id"`
	AgentID     string           `json:"agent_id"`
	Title       string           `json:"title" validate:"required,max=200"`
	Description string           `json:"description" validate:"max=5000"`
	Category    PropertyCategory `json:"category" validate:"required,oneof=short_stay long_stay hire_purchase"`
	Price       float64          `json:"price" validate:"gt=0"`
	Period      PricePeriod      `json:"period" validate:"omitempty,oneof=night month total"`
	Location    string           `json:"location" validate:"required"`
	Images      []string         `json:"images" validate:"dive,url"`
	Amenities   []string         `json:"amenities" validate:"dive,required"`
	Status      PropertyStatus   `json:"status"` // ignored, always stored as pending
}

// ModerationEvent records one status change made by an admin.
type ModerationEvent struct {
	ID         string         `json:"id"`
	PropertyID string         `json:"property_id"`
	ActorID    string         `json:"actor_id"`
	From       PropertyStatus `json:"from"`
	To         PropertyStatus `json:"to"`
	CreatedAt  time.Time      `json:"created_at"`
}
