// Package mapper translates between the store's snake_case records and the
// domain types. Absent optional fields become defaults instead of errors.
package mapper

import (
	"time"

	"github.com/lib/pq"

	"aubri-backend/internal/domain"
)

// PropertyColumns lists the properties table columns in PropertyRecord.Targets order.
const PropertyColumns = "id, owner_id, agent_id, title, description, category, price, period, location, images, amenities, rating, reviews_count, status, created_at"

type PropertyRecord struct {
	ID           string         `json:"id"`
	OwnerID      *string        `json:"owner_id"`
	AgentID      *string        `json:"agent_id"`
	Title        *string        `json:"title"`
	Description  *string        `json:"description"`
	Category     *string        `json:"category"`
	Price        *float64       `json:"price"`
	Period       *string        `json:"period"`
	Location     *string        `json:"location"`
	Images       pq.StringArray `json:"images"`
	Amenities    pq.StringArray `json:"amenities"`
	Rating       *float64       `json:"rating"`
	ReviewsCount *int32         `json:"reviews_count"`
	Status       *string        `json:"status"`
	CreatedAt    *time.Time     `json:"created_at"`
}

// Targets returns scan destinations matching PropertyColumns.
func (r *PropertyRecord) Targets() []any {
	return []any{
		&r.ID, &r.OwnerID, &r.AgentID, &r.Title, &r.Description, &r.Category,
		&r.Price, &r.Period, &r.Location, &r.Images, &r.Amenities, &r.Rating,
		&r.ReviewsCount, &r.Status, &r.CreatedAt,
	}
}

func PropertyToDomain(r PropertyRecord) domain.Property {
	p := domain.Property{
		ID:           r.ID,
		OwnerID:      str(r.OwnerID),
		AgentID:      str(r.AgentID),
		Title:        str(r.Title),
		Description:  str(r.Description),
		Category:     domain.PropertyCategory(str(r.Category)),
		Price:        num(r.Price),
		Period:       domain.PricePeriod(str(r.Period)),
		Location:     str(r.Location),
		Images:       list(r.Images),
		Amenities:    list(r.Amenities),
		Rating:       num(r.Rating),
		ReviewsCount: count(r.ReviewsCount),
		Status:       domain.PropertyStatus(str(r.Status)),
		CreatedAt:    stamp(r.CreatedAt),
	}
	if p.Period == "" {
		p.Period = p.Category.DefaultPeriod()
	}
	// A record without a status is treated as not yet moderated.
	if p.Status == "" {
		p.Status = domain.PropertyStatusPending
	}
	return p
}

func PropertiesToDomain(rs []PropertyRecord) []domain.Property {
	out := make([]domain.Property, 0, len(rs))
	for _, r := range rs {
		out = append(out, PropertyToDomain(r))
	}
	return out
}

func PropertyFromDomain(p domain.Property) PropertyRecord {
	r := PropertyRecord{
		ID:           p.ID,
		OwnerID:      ptr(p.OwnerID),
		AgentID:      ptr(p.AgentID),
		Title:        &p.Title,
		Description:  &p.Description,
		Category:     ptr(string(p.Category)),
		Price:        &p.Price,
		Period:       ptr(string(p.Period)),
		Location:     &p.Location,
		Images:       pq.StringArray(list(p.Images)),
		Amenities:    pq.StringArray(list(p.Amenities)),
		Rating:       &p.Rating,
		ReviewsCount: &p.ReviewsCount,
		Status:       ptr(string(p.Status)),
	}
	if !p.CreatedAt.IsZero() {
		r.CreatedAt = &p.CreatedAt
	}
	return r
}

func PropertiesFromDomain(ps []domain.Property) []PropertyRecord {
	out := make([]PropertyRecord, 0, len(ps))
	for _, p := range ps {
		out = append(out, PropertyFromDomain(p))
	}
	return out
}
