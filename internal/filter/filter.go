// Package filter narrows listing collections with composable predicates.
package filter

import (
	"net/url"
	"strconv"
	"strings"

	"aubri-backend/internal/apperrors"
	"aubri-backend/internal/domain"
)

// CategoryAll disables the category filter.
const CategoryAll = "all"

type Criteria struct {
	Text     string   `json:"q,omitempty"`
	Category string   `json:"category,omitempty"`
	MaxPrice *float64 `json:"max_price,omitempty"`
}

func (c Criteria) Validate() error {
	if c.Category != "" && c.Category != CategoryAll && !domain.PropertyCategory(c.Category).Valid() {
		return apperrors.Validation("filter.criteria", "unknown category",
			map[string]string{"category": "Must be one of: all, short_stay, long_stay, hire_purchase"})
	}
	if c.MaxPrice != nil && *c.MaxPrice < 0 {
		return apperrors.Validation("filter.criteria", "negative price bound",
			map[string]string{"max_price": "Must be at least 0"})
	}
	return nil
}

type Predicate func(p *domain.Property) bool

// And holds when every predicate holds. An empty And holds for everything.
func And(preds ...Predicate) Predicate {
	return func(p *domain.Property) bool {
		for _, pred := range preds {
			if !pred(p) {
				return false
			}
		}
		return true
	}
}

// Text matches a case-insensitive substring of the title or the location.
func Text(q string) Predicate {
	q = strings.ToLower(q)
	return func(p *domain.Property) bool {
		return strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Location), q)
	}
}

func Category(c domain.PropertyCategory) Predicate {
	return func(p *domain.Property) bool {
		return p.Category == c
	}
}

// MaxPrice is an inclusive upper bound.
func MaxPrice(limit float64) Predicate {
	return func(p *domain.Property) bool {
		return p.Price <= limit
	}
}

// Predicate builds the conjunction of the active filters in c.
func (c Criteria) Predicate() Predicate {
	var preds []Predicate
	if c.Text != "" {
		preds = append(preds, Text(c.Text))
	}
	if c.Category != "" && c.Category != CategoryAll {
		preds = append(preds, Category(domain.PropertyCategory(c.Category)))
	}
	if c.MaxPrice != nil {
		preds = append(preds, MaxPrice(*c.MaxPrice))
	}
	return And(preds...)
}

// Apply returns the properties matching c in their original order. The input
// slice is not modified.
func Apply(props []domain.Property, c Criteria) []domain.Property {
	pred := c.Predicate()
	out := make([]domain.Property, 0, len(props))
	for i := range props {
		if pred(&props[i]) {
			out = append(out, props[i])
		}
	}
	return out
}

// ParseCriteria reads q, category and max_price from a query string.
func ParseCriteria(v url.Values) (Criteria, error) {
	c := Criteria{
		Text:     strings.TrimSpace(v.Get("q")),
		Category: strings.TrimSpace(v.Get("category")),
	}
	if raw := strings.TrimSpace(v.Get("max_price")); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Criteria{}, apperrors.Validation("filter.parse", "invalid max_price",
				map[string]string{"max_price": "Must be a number"})
		}
		c.MaxPrice = &f
	}
	if err := c.Validate(); err != nil {
		return Criteria{}, err
	}
	return c, nil
}
