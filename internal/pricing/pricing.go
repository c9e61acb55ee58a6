// Package pricing computes booking totals from a listing's price and period.
package pricing

import (
	"fmt"
	"math"
	"time"

	"aubri-backend/internal/domain"
)

// Date is a calendar date with no time of day.
type Date struct {
	Year  int
	Month int
	Day   int
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m), Day: d}
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in a given month
func DaysInMonth(year, month int) int {
	if month == 2 {
		if (year%4 == 0 && year%100 != 0) || (year%400 == 0) {
			return 29
		}
		return 28
	}
	if month == 4 || month == 6 || month == 9 || month == 11 {
		return 30
	}
	return 31
}

// DateDifference is the span between two dates as whole months plus days.
type DateDifference struct {
	Months int
	Days   int
}

// Difference computes end - start. The end date is the checkout date and is
// not counted.
func Difference(start, end Date) (DateDifference, error) {
	if end.Time().Before(start.Time()) {
		return DateDifference{}, fmt.Errorf("end date must be >= start date")
	}

	years := end.Year - start.Year
	months := end.Month - start.Month
	days := end.Day - start.Day

	if days < 0 {
		months--
		prevMonth := end.Month - 1
		prevYear := end.Year
		if prevMonth < 1 {
			prevMonth = 12
			prevYear--
		}
		days += DaysInMonth(prevYear, prevMonth)
	}
	if months < 0 {
		years--
		months += 12
	}
	months += 12 * years

	return DateDifference{Months: months, Days: days}, nil
}

// Nights counts the nights between check-in and checkout.
func Nights(start, end Date) int {
	return int(end.Time().Sub(start.Time()).Hours() / 24)
}

type Quote struct {
	Units     int                `json:"units"`
	Period    domain.PricePeriod `json:"period"`
	UnitPrice float64            `json:"unit_price"`
	Total     float64            `json:"total"`
}

// QuoteFor prices a stay at p from start to end.
//   - night: one unit per night, at least one.
//   - month: whole months, a partial month counts as a full one, at least one.
//   - total: the listed price once, whatever the dates.
func QuoteFor(p *domain.Property, start, end time.Time) (Quote, error) {
	s, e := DateOf(start), DateOf(end)
	diff, err := Difference(s, e)
	if err != nil {
		return Quote{}, err
	}

	period := p.Period
	if period == "" {
		period = p.Category.DefaultPeriod()
	}

	var units int
	switch period {
	case domain.PeriodNight:
		units = max(Nights(s, e), 1)
	case domain.PeriodMonth:
		units = diff.Months
		if diff.Days > 0 {
			units++
		}
		units = max(units, 1)
	case domain.PeriodTotal:
		units = 1
	default:
		return Quote{}, fmt.Errorf("unsupported price period %q", period)
	}

	return Quote{
		Units:     units,
		Period:    period,
		UnitPrice: p.Price,
		Total:     roundCents(p.Price * float64(units)),
	}, nil
}

// Matches reports whether a caller-supplied total agrees with q to the cent.
func (q Quote) Matches(total float64) bool {
	return math.Abs(roundCents(total)-q.Total) < 0.005
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
