package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"aubri-backend/internal/apperrors"
	"aubri-backend/internal/domain"
	"aubri-backend/internal/service"
)

const dateLayout = "2006-01-02"

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

// bookingRequest carries dates as strings so create accepts the same
// YYYY-MM-DD form as the quote endpoint, as well as RFC 3339.
type bookingRequest struct {
	PropertyID string  `json:"property_id"`
	CustomerID string  `json:"customer_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	TotalPrice float64 `json:"total_price"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "http.booking.create"
	var req bookingRequest
	if err := decodeJSON(r, op, &req); err != nil {
		writeError(w, r, err)
		return
	}
	draft := domain.BookingDraft{PropertyID: req.PropertyID, CustomerID: req.CustomerID, TotalPrice: req.TotalPrice}
	details := map[string]string{}
	var err error
	if draft.StartDate, err = parseDay(req.StartDate); err != nil {
		details["start_date"] = "Must be a date (YYYY-MM-DD)"
	}
	if draft.EndDate, err = parseDay(req.EndDate); err != nil {
		details["end_date"] = "Must be a date (YYYY-MM-DD)"
	}
	if len(details) > 0 {
		writeError(w, r, apperrors.Validation(op, "invalid booking request", details))
		return
	}
	b, err := h.bookingSvc.Create(r.Context(), ActorFromContext(r.Context()), draft)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// Quote prices a stay: ?property_id=...&start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	const op = "http.booking.quote"
	q := r.URL.Query()

	details := map[string]string{}
	propertyID := q.Get("property_id")
	if propertyID == "" {
		details["property_id"] = "This field is required"
	}
	start, err := parseDay(q.Get("start"))
	if err != nil || start.IsZero() {
		details["start"] = "Must be a date (YYYY-MM-DD)"
	}
	end, err := parseDay(q.Get("end"))
	if err != nil || end.IsZero() {
		details["end"] = "Must be a date (YYYY-MM-DD)"
	}
	if len(details) > 0 {
		writeError(w, r, apperrors.Validation(op, "invalid quote request", details))
		return
	}

	quote, err := h.bookingSvc.Quote(r.Context(), propertyID, start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// parseDay reads a calendar date or an RFC 3339 timestamp. Empty input is the
// zero time, left for the validator to reject.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(dateLayout, s, time.UTC); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (h *BookingHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingSvc.ListByCustomer(r.Context(), ActorFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingSvc.ListByOwnerProperties(r.Context(), ActorFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}
