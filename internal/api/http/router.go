package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"aubri-backend/internal/service"
)

// Services groups what the HTTP API serves.
type Services struct {
	Auth      service.AuthService
	Listing   service.ListingService
	Booking   service.BookingService
	Dashboard service.DashboardService
	Health    Pinger
}

// NewRouter wires every route and wraps them in CORS and request logging.
func NewRouter(svcs Services, allowedOrigins []string) http.Handler {
	auth := NewAuthHandler(svcs.Auth)
	props := NewPropertyHandler(svcs.Listing)
	bookings := NewBookingHandler(svcs.Booking)
	dash := NewDashboardHandler(svcs.Dashboard)
	health := NewHealthHandler(svcs.Health)

	router := mux.NewRouter()
	router.Use(RequestLogger)
	router.HandleFunc("/healthz", health.Healthz).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(NewAuthMiddleware(svcs.Auth).Handler)

	// Auth
	api.HandleFunc("/auth/signup", auth.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", auth.Logout).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", auth.Me).Methods(http.MethodGet)

	// Dashboards
	api.HandleFunc("/dashboard", dash.Home).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/{role}", dash.Load).Methods(http.MethodGet)

	// Listings
	api.HandleFunc("/properties", props.List).Methods(http.MethodGet)
	api.HandleFunc("/properties", props.Create).Methods(http.MethodPost)
	api.HandleFunc("/properties/{id}", props.Get).Methods(http.MethodGet)
	api.HandleFunc("/owners/{id}/properties", props.ListByOwner).Methods(http.MethodGet)
	api.HandleFunc("/agents/me/properties", props.ListAssigned).Methods(http.MethodGet)

	// Moderation
	api.HandleFunc("/admin/properties", props.ListAll).Methods(http.MethodGet)
	api.HandleFunc("/admin/properties/{id}/approve", props.Approve).Methods(http.MethodPost)
	api.HandleFunc("/admin/properties/{id}/reject", props.Reject).Methods(http.MethodPost)
	api.HandleFunc("/admin/properties/{id}/history", props.History).Methods(http.MethodGet)

	// Bookings
	api.HandleFunc("/bookings", bookings.Create).Methods(http.MethodPost)
	api.HandleFunc("/bookings/quote", bookings.Quote).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id}/bookings", bookings.ListByCustomer).Methods(http.MethodGet)
	api.HandleFunc("/owners/{id}/bookings", bookings.ListByOwner).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	return c.Handler(router)
}
