package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"aubri-backend/internal/apperrors"
	"aubri-backend/internal/config"
	"aubri-backend/internal/domain"
	"aubri-backend/internal/logger"
	"aubri-backend/internal/service"
)

// AuthMiddleware resolves the bearer token into an actor according to the
// security level configured for the matched route.
type AuthMiddleware struct {
	auth service.AuthService
}

func NewAuthMiddleware(auth service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		level := config.SecurityAccess
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				level = config.RequiredSecurity(r.Method, tpl)
			}
		}

		// Public endpoint - skip auth
		if level == config.SecurityPublic {
			next.ServeHTTP(w, r)
			return
		}

		token := bearerToken(r.Header.Get("Authorization"))
		var actor *domain.User
		if token != "" {
			actor = m.auth.Resolve(r.Context(), token)
		}

		if level == config.SecurityAccess && actor == nil {
			if token == "" {
				writeError(w, r, apperrors.Unauthenticated("http.auth", "authorization token is not provided"))
			} else {
				writeError(w, r, apperrors.Unauthenticated("http.auth", "invalid or expired session"))
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), token, actor)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs one line per request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}
