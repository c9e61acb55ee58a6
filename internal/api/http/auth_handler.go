package http

import (
	"net/http"

	"aubri-backend/internal/domain"
	"aubri-backend/internal/policy"
	"aubri-backend/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignUpRequest
	if err := decodeJSON(r, "http.auth.signup", &req); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.authSvc.Signup(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := decodeJSON(r, "http.auth.login", &creds); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.authSvc.Login(r.Context(), creds)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Logout is idempotent: signing out without a session still succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := tokenFromContext(r.Context())
	if token != "" {
		if err := h.authSvc.Logout(r.Context(), token); err != nil {
			writeError(w, r, err)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

type meResponse struct {
	User *domain.User `json:"user"`
	View policy.View  `json:"view"`
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor := ActorFromContext(r.Context())
	writeJSON(w, http.StatusOK, meResponse{User: actor, View: policy.ResolveView(actor.Role)})
}
