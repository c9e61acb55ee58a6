package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"aubri-backend/internal/policy"
	"aubri-backend/internal/service"
)

type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

func (h *DashboardHandler) Home(w http.ResponseWriter, r *http.Request) {
	d, err := h.dashboardSvc.Home(r.Context(), ActorFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Load serves /dashboard/{role}. A mismatched role is answered with 403 and
// the redirect target in details.
func (h *DashboardHandler) Load(w http.ResponseWriter, r *http.Request) {
	view := policy.View("/dashboard/" + mux.Vars(r)["role"])
	d, err := h.dashboardSvc.Load(r.Context(), ActorFromContext(r.Context()), view)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
