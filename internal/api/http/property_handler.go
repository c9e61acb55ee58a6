package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"aubri-backend/internal/domain"
	"aubri-backend/internal/filter"
	"aubri-backend/internal/service"
)

type PropertyHandler struct {
	listingSvc service.ListingService
}

func NewPropertyHandler(listingSvc service.ListingService) *PropertyHandler {
	return &PropertyHandler{listingSvc: listingSvc}
}

// List serves the public browse page. Without query parameters it is the
// plain approved feed.
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	criteria, err := filter.ParseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}

	var props []domain.Property
	if criteria == (filter.Criteria{}) {
		props, err = h.listingSvc.ListApproved(r.Context())
	} else {
		props, err = h.listingSvc.Search(r.Context(), criteria)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, props)
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.listingSvc.GetByID(r.Context(), ActorFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft domain.PropertyDraft
	if err := decodeJSON(r, "http.property.create", &draft); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := h.listingSvc.Create(r.Context(), ActorFromContext(r.Context()), draft)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *PropertyHandler) ListByOwner(w http.ResponseWriter, r *http.Request) {
	props, err := h.listingSvc.ListByOwner(r.Context(), ActorFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, props)
}

func (h *PropertyHandler) ListAssigned(w http.ResponseWriter, r *http.Request) {
	props, err := h.listingSvc.ListAssigned(r.Context(), ActorFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, props)
}

func (h *PropertyHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	props, err := h.listingSvc.ListAllForAdmin(r.Context(), ActorFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, props)
}

func (h *PropertyHandler) Approve(w http.ResponseWriter, r *http.Request) {
	p, err := h.listingSvc.Approve(r.Context(), ActorFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PropertyHandler) Reject(w http.ResponseWriter, r *http.Request) {
	p, err := h.listingSvc.Reject(r.Context(), ActorFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PropertyHandler) History(w http.ResponseWriter, r *http.Request) {
	events, err := h.listingSvc.History(r.Context(), ActorFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
