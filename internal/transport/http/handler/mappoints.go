package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/verdant-studio/portal-api/internal/application/content"
	"github.com/verdant-studio/portal-api/internal/domain"
	"github.com/verdant-studio/portal-api/internal/pkg/validate"
)

// MapPointHandler handles the public marketing map. Reads are anonymous,
// writes are staff-only via the route group.
type MapPointHandler struct {
	svc content.Service
}

func NewMapPointHandler(svc content.Service) *MapPointHandler { return &MapPointHandler{svc: svc} }

func (h *MapPointHandler) List(w http.ResponseWriter, r *http.Request) {
	points, err := h.svc.ListMapPoints(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListEnvelope{Data: points})
}

func (h *MapPointHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.MapPointInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	p, err := h.svc.CreateMapPoint(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *MapPointHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.MapPointInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	p, err := h.svc.UpdateMapPoint(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *MapPointHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteMapPoint(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "map point deleted"})
}
