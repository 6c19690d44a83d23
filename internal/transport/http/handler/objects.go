package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/verdant-studio/portal-api/internal/application/object"
	"github.com/verdant-studio/portal-api/internal/domain"
	"github.com/verdant-studio/portal-api/internal/pkg/validate"
	"github.com/verdant-studio/portal-api/internal/transport/http/middleware"
)

// ObjectHandler handles landscape object endpoints.
type ObjectHandler struct {
	svc object.Service
}

func NewObjectHandler(svc object.Service) *ObjectHandler { return &ObjectHandler{svc: svc} }

func (h *ObjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateObjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	o, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

// List returns every object, paginated. Staff-only.
func (h *ObjectHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	objects, next, err := h.svc.List(r.Context(), limit, r.URL.Query().Get("cursor"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PageEnvelope{Data: objects, NextCursor: next})
}

// ListMine returns the objects the caller is a member of.
func (h *ObjectHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	who, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	objects, err := h.svc.ListMine(r.Context(), who)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListEnvelope{Data: objects})
}

func (h *ObjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	who, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	o, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"), who)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *ObjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateObjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	o, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *ObjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "object deleted"})
}
