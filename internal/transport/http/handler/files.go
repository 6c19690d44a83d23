package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	fileapp "github.com/verdant-studio/portal-api/internal/application/file"
	"github.com/verdant-studio/portal-api/internal/transport/http/middleware"
)

// maxUploadMemory bounds the in-memory part of multipart parsing; larger
// bodies spill to temp files.
const maxUploadMemory = 32 << 20

// FileHandler handles media and document endpoints.
type FileHandler struct {
	svc fileapp.Service
}

func NewFileHandler(svc fileapp.Service) *FileHandler { return &FileHandler{svc: svc} }

// Upload accepts a multipart form with a "file" field. Folder comes from the
// route, object scope from the query string.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	who, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	f, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer f.Close()

	uploaded, err := h.svc.Upload(r.Context(), fileapp.UploadRequest{
		ObjectID:    r.FormValue("object_id"),
		ProjectID:   r.FormValue("project_id"),
		Folder:      chi.URLParam(r, "folder"),
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        f,
	}, who)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, uploaded)
}

func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	who, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	f, body, err := h.svc.Download(r.Context(), chi.URLParam(r, "id"), who)
	if err != nil {
		respondError(w, err)
		return
	}
	defer body.Close()
	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+f.Name+`"`)
	_, _ = io.Copy(w, body)
}

func (h *FileHandler) ListByObject(w http.ResponseWriter, r *http.Request) {
	who, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	files, err := h.svc.ListByObject(r.Context(), chi.URLParam(r, "objectID"), who)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListEnvelope{Data: files})
}

// ListPortfolio lists public marketing media. No auth required.
func (h *FileHandler) ListPortfolio(w http.ResponseWriter, r *http.Request) {
	files, err := h.svc.ListPortfolio(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ListEnvelope{Data: files})
}

// ServePortfolio streams a portfolio file. No auth required; the service
// refuses anything outside the portfolio folder.
func (h *FileHandler) ServePortfolio(w http.ResponseWriter, r *http.Request) {
	f, body, err := h.svc.DownloadPortfolio(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	defer body.Close()
	w.Header().Set("Content-Type", f.ContentType)
	_, _ = io.Copy(w, body)
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "file deleted"})
}
