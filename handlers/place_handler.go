package handlers

import (
	"net/http"

	"go-pacha/devbackend"
	"go-pacha/middleware"
	"go-pacha/utils/errors"
)

type PlaceHandler struct {
	backend *devbackend.Backend
}

func NewPlaceHandler(backend *devbackend.Backend) *PlaceHandler {
	return &PlaceHandler{backend: backend}
}

func (h *PlaceHandler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	places := h.backend.Places()
	middleware.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"lugares": places,
		"count":   len(places),
	})
}

func (h *PlaceHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.backend.Categories()
	middleware.WriteJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"categorias": categories,
		"count":      len(categories),
	})
}

func (h *PlaceHandler) RDFData(w http.ResponseWriter, r *http.Request) {
	body, contentType, ok := h.backend.RDF(r.URL.Query().Get("format"))
	if !ok {
		middleware.WriteError(w, errors.NewAPIError(errors.ErrInvalidInput.Code, "Formato RDF no soportado", http.StatusBadRequest))
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Write([]byte(body))
}
