package handlers

import (
	"encoding/json"
	"net/http"

	"go-pacha/devbackend"
	"go-pacha/middleware"
	"go-pacha/utils/errors"
)

type ReviewHandler struct {
	backend *devbackend.Backend
}

func NewReviewHandler(backend *devbackend.Backend) *ReviewHandler {
	return &ReviewHandler{backend: backend}
}

func (h *ReviewHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"resenas": h.backend.Reviews(userID),
	})
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UsuarioID    int    `json:"usuarioId"`
		LugarID      int    `json:"lugarId"`
		Calificacion int    `json:"calificacion"`
		Texto        string `json:"texto"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}
	if err := checkActor(r, input.UsuarioID); err != nil {
		middleware.WriteError(w, err)
		return
	}
	review, err := h.backend.AddReview(input.UsuarioID, input.LugarID, input.Calificacion, input.Texto)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"mensaje": "Reseña creada",
		"resena":  review,
	})
}
