package handlers

import (
	"encoding/json"
	"net/http"

	"go-pacha/devbackend"
	"go-pacha/middleware"
	"go-pacha/utils/errors"
)

type FavoriteHandler struct {
	backend *devbackend.Backend
}

func NewFavoriteHandler(backend *devbackend.Backend) *FavoriteHandler {
	return &FavoriteHandler{backend: backend}
}

func (h *FavoriteHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"favoritos": h.backend.Favorites(userID),
	})
}

func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	var input struct {
		UsuarioID int `json:"usuarioId"`
		LugarID   int `json:"lugarId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.UsuarioID == 0 || input.LugarID == 0 {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}
	if err := checkActor(r, input.UsuarioID); err != nil {
		middleware.WriteError(w, err)
		return
	}
	fav, err := h.backend.AddFavorite(input.UsuarioID, input.LugarID)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"mensaje":  "Favorito agregado",
		"favorito": fav,
	})
}

func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	favID, err := pathID(r, "favoritoId")
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	notFound := errors.NewAPIError(errors.ErrNotFound.Code, "Favorito no encontrado", http.StatusNotFound)
	owner, ok := h.backend.FavoriteOwner(favID)
	if !ok {
		middleware.WriteError(w, notFound)
		return
	}
	if err := checkActor(r, owner); err != nil {
		middleware.WriteError(w, err)
		return
	}
	if !h.backend.RemoveFavorite(favID) {
		middleware.WriteError(w, notFound)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "mensaje": "Favorito eliminado"})
}
