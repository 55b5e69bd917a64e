package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go-pacha/devbackend"
	"go-pacha/middleware"
	"go-pacha/utils/errors"
)

type UserHandler struct {
	backend *devbackend.Backend
}

func NewUserHandler(backend *devbackend.Backend) *UserHandler {
	return &UserHandler{backend: backend}
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users := h.backend.Users()
	middleware.WriteJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"usuarios": users,
		"count":    len(users),
	})
}

// pathID parses a numeric route variable.
func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		return 0, errors.ErrInvalidInput
	}
	return id, nil
}

// checkActor rejects writes on behalf of another user when a token is present.
func checkActor(r *http.Request, usuarioID int) error {
	if tokenUser, ok := middleware.UserIDFromContext(r.Context()); ok && tokenUser != usuarioID {
		return errors.ErrUnauthorized
	}
	return nil
}
