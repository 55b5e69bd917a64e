package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"go-pacha/devbackend"
	"go-pacha/middleware"
	"go-pacha/models"
	"go-pacha/utils/errors"
)

type AuthHandler struct {
	backend   *devbackend.Backend
	jwtSecret string
}

func NewAuthHandler(backend *devbackend.Backend, jwtSecret string) *AuthHandler {
	return &AuthHandler{backend: backend, jwtSecret: jwtSecret}
}

func (h *AuthHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var input models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}
	if err := input.ValidateRegistration(); err != nil {
		middleware.WriteError(w, errors.NewAPIError(errors.ErrInvalidInput.Code, "Datos de registro inválidos", http.StatusBadRequest, err.Error()))
		return
	}

	user, err := h.backend.Register(input.Nombre, input.Email, input.Password)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	log.Printf("Registered user %d (%s)", user.ID, user.Email)
	h.writeSession(w, http.StatusCreated, user)
}

func (h *AuthHandler) LoginUser(w http.ResponseWriter, r *http.Request) {
	var input models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}
	user, err := h.backend.Login(input.Email, input.Password)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	h.writeSession(w, http.StatusOK, user)
}

func (h *AuthHandler) writeSession(w http.ResponseWriter, status int, user models.Usuario) {
	resp := map[string]any{"success": true, "usuario": user}
	if h.jwtSecret != "" {
		token, err := middleware.IssueToken(h.jwtSecret, user.ID, user.Email)
		if err != nil {
			middleware.WriteError(w, errors.Wrap(err, "JWT_ERROR", "Failed to generate token", http.StatusInternalServerError))
			return
		}
		resp["token"] = token
	}
	middleware.WriteJSON(w, status, resp)
}
