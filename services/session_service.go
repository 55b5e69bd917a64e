package services

import (
	"context"
	"encoding/json"
	"net/http"

	"go-pacha/models"
	"go-pacha/storage"
	"go-pacha/utils/errors"
)

const (
	sessionKey       = "userInfo"
	legacySessionKey = "usuario"
)

// AuthResult is what Login and Register resolve to; they never return an error.
type AuthResult struct {
	Success bool            `json:"success"`
	Usuario *models.Usuario `json:"usuario,omitempty"`
	Message string          `json:"message,omitempty"`
}

// sessionRecord is the backend's usuario object as received. It is stored
// whole so fields the client has no type for survive the round trip.
type sessionRecord map[string]json.RawMessage

func (r sessionRecord) set(name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	r[name] = raw
	return nil
}

func saveSession(ctx context.Context, store storage.Store, record sessionRecord) error {
	return storage.SetJSON(ctx, store, sessionKey, record)
}

// patchSession rewrites the named fields of the stored session, keeping the
// rest. With nothing stored it starts from base.
func patchSession(ctx context.Context, store storage.Store, base *models.Usuario, fields map[string]any) error {
	record := sessionRecord{}
	found, err := storage.GetJSON(ctx, store, sessionKey, &record)
	if err != nil {
		return err
	}
	if !found {
		if base == nil {
			return errors.ErrNoSession
		}
		raw, err := json.Marshal(base)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw, &record); err != nil {
			return err
		}
	}
	for name, v := range fields {
		if err := record.set(name, v); err != nil {
			return err
		}
	}
	return saveSession(ctx, store, record)
}

// SessionRecord returns the persisted user object with every field the
// backend sent, or nil when browsing anonymously.
func (c *APIClient) SessionRecord(ctx context.Context) (map[string]any, error) {
	for _, key := range []string{sessionKey, legacySessionKey} {
		var record map[string]any
		found, err := storage.GetJSON(ctx, c.store, key, &record)
		if err != nil {
			return nil, err
		}
		if found {
			return record, nil
		}
	}
	return nil, nil
}

func (c *APIClient) loadUser(ctx context.Context) (*models.Usuario, error) {
	for _, key := range []string{sessionKey, legacySessionKey} {
		var user models.Usuario
		found, err := storage.GetJSON(ctx, c.store, key, &user)
		if err != nil {
			return nil, err
		}
		if found {
			return &user, nil
		}
	}
	return nil, nil
}

// requireUser returns the persisted session or ErrNoSession before any request is made.
func (c *APIClient) requireUser(ctx context.Context) (*models.Usuario, error) {
	user, err := c.loadUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil || user.ID == 0 {
		return nil, errors.ErrNoSession
	}
	return user, nil
}

// Login submits credentials and persists the returned user on success.
func (c *APIClient) Login(ctx context.Context, email, password string) AuthResult {
	return c.authenticate(ctx, "/login", map[string]string{
		"email":    email,
		"password": password,
	}, "Error en login")
}

// Register creates an account; success authenticates immediately.
func (c *APIClient) Register(ctx context.Context, nombre, email, password string) AuthResult {
	return c.authenticate(ctx, "/registro", map[string]string{
		"nombre":   nombre,
		"email":    email,
		"password": password,
	}, "Error en registro")
}

func (c *APIClient) authenticate(ctx context.Context, path string, payload map[string]string, fallback string) AuthResult {
	env, err := c.do(ctx, apiRequest{method: http.MethodPost, path: path, body: payload})
	if err != nil {
		return AuthResult{Success: false, Message: errors.ErrConnection.Message}
	}

	var user models.Usuario
	var record sessionRecord
	hasUser := env.decode(&user, "usuario") && env.decode(&record, "usuario")
	success, _ := env.flag("success")
	if !env.httpOK() || !success || !hasUser {
		return AuthResult{Success: false, Message: env.message(fallback)}
	}

	if user.Token == "" {
		var token string
		if env.decode(&token, "token") && token != "" {
			user.Token = token
			record.set("token", token)
		}
	}
	if err := saveSession(ctx, c.store, record); err != nil {
		c.logger.Printf("Failed to persist session: %v", err)
		return AuthResult{Success: false, Message: "No se pudo guardar la sesión"}
	}
	return AuthResult{Success: true, Usuario: &user}
}

// Logout clears the persisted session. Storage errors are logged, not returned.
func (c *APIClient) Logout(ctx context.Context) {
	for _, key := range []string{sessionKey, legacySessionKey} {
		if err := c.store.Delete(ctx, key); err != nil {
			c.logger.Printf("Failed to remove %s: %v", key, err)
		}
	}
}

// GetUserInfo returns the persisted session, or nil when browsing anonymously.
// It never touches the network.
func (c *APIClient) GetUserInfo(ctx context.Context) (*models.Usuario, error) {
	return c.loadUser(ctx)
}
