package services

import (
	"context"
	"fmt"
	"net/http"

	"go-pacha/models"
	"go-pacha/utils/errors"
)

// GetFavorites lists the session user's favorites. Without a session it fails
// with ErrNoSession and sends nothing.
func (c *APIClient) GetFavorites(ctx context.Context) ([]models.Favorito, error) {
	user, err := c.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return c.favoritesOf(ctx, user.ID, user.Token)
}

// FavoritesByUser lists another user's favorites for a profile view. Any
// failure yields an empty list.
func (c *APIClient) FavoritesByUser(ctx context.Context, userID int) []models.Favorito {
	favs, err := c.favoritesOf(ctx, userID, "")
	if err != nil {
		c.logger.Printf("Favorites of user %d unavailable: %v", userID, err)
		return []models.Favorito{}
	}
	return favs
}

func (c *APIClient) favoritesOf(ctx context.Context, userID int, token string) ([]models.Favorito, error) {
	env, err := c.do(ctx, apiRequest{
		method:     http.MethodGet,
		path:       fmt.Sprintf("/favoritos/usuario/%d", userID),
		token:      token,
		idempotent: true,
	})
	if err != nil {
		return nil, err
	}
	if !env.httpOK() {
		return nil, errors.Backend("Error al cargar favoritos", env.status)
	}
	return list[models.Favorito](env, "favoritos"), nil
}

// AddFavorite saves placeID for the session user and returns the backend's
// body as is. It does not check for an existing favorite; see FavoritePlaceIDs.
func (c *APIClient) AddFavorite(ctx context.Context, placeID int) (map[string]any, error) {
	user, err := c.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	env, err := c.do(ctx, apiRequest{
		method: http.MethodPost,
		path:   "/favoritos",
		body:   map[string]int{"usuarioId": user.ID, "lugarId": placeID},
		token:  user.Token,
	})
	if err != nil {
		return nil, err
	}
	if !env.httpOK() {
		return nil, errors.Backend(env.message("Error al agregar favorito"), env.status)
	}
	return env.passthrough(), nil
}

// RemoveFavorite deletes by favorite id, never by place id. The bool is the
// HTTP outcome; an error means the request did not complete.
func (c *APIClient) RemoveFavorite(ctx context.Context, favoritoID int) (bool, error) {
	var token string
	if user, err := c.loadUser(ctx); err == nil && user != nil {
		token = user.Token
	}
	env, err := c.do(ctx, apiRequest{
		method: http.MethodDelete,
		path:   fmt.Sprintf("/favoritos/eliminar/%d", favoritoID),
		token:  token,
	})
	if err != nil {
		return false, err
	}
	return env.httpOK(), nil
}

// FavoritePlaceIDs is the cached set callers consult before AddFavorite to
// show an "already a favorite" notice instead of calling it.
func FavoritePlaceIDs(favs []models.Favorito) map[int]bool {
	ids := make(map[int]bool, len(favs))
	for _, f := range favs {
		ids[f.LugarID] = true
	}
	return ids
}

// RemoveFavoriteOptimistic drops favoritoID from favs before calling remove
// and restores the original list when remove fails or reports false.
func RemoveFavoriteOptimistic(favs []models.Favorito, favoritoID int, remove func(int) (bool, error)) ([]models.Favorito, error) {
	next := make([]models.Favorito, 0, len(favs))
	for _, f := range favs {
		if f.FavoritoID != favoritoID {
			next = append(next, f)
		}
	}
	ok, err := remove(favoritoID)
	if err != nil {
		return favs, err
	}
	if !ok {
		return favs, errors.Backend("No se pudo eliminar el favorito", 0)
	}
	return next, nil
}
