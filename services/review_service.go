package services

import (
	"context"
	"fmt"
	"net/http"

	"go-pacha/models"
	"go-pacha/utils/errors"
)

// GetMyReviews lists the reviews written by the session user.
func (c *APIClient) GetMyReviews(ctx context.Context) ([]models.Resena, error) {
	user, err := c.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return c.reviewsOf(ctx, user.ID, user.Token)
}

// ReviewsByUser lists userID's reviews for a profile view. Errors are logged
// and an empty list returned so the profile still renders.
func (c *APIClient) ReviewsByUser(ctx context.Context, userID int) []models.Resena {
	reviews, err := c.reviewsOf(ctx, userID, "")
	if err != nil {
		c.logger.Printf("Reviews of user %d unavailable: %v", userID, err)
		return []models.Resena{}
	}
	return reviews
}

func (c *APIClient) reviewsOf(ctx context.Context, userID int, token string) ([]models.Resena, error) {
	env, err := c.do(ctx, apiRequest{
		method:     http.MethodGet,
		path:       fmt.Sprintf("/resenas/usuario/%d", userID),
		token:      token,
		idempotent: true,
	})
	if err != nil {
		return nil, err
	}
	if !env.httpOK() {
		return nil, errors.Backend("Error al cargar reseñas", env.status)
	}
	// Older deployments answer under "data".
	return list[models.Resena](env, "resenas", "data"), nil
}

// CreateReview posts a review as the session user. Rating and text are sent
// as given; validating them is the caller's job (models.ReviewInput).
func (c *APIClient) CreateReview(ctx context.Context, placeID, rating int, text string) (map[string]any, error) {
	user, err := c.requireUser(ctx)
	if err != nil {
		return nil, err
	}
	env, err := c.do(ctx, apiRequest{
		method: http.MethodPost,
		path:   "/resenas",
		body: map[string]any{
			"usuarioId":    user.ID,
			"lugarId":      placeID,
			"calificacion": rating,
			"texto":        text,
		},
		token: user.Token,
	})
	if err != nil {
		return nil, err
	}
	if !env.httpOK() {
		return nil, errors.Backend(env.message("Error al crear reseña"), env.status)
	}
	return env.passthrough(), nil
}
