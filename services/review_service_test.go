package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"go-pacha/handlers"
	"go-pacha/models"
	apierrors "go-pacha/utils/errors"
)

func TestCreateAndListReviews(t *testing.T) {
	env := newTestEnv(t, handlers.RouterConfig{})
	ctx := context.Background()
	me := env.signIn(t, "Ana", "ana@x.com")

	if _, err := env.client.CreateReview(ctx, 1, 5, "Precioso"); err != nil {
		t.Fatalf("CreateReview: %v", err)
	}
	if _, err := env.client.CreateReview(ctx, 3, 4, "Cóndores"); err != nil {
		t.Fatalf("CreateReview: %v", err)
	}

	mine, err := env.client.GetMyReviews(ctx)
	if err != nil {
		t.Fatalf("GetMyReviews: %v", err)
	}
	if len(mine) != 2 || mine[0].LugarID != 3 || mine[0].LugarNombre == "" {
		t.Fatalf("reviews = %+v", mine)
	}
	if byUser := env.client.ReviewsByUser(ctx, me); len(byUser) != 2 {
		t.Fatalf("ReviewsByUser = %+v", byUser)
	}
}

func TestCreateReviewDoesNotValidate(t *testing.T) {
	env := newTestEnv(t, handlers.RouterConfig{})
	ctx := context.Background()
	env.signIn(t, "Ana", "ana@x.com")
	before := env.requests.Load()

	_, err := env.client.CreateReview(ctx, 1, 9, "")
	if env.requests.Load() != before+1 {
		t.Fatalf("CreateReview must send the request as given")
	}
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected backend rejection, got %v", err)
	}
}

func TestReviewsNoSession(t *testing.T) {
	env := newTestEnv(t, handlers.RouterConfig{})
	ctx := context.Background()
	if _, err := env.client.GetMyReviews(ctx); !errors.Is(err, apierrors.ErrNoSession) {
		t.Fatalf("GetMyReviews err = %v", err)
	}
	if _, err := env.client.CreateReview(ctx, 1, 5, "x"); !errors.Is(err, apierrors.ErrNoSession) {
		t.Fatalf("CreateReview err = %v", err)
	}
	if env.requests.Load() != 0 {
		t.Fatalf("expected no requests, got %d", env.requests.Load())
	}
}

func TestReviewsDataFallback(t *testing.T) {
	c, store := stubClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [{"id": 1, "lugar_id": 2, "calificacion": 4, "texto": "ok"}]}`))
	})
	ctx := context.Background()
	storeSession(ctx, store, models.Usuario{ID: 1})
	reviews, err := c.GetMyReviews(ctx)
	if err != nil || len(reviews) != 1 || reviews[0].Calificacion != 4 {
		t.Fatalf("GetMyReviews = %+v, %v", reviews, err)
	}
}

func TestReviewsByUserSwallowsErrors(t *testing.T) {
	c, _ := stubClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	if got := c.ReviewsByUser(context.Background(), 5); got == nil || len(got) != 0 {
		t.Fatalf("ReviewsByUser = %#v", got)
	}
}
