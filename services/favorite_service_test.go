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

func TestFavoritesRequireSession(t *testing.T) {
	env := newTestEnv(t, handlers.RouterConfig{})
	ctx := context.Background()

	if _, err := env.client.GetFavorites(ctx); !errors.Is(err, apierrors.ErrNoSession) {
		t.Fatalf("GetFavorites err = %v", err)
	}
	if _, err := env.client.AddFavorite(ctx, 1); !errors.Is(err, apierrors.ErrNoSession) {
		t.Fatalf("AddFavorite err = %v", err)
	}
	if env.requests.Load() != 0 {
		t.Fatalf("expected no requests without a session, got %d", env.requests.Load())
	}
}

func TestAddThenListFavorites(t *testing.T) {
	env := newTestEnv(t, handlers.RouterConfig{})
	ctx := context.Background()
	env.signIn(t, "Ana", "ana@x.com")

	body, err := env.client.AddFavorite(ctx, 3)
	if err != nil {
		t.Fatalf("AddFavorite: %v", err)
	}
	if body["success"] != true {
		t.Fatalf("AddFavorite body = %v", body)
	}

	favs, err := env.client.GetFavorites(ctx)
	if err != nil {
		t.Fatalf("GetFavorites: %v", err)
	}
	if len(favs) != 1 || favs[0].LugarID != 3 || favs[0].Nombre == "" {
		t.Fatalf("favorites = %+v", favs)
	}
	if !FavoritePlaceIDs(favs)[3] {
		t.Fatalf("place 3 missing from favorite set")
	}
}

func TestAddFavoriteDuplicateSurfacesBackendMessage(t *testing.T) {
	env := newTestEnv(t, handlers.RouterConfig{})
	ctx := context.Background()
	env.signIn(t, "Ana", "ana@x.com")

	if _, err := env.client.AddFavorite(ctx, 1); err != nil {
		t.Fatal(err)
	}
	_, err := env.client.AddFavorite(ctx, 1)
	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusConflict {
		t.Fatalf("duplicate AddFavorite err = %v", err)
	}
}

func TestRemoveFavoriteOnlyTouchesTarget(t *testing.T) {
	env := newTestEnv(t, handlers.RouterConfig{})
	ctx := context.Background()

	other, err := env.backend.Register("Luis", "luis@x.com", "123456")
	if err != nil {
		t.Fatal(err)
	}
	othersFav, err := env.backend.AddFavorite(other.ID, 2)
	if err != nil {
		t.Fatal(err)
	}

	env.signIn(t, "Ana", "ana@x.com")
	if _, err := env.client.AddFavorite(ctx, 2); err != nil {
		t.Fatal(err)
	}
	mine, _ := env.client.GetFavorites(ctx)
	if len(mine) != 1 || mine[0].FavoritoID == othersFav.FavoritoID {
		t.Fatalf("favorites = %+v", mine)
	}

	ok, err := env.client.RemoveFavorite(ctx, mine[0].FavoritoID)
	if err != nil || !ok {
		t.Fatalf("RemoveFavorite = %v, %v", ok, err)
	}
	if mine, _ = env.client.GetFavorites(ctx); len(mine) != 0 {
		t.Fatalf("favorite still listed: %+v", mine)
	}
	if theirs := env.client.FavoritesByUser(ctx, other.ID); len(theirs) != 1 || theirs[0].FavoritoID != othersFav.FavoritoID {
		t.Fatalf("other user's favorites = %+v", theirs)
	}
}

func TestRemoveFavoriteUnknownID(t *testing.T) {
	env := newTestEnv(t, handlers.RouterConfig{})
	ok, err := env.client.RemoveFavorite(context.Background(), 404)
	if err != nil || ok {
		t.Fatalf("RemoveFavorite = %v, %v", ok, err)
	}
}

func TestFavoritesMissingFieldIsEmpty(t *testing.T) {
	c, store := stubClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true}`))
	})
	ctx := context.Background()
	if err := storeSession(ctx, store, models.Usuario{ID: 7, Nombre: "Ana"}); err != nil {
		t.Fatal(err)
	}
	favs, err := c.GetFavorites(ctx)
	if err != nil {
		t.Fatalf("GetFavorites: %v", err)
	}
	if favs == nil || len(favs) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", favs)
	}
}

func TestFavoritesByUserSwallowsErrors(t *testing.T) {
	c, _ := stubClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	if favs := c.FavoritesByUser(context.Background(), 3); favs == nil || len(favs) != 0 {
		t.Fatalf("FavoritesByUser = %#v", favs)
	}
}

func TestRemoveFavoriteOptimistic(t *testing.T) {
	favs := []models.Favorito{{FavoritoID: 1, LugarID: 10}, {FavoritoID: 2, LugarID: 20}}

	next, err := RemoveFavoriteOptimistic(favs, 1, func(int) (bool, error) { return true, nil })
	if err != nil || len(next) != 1 || next[0].FavoritoID != 2 {
		t.Fatalf("success path = %+v, %v", next, err)
	}

	next, err = RemoveFavoriteOptimistic(favs, 1, func(int) (bool, error) { return false, nil })
	if err == nil || len(next) != 2 {
		t.Fatalf("rejected removal should restore list, got %+v, %v", next, err)
	}

	boom := apierrors.ErrConnection
	next, err = RemoveFavoriteOptimistic(favs, 2, func(int) (bool, error) { return false, boom })
	if !errors.Is(err, apierrors.ErrConnection) || len(next) != 2 {
		t.Fatalf("failed removal should restore list, got %+v, %v", next, err)
	}
}
