package services

import (
	"context"
	"net/http"
	"strings"

	"go-pacha/models"
	"go-pacha/utils/errors"
)

// GetTouristLocations fetches the whole catalog. Nothing is cached; filtering
// is left to the caller.
func (c *APIClient) GetTouristLocations(ctx context.Context) ([]models.Lugar, error) {
	env, err := c.do(ctx, apiRequest{method: http.MethodGet, path: "/lugares", idempotent: true})
	if err != nil {
		return nil, err
	}
	if !env.httpOK() {
		return nil, errors.Backend("Error al cargar lugares", env.status)
	}
	return list[models.Lugar](env, "lugares"), nil
}

// DedupePlaces drops rows repeating an earlier id or an earlier
// case-insensitive trimmed name. The backend has been seen returning both.
func DedupePlaces(places []models.Lugar) []models.Lugar {
	seenID := make(map[int]bool, len(places))
	seenName := make(map[string]bool, len(places))
	out := make([]models.Lugar, 0, len(places))
	for _, p := range places {
		name := strings.ToLower(strings.TrimSpace(p.Nombre))
		if seenID[p.ID] || (name != "" && seenName[name]) {
			continue
		}
		seenID[p.ID] = true
		if name != "" {
			seenName[name] = true
		}
		out = append(out, p)
	}
	return out
}

// FilterPlaces keeps places of category ("" or "todos" for any) whose name
// contains query, case-insensitively.
func FilterPlaces(places []models.Lugar, category, query string) []models.Lugar {
	category = strings.TrimSpace(category)
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Lugar, 0, len(places))
	for _, p := range places {
		if category != "" && !strings.EqualFold(category, "todos") && !strings.EqualFold(p.Categoria, category) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Nombre), query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories lists the distinct category labels in first-seen order.
func Categories(places []models.Lugar) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range places {
		if p.Categoria == "" || seen[p.Categoria] {
			continue
		}
		seen[p.Categoria] = true
		out = append(out, p.Categoria)
	}
	return out
}
