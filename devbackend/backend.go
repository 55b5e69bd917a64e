// Package devbackend is an in-memory stand-in for the PachaQutec REST
// backend, used for offline development and as the client's test double.
package devbackend

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"go-pacha/models"
	"go-pacha/utils/errors"
	"golang.org/x/crypto/bcrypt"
)

type userRecord struct {
	models.Usuario
	PasswordHash string
}

type favoriteRecord struct {
	ID        int
	UsuarioID int
	LugarID   int
}

type reviewRecord struct {
	ID           int
	UsuarioID    int
	LugarID      int
	Calificacion int
	Texto        string
	CreatedAt    time.Time
}

var (
	ErrEmailTaken         = errors.NewAPIError("EMAIL_TAKEN", "correo ya registrado", http.StatusConflict)
	ErrInvalidCredentials = errors.NewAPIError("INVALID_CREDENTIALS", "Credenciales incorrectas", http.StatusUnauthorized)
	ErrPlaceNotFound      = errors.NewAPIError("PLACE_NOT_FOUND", "Lugar no encontrado", http.StatusNotFound)
	ErrUserNotFound       = errors.NewAPIError("USER_NOT_FOUND", "Usuario no encontrado", http.StatusNotFound)
	ErrAlreadyFavorite    = errors.NewAPIError("ALREADY_FAVORITE", "El lugar ya está en favoritos", http.StatusConflict)
)

// Backend holds all state behind one RWMutex.
type Backend struct {
	mu        sync.RWMutex
	users     map[int]*userRecord
	emails    map[string]int
	places    []models.Lugar
	favorites map[int]favoriteRecord
	reviews   []reviewRecord

	nextUserID     int
	nextFavoriteID int
	nextReviewID   int
	now            func() time.Time
}

// New returns a backend seeded with places; nil seeds the built-in catalog.
func New(places []models.Lugar) *Backend {
	if places == nil {
		places = SeedPlaces()
	}
	return &Backend{
		users:          make(map[int]*userRecord),
		emails:         make(map[string]int),
		places:         append([]models.Lugar(nil), places...),
		favorites:      make(map[int]favoriteRecord),
		nextUserID:     1,
		nextFavoriteID: 1,
		nextReviewID:   1,
		now:            time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user; emails are unique case-insensitively.
func (b *Backend) Register(nombre, email, password string) (models.Usuario, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Usuario{}, errors.Wrap(err, "HASH_ERROR", "failed to hash password", http.StatusInternalServerError)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	key := normalizeEmail(email)
	if _, taken := b.emails[key]; taken {
		return models.Usuario{}, ErrEmailTaken
	}
	u := &userRecord{
		Usuario:      models.Usuario{ID: b.nextUserID, Nombre: strings.TrimSpace(nombre), Email: strings.TrimSpace(email)},
		PasswordHash: string(hash),
	}
	b.nextUserID++
	b.users[u.ID] = u
	b.emails[key] = u.ID
	return u.Usuario, nil
}

func (b *Backend) Login(email, password string) (models.Usuario, error) {
	b.mu.RLock()
	id, ok := b.emails[normalizeEmail(email)]
	var u *userRecord
	if ok {
		u = b.users[id]
	}
	b.mu.RUnlock()
	if u == nil {
		return models.Usuario{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return models.Usuario{}, ErrInvalidCredentials
	}
	return u.Usuario, nil
}

func (b *Backend) Users() []models.Usuario {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]models.Usuario, 0, len(b.users))
	for _, u := range b.users {
		out = append(out, u.Usuario)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (b *Backend) Places() []models.Lugar {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]models.Lugar{}, b.places...)
}

// Categories lists distinct place categories, sorted.
func (b *Backend) Categories() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	seen := map[string]bool{}
	out := []string{}
	for _, p := range b.places {
		if p.Categoria != "" && !seen[p.Categoria] {
			seen[p.Categoria] = true
			out = append(out, p.Categoria)
		}
	}
	sort.Strings(out)
	return out
}

func (b *Backend) placeLocked(id int) (models.Lugar, bool) {
	for _, p := range b.places {
		if p.ID == id {
			return p, true
		}
	}
	return models.Lugar{}, false
}

func (b *Backend) AddFavorite(usuarioID, lugarID int) (models.Favorito, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.users[usuarioID]; !ok {
		return models.Favorito{}, ErrUserNotFound
	}
	place, ok := b.placeLocked(lugarID)
	if !ok {
		return models.Favorito{}, ErrPlaceNotFound
	}
	for _, f := range b.favorites {
		if f.UsuarioID == usuarioID && f.LugarID == lugarID {
			return models.Favorito{}, ErrAlreadyFavorite
		}
	}
	rec := favoriteRecord{ID: b.nextFavoriteID, UsuarioID: usuarioID, LugarID: lugarID}
	b.nextFavoriteID++
	b.favorites[rec.ID] = rec
	return favoriteView(rec, place), nil
}

func favoriteView(rec favoriteRecord, place models.Lugar) models.Favorito {
	return models.Favorito{
		FavoritoID:  rec.ID,
		LugarID:     place.ID,
		Nombre:      place.Nombre,
		ImagenURL:   place.ImagenURL,
		Categoria:   place.Categoria,
		Descripcion: place.Descripcion,
	}
}

// FavoriteOwner returns the user a favorite belongs to.
func (b *Backend) FavoriteOwner(favoritoID int) (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	f, ok := b.favorites[favoritoID]
	return f.UsuarioID, ok
}

// RemoveFavorite deletes by favorite id and reports whether it existed.
func (b *Backend) RemoveFavorite(favoritoID int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.favorites[favoritoID]; !ok {
		return false
	}
	delete(b.favorites, favoritoID)
	return true
}

func (b *Backend) Favorites(usuarioID int) []models.Favorito {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := []models.Favorito{}
	for _, f := range b.favorites {
		if f.UsuarioID != usuarioID {
			continue
		}
		if place, ok := b.placeLocked(f.LugarID); ok {
			out = append(out, favoriteView(f, place))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FavoritoID < out[j].FavoritoID })
	return out
}

// AddReview stores a review; the backend, unlike the client, enforces the rating range.
func (b *Backend) AddReview(usuarioID, lugarID, calificacion int, texto string) (models.Resena, error) {
	if calificacion < 1 || calificacion > 5 || strings.TrimSpace(texto) == "" {
		return models.Resena{}, errors.NewAPIError(errors.ErrInvalidInput.Code, "Calificación o texto inválido", http.StatusBadRequest)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.users[usuarioID]; !ok {
		return models.Resena{}, ErrUserNotFound
	}
	place, ok := b.placeLocked(lugarID)
	if !ok {
		return models.Resena{}, ErrPlaceNotFound
	}
	rec := reviewRecord{
		ID:           b.nextReviewID,
		UsuarioID:    usuarioID,
		LugarID:      lugarID,
		Calificacion: calificacion,
		Texto:        strings.TrimSpace(texto),
		CreatedAt:    b.now().UTC(),
	}
	b.nextReviewID++
	b.reviews = append(b.reviews, rec)
	return reviewView(rec, place), nil
}

func reviewView(rec reviewRecord, place models.Lugar) models.Resena {
	return models.Resena{
		ID:           rec.ID,
		LugarID:      place.ID,
		LugarNombre:  place.Nombre,
		LugarImagen:  place.ImagenURL,
		Calificacion: rec.Calificacion,
		Texto:        rec.Texto,
		CreatedAt:    rec.CreatedAt.Format(time.RFC3339),
	}
}

// Reviews lists usuarioID's reviews, newest first.
func (b *Backend) Reviews(usuarioID int) []models.Resena {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := []models.Resena{}
	for i := len(b.reviews) - 1; i >= 0; i-- {
		r := b.reviews[i]
		if r.UsuarioID != usuarioID {
			continue
		}
		if place, ok := b.placeLocked(r.LugarID); ok {
			out = append(out, reviewView(r, place))
		}
	}
	return out
}
