package handlers

import (
	"github.com/gorilla/mux"
	"go-pacha/devbackend"
	"go-pacha/middleware"
)

type RouterConfig struct {
	// JWTSecret enables token issue on login and guards write routes.
	JWTSecret      string
	AllowedOrigins []string
}

// NewRouter wires the backend's REST surface.
func NewRouter(backend *devbackend.Backend, cfg RouterConfig) *mux.Router {
	authHandler := NewAuthHandler(backend, cfg.JWTSecret)
	placeHandler := NewPlaceHandler(backend)
	userHandler := NewUserHandler(backend)
	favoriteHandler := NewFavoriteHandler(backend)
	reviewHandler := NewReviewHandler(backend)

	r := mux.NewRouter()
	r.Use(middleware.ErrorMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	// Auth routes
	r.HandleFunc("/login", authHandler.LoginUser).Methods("POST", "OPTIONS")
	r.HandleFunc("/registro", authHandler.RegisterUser).Methods("POST", "OPTIONS")

	// Public reads
	r.HandleFunc("/lugares", placeHandler.ListPlaces).Methods("GET", "OPTIONS")
	r.HandleFunc("/categorias", placeHandler.ListCategories).Methods("GET", "OPTIONS")
	r.HandleFunc("/rdf/data", placeHandler.RDFData).Methods("GET", "OPTIONS")
	r.HandleFunc("/usuarios", userHandler.ListUsers).Methods("GET", "OPTIONS")
	r.HandleFunc("/favoritos/usuario/{userId}", favoriteHandler.ListByUser).Methods("GET", "OPTIONS")
	r.HandleFunc("/resenas/usuario/{userId}", reviewHandler.ListByUser).Methods("GET", "OPTIONS")

	// Writes
	protected := r.NewRoute().Subrouter()
	protected.Use(middleware.JWTMiddleware(cfg.JWTSecret))
	protected.HandleFunc("/favoritos", favoriteHandler.Add).Methods("POST", "OPTIONS")
	protected.HandleFunc("/favoritos/eliminar/{favoritoId}", favoriteHandler.Remove).Methods("DELETE", "OPTIONS")
	protected.HandleFunc("/resenas", reviewHandler.Create).Methods("POST", "OPTIONS")

	return r
}
