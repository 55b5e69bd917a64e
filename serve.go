package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"go-pacha/config"
	"go-pacha/devbackend"
	"go-pacha/handlers"
)

// serve runs the in-memory development backend until ctx is cancelled.
func serve(ctx context.Context, cfg *config.AppConfig) error {
	backend := devbackend.New(nil)
	r := handlers.NewRouter(backend, handlers.RouterConfig{
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()
	if cfg.JWTSecret == "" {
		log.Println("JWT secret not set; write routes are unauthenticated")
	}
	log.Printf("Server starting on %s", srv.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Println("Shutting down server")
	return srv.Shutdown(shutdownCtx)
}
