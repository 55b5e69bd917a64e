package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"

	"go-pacha/devbackend"
	"go-pacha/handlers"
	"go-pacha/services"
	"go-pacha/storage"
	apierrors "go-pacha/utils/errors"
)

func newTestCLI(t *testing.T) (*cli, *bytes.Buffer, *devbackend.Backend) {
	t.Helper()
	backend := devbackend.New(nil)
	srv := httptest.NewServer(handlers.NewRouter(backend, handlers.RouterConfig{JWTSecret: "test-secret"}))
	t.Cleanup(srv.Close)

	store := storage.NewMemoryStore()
	out := &bytes.Buffer{}
	return &cli{
		client:   services.NewAPIClient(srv.URL, store, services.WithLogger(log.New(io.Discard, "", 0))),
		social:   services.NewSocialService(store),
		profiles: services.NewProfileService(store),
		feed:     services.NewFeedService(store),
		notes:    services.NewNotesService(store),
		out:      out,
	}, out, backend
}

func run(t *testing.T, c *cli, args ...string) error {
	t.Helper()
	return c.run(context.Background(), args[0], args[1:])
}

func TestCLIFavoriteFlow(t *testing.T) {
	c, out, _ := newTestCLI(t)

	if err := run(t, c, "favorites"); !errors.Is(err, apierrors.ErrNoSession) {
		t.Fatalf("favorites without session err = %v", err)
	}
	if err := run(t, c, "register", "-nombre", "Ana", "-email", "ana@x.com", "-password", "123456"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := run(t, c, "fav-add", "-place", "3"); err != nil {
		t.Fatalf("fav-add: %v", err)
	}
	out.Reset()
	if err := run(t, c, "fav-add", "-place", "3"); err != nil {
		t.Fatalf("second fav-add: %v", err)
	}
	if !strings.Contains(out.String(), "ya está en tus favoritos") {
		t.Fatalf("expected already-a-favorite notice, got %q", out.String())
	}

	out.Reset()
	if err := run(t, c, "favorites"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Colca") {
		t.Fatalf("favorites output = %q", out.String())
	}
}

func TestCLIReviewValidation(t *testing.T) {
	c, out, backend := newTestCLI(t)
	if _, err := backend.Register("Ana", "ana@x.com", "123456"); err != nil {
		t.Fatal(err)
	}
	if err := run(t, c, "login", "-email", "ana@x.com", "-password", "123456"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := run(t, c, "review", "-place", "1", "-rating", "0", "-text", "hola"); !errors.Is(err, apierrors.ErrInvalidInput) {
		t.Fatalf("rating 0 err = %v", err)
	}
	if err := run(t, c, "review", "-place", "1", "-rating", "5", "-text", "   "); !errors.Is(err, apierrors.ErrInvalidInput) {
		t.Fatalf("blank text err = %v", err)
	}
	if err := run(t, c, "review", "-place", "1", "-rating", "5", "-text", "Imperdible"); err != nil {
		t.Fatalf("review: %v", err)
	}
	out.Reset()
	if err := run(t, c, "reviews"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Imperdible") {
		t.Fatalf("reviews output = %q", out.String())
	}
}

func TestCLILoginFailure(t *testing.T) {
	c, _, _ := newTestCLI(t)
	err := run(t, c, "login", "-email", "nadie@x.com", "-password", "123456")
	if err == nil || apierrors.Message(err) != "Credenciales incorrectas" {
		t.Fatalf("login err = %v", err)
	}
}

func TestCLIFriendsAndFeed(t *testing.T) {
	c, out, backend := newTestCLI(t)
	luis, err := backend.Register("Luis", "luis@x.com", "123456")
	if err != nil {
		t.Fatal(err)
	}
	if err := run(t, c, "register", "-nombre", "Ana", "-email", "ana@x.com", "-password", "123456"); err != nil {
		t.Fatal(err)
	}
	if err := run(t, c, "friend-request", "-to", "1"); err != nil {
		t.Fatalf("friend-request: %v", err)
	}
	out.Reset()
	if err := run(t, c, "friends"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Luis") || !strings.Contains(out.String(), "pending_sent") {
		t.Fatalf("friends output = %q (luis id %d)", out.String(), luis.ID)
	}

	out.Reset()
	if err := run(t, c, "like", "-post", "post-1"); err != nil {
		t.Fatalf("like: %v", err)
	}
	if !strings.Contains(out.String(), "♥ 25") {
		t.Fatalf("feed output = %q", out.String())
	}
	if err := run(t, c, "like", "-post", "missing"); !errors.Is(err, apierrors.ErrNotFound) {
		t.Fatalf("unknown post err = %v", err)
	}
}

func TestCLIUnknownCommand(t *testing.T) {
	c, _, _ := newTestCLI(t)
	if err := run(t, c, "dance"); err == nil {
		t.Fatalf("expected error for unknown command")
	}
}

func TestCLILoginOnlyRequiresBothFields(t *testing.T) {
	c, out, backend := newTestCLI(t)
	if _, err := backend.Register("Ana", "ana@x.com", "12345"); err != nil {
		t.Fatal(err)
	}

	if err := run(t, c, "login", "-email", "ana@x.com", "-password", "12345"); err != nil {
		t.Fatalf("login with a short password: %v", err)
	}
	if !strings.Contains(out.String(), "Bienvenido, Ana") {
		t.Fatalf("login output = %q", out.String())
	}

	err := run(t, c, "login", "-email", "ana", "-password", "123456")
	if err == nil || apierrors.Message(err) != "Credenciales incorrectas" {
		t.Fatalf("free-form email should reach the backend, got %v", err)
	}

	if err := run(t, c, "login", "-email", "ana@x.com"); !errors.Is(err, apierrors.ErrInvalidInput) {
		t.Fatalf("missing password err = %v", err)
	}
}
