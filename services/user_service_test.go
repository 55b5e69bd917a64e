package services

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"go-pacha/handlers"
)

func TestListUsers(t *testing.T) {
	env := newTestEnv(t, handlers.RouterConfig{})
	ctx := context.Background()
	env.backend.Register("Ana", "ana@x.com", "123456")
	env.backend.Register("Luis", "luis@x.com", "123456")

	users, err := env.client.ListUsers(ctx)
	if err != nil || len(users) != 2 {
		t.Fatalf("ListUsers = %+v, %v", users, err)
	}
}

func TestListUsersRejectsFailureFlag(t *testing.T) {
	c, _ := stubClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "message": "mantenimiento"}`))
	})
	_, err := c.ListUsers(context.Background())
	if err == nil || !strings.Contains(err.Error(), "mantenimiento") {
		t.Fatalf("ListUsers err = %v", err)
	}
}

func TestStats(t *testing.T) {
	env := newTestEnv(t, handlers.RouterConfig{})
	env.backend.Register("Ana", "ana@x.com", "123456")

	stats, err := env.client.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := CatalogStats{Categorias: 4, Lugares: 5, Usuarios: 1}
	if stats != want {
		t.Fatalf("Stats = %+v, want %+v", stats, want)
	}
}

func TestFetchRDF(t *testing.T) {
	env := newTestEnv(t, handlers.RouterConfig{})
	ctx := context.Background()

	doc, err := env.client.FetchRDF(ctx, "turtle")
	if err != nil {
		t.Fatalf("FetchRDF: %v", err)
	}
	if doc.Format.Extension != "ttl" || !strings.Contains(doc.Body, "@prefix") {
		t.Fatalf("turtle document = %+v", doc)
	}

	if _, err := env.client.FetchRDF(ctx, "yaml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	if f := LookupRDFFormat("yaml"); f.ContentType != "text/plain" {
		t.Fatalf("LookupRDFFormat(yaml) = %+v", f)
	}
}
