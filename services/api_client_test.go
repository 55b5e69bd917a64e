package services

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go-pacha/devbackend"
	"go-pacha/handlers"
	"go-pacha/storage"
)

var quiet = log.New(io.Discard, "", 0)

// testEnv is a client wired to the in-memory backend through a request counter.
type testEnv struct {
	backend  *devbackend.Backend
	server   *httptest.Server
	client   *APIClient
	store    *storage.MemoryStore
	requests atomic.Int64
}

func newTestEnv(t *testing.T, cfg handlers.RouterConfig) *testEnv {
	t.Helper()
	env := &testEnv{backend: devbackend.New(nil), store: storage.NewMemoryStore()}
	router := handlers.NewRouter(env.backend, cfg)
	env.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.requests.Add(1)
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(env.server.Close)
	env.client = NewAPIClient(env.server.URL, env.store, WithLogger(quiet))
	return env
}

// stubClient points a client at a handler answering a fixed shape.
func stubClient(t *testing.T, h http.HandlerFunc, opts ...Option) (*APIClient, *storage.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	store := storage.NewMemoryStore()
	return NewAPIClient(srv.URL, store, append([]Option{WithLogger(quiet)}, opts...)...), store
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	c, _ := stubClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{"success": true, "usuario": {"id": 1, "nombre": "Ana", "email": "a@x.com"}}`))
	})
	c.Login(context.Background(), "a@x.com", "123456")
	if got.Get("Content-Type") != "application/json" || got.Get("Accept") != "application/json" {
		t.Fatalf("headers = %v", got)
	}
}

func TestReadRetriesOnlyForIdempotentRequests(t *testing.T) {
	var calls atomic.Int64
	c, _ := stubClient(t, func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if r.Method == http.MethodGet && n < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"lugares": [{"id": 1, "nombre": "Colca"}]}`))
	}, WithReadRetries(2, time.Millisecond))

	places, err := c.GetTouristLocations(context.Background())
	if err != nil || len(places) != 1 {
		t.Fatalf("GetTouristLocations = %v, %v", places, err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}

	calls.Store(0)
	ok, err := c.RemoveFavorite(context.Background(), 9)
	if err != nil || ok {
		t.Fatalf("RemoveFavorite = %v, %v", ok, err)
	}
	if calls.Load() != 1 {
		t.Fatalf("deletes must not retry, got %d attempts", calls.Load())
	}
}

func TestNoRetryByDefault(t *testing.T) {
	var calls atomic.Int64
	c, _ := stubClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})
	if _, err := c.GetTouristLocations(context.Background()); err == nil {
		t.Fatalf("expected error on 500")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", calls.Load())
	}
}

// signIn registers a user on the backend and logs the client in as them.
func (env *testEnv) signIn(t *testing.T, nombre, email string) int {
	t.Helper()
	user, err := env.backend.Register(nombre, email, "123456")
	if err != nil {
		t.Fatal(err)
	}
	if res := env.client.Login(context.Background(), email, "123456"); !res.Success {
		t.Fatalf("Login(%s) = %+v", email, res)
	}
	return user.ID
}
