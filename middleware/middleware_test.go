package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if id, found := UserIDFromContext(r.Context()); found {
		w.Header().Set("X-User", strconv.Itoa(id))
	}
	w.WriteHeader(http.StatusOK)
})

func TestCORSMiddleware(t *testing.T) {
	h := CORSMiddleware([]string{"http://localhost:8081/"})(ok)

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantAllow  string
	}{
		{"preflight allowed", http.MethodOptions, "http://localhost:8081", http.StatusNoContent, "http://localhost:8081"},
		{"get allowed", http.MethodGet, "http://localhost:8081", http.StatusOK, "http://localhost:8081"},
		{"unknown origin", http.MethodGet, "http://evil.example", http.StatusOK, ""},
		{"no origin", http.MethodGet, "", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/lugares", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}

	wildcard := CORSMiddleware([]string{"*"})(ok)
	req := httptest.NewRequest(http.MethodGet, "/lugares", nil)
	req.Header.Set("Origin", "http://anything.test")
	rec := httptest.NewRecorder()
	wildcard.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://anything.test" {
		t.Fatalf("wildcard Allow-Origin = %q", got)
	}
}

func TestJWTMiddleware(t *testing.T) {
	const secret = "s3cret"
	h := JWTMiddleware(secret)(ok)

	token, err := IssueToken(secret, 200, "ana@x.com")
	if err != nil {
		t.Fatal(err)
	}
	forged, _ := IssueToken("other", 200, "ana@x.com")

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"wrong key", "Bearer " + forged, http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/favoritos", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.want == http.StatusOK && rec.Header().Get("X-User") != "200" {
				t.Fatalf("user id not propagated")
			}
		})
	}
}

func TestJWTMiddlewareDisabled(t *testing.T) {
	rec := httptest.NewRecorder()
	JWTMiddleware("")(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/resenas", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestErrorMiddlewareRecovers(t *testing.T) {
	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	rec := httptest.NewRecorder()
	ErrorMiddleware()(panicky).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}
