package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"go-pacha/config"
	"go-pacha/storage"
	"go-pacha/utils/errors"
)

// APIClient talks to the PachaQutec REST backend. It keeps no state between
// calls beyond the session record persisted in its Store.
type APIClient struct {
	baseURL      string
	httpClient   *http.Client
	store        storage.Store
	logger       *log.Logger
	readRetries  int
	retryBackoff time.Duration
}

type Option func(*APIClient)

func WithHTTPClient(c *http.Client) Option {
	return func(a *APIClient) { a.httpClient = c }
}

func WithLogger(l *log.Logger) Option {
	return func(a *APIClient) { a.logger = l }
}

// WithReadRetries retries idempotent reads n times after transport errors or
// 5xx answers, sleeping backoff*attempt between tries.
func WithReadRetries(n int, backoff time.Duration) Option {
	return func(a *APIClient) {
		a.readRetries = n
		a.retryBackoff = backoff
	}
}

func NewAPIClient(baseURL string, store storage.Store, opts ...Option) *APIClient {
	c := &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		store:      store,
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewAPIClientFromConfig wires timeout and retry policy from cfg.
func NewAPIClientFromConfig(cfg *config.AppConfig, store storage.Store, opts ...Option) *APIClient {
	base := []Option{
		WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		WithReadRetries(cfg.ReadRetries, cfg.RetryBackoff),
	}
	return NewAPIClient(cfg.BaseURL, store, append(base, opts...)...)
}

type apiRequest struct {
	method string
	path   string
	body   any
	token  string
	// idempotent requests may be retried
	idempotent bool
}

func (c *APIClient) do(ctx context.Context, req apiRequest) (*envelope, error) {
	attempts := 1
	if req.idempotent && c.readRetries > 0 {
		attempts += c.readRetries
	}

	var env *envelope
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		env, err = c.send(ctx, req)
		retryable := err != nil || env.status >= http.StatusInternalServerError
		if !retryable || attempt == attempts {
			break
		}
		c.logger.Printf("Retrying %s %s (attempt %d/%d)", req.method, req.path, attempt+1, attempts)
		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), errors.ErrConnection.Code, errors.ErrConnection.Message, 0)
		case <-time.After(c.retryBackoff * time.Duration(attempt)):
		}
	}
	return env, err
}

func (c *APIClient) send(ctx context.Context, req apiRequest) (*envelope, error) {
	url := c.baseURL + req.path

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}

	c.logger.Printf("%s %s", req.method, url)
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Printf("Request %s %s failed: %v", req.method, url, err)
		return nil, errors.Wrap(err, errors.ErrConnection.Code, errors.ErrConnection.Message, 0)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConnection.Code, errors.ErrConnection.Message, 0)
	}
	c.logger.Printf("Status: %d, body: %s", resp.StatusCode, truncate(raw, 512))
	return parseEnvelope(resp.StatusCode, resp.Header.Get("Content-Type"), raw), nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
