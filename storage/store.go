// Package storage is the device key-value store the client persists its
// session and local-only state into.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"go-pacha/utils/errors"
)

// ErrNotFound is returned by Get when a key holds no value.
var ErrNotFound = errors.ErrNotFound

// Store is a flat key-value store of JSON blobs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Key namespaces a collection by owning user, e.g. "pacha_relaciones:12".
func Key(collection string, owner int) string {
	return collection + ":" + strconv.Itoa(owner)
}

// GetJSON decodes key into dst. It reports false, without error, when the key is absent.
func GetJSON(ctx context.Context, s Store, key string, dst any) (bool, error) {
	data, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("storage decode %s: %w", key, err)
	}
	return true, nil
}

func SetJSON(ctx context.Context, s Store, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, data); err != nil {
		return fmt.Errorf("storage set %s: %w", key, err)
	}
	return nil
}
