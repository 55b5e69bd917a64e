package services

import (
	"context"
	"sync"

	"go-pacha/storage"
)

// Device-local collections. Each is stored per owning user under
// storage.Key(collection, userID) so accounts sharing a device stay apart.
const (
	relationsCollection = "pacha_relaciones"
	profilesCollection  = "pacha_usuarios_detalles"
	feedCollection      = "pacha_feed"
	notesCollection     = "pacha_notas"
)

// localCollection is a read-modify-write view of one collection. The mutex
// only serialises writers inside this process.
type localCollection[T any] struct {
	store storage.Store
	name  string
	mu    *sync.Mutex
}

func newLocalCollection[T any](store storage.Store, name string) localCollection[T] {
	return localCollection[T]{store: store, name: name, mu: &sync.Mutex{}}
}

func (l localCollection[T]) load(ctx context.Context, owner int) (T, error) {
	var v T
	_, err := storage.GetJSON(ctx, l.store, storage.Key(l.name, owner), &v)
	return v, err
}

func (l localCollection[T]) save(ctx context.Context, owner int, v T) error {
	return storage.SetJSON(ctx, l.store, storage.Key(l.name, owner), v)
}
