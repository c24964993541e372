// Package storage holds the per-browser key/value slots the registration flow
// persists into. A slot is addressed by the browser id and a key, the way a page
// addresses its local storage.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// Store is a per-browser key/value store.
type Store interface {
	Get(ctx context.Context, owner, key string) ([]byte, error)
	Set(ctx context.Context, owner, key string, value []byte) error
	Remove(ctx context.Context, owner, key string) error
}

func slotKey(owner, key string) string {
	return "inscripcion:" + owner + ":" + key
}
