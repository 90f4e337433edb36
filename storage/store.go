// Package storage provides the key-addressable shared state store the game
// kernel persists into: plain get/put/delete plus one atomic
// compare-and-update primitive, which is all the calling protocol needs.
package storage

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("storage: key not found")
	// ErrConflict is returned when an atomic update lost the race too many times.
	ErrConflict = errors.New("storage: too many conflicting updates")
)

// UpdateFunc maps the current value (nil when the key is absent) to the next
// value. Returning nil deletes the key. Returning an error aborts the update
// and surfaces that error unchanged.
type UpdateFunc func(current []byte) ([]byte, error)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// AtomicUpdate applies fn to the key's value atomically: the read of the
	// current value and the write of fn's result happen as one
	// compare-and-update. fn may be invoked multiple times on conflict.
	AtomicUpdate(ctx context.Context, key string, fn UpdateFunc) error
}
