// Package blobstore defines the synchronous key/value persistence the task
// store mirrors its state into, and the backends that implement it.
package blobstore

import (
	"context"
	"time"
)

// OpTimeout bounds every network backend call.
const OpTimeout = 5 * time.Second

// Store is a synchronous string key/value store.
// Commands never import a backend driver directly; they go through Store.
type Store interface {
	// Get returns the value stored under key.
	// ok is false when the key is absent; that is not an error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, overwriting any prior value.
	Set(ctx context.Context, key, value string) error

	// Close releases connections held by the backend.
	Close() error
}
