// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"
)

// FakeBlobs is an in-memory blobstore.Store for testing, with error
// injection and a record of writes.
type FakeBlobs struct {
	mu   sync.RWMutex
	data map[string]string

	// Sets counts successful Set calls.
	Sets int

	// Error injection for testing
	GetErr   error
	SetErr   error
	CloseErr error
}

// NewFakeBlobs creates an empty FakeBlobs.
func NewFakeBlobs() *FakeBlobs {
	return &FakeBlobs{data: make(map[string]string)}
}

// Put stores a raw value without counting it as a Set.
func (f *FakeBlobs) Put(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
}

// Raw returns the raw value stored under key.
func (f *FakeBlobs) Raw(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.data[key]
	return v, ok
}

// Get implements blobstore.Store.
func (f *FakeBlobs) Get(ctx context.Context, key string) (string, bool, error) {
	if f.GetErr != nil {
		return "", false, f.GetErr
	}
	v, ok := f.Raw(key)
	return v, ok, nil
}

// Set implements blobstore.Store.
func (f *FakeBlobs) Set(ctx context.Context, key, value string) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	f.Sets++
	return nil
}

// Close implements blobstore.Store.
func (f *FakeBlobs) Close() error {
	return f.CloseErr
}
