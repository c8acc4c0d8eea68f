package blobstore

import (
	"context"
	"sync"
)

// Memory is an in-process Store. Contents are lost when the process exits.
type Memory struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{m: make(map[string]string)}
}

// Get implements Store.
func (s *Memory) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok, nil
}

// Set implements Store.
func (s *Memory) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

// Close implements Store.
func (s *Memory) Close() error { return nil }
