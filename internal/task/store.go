package task

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/log"

	"tasker/internal/blobstore"
	"tasker/internal/config"
	"tasker/internal/logging"
)

// Store owns the ordered task collection. It is not safe for concurrent
// use; one goroutine drives it.
type Store struct {
	blobs  blobstore.Store
	key    string
	logger *log.Logger

	tasks  []Task
	nextID int64
}

var _ Manager = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithKey sets the blob store key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for hydration and persistence messages.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Store over blobs and hydrates it.
// The returned error is non-nil only if the blob store itself failed.
func New(ctx context.Context, blobs blobstore.Store, opts ...Option) (*Store, error) {
	s := &Store{
		blobs:  blobs,
		key:    config.DefaultKey,
		logger: logging.Discard(),
		nextID: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Hydrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Hydrate replaces the in-memory collection with the stored one.
// An absent, unparsable or invalid value yields an empty collection.
func (s *Store) Hydrate(ctx context.Context) error {
	raw, ok, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}

	s.tasks = nil
	s.nextID = 1

	if !ok {
		s.logger.Debug("no stored tasks", "key", s.key)
		return nil
	}

	tasks, nextID, err := decode(raw)
	if err != nil {
		s.logger.Warn("ignoring unreadable stored tasks", "key", s.key, "err", err)
		return nil
	}
	s.tasks = tasks
	s.nextID = nextID
	s.logger.Debug("hydrated", "key", s.key, "tasks", len(tasks), "next_id", nextID)
	return nil
}

// Persist writes the whole collection under the store key.
func (s *Store) Persist(ctx context.Context) error {
	raw, err := encode(s.tasks, s.nextID)
	if err != nil {
		return err
	}
	if err := s.blobs.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	s.logger.Debug("persisted", "key", s.key, "tasks", len(s.tasks))
	return nil
}

// Create implements Manager.
func (s *Store) Create(ctx context.Context, text string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmptyText
	}
	if s.nextID >= math.MaxInt64 {
		return Task{}, ErrIDSpaceExhausted
	}

	t := Task{ID: s.nextID, Text: text}
	s.nextID++
	s.tasks = append(s.tasks, t)
	return t, s.Persist(ctx)
}

// Rename implements Manager.
func (s *Store) Rename(ctx context.Context, id int64, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, nil
	}
	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	s.tasks[i].Text = text
	return true, s.Persist(ctx)
}

// Delete implements Manager.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return true, s.Persist(ctx)
}

// ToggleCompleted implements Manager.
func (s *Store) ToggleCompleted(ctx context.Context, id int64) (bool, error) {
	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return true, s.Persist(ctx)
}

// ClearCompleted implements Manager.
func (s *Store) ClearCompleted(ctx context.Context) (bool, error) {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(s.tasks) {
		return false, nil
	}
	s.tasks = kept
	return true, s.Persist(ctx)
}

// Get implements Manager.
func (s *Store) Get(id int64) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// All implements Manager. The result is a copy.
func (s *Store) All() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Completed implements Manager.
func (s *Store) Completed() []Task {
	var out []Task
	for _, t := range s.tasks {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// Counts implements Manager.
func (s *Store) Counts() Counts {
	c := Counts{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			c.Completed++
		}
	}
	c.Remaining = c.Total - c.Completed
	return c
}

func (s *Store) index(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
