package storage

import (
	"context"
	"sync"
)

// Change describes a successful write observed by subscribers.
type Change struct {
	Namespace string
	Key       string
	Value     string
	Deleted   bool
}

// Service is the persistence service injected into components. It adds
// key subscriptions on top of a Backend.
type Service struct {
	backend Backend

	mu     sync.RWMutex
	subs   map[string]map[int]func(Change)
	nextID int
}

func NewService(backend Backend) *Service {
	return &Service{
		backend: backend,
		subs:    make(map[string]map[int]func(Change)),
	}
}

func (s *Service) Get(ctx context.Context, namespace, key string) (string, error) {
	return s.backend.Get(ctx, namespace, key)
}

// Set writes through to the backend, then notifies subscribers of key.
func (s *Service) Set(ctx context.Context, namespace, key, value string) error {
	if err := s.backend.Set(ctx, namespace, key, value); err != nil {
		return err
	}
	s.notify(Change{Namespace: namespace, Key: key, Value: value})
	return nil
}

func (s *Service) Delete(ctx context.Context, namespace, key string) error {
	if err := s.backend.Delete(ctx, namespace, key); err != nil {
		return err
	}
	s.notify(Change{Namespace: namespace, Key: key, Deleted: true})
	return nil
}

// Subscribe registers fn for writes to key in any namespace. Callbacks run
// synchronously on the writer's goroutine and must not write to the same key.
func (s *Service) Subscribe(key string, fn func(Change)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	if s.subs[key] == nil {
		s.subs[key] = make(map[int]func(Change))
	}
	s.subs[key][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs[key], id)
		})
	}
}

func (s *Service) notify(c Change) {
	s.mu.RLock()
	fns := make([]func(Change), 0, len(s.subs[c.Key]))
	for _, fn := range s.subs[c.Key] {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(c)
	}
}

// Ping reports backend readiness; backends without a Pinger are always ready.
func (s *Service) Ping(ctx context.Context) error {
	if p, ok := s.backend.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *Service) Close() error {
	return s.backend.Close()
}
