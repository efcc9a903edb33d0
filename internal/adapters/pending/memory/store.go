// Package memory implementa signup.PendingStore en memoria (dev sin Redis).
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"petverse/internal/domain/signup"
)

type Store struct {
	mu    sync.Mutex
	slots map[string]signup.PendingSignup
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{
		slots: make(map[string]signup.PendingSignup),
		now:   time.Now,
	}
}

func (s *Store) Put(_ context.Context, p signup.PendingSignup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evict()
	s.slots[key(p.Email)] = p
	return nil
}

func (s *Store) Get(_ context.Context, email string) (signup.PendingSignup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evict()

	p, ok := s.slots[key(email)]
	if !ok {
		return signup.PendingSignup{}, signup.ErrNoPendingSignup
	}
	return p, nil
}

func (s *Store) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, key(email))
	return nil
}

// evict reproduce el TTL físico de Redis: los slots caen recién al doble
// de su ventana lógica.
func (s *Store) evict() {
	now := s.now()
	for k, p := range s.slots {
		if now.Sub(p.CreatedAt) > 2*p.TTL {
			delete(s.slots, k)
		}
	}
}

func key(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
