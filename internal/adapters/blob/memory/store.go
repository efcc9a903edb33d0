// Package memory es un blob.Store en memoria para dev y tests.
package memory

import (
	"context"
	"strings"
	"sync"
)

type object struct {
	content     []byte
	contentType string
}

type Store struct {
	mu      sync.RWMutex
	objects map[string]object
}

func New() *Store {
	return &Store{objects: make(map[string]object)}
}

func (s *Store) Upload(_ context.Context, path string, content []byte, contentType string) (string, error) {
	path = strings.TrimLeft(path, "/")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = object{content: content, contentType: contentType}
	return "mem://" + path, nil
}

func (s *Store) Delete(_ context.Context, pathOrURL string) error {
	path := strings.TrimLeft(strings.TrimPrefix(pathOrURL, "mem://"), "/")

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, path)
	return nil
}

// Len es para asserts en tests.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
