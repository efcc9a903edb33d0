// Package memory implementa los repositorios en memoria para dev y tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"petverse/internal/domain/profiles"
)

type profilesRepo struct {
	mu   sync.RWMutex
	byID map[string]profiles.Profile
}

func NewProfilesRepo() profiles.Repository {
	return &profilesRepo{
		byID: make(map[string]profiles.Profile),
	}
}

func (r *profilesRepo) Create(ctx context.Context, p profiles.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; exists {
		return profiles.ErrDuplicate
	}
	for _, other := range r.byID {
		if other.Email == p.Email || other.Username == p.Username {
			return profiles.ErrDuplicate
		}
	}
	r.byID[p.ID] = p
	return nil
}

func (r *profilesRepo) GetByID(ctx context.Context, id string) (profiles.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return profiles.Profile{}, profiles.ErrNotFound
	}
	return p, nil
}

func (r *profilesRepo) Update(ctx context.Context, p profiles.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return profiles.ErrNotFound
	}
	for id, other := range r.byID {
		if id != p.ID && other.Username == p.Username {
			return profiles.ErrDuplicate
		}
	}
	r.byID[p.ID] = p
	return nil
}

func (r *profilesRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return profiles.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *profilesRepo) List(ctx context.Context) ([]profiles.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]profiles.Profile, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *profilesRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, p := range r.byID {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *profilesRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	username = strings.ToLower(username)
	for _, p := range r.byID {
		if p.Username == username {
			return true, nil
		}
	}
	return false, nil
}
