package memory

import (
	"context"
	"sort"
	"sync"

	"petverse/internal/domain/community"
)

type communityRepo struct {
	mu   sync.RWMutex
	byID map[string]community.Post
}

func NewCommunityRepo() community.Repository {
	return &communityRepo{
		byID: make(map[string]community.Post),
	}
}

func (r *communityRepo) Create(ctx context.Context, p community.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[p.ID] = p
	return nil
}

func (r *communityRepo) GetByID(ctx context.Context, id string) (community.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return community.Post{}, community.ErrNotFound
	}
	return p, nil
}

func (r *communityRepo) List(ctx context.Context) ([]community.Post, error) {
	return r.filter(func(community.Post) bool { return true }), nil
}

func (r *communityRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return community.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *communityRepo) DeleteByLostReport(ctx context.Context, lostReportID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, p := range r.byID {
		if p.LostReportID == lostReportID {
			delete(r.byID, id)
		}
	}
	return nil
}

func (r *communityRepo) ListByLostReport(ctx context.Context, lostReportID string) ([]community.Post, error) {
	return r.filter(func(p community.Post) bool {
		return p.LostReportID == lostReportID
	}), nil
}

func (r *communityRepo) filter(keep func(community.Post) bool) []community.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]community.Post, 0)
	for _, p := range r.byID {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
