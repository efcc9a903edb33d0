package memory

import (
	"context"
	"sort"
	"sync"

	"petverse/internal/domain/donations"
)

type donationsRepo struct {
	mu   sync.RWMutex
	byID map[string]donations.Donation
}

func NewDonationsRepo() donations.Repository {
	return &donationsRepo{
		byID: make(map[string]donations.Donation),
	}
}

func (r *donationsRepo) Create(ctx context.Context, d donations.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[d.ID] = d
	return nil
}

func (r *donationsRepo) GetByID(ctx context.Context, id string) (donations.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return donations.Donation{}, donations.ErrNotFound
	}
	return d, nil
}

func (r *donationsRepo) Update(ctx context.Context, d donations.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[d.ID]; !exists {
		return donations.ErrNotFound
	}
	r.byID[d.ID] = d
	return nil
}

func (r *donationsRepo) List(ctx context.Context, status donations.Status) ([]donations.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]donations.Donation, 0, len(r.byID))
	for _, d := range r.byID {
		if status != "" && d.Status != status {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
