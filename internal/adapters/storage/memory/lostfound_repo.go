package memory

import (
	"context"
	"sort"
	"sync"

	"petverse/internal/domain/lostfound"
)

type lostFoundRepo struct {
	mu   sync.RWMutex
	byID map[string]lostfound.Report
}

func NewLostFoundRepo() lostfound.Repository {
	return &lostFoundRepo{
		byID: make(map[string]lostfound.Report),
	}
}

func (r *lostFoundRepo) Create(ctx context.Context, rep lostfound.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[rep.ID] = rep
	return nil
}

func (r *lostFoundRepo) GetByID(ctx context.Context, id string) (lostfound.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rep, ok := r.byID[id]
	if !ok {
		return lostfound.Report{}, lostfound.ErrNotFound
	}
	return rep, nil
}

func (r *lostFoundRepo) Update(ctx context.Context, rep lostfound.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[rep.ID]; !exists {
		return lostfound.ErrNotFound
	}
	r.byID[rep.ID] = rep
	return nil
}

func (r *lostFoundRepo) ListApproved(ctx context.Context, typ lostfound.ReportType) ([]lostfound.Report, error) {
	return r.filter(func(rep lostfound.Report) bool {
		if rep.Status != lostfound.StatusApproved {
			return false
		}
		return typ == "" || rep.Type == typ
	}), nil
}

func (r *lostFoundRepo) ListPending(ctx context.Context) ([]lostfound.Report, error) {
	return r.filter(func(rep lostfound.Report) bool {
		return rep.Status == lostfound.StatusPending
	}), nil
}

func (r *lostFoundRepo) ListReviewed(ctx context.Context) ([]lostfound.Report, error) {
	return r.filter(func(rep lostfound.Report) bool {
		return rep.Status != lostfound.StatusPending
	}), nil
}

func (r *lostFoundRepo) filter(keep func(lostfound.Report) bool) []lostfound.Report {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]lostfound.Report, 0)
	for _, rep := range r.byID {
		if keep(rep) {
			out = append(out, rep)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
