package memory

import (
	"context"
	"sort"
	"sync"

	"petverse/internal/domain/volunteers"
)

type volunteerAppsRepo struct {
	mu   sync.RWMutex
	byID map[string]volunteers.Application
}

func NewVolunteerAppsRepo() volunteers.ApplicationRepository {
	return &volunteerAppsRepo{
		byID: make(map[string]volunteers.Application),
	}
}

func (r *volunteerAppsRepo) Create(ctx context.Context, a volunteers.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[a.ID] = a
	return nil
}

func (r *volunteerAppsRepo) GetByID(ctx context.Context, id string) (volunteers.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return volunteers.Application{}, volunteers.ErrNotFound
	}
	return a, nil
}

func (r *volunteerAppsRepo) Update(ctx context.Context, a volunteers.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[a.ID]; !exists {
		return volunteers.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *volunteerAppsRepo) List(ctx context.Context, status volunteers.ApplicationStatus) ([]volunteers.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]volunteers.Application, 0, len(r.byID))
	for _, a := range r.byID {
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

type volunteerEventsRepo struct {
	mu   sync.RWMutex
	byID map[string]volunteers.Event
}

func NewVolunteerEventsRepo() volunteers.EventRepository {
	return &volunteerEventsRepo{
		byID: make(map[string]volunteers.Event),
	}
}

func (r *volunteerEventsRepo) Create(ctx context.Context, e volunteers.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[e.ID] = e
	return nil
}

func (r *volunteerEventsRepo) GetByID(ctx context.Context, id string) (volunteers.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return volunteers.Event{}, volunteers.ErrNotFound
	}
	return e, nil
}

func (r *volunteerEventsRepo) Update(ctx context.Context, e volunteers.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[e.ID]; !exists {
		return volunteers.ErrNotFound
	}
	r.byID[e.ID] = e
	return nil
}

func (r *volunteerEventsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return volunteers.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *volunteerEventsRepo) List(ctx context.Context) ([]volunteers.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]volunteers.Event, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

type volunteerRegsRepo struct {
	mu   sync.RWMutex
	byID map[string]volunteers.Registration
}

func NewVolunteerRegsRepo() volunteers.RegistrationRepository {
	return &volunteerRegsRepo{
		byID: make(map[string]volunteers.Registration),
	}
}

func (r *volunteerRegsRepo) Create(ctx context.Context, reg volunteers.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[reg.ID] = reg
	return nil
}

func (r *volunteerRegsRepo) GetByID(ctx context.Context, id string) (volunteers.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.byID[id]
	if !ok {
		return volunteers.Registration{}, volunteers.ErrNotFound
	}
	return reg, nil
}

func (r *volunteerRegsRepo) Update(ctx context.Context, reg volunteers.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[reg.ID]; !exists {
		return volunteers.ErrNotFound
	}
	r.byID[reg.ID] = reg
	return nil
}

func (r *volunteerRegsRepo) ListByEvent(ctx context.Context, eventID string) ([]volunteers.Registration, error) {
	return r.filter(func(reg volunteers.Registration) bool {
		return reg.EventID == eventID
	}), nil
}

func (r *volunteerRegsRepo) ListByUser(ctx context.Context, userID string) ([]volunteers.Registration, error) {
	return r.filter(func(reg volunteers.Registration) bool {
		return reg.UserID == userID
	}), nil
}

func (r *volunteerRegsRepo) filter(keep func(volunteers.Registration) bool) []volunteers.Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]volunteers.Registration, 0)
	for _, reg := range r.byID {
		if keep(reg) {
			out = append(out, reg)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
