package profiles

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeRepo guarda perfiles en memoria. Si block está prendido, GetByID
// se cuelga hasta que el context venza (simula un backend lento).
type fakeRepo struct {
	byID  map[string]Profile
	block bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]Profile{}}
}

func (r *fakeRepo) Create(_ context.Context, p Profile) error {
	if _, ok := r.byID[p.ID]; ok {
		return ErrDuplicate
	}
	for _, other := range r.byID {
		if other.Username == p.Username || other.Email == p.Email {
			return ErrDuplicate
		}
	}
	r.byID[p.ID] = p
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (Profile, error) {
	if r.block {
		<-ctx.Done()
		return Profile{}, ctx.Err()
	}
	p, ok := r.byID[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *fakeRepo) Update(_ context.Context, p Profile) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeRepo) List(_ context.Context) ([]Profile, error) {
	out := make([]Profile, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, p := range r.byID {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, p := range r.byID {
		if p.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func TestCreate_NormalizesAndValidates(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	err := svc.Create(ctx, Profile{ID: "u1", Username: "  Ana1 ", Email: "ANA@x.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got := repo.byID["u1"]
	if got.Username != "ana1" || got.Email != "ana@x.com" {
		t.Fatalf("expected normalized fields, got %+v", got)
	}
	if got.CreatedAt.IsZero() || !got.UpdatedAt.Equal(got.CreatedAt) {
		t.Fatalf("expected timestamps set, got %+v", got)
	}

	if err := svc.Create(ctx, Profile{Username: "x", Email: "x@x.com"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without id, got %v", err)
	}
	if err := svc.Create(ctx, Profile{ID: "u2", Username: "ana1", Email: "otra@x.com"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate on repeated username, got %v", err)
	}
}

func TestGetWithDeadline_ReturnsProfile(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["u1"] = Profile{ID: "u1", Username: "ana1", Email: "ana@x.com"}
	svc := NewService(repo)

	p, timedOut, err := svc.GetWithDeadline(context.Background(), "u1", time.Second)
	if err != nil || timedOut {
		t.Fatalf("expected profile, got timedOut=%v err=%v", timedOut, err)
	}
	if p.Username != "ana1" {
		t.Fatalf("unexpected profile %+v", p)
	}
}

func TestGetWithDeadline_TimeoutIsTypedOutcome(t *testing.T) {
	repo := newFakeRepo()
	repo.block = true
	svc := NewService(repo)

	p, timedOut, err := svc.GetWithDeadline(context.Background(), "u1", 20*time.Millisecond)
	if err != nil {
		t.Fatalf("timeout must not surface as error, got %v", err)
	}
	if !timedOut {
		t.Fatal("expected timedOut=true")
	}
	if p != (Profile{}) {
		t.Fatalf("expected zero profile on timeout, got %+v", p)
	}
}

func TestGetWithDeadline_NotFoundIsError(t *testing.T) {
	svc := NewService(newFakeRepo())

	_, timedOut, err := svc.GetWithDeadline(context.Background(), "nope", time.Second)
	if timedOut {
		t.Fatal("not-found must not report timeout")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_PartialFields(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["u1"] = Profile{ID: "u1", Username: "ana1", Email: "ana@x.com", City: "Lima"}
	svc := NewService(repo)

	phone := "+51 999 111 222"
	p, err := svc.Update(context.Background(), "u1", UpdateInput{Phone: &phone})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.Phone != phone || p.City != "Lima" || p.Username != "ana1" {
		t.Fatalf("expected partial update, got %+v", p)
	}

	empty := "  "
	if _, err := svc.Update(context.Background(), "u1", UpdateInput{Username: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput on blank username, got %v", err)
	}
}
