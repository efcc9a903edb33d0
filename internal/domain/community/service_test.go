package community

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// memRepo replica el contrato del repo real: ErrNotFound en ausencia,
// DeleteByLostReport solo toca alertas del reporte.
type memRepo struct {
	byID map[string]Post
}

func newMemRepo() *memRepo {
	return &memRepo{byID: map[string]Post{}}
}

func (r *memRepo) Create(_ context.Context, p Post) error {
	r.byID[p.ID] = p
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (Post, error) {
	p, ok := r.byID[id]
	if !ok {
		return Post{}, ErrNotFound
	}
	return p, nil
}

func (r *memRepo) List(_ context.Context) ([]Post, error) {
	out := make([]Post, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

func (r *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memRepo) DeleteByLostReport(_ context.Context, lostReportID string) error {
	for id, p := range r.byID {
		if p.LostReportID == lostReportID {
			delete(r.byID, id)
		}
	}
	return nil
}

func (r *memRepo) ListByLostReport(_ context.Context, lostReportID string) ([]Post, error) {
	out := []Post{}
	for _, p := range r.byID {
		if p.LostReportID == lostReportID {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestCreate_UserPost(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	p, err := svc.Create(ctx, "u1", CreateInput{
		UserName: "ana1",
		Title:    "Adopten responsablemente",
		Content:  "Mi experiencia adoptando a Rocky.",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Type != PostTypeUser || p.UserID != "u1" {
		t.Fatalf("unexpected post %+v", p)
	}

	if _, err := svc.Create(ctx, "u1", CreateInput{Content: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput on empty content, got %v", err)
	}
}

func TestDelete_AuthorOrAdmin(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	p, err := svc.Create(ctx, "u1", CreateInput{Content: "hola"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, p.ID, "u2", false); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-author, got %v", err)
	}
	if err := svc.Delete(ctx, p.ID, "u1", false); err != nil {
		t.Fatalf("author delete: %v", err)
	}
	if err := svc.Delete(ctx, p.ID, "u1", false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	p2, _ := svc.Create(ctx, "u1", CreateInput{Content: "otra"})
	if err := svc.Delete(ctx, p2.ID, "admin-1", true); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestPublishLostAlert_BodyAndDefaults(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	p, err := svc.PublishLostAlert(ctx, LostAlertInput{
		LostReportID: "r1",
		UserID:       "u1",
		PetName:      "Luna",
		PetType:      "dog",
		Location:     "Parque Kennedy",
		ContactPhone: "+51 999 111 222",
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if p.Type != PostTypeLostAlert || p.LostReportID != "r1" {
		t.Fatalf("unexpected alert %+v", p)
	}
	if p.Title != "Lost Pet Alert: Luna" {
		t.Fatalf("unexpected title %q", p.Title)
	}
	for _, frag := range []string{"LOST DOG", "Last Seen: Parque Kennedy", "+51 999 111 222", "Breed: Unknown"} {
		if !strings.Contains(p.Content, frag) {
			t.Fatalf("body missing %q:\n%s", frag, p.Content)
		}
	}

	if _, err := svc.PublishLostAlert(ctx, LostAlertInput{Location: "x"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without report id, got %v", err)
	}
}

func TestDeleteByLostReport_RemovesOnlyAlerts(t *testing.T) {
	svc := NewService(newMemRepo())
	ctx := context.Background()

	_, _ = svc.Create(ctx, "u1", CreateInput{Content: "post normal"})
	if _, err := svc.PublishLostAlert(ctx, LostAlertInput{LostReportID: "r1", Location: "Surco"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if err := svc.DeleteByLostReport(ctx, "r1"); err != nil {
		t.Fatalf("delete by report: %v", err)
	}

	left, err := svc.ListByLostReport(ctx, "r1")
	if err != nil {
		t.Fatalf("list by report: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("expected no alerts left, got %d", len(left))
	}

	all, _ := svc.List(ctx)
	if len(all) != 1 {
		t.Fatalf("expected the user post to survive, got %d posts", len(all))
	}
}
