package lostfound_test

import (
	"context"
	"errors"
	"testing"

	"petverse/internal/adapters/storage/memory"
	"petverse/internal/domain/community"
	"petverse/internal/domain/lostfound"
	"petverse/internal/ports/mail"
)

type sentMail struct {
	kind    string
	to      string
	petName string
	status  string
	finder  mail.FinderDetails
}

type testMailer struct {
	mail.Nop
	sent      []sentMail
	failMatch error
}

func (m *testMailer) SendLostFoundStatus(ctx context.Context, to, petName, status, reportType string) error {
	m.sent = append(m.sent, sentMail{kind: "status", to: to, petName: petName, status: status})
	return nil
}

func (m *testMailer) SendPetFoundMatch(ctx context.Context, to, petName string, finder mail.FinderDetails) error {
	if m.failMatch != nil {
		return m.failMatch
	}
	m.sent = append(m.sent, sentMail{kind: "match", to: to, petName: petName, finder: finder})
	return nil
}

func (m *testMailer) countKind(kind string) int {
	n := 0
	for _, s := range m.sent {
		if s.kind == kind {
			n++
		}
	}
	return n
}

func newTestServices(t *testing.T) (*lostfound.Service, *community.Service, *testMailer) {
	t.Helper()

	mailer := &testMailer{}
	posts := community.NewService(memory.NewCommunityRepo())
	svc := lostfound.NewService(memory.NewLostFoundRepo(), posts, mailer, nil)
	return svc, posts, mailer
}

func lostInput() lostfound.SubmitInput {
	return lostfound.SubmitInput{
		Type:         "lost",
		PetName:      "Luna",
		PetType:      "Cat",
		Breed:        "Siamese",
		Color:        "cream",
		Location:     "Parque Kennedy",
		ContactName:  "Ana",
		ContactPhone: "+51 911 222 333",
		ContactEmail: "ana@x.com",
	}
}

func foundInput() lostfound.SubmitInput {
	return lostfound.SubmitInput{
		Type:         "found",
		PetName:      "unknown cat",
		PetType:      "Cat",
		Location:     "Av. Larco",
		ContactName:  "Bruno",
		ContactPhone: "+51 944 555 666",
		ContactEmail: "bruno@x.com",
	}
}

func TestSubmit_StartsPending(t *testing.T) {
	svc, _, _ := newTestServices(t)
	ctx := context.Background()

	in := lostInput()
	in.Lat, in.Lng = -12.1211, -77.0297
	r, err := svc.Submit(ctx, "user-1", in)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if r.Status != lostfound.StatusPending {
		t.Fatalf("expected pending, got %s", r.Status)
	}
	if r.Lat != -12.1211 || r.Lng != -77.0297 {
		t.Fatalf("coordinates lost: %+v", r)
	}

	// Nada pendiente es visible al público.
	visible, _ := svc.ListApproved(ctx, "")
	if len(visible) != 0 {
		t.Fatalf("pending reports must not be public, got %d", len(visible))
	}

	in = lostInput()
	in.Type = "stolen"
	if _, err := svc.Submit(ctx, "user-1", in); !errors.Is(err, lostfound.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad type, got %v", err)
	}
}

func TestReview_ApproveLostPublishesAlert(t *testing.T) {
	svc, posts, mailer := newTestServices(t)
	ctx := context.Background()

	r, _ := svc.Submit(ctx, "user-1", lostInput())

	approved, err := svc.Review(ctx, r.ID, lostfound.ReviewInput{Status: "approved"})
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if approved.Status != lostfound.StatusApproved {
		t.Fatalf("expected approved, got %s", approved.Status)
	}

	// Alerta comunitaria automática, ligada al reporte.
	alerts, _ := posts.ListByLostReport(ctx, r.ID)
	if len(alerts) != 1 {
		t.Fatalf("expected one lost alert post, got %d", len(alerts))
	}
	if alerts[0].Type != community.PostTypeLostAlert {
		t.Fatalf("expected lost_pet post, got %s", alerts[0].Type)
	}

	// Y el correo de estado al que reportó.
	if mailer.countKind("status") != 1 {
		t.Fatalf("expected one status email, got %d", mailer.countKind("status"))
	}
}

func TestReview_RejectDoesNotPublish(t *testing.T) {
	svc, posts, _ := newTestServices(t)
	ctx := context.Background()

	r, _ := svc.Submit(ctx, "user-1", lostInput())
	if _, err := svc.Review(ctx, r.ID, lostfound.ReviewInput{Status: "rejected"}); err != nil {
		t.Fatalf("Review: %v", err)
	}

	alerts, _ := posts.ListByLostReport(ctx, r.ID)
	if len(alerts) != 0 {
		t.Fatalf("rejected report must not publish, got %d posts", len(alerts))
	}

	// pending → approved ya no es posible.
	if _, err := svc.Review(ctx, r.ID, lostfound.ReviewInput{Status: "approved"}); !errors.Is(err, lostfound.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestReview_ApproveFoundWithMatch(t *testing.T) {
	svc, posts, mailer := newTestServices(t)
	ctx := context.Background()

	lost, _ := svc.Submit(ctx, "user-1", lostInput())
	if _, err := svc.Review(ctx, lost.ID, lostfound.ReviewInput{Status: "approved"}); err != nil {
		t.Fatalf("approve lost: %v", err)
	}

	found, _ := svc.Submit(ctx, "user-2", foundInput())
	if _, err := svc.Review(ctx, found.ID, lostfound.ReviewInput{
		Status:        "approved",
		MatchedLostID: lost.ID,
	}); err != nil {
		t.Fatalf("approve found with match: %v", err)
	}

	// El lost queda cerrado apuntando al found.
	got, _ := svc.Get(ctx, lost.ID)
	if got.Status != lostfound.StatusFound || got.MatchedWith != found.ID {
		t.Fatalf("bad resolved state: %+v", got)
	}

	// El post comunitario se baja.
	alerts, _ := posts.ListByLostReport(ctx, lost.ID)
	if len(alerts) != 0 {
		t.Fatalf("lost alert must be removed, got %d posts", len(alerts))
	}

	// Exactamente un correo de match, con los datos de contacto del finder.
	if mailer.countKind("match") != 1 {
		t.Fatalf("expected one match email, got %d", mailer.countKind("match"))
	}
	for _, s := range mailer.sent {
		if s.kind == "match" && s.finder.Phone != "+51 944 555 666" {
			t.Fatalf("finder contact lost in match email: %+v", s.finder)
		}
	}
}

func TestResolveMatch_Idempotent(t *testing.T) {
	svc, _, mailer := newTestServices(t)
	ctx := context.Background()

	lost, _ := svc.Submit(ctx, "user-1", lostInput())
	_, _ = svc.Review(ctx, lost.ID, lostfound.ReviewInput{Status: "approved"})

	found, _ := svc.Submit(ctx, "user-2", foundInput())
	finder, _ := svc.Review(ctx, found.ID, lostfound.ReviewInput{Status: "approved", MatchedLostID: lost.ID})

	// Re-entrar con el mismo match no dispara un segundo correo.
	if err := svc.ResolveMatch(ctx, lost.ID, finder); err != nil {
		t.Fatalf("second ResolveMatch: %v", err)
	}
	if mailer.countKind("match") != 1 {
		t.Fatalf("match email must be sent once, got %d", mailer.countKind("match"))
	}
}

func TestResolveMatch_MailFailureLeavesStateIntact(t *testing.T) {
	svc, posts, mailer := newTestServices(t)
	ctx := context.Background()

	lost, _ := svc.Submit(ctx, "user-1", lostInput())
	_, _ = svc.Review(ctx, lost.ID, lostfound.ReviewInput{Status: "approved"})

	found, _ := svc.Submit(ctx, "user-2", foundInput())

	// El correo al dueño va primero: si falla, nada cambia y se puede
	// reintentar.
	mailer.failMatch = errors.New("smtp down")
	_, err := svc.Review(ctx, found.ID, lostfound.ReviewInput{Status: "approved", MatchedLostID: lost.ID})
	if err == nil {
		t.Fatal("expected match resolution to fail")
	}

	got, _ := svc.Get(ctx, lost.ID)
	if got.Status != lostfound.StatusApproved {
		t.Fatalf("lost report must stay approved after mail failure, got %s", got.Status)
	}
	alerts, _ := posts.ListByLostReport(ctx, lost.ID)
	if len(alerts) != 1 {
		t.Fatalf("lost alert must survive mail failure, got %d posts", len(alerts))
	}
}

func TestReview_MatchRetryAfterMailFailure(t *testing.T) {
	svc, posts, mailer := newTestServices(t)
	ctx := context.Background()

	lost, _ := svc.Submit(ctx, "user-1", lostInput())
	_, _ = svc.Review(ctx, lost.ID, lostfound.ReviewInput{Status: "approved"})

	found, _ := svc.Submit(ctx, "user-2", foundInput())

	// Primer intento: el correo al dueño falla. El found queda approved
	// pero el lost sigue abierto.
	mailer.failMatch = errors.New("smtp down")
	if _, err := svc.Review(ctx, found.ID, lostfound.ReviewInput{Status: "approved", MatchedLostID: lost.ID}); err == nil {
		t.Fatal("expected first match attempt to fail")
	}
	if got, _ := svc.Get(ctx, found.ID); got.Status != lostfound.StatusApproved {
		t.Fatalf("found report must stay approved, got %s", got.Status)
	}

	// Reintento de la misma aprobación: ahora el correo sale y el match
	// se resuelve completo.
	mailer.failMatch = nil
	if _, err := svc.Review(ctx, found.ID, lostfound.ReviewInput{Status: "approved", MatchedLostID: lost.ID}); err != nil {
		t.Fatalf("retry of match approval: %v", err)
	}

	got, _ := svc.Get(ctx, lost.ID)
	if got.Status != lostfound.StatusFound || got.MatchedWith != found.ID {
		t.Fatalf("lost report must close on retry, got %+v", got)
	}
	if mailer.countKind("match") != 1 {
		t.Fatalf("expected exactly one match email, got %d", mailer.countKind("match"))
	}
	alerts, _ := posts.ListByLostReport(ctx, lost.ID)
	if len(alerts) != 0 {
		t.Fatalf("lost alert must be removed on retry, got %d posts", len(alerts))
	}

	// Y el reintento del reintento sigue siendo un no-op.
	if _, err := svc.Review(ctx, found.ID, lostfound.ReviewInput{Status: "approved", MatchedLostID: lost.ID}); err != nil {
		t.Fatalf("re-retry must be a no-op, got %v", err)
	}
	if mailer.countKind("match") != 1 {
		t.Fatalf("no-op retry must not resend, got %d match emails", mailer.countKind("match"))
	}
}

func TestReview_TypeMismatch(t *testing.T) {
	svc, _, _ := newTestServices(t)
	ctx := context.Background()

	lostA, _ := svc.Submit(ctx, "user-1", lostInput())
	lostB, _ := svc.Submit(ctx, "user-2", lostInput())
	_, _ = svc.Review(ctx, lostB.ID, lostfound.ReviewInput{Status: "approved"})

	// Un lost no puede resolver a otro lost.
	rep, _ := svc.Get(ctx, lostB.ID)
	if err := svc.ResolveMatch(ctx, lostA.ID, rep); !errors.Is(err, lostfound.ErrTypeMismatch) {
		t.Fatalf("expected ErrTypeMismatch, got %v", err)
	}
}
