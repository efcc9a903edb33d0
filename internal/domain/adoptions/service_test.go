package adoptions_test

import (
	"context"
	"errors"
	"testing"

	"petverse/internal/adapters/storage/memory"
	"petverse/internal/domain/adoptions"
	"petverse/internal/domain/notifications"
	"petverse/internal/domain/pets"
)

func newTestServices(t *testing.T) (*adoptions.Service, *pets.Service, *notifications.Service) {
	t.Helper()

	petsSvc := pets.NewService(memory.NewPetsRepo(), nil, nil)
	noticesSvc := notifications.NewService(memory.NewNotificationsRepo())
	svc := adoptions.NewService(memory.NewAdoptionsRepo(), petsSvc, noticesSvc, nil)
	return svc, petsSvc, noticesSvc
}

func submitInput(petID string) adoptions.SubmitInput {
	return adoptions.SubmitInput{
		PetID:       petID,
		AdopterName: "Maria Lopez",
		Phone:       "+51 999 888 777",
		Email:       "maria@x.com",
		Address:     "Av. Siempre Viva 123",
		Reason:      "always wanted a dog",
		PaymentID:   "pay_123",
	}
}

func TestSubmit_ReservesPetAndNotifies(t *testing.T) {
	svc, petsSvc, noticesSvc := newTestServices(t)
	ctx := context.Background()

	p, err := petsSvc.Create(ctx, pets.CreateInput{Name: "Rocky", Type: "Dog", Age: 2})
	if err != nil {
		t.Fatalf("create pet: %v", err)
	}

	a, err := svc.Submit(ctx, "user-1", submitInput(p.ID))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if a.Status != adoptions.StatusPending {
		t.Fatalf("expected pending, got %s", a.Status)
	}
	if a.Fee != 2000 {
		t.Fatalf("fee frozen at submit: got %d want 2000", a.Fee)
	}

	// La mascota sale del listado público.
	got, _ := petsSvc.Get(ctx, p.ID)
	if got.Available {
		t.Fatal("pet must be unavailable while request is pending")
	}

	// Y el admin recibe su notificación.
	notices, _ := noticesSvc.List(ctx)
	if len(notices) != 1 || notices[0].AdoptionID != a.ID {
		t.Fatalf("expected one notification for adoption %s, got %+v", a.ID, notices)
	}
}

func TestSubmit_UnavailablePetKeepsPaymentID(t *testing.T) {
	svc, petsSvc, _ := newTestServices(t)
	ctx := context.Background()

	p, _ := petsSvc.Create(ctx, pets.CreateInput{Name: "Rocky", Type: "Dog", Age: 2})
	if _, err := svc.Submit(ctx, "user-1", submitInput(p.ID)); err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	// Segundo pago contra la misma mascota: el error debe cargar el
	// payment id para el reclamo manual.
	_, err := svc.Submit(ctx, "user-2", submitInput(p.ID))
	var pre *adoptions.PaymentRecordedError
	if !errors.As(err, &pre) {
		t.Fatalf("expected PaymentRecordedError, got %v", err)
	}
	if pre.PaymentID != "pay_123" {
		t.Fatalf("payment id lost: %s", pre.PaymentID)
	}
	if !errors.Is(err, adoptions.ErrPetUnavailable) {
		t.Fatalf("expected wrapped ErrPetUnavailable, got %v", err)
	}
}

func TestSubmit_Validation(t *testing.T) {
	svc, petsSvc, _ := newTestServices(t)
	ctx := context.Background()

	p, _ := petsSvc.Create(ctx, pets.CreateInput{Name: "Rocky", Type: "Dog", Age: 2})

	in := submitInput(p.ID)
	in.Phone = "not-a-phone"
	if _, err := svc.Submit(ctx, "user-1", in); !errors.Is(err, adoptions.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad phone, got %v", err)
	}

	in = submitInput(p.ID)
	in.PaymentID = ""
	if _, err := svc.Submit(ctx, "user-1", in); !errors.Is(err, adoptions.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing payment id, got %v", err)
	}
}

func TestAccept_MarksPetAdopted(t *testing.T) {
	svc, petsSvc, _ := newTestServices(t)
	ctx := context.Background()

	p, _ := petsSvc.Create(ctx, pets.CreateInput{Name: "Rocky", Type: "Dog", Age: 2})
	a, _ := svc.Submit(ctx, "user-1", submitInput(p.ID))

	accepted, err := svc.Accept(ctx, a.ID)
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if accepted.Status != adoptions.StatusAccepted || accepted.VerifiedAt == nil {
		t.Fatalf("bad accepted state: %+v", accepted)
	}

	got, _ := petsSvc.Get(ctx, p.ID)
	if !got.Adopted || got.Available {
		t.Fatalf("pet must be adopted and unavailable, got %+v", got)
	}

	// Aceptar dos veces es idempotente.
	if _, err := svc.Accept(ctx, a.ID); err != nil {
		t.Fatalf("second Accept must be idempotent, got %v", err)
	}
}

func TestReject_RestoresAvailability(t *testing.T) {
	svc, petsSvc, _ := newTestServices(t)
	ctx := context.Background()

	p, _ := petsSvc.Create(ctx, pets.CreateInput{Name: "Rocky", Type: "Dog", Age: 2})
	a, _ := svc.Submit(ctx, "user-1", submitInput(p.ID))

	rejected, err := svc.Reject(ctx, a.ID)
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if rejected.Status != adoptions.StatusRejected {
		t.Fatalf("expected rejected, got %s", rejected.Status)
	}

	got, _ := petsSvc.Get(ctx, p.ID)
	if !got.Available || got.Adopted {
		t.Fatalf("pet must be back in the listing, got %+v", got)
	}

	// rejected es terminal.
	if _, err := svc.Accept(ctx, a.ID); !errors.Is(err, adoptions.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if _, err := svc.Reject(ctx, a.ID); !errors.Is(err, adoptions.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on double reject, got %v", err)
	}
}

func TestReject_AfterAcceptRestoresPet(t *testing.T) {
	svc, petsSvc, _ := newTestServices(t)
	ctx := context.Background()

	p, _ := petsSvc.Create(ctx, pets.CreateInput{Name: "Rocky", Type: "Dog", Age: 2})
	a, _ := svc.Submit(ctx, "user-1", submitInput(p.ID))

	if _, err := svc.Accept(ctx, a.ID); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if _, err := svc.Reject(ctx, a.ID); err != nil {
		t.Fatalf("Reject after accept: %v", err)
	}

	got, _ := petsSvc.Get(ctx, p.ID)
	if !got.Available || got.Adopted {
		t.Fatalf("pet must be restored after revoked adoption, got %+v", got)
	}
}
