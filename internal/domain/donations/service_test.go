package donations_test

import (
	"context"
	"errors"
	"testing"

	"petverse/internal/adapters/storage/memory"
	"petverse/internal/domain/donations"
	"petverse/internal/domain/notifications"
)

func newTestService(t *testing.T) (*donations.Service, *notifications.Service) {
	t.Helper()

	noticesSvc := notifications.NewService(memory.NewNotificationsRepo())
	svc := donations.NewService(memory.NewDonationsRepo(), noticesSvc, nil)
	return svc, noticesSvc
}

func TestSubmit_BornVerified(t *testing.T) {
	svc, noticesSvc := newTestService(t)
	ctx := context.Background()

	d, err := svc.Submit(ctx, "user-1", donations.SubmitInput{
		DonorName: "Carlos",
		Email:     "carlos@x.com",
		Amount:    500,
		Message:   "for the shelter",
		PaymentID: "pay_don_1",
		Method:    "card",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if d.Status != donations.StatusVerified || d.VerifiedAt == nil {
		t.Fatalf("donation must be born verified, got %+v", d)
	}
	if d.Method != "card" {
		t.Fatalf("payment method lost: got %q", d.Method)
	}

	notices, _ := noticesSvc.List(ctx)
	if len(notices) != 1 || notices[0].DonationID != d.ID {
		t.Fatalf("expected one notification for donation %s, got %+v", d.ID, notices)
	}
}

func TestSubmit_AnonymousDonor(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	d, err := svc.Submit(ctx, "", donations.SubmitInput{
		DonorName: "Anon",
		Email:     "anon@x.com",
		Amount:    100,
		PaymentID: "pay_don_2",
	})
	if err != nil {
		t.Fatalf("Submit without user: %v", err)
	}
	if d.UserID != "" {
		t.Fatalf("expected empty user id, got %s", d.UserID)
	}
}

func TestSubmit_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []donations.SubmitInput{
		{DonorName: "Carlos", Email: "carlos@x.com", Amount: 0, PaymentID: "p"},
		{DonorName: "Carlos", Email: "carlos@x.com", Amount: -5, PaymentID: "p"},
		{DonorName: "Carlos", Email: "carlos@x.com", Amount: 100, PaymentID: ""},
		{DonorName: "", Email: "carlos@x.com", Amount: 100, PaymentID: "p"},
		{DonorName: "Carlos", Email: "not-an-email", Amount: 100, PaymentID: "p"},
	}
	for i, in := range cases {
		if _, err := svc.Submit(ctx, "user-1", in); !errors.Is(err, donations.ErrInvalidInput) {
			t.Errorf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestSetStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	d, _ := svc.Submit(ctx, "user-1", donations.SubmitInput{
		DonorName: "Carlos",
		Email:     "carlos@x.com",
		Amount:    500,
		PaymentID: "pay_don_1",
	})

	rejected, err := svc.SetStatus(ctx, d.ID, "rejected")
	if err != nil {
		t.Fatalf("SetStatus rejected: %v", err)
	}
	if rejected.Status != donations.StatusRejected {
		t.Fatalf("expected rejected, got %s", rejected.Status)
	}

	// Re-verificar renueva VerifiedAt.
	verified, err := svc.SetStatus(ctx, d.ID, "verified")
	if err != nil {
		t.Fatalf("SetStatus verified: %v", err)
	}
	if verified.Status != donations.StatusVerified || verified.VerifiedAt == nil {
		t.Fatalf("bad re-verified state: %+v", verified)
	}

	if _, err := svc.SetStatus(ctx, d.ID, "pending"); !errors.Is(err, donations.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown status, got %v", err)
	}
	if _, err := svc.SetStatus(ctx, "missing", "rejected"); !errors.Is(err, donations.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestList_FilterByStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, _ := svc.Submit(ctx, "u1", donations.SubmitInput{DonorName: "A", Email: "a@x.com", Amount: 100, PaymentID: "p1"})
	_, _ = svc.Submit(ctx, "u2", donations.SubmitInput{DonorName: "B", Email: "b@x.com", Amount: 200, PaymentID: "p2"})
	_, _ = svc.SetStatus(ctx, a.ID, "rejected")

	verified, err := svc.List(ctx, "verified")
	if err != nil {
		t.Fatalf("List verified: %v", err)
	}
	if len(verified) != 1 {
		t.Fatalf("expected 1 verified, got %d", len(verified))
	}

	all, _ := svc.List(ctx, "")
	if len(all) != 2 {
		t.Fatalf("expected 2 total, got %d", len(all))
	}

	if _, err := svc.List(ctx, "bogus"); !errors.Is(err, donations.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bogus filter, got %v", err)
	}
}
