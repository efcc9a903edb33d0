package volunteers_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"petverse/internal/adapters/storage/memory"
	"petverse/internal/domain/volunteers"
	"petverse/internal/ports/mail"
)

type statusMail struct {
	to     string
	status string
}

type inviteMail struct {
	recipients []string
	title      string
	message    string
}

type testMailer struct {
	mail.Nop
	statuses   []statusMail
	invites    []inviteMail
	failStatus error
}

func (m *testMailer) SendVolunteerStatus(ctx context.Context, to, name, status string) error {
	if m.failStatus != nil {
		return m.failStatus
	}
	m.statuses = append(m.statuses, statusMail{to: to, status: status})
	return nil
}

func (m *testMailer) SendVolunteerEvent(ctx context.Context, recipients []string, ev mail.EventDetails, customMessage string) error {
	m.invites = append(m.invites, inviteMail{recipients: recipients, title: ev.Title, message: customMessage})
	return nil
}

func newTestService(t *testing.T) (*volunteers.Service, *testMailer) {
	t.Helper()

	mailer := &testMailer{}
	svc := volunteers.NewService(
		memory.NewVolunteerAppsRepo(),
		memory.NewVolunteerEventsRepo(),
		memory.NewVolunteerRegsRepo(),
		mailer,
		nil,
	)
	return svc, mailer
}

func apply(t *testing.T, svc *volunteers.Service, userID, email, role string) volunteers.Application {
	t.Helper()
	a, err := svc.Apply(context.Background(), userID, volunteers.ApplyInput{
		Name:  "Vol " + userID,
		Email: email,
		Role:  role,
	})
	if err != nil {
		t.Fatalf("Apply %s: %v", userID, err)
	}
	return a
}

func TestApplicationLifecycle(t *testing.T) {
	svc, mailer := newTestService(t)
	ctx := context.Background()

	a := apply(t, svc, "u1", "u1@x.com", "dog walker")
	if a.Status != volunteers.AppPending {
		t.Fatalf("expected pending, got %s", a.Status)
	}

	approved, err := svc.UpdateApplicationStatus(ctx, a.ID, "approved")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != volunteers.AppApproved {
		t.Fatalf("expected approved, got %s", approved.Status)
	}

	// El correo de resultado salió.
	if len(mailer.statuses) != 1 || mailer.statuses[0].status != "approved" {
		t.Fatalf("expected one approved email, got %+v", mailer.statuses)
	}

	// approved → rejected ya no es una decisión pendiente.
	if _, err := svc.UpdateApplicationStatus(ctx, a.ID, "rejected"); !errors.Is(err, volunteers.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestUpdateApplicationStatus_MailFailureIsNotFatal(t *testing.T) {
	svc, mailer := newTestService(t)
	ctx := context.Background()

	a := apply(t, svc, "u1", "u1@x.com", "dog walker")
	mailer.failStatus = errors.New("smtp down")

	// La decisión queda aunque el correo falle.
	approved, err := svc.UpdateApplicationStatus(ctx, a.ID, "approved")
	if err != nil {
		t.Fatalf("approve with failing mail: %v", err)
	}
	if approved.Status != volunteers.AppApproved {
		t.Fatalf("expected approved, got %s", approved.Status)
	}
}

func TestRegister_CapacityAndDuplicates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	e, err := svc.CreateEvent(ctx, volunteers.EventInput{Title: "Adoption fair", MaxVolunteers: 1})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	r1, err := svc.Register(ctx, e.ID, "u1", volunteers.RegisterInput{Name: "A", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Doble registro del mismo usuario.
	if _, err := svc.Register(ctx, e.ID, "u1", volunteers.RegisterInput{Name: "A", Email: "a@x.com"}); !errors.Is(err, volunteers.ErrAlreadyRegistered) {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}

	// Aprobar consume el cupo.
	if _, err := svc.UpdateRegistrationStatus(ctx, r1.ID, "approved"); err != nil {
		t.Fatalf("approve registration: %v", err)
	}
	if _, err := svc.Register(ctx, e.ID, "u2", volunteers.RegisterInput{Name: "B", Email: "b@x.com"}); !errors.Is(err, volunteers.ErrEventFull) {
		t.Fatalf("expected ErrEventFull, got %v", err)
	}

	// Rechazar al aprobado libera el cupo.
	if _, err := svc.UpdateRegistrationStatus(ctx, r1.ID, "rejected"); err != nil {
		t.Fatalf("reject registration: %v", err)
	}
	got, _ := svc.ListEvents(ctx)
	if got[0].CurrentVolunteers != 0 {
		t.Fatalf("expected freed slot, got %d", got[0].CurrentVolunteers)
	}
	if _, err := svc.Register(ctx, e.ID, "u2", volunteers.RegisterInput{Name: "B", Email: "b@x.com"}); err != nil {
		t.Fatalf("register after freed slot: %v", err)
	}
}

func TestMassInvite_FiltersByRoleAndBatches(t *testing.T) {
	svc, mailer := newTestService(t)
	ctx := context.Background()

	walker1 := apply(t, svc, "u1", "u1@x.com", "dog walker")
	walker2 := apply(t, svc, "u2", "u2@x.com", "Dog Walker") // rol case-insensitive
	groomer := apply(t, svc, "u3", "u3@x.com", "groomer")
	pending := apply(t, svc, "u4", "u4@x.com", "dog walker")

	for _, id := range []string{walker1.ID, walker2.ID, groomer.ID} {
		if _, err := svc.UpdateApplicationStatus(ctx, id, "approved"); err != nil {
			t.Fatalf("approve %s: %v", id, err)
		}
	}
	_ = pending // queda pendiente a propósito

	e, _ := svc.CreateEvent(ctx, volunteers.EventInput{Title: "Vaccination drive", Date: "2026-03-01"})

	n, err := svc.MassInvite(ctx, e.ID, "dog walker", "bring water")
	if err != nil {
		t.Fatalf("MassInvite: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 invited, got %d", n)
	}

	// Un solo envío batcheado, solo a los aprobados del rol.
	if len(mailer.invites) != 1 {
		t.Fatalf("expected one batched send, got %d", len(mailer.invites))
	}
	got := append([]string(nil), mailer.invites[0].recipients...)
	sort.Strings(got)
	want := []string{"u1@x.com", "u2@x.com"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("bad recipients: %v", got)
	}
	if mailer.invites[0].message != "bring water" {
		t.Fatalf("custom message lost: %q", mailer.invites[0].message)
	}
}

func TestMassInvite_NoRecipientsSendsNothing(t *testing.T) {
	svc, mailer := newTestService(t)
	ctx := context.Background()

	e, _ := svc.CreateEvent(ctx, volunteers.EventInput{Title: "Empty event"})

	n, err := svc.MassInvite(ctx, e.ID, "groomer", "")
	if err != nil {
		t.Fatalf("MassInvite: %v", err)
	}
	if n != 0 || len(mailer.invites) != 0 {
		t.Fatalf("expected no sends, got n=%d invites=%d", n, len(mailer.invites))
	}
}
