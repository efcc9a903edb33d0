package adoptions

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"petverse/internal/domain/notifications"
	"petverse/internal/domain/pets"
	"petverse/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("adoption not found")
	ErrPetUnavailable    = errors.New("pet is not available for adoption")
	ErrInvalidTransition = errors.New("invalid status transition")
)

var phoneRe = regexp.MustCompile(`^\+?[0-9 ()-]{7,20}$`)

// PaymentRecordedError: el pago ya se cobró pero el registro interno falló.
// El caller debe mostrar el payment id al usuario para el reclamo manual.
type PaymentRecordedError struct {
	PaymentID string
	Err       error
}

func (e *PaymentRecordedError) Error() string {
	return fmt.Sprintf("payment %s recorded but adoption could not be saved: %v", e.PaymentID, e.Err)
}

func (e *PaymentRecordedError) Unwrap() error { return e.Err }

type Service struct {
	repo    Repository
	pets    *pets.Service
	notices *notifications.Service
	log     logger.Logger
	now     func() time.Time
}

func NewService(repo Repository, petSvc *pets.Service, notices *notifications.Service, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:    repo,
		pets:    petSvc,
		notices: notices,
		log:     log,
		now:     time.Now,
	}
}

type SubmitInput struct {
	PetID       string
	AdopterName string
	Phone       string
	Email       string
	Address     string
	Reason      string
	PaymentID   string
}

// Submit corre dentro del callback de pago: a esta altura la pasarela ya
// cobró, así que cualquier falla posterior se envuelve en
// PaymentRecordedError en vez de perderse.
func (s *Service) Submit(ctx context.Context, userID string, in SubmitInput) (Adoption, error) {
	name := strings.TrimSpace(in.AdopterName)
	phone := strings.TrimSpace(in.Phone)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if userID == "" || in.PetID == "" || in.PaymentID == "" {
		return Adoption{}, ErrInvalidInput
	}
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return Adoption{}, ErrInvalidInput
	}
	if phone != "" && !phoneRe.MatchString(phone) {
		return Adoption{}, ErrInvalidInput
	}

	p, err := s.pets.Get(ctx, in.PetID)
	if err != nil {
		return Adoption{}, &PaymentRecordedError{PaymentID: in.PaymentID, Err: err}
	}
	if !p.Available || p.Adopted {
		return Adoption{}, &PaymentRecordedError{PaymentID: in.PaymentID, Err: ErrPetUnavailable}
	}

	a := Adoption{
		ID:          uuid.NewString(),
		PetID:       p.ID,
		PetName:     p.Name,
		UserID:      userID,
		AdopterName: name,
		Phone:       phone,
		Email:       email,
		Address:     strings.TrimSpace(in.Address),
		Reason:      strings.TrimSpace(in.Reason),
		Fee:         pets.AdoptionFee(p),
		PaymentID:   in.PaymentID,
		Status:      StatusPending,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Adoption{}, &PaymentRecordedError{PaymentID: in.PaymentID, Err: err}
	}

	// La mascota sale del listado mientras la solicitud esté pendiente.
	if err := s.pets.SetAvailability(ctx, p.ID, false); err != nil {
		return Adoption{}, &PaymentRecordedError{PaymentID: in.PaymentID, Err: err}
	}

	if err := s.notices.Add(ctx, notifications.AddInput{
		Type:       "adoption_request",
		Title:      "New adoption request",
		Message:    fmt.Sprintf("%s requested to adopt %s", name, p.Name),
		AdoptionID: a.ID,
	}); err != nil {
		s.log.Warn("adoption notification failed", map[string]any{"adoption_id": a.ID, "err": err.Error()})
	}

	return a, nil
}

// Accept aprueba la solicitud y marca la mascota como adoptada.
// Idempotente sobre una solicitud ya aceptada.
func (s *Service) Accept(ctx context.Context, id string) (Adoption, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Adoption{}, err
	}

	if a.Status == StatusAccepted {
		return a, nil
	}
	if a.Status != StatusPending {
		return Adoption{}, ErrInvalidTransition
	}

	if err := s.pets.MarkAdopted(ctx, a.PetID); err != nil {
		return Adoption{}, err
	}

	now := s.now()
	a.Status = StatusAccepted
	a.VerifiedAt = &now
	if err := s.repo.Update(ctx, a); err != nil {
		return Adoption{}, err
	}
	return a, nil
}

// Reject rechaza la solicitud y devuelve la mascota al listado. Se admite
// rechazar una adopción ya aceptada (arrepentimiento del refugio).
func (s *Service) Reject(ctx context.Context, id string) (Adoption, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Adoption{}, err
	}

	if a.Status == StatusRejected {
		return Adoption{}, ErrInvalidTransition
	}

	if err := s.pets.SetAvailability(ctx, a.PetID, true); err != nil {
		return Adoption{}, err
	}

	now := s.now()
	a.Status = StatusRejected
	a.VerifiedAt = &now
	if err := s.repo.Update(ctx, a); err != nil {
		return Adoption{}, err
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id string) (Adoption, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAll(ctx context.Context) ([]Adoption, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Adoption, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByUser(ctx, userID)
}
