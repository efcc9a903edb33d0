package donations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"petverse/internal/domain/notifications"
	"petverse/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("donation not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// PaymentRecordedError: misma semántica que en adoptions, el pago ya se
// cobró y el registro falló. Cada módulo carga su propia copia.
type PaymentRecordedError struct {
	PaymentID string
	Err       error
}

func (e *PaymentRecordedError) Error() string {
	return fmt.Sprintf("payment %s recorded but donation could not be saved: %v", e.PaymentID, e.Err)
}

func (e *PaymentRecordedError) Unwrap() error { return e.Err }

type Service struct {
	repo    Repository
	notices *notifications.Service
	log     logger.Logger
	now     func() time.Time
}

func NewService(repo Repository, notices *notifications.Service, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:    repo,
		notices: notices,
		log:     log,
		now:     time.Now,
	}
}

type SubmitInput struct {
	DonorName string
	Email     string
	Amount    int
	Message   string
	PaymentID string
	Method    string
}

// Submit corre dentro del callback de pago. La donación nace verified.
func (s *Service) Submit(ctx context.Context, userID string, in SubmitInput) (Donation, error) {
	name := strings.TrimSpace(in.DonorName)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if in.PaymentID == "" || in.Amount <= 0 {
		return Donation{}, ErrInvalidInput
	}
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return Donation{}, ErrInvalidInput
	}

	now := s.now()
	d := Donation{
		ID:         uuid.NewString(),
		UserID:     userID,
		DonorName:  name,
		Email:      email,
		Amount:     in.Amount,
		Message:    strings.TrimSpace(in.Message),
		PaymentID:  in.PaymentID,
		Method:     strings.TrimSpace(in.Method),
		Status:     StatusVerified,
		CreatedAt:  now,
		VerifiedAt: &now,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return Donation{}, &PaymentRecordedError{PaymentID: in.PaymentID, Err: err}
	}

	if err := s.notices.Add(ctx, notifications.AddInput{
		Type:       "donation",
		Title:      "New donation received",
		Message:    fmt.Sprintf("%s donated %d", name, in.Amount),
		DonationID: d.ID,
	}); err != nil {
		s.log.Warn("donation notification failed", map[string]any{"donation_id": d.ID, "err": err.Error()})
	}

	return d, nil
}

// SetStatus permite al admin re-verificar o rechazar una donación.
func (s *Service) SetStatus(ctx context.Context, id string, status string) (Donation, error) {
	target := Status(strings.TrimSpace(status))
	if target != StatusVerified && target != StatusRejected {
		return Donation{}, ErrInvalidInput
	}

	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Donation{}, err
	}
	if d.Status == target {
		return d, nil
	}

	now := s.now()
	d.Status = target
	if target == StatusVerified {
		d.VerifiedAt = &now
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return Donation{}, err
	}
	return d, nil
}

func (s *Service) List(ctx context.Context, status string) ([]Donation, error) {
	st := Status(strings.TrimSpace(status))
	if st != "" && st != StatusVerified && st != StatusRejected {
		return nil, ErrInvalidInput
	}
	return s.repo.List(ctx, st)
}
