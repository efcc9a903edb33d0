package notifications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("notification not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type AddInput struct {
	Type       string
	Title      string
	Message    string
	AdoptionID string
	DonationID string
}

func (s *Service) Add(ctx context.Context, in AddInput) error {
	if strings.TrimSpace(in.Type) == "" || strings.TrimSpace(in.Title) == "" {
		return ErrInvalidInput
	}

	return s.repo.Create(ctx, Notification{
		ID:         uuid.NewString(),
		Type:       strings.TrimSpace(in.Type),
		Title:      strings.TrimSpace(in.Title),
		Message:    strings.TrimSpace(in.Message),
		AdoptionID: in.AdoptionID,
		DonationID: in.DonationID,
		CreatedAt:  s.now(),
	})
}

func (s *Service) List(ctx context.Context) ([]Notification, error) {
	return s.repo.List(ctx)
}

func (s *Service) MarkRead(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.repo.MarkRead(ctx, id)
}
