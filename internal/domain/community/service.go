package community

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("post not found")
	ErrForbidden    = errors.New("forbidden")
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

type CreateInput struct {
	UserName string
	Title    string
	Content  string
	ImageURL string
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Post, error) {
	if strings.TrimSpace(userID) == "" {
		return Post{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Content) == "" {
		return Post{}, ErrInvalidInput
	}

	p := Post{
		ID:        uuid.NewString(),
		UserID:    userID,
		UserName:  strings.TrimSpace(in.UserName),
		Type:      PostTypeUser,
		Title:     strings.TrimSpace(in.Title),
		Content:   strings.TrimSpace(in.Content),
		ImageURL:  strings.TrimSpace(in.ImageURL),
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Post{}, err
	}
	return p, nil
}

// LostAlertInput son los datos del reporte aprobado que se publica al feed.
// Campos planos para no acoplar community al paquete lostfound.
type LostAlertInput struct {
	LostReportID string
	UserID       string
	UserName     string
	PetName      string
	PetType      string
	Breed        string
	Color        string
	Location     string
	Description  string
	ContactPhone string
	ImageURL     string
}

// PublishLostAlert crea la alerta comunitaria de una mascota perdida aprobada.
func (s *Service) PublishLostAlert(ctx context.Context, in LostAlertInput) (Post, error) {
	if strings.TrimSpace(in.LostReportID) == "" || strings.TrimSpace(in.Location) == "" {
		return Post{}, ErrInvalidInput
	}

	name := in.PetName
	if name == "" {
		name = "Unknown"
	}
	userName := in.UserName
	if userName == "" {
		userName = "PetVerse Alert"
	}

	p := Post{
		ID:           uuid.NewString(),
		UserID:       in.UserID,
		UserName:     userName,
		Type:         PostTypeLostAlert,
		Title:        fmt.Sprintf("Lost Pet Alert: %s", name),
		Content:      lostAlertBody(in, name),
		ImageURL:     in.ImageURL,
		LostReportID: in.LostReportID,
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Post{}, err
	}
	return p, nil
}

func lostAlertBody(in LostAlertInput, name string) string {
	petType := strings.ToUpper(in.PetType)
	if petType == "" {
		petType = "PET"
	}
	breed := orElse(in.Breed, "Unknown")
	color := orElse(in.Color, "Not specified")
	desc := orElse(in.Description, "No description")

	return fmt.Sprintf(
		"LOST %s\n\nName: %s\nBreed: %s\nColor: %s\nLast Seen: %s\n\nDescription: %s\n\nIf found, please contact: %s",
		petType, name, breed, color, in.Location, desc, in.ContactPhone,
	)
}

func orElse(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func (s *Service) List(ctx context.Context) ([]Post, error) {
	return s.repo.List(ctx)
}

// Delete permite borrar al autor o a un admin.
func (s *Service) Delete(ctx context.Context, id, requesterID string, isAdmin bool) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin && p.UserID != requesterID {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// DeleteByLostReport limpia las alertas de un reporte resuelto.
func (s *Service) DeleteByLostReport(ctx context.Context, lostReportID string) error {
	if strings.TrimSpace(lostReportID) == "" {
		return ErrInvalidInput
	}
	return s.repo.DeleteByLostReport(ctx, lostReportID)
}

func (s *Service) ListByLostReport(ctx context.Context, lostReportID string) ([]Post, error) {
	return s.repo.ListByLostReport(ctx, lostReportID)
}
