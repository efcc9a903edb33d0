package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"petverse/internal/platform/logger"
	"petverse/internal/ports/blob"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
)

type Service struct {
	repo Repository
	blob blob.Store // puede ser nil; solo afecta el borrado de imágenes
	log  logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, store blob.Store, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		blob: store,
		log:  log,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name        string
	Type        string
	Breed       string
	Age         int
	Description string
	Price       *int
	ImageURL    string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	name := strings.TrimSpace(in.Name)
	typ := PetType(strings.TrimSpace(in.Type))

	if name == "" || typ == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.Age < 0 {
		return Pet{}, ErrInvalidInput
	}
	if in.Price != nil && *in.Price < 0 {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		Name:        name,
		Type:        typ,
		Breed:       strings.TrimSpace(in.Breed),
		Age:         in.Age,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Available:   true,
		Adopted:     false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

type UpdateInput struct {
	Name        *string
	Breed       *string
	Age         *int
	Description *string
	Price       *int
	ImageURL    *string
	Available   *bool
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		if n == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = n
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.Age = *in.Age
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.Price = in.Price
	}
	if in.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.Available != nil {
		p.Available = *in.Available
	}

	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAvailable(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx, true)
}

func (s *Service) ListAll(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx, false)
}

// Fee devuelve el fee de adopción vigente para la mascota.
func (s *Service) Fee(ctx context.Context, id string) (int, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return AdoptionFee(p), nil
}

// SetAvailability flipea el flag de disponibilidad (adopción enviada /
// rechazada).
func (s *Service) SetAvailability(ctx context.Context, id string, available bool) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.Available = available
	if available {
		p.Adopted = false
	}
	p.UpdatedAt = s.now()
	return s.repo.Update(ctx, p)
}

// MarkAdopted: transición terminal de una adopción aceptada.
func (s *Service) MarkAdopted(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	p.Available = false
	p.Adopted = true
	p.UpdatedAt = s.now()
	return s.repo.Update(ctx, p)
}

// Delete borra la mascota y cascadea el borrado de su imagen en el bucket.
// El borrado del blob es best-effort: la fila manda.
func (s *Service) Delete(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.blob != nil && p.ImageURL != "" {
		if err := s.blob.Delete(ctx, p.ImageURL); err != nil {
			s.log.Warn("delete pet image failed", map[string]any{"pet_id": id, "err": err.Error()})
		}
	}

	return nil
}
