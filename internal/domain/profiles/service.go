package profiles

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("profile not found")
	ErrDuplicate    = errors.New("profile already exists")
)

// DefaultFetchDeadline acota el fetch de perfil al autenticar.
// Si se excede, la app sigue sin datos de perfil en vez de colgarse.
const DefaultFetchDeadline = 4 * time.Second

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

// Create inserta el perfil. Un duplicado del repo se normaliza a ErrDuplicate;
// el caller (signup) decide si lo trata como ya-satisfecho.
func (s *Service) Create(ctx context.Context, p Profile) error {
	p.Username = strings.ToLower(strings.TrimSpace(p.Username))
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))

	if strings.TrimSpace(p.ID) == "" || p.Username == "" || p.Email == "" {
		return ErrInvalidInput
	}

	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	p.UpdatedAt = p.CreatedAt

	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id string) (Profile, error) {
	if strings.TrimSpace(id) == "" {
		return Profile{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// GetWithDeadline hace el fetch con deadline explícito.
// timedOut=true significa "seguir sin datos de perfil": no es un error,
// es el outcome tipado del timeout (antes era una carrera implícita).
func (s *Service) GetWithDeadline(ctx context.Context, id string, d time.Duration) (p Profile, timedOut bool, err error) {
	if strings.TrimSpace(id) == "" {
		return Profile{}, false, ErrInvalidInput
	}
	if d <= 0 {
		d = DefaultFetchDeadline
	}

	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	p, err = s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Profile{}, true, nil
		}
		return Profile{}, false, err
	}
	return p, false, nil
}

type UpdateInput struct {
	Username  *string
	Phone     *string
	City      *string
	AvatarURL *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Profile, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Profile{}, err
	}

	if in.Username != nil {
		u := strings.ToLower(strings.TrimSpace(*in.Username))
		if u == "" {
			return Profile{}, ErrInvalidInput
		}
		p.Username = u
	}
	if in.Phone != nil {
		p.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.City != nil {
		p.City = strings.TrimSpace(*in.City)
	}
	if in.AvatarURL != nil {
		p.AvatarURL = strings.TrimSpace(*in.AvatarURL)
	}

	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]Profile, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.repo.ExistsByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

func (s *Service) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.repo.ExistsByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
}
