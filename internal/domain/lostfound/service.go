package lostfound

import (
	"context"
	"errors"
	"strings"
	"time"

	"petverse/internal/domain/community"
	"petverse/internal/platform/logger"
	"petverse/internal/ports/mail"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("report not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrTypeMismatch      = errors.New("match requires a lost report and a found report")
)

type Service struct {
	repo  Repository
	posts *community.Service
	mail  mail.Mailer
	log   logger.Logger
	now   func() time.Time
}

func NewService(repo Repository, posts *community.Service, mailer mail.Mailer, log logger.Logger) *Service {
	if mailer == nil {
		mailer = mail.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:  repo,
		posts: posts,
		mail:  mailer,
		log:   log,
		now:   time.Now,
	}
}

type SubmitInput struct {
	Type         string
	PetName      string
	PetType      string
	Breed        string
	Color        string
	Location     string
	Lat          float64
	Lng          float64
	Date         string
	Description  string
	ImageURL     string
	ContactName  string
	ContactPhone string
	ContactEmail string
}

// Submit crea el reporte en pending. Nada se publica hasta que un admin
// lo apruebe.
func (s *Service) Submit(ctx context.Context, userID string, in SubmitInput) (Report, error) {
	typ := ReportType(strings.TrimSpace(in.Type))
	petName := strings.TrimSpace(in.PetName)
	location := strings.TrimSpace(in.Location)

	if userID == "" || petName == "" || location == "" {
		return Report{}, ErrInvalidInput
	}
	if typ != TypeLost && typ != TypeFound {
		return Report{}, ErrInvalidInput
	}

	now := s.now()
	r := Report{
		ID:           uuid.NewString(),
		Type:         typ,
		UserID:       userID,
		PetName:      petName,
		PetType:      strings.TrimSpace(in.PetType),
		Breed:        strings.TrimSpace(in.Breed),
		Color:        strings.TrimSpace(in.Color),
		Location:     location,
		Lat:          in.Lat,
		Lng:          in.Lng,
		Date:         strings.TrimSpace(in.Date),
		Description:  strings.TrimSpace(in.Description),
		ImageURL:     strings.TrimSpace(in.ImageURL),
		ContactName:  strings.TrimSpace(in.ContactName),
		ContactPhone: strings.TrimSpace(in.ContactPhone),
		ContactEmail: strings.ToLower(strings.TrimSpace(in.ContactEmail)),
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return Report{}, err
	}
	return r, nil
}

type ReviewInput struct {
	Status string
	// MatchedLostID: al aprobar un reporte found, id del reporte lost
	// que este hallazgo resuelve. Dispara ResolveMatch.
	MatchedLostID string
}

// Review es la transición de moderación. pending pasa a approved o
// rejected; un lost approved puede pasar a claimed cuando el dueño
// confirma el reencuentro por fuera del match automático.
func (s *Service) Review(ctx context.Context, id string, in ReviewInput) (Report, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Report{}, err
	}

	target := Status(strings.TrimSpace(in.Status))

	// Reintento de un match que quedó a medias: el found ya está approved
	// pero el lost sigue abierto (p.ej. el correo al dueño falló). Solo se
	// re-ejecuta la resolución, sin tocar el estado ni reenviar el correo
	// de moderación.
	if r.Type == TypeFound && r.Status == StatusApproved &&
		target == StatusApproved && in.MatchedLostID != "" {
		if err := s.ResolveMatch(ctx, in.MatchedLostID, r); err != nil {
			return Report{}, err
		}
		return r, nil
	}

	if !validTransition(r, target) {
		return Report{}, ErrInvalidTransition
	}

	r.Status = target
	r.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, r); err != nil {
		return Report{}, err
	}

	// El correo de estado es best-effort: el cambio de estado ya quedó.
	if (target == StatusApproved || target == StatusRejected) && r.ContactEmail != "" {
		if err := s.mail.SendLostFoundStatus(ctx, r.ContactEmail, r.PetName, string(target), string(r.Type)); err != nil {
			s.log.Warn("lostfound status email failed", map[string]any{"report_id": r.ID, "err": err.Error()})
		}
	}

	if target == StatusApproved && r.Type == TypeLost {
		if _, err := s.posts.PublishLostAlert(ctx, community.LostAlertInput{
			LostReportID: r.ID,
			UserID:       r.UserID,
			UserName:     r.ContactName,
			PetName:      r.PetName,
			PetType:      r.PetType,
			Breed:        r.Breed,
			Color:        r.Color,
			Location:     r.Location,
			Description:  r.Description,
			ContactPhone: r.ContactPhone,
			ImageURL:     r.ImageURL,
		}); err != nil {
			s.log.Warn("lost alert post failed", map[string]any{"report_id": r.ID, "err": err.Error()})
		}
	}

	if target == StatusApproved && r.Type == TypeFound && in.MatchedLostID != "" {
		if err := s.ResolveMatch(ctx, in.MatchedLostID, r); err != nil {
			return Report{}, err
		}
	}

	return r, nil
}

// ResolveMatch cierra un reporte lost contra el reporte found que lo
// resolvió. Orden fijo: avisar al dueño, marcar el lost como found,
// bajar el post comunitario. Idempotente: un lost ya cerrado no dispara
// un segundo correo ni toca los posts de nuevo.
func (s *Service) ResolveMatch(ctx context.Context, lostID string, finder Report) error {
	lost, err := s.repo.GetByID(ctx, lostID)
	if err != nil {
		return err
	}
	if lost.Type != TypeLost || finder.Type != TypeFound {
		return ErrTypeMismatch
	}
	if lost.Status == StatusFound {
		return nil
	}
	if lost.Status != StatusApproved && lost.Status != StatusPending {
		return ErrInvalidTransition
	}

	if lost.ContactEmail != "" {
		if err := s.mail.SendPetFoundMatch(ctx, lost.ContactEmail, lost.PetName, mail.FinderDetails{
			Phone:    finder.ContactPhone,
			Email:    finder.ContactEmail,
			Location: finder.Location,
		}); err != nil {
			return err
		}
	}

	lost.Status = StatusFound
	lost.MatchedWith = finder.ID
	lost.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, lost); err != nil {
		return err
	}

	if err := s.posts.DeleteByLostReport(ctx, lost.ID); err != nil {
		s.log.Warn("lost alert cleanup failed", map[string]any{"report_id": lost.ID, "err": err.Error()})
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (Report, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListApproved(ctx context.Context, typ string) ([]Report, error) {
	t := ReportType(strings.TrimSpace(typ))
	if t != "" && t != TypeLost && t != TypeFound {
		return nil, ErrInvalidInput
	}
	return s.repo.ListApproved(ctx, t)
}

func (s *Service) ListPending(ctx context.Context) ([]Report, error) {
	return s.repo.ListPending(ctx)
}

func (s *Service) ListReviewed(ctx context.Context) ([]Report, error) {
	return s.repo.ListReviewed(ctx)
}

func validTransition(r Report, target Status) bool {
	switch r.Status {
	case StatusPending:
		return target == StatusApproved || target == StatusRejected
	case StatusApproved:
		if r.Type == TypeLost {
			return target == StatusFound
		}
		return target == StatusClaimed
	default:
		return false
	}
}
