package volunteers

import (
	"context"
	"errors"
	"strings"
	"time"

	"petverse/internal/platform/logger"
	"petverse/internal/ports/mail"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrEventFull         = errors.New("event is full")
	ErrAlreadyRegistered = errors.New("already registered for this event")
)

type Service struct {
	apps   ApplicationRepository
	events EventRepository
	regs   RegistrationRepository
	mail   mail.Mailer
	log    logger.Logger
	now    func() time.Time
}

func NewService(apps ApplicationRepository, events EventRepository, regs RegistrationRepository, mailer mail.Mailer, log logger.Logger) *Service {
	if mailer == nil {
		mailer = mail.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		apps:   apps,
		events: events,
		regs:   regs,
		mail:   mailer,
		log:    log,
		now:    time.Now,
	}
}

type ApplyInput struct {
	Name         string
	Email        string
	Phone        string
	Role         string
	Availability string
	Experience   string
	Motivation   string
}

func (s *Service) Apply(ctx context.Context, userID string, in ApplyInput) (Application, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if userID == "" || name == "" || email == "" || !strings.Contains(email, "@") {
		return Application{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Role) == "" {
		return Application{}, ErrInvalidInput
	}

	now := s.now()
	a := Application{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		Role:         strings.TrimSpace(in.Role),
		Availability: strings.TrimSpace(in.Availability),
		Experience:   strings.TrimSpace(in.Experience),
		Motivation:   strings.TrimSpace(in.Motivation),
		Status:       AppPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.apps.Create(ctx, a); err != nil {
		return Application{}, err
	}
	return a, nil
}

// UpdateApplicationStatus decide una postulación pendiente. El correo de
// resultado es best-effort.
func (s *Service) UpdateApplicationStatus(ctx context.Context, id string, status string) (Application, error) {
	target := ApplicationStatus(strings.TrimSpace(status))
	if target != AppApproved && target != AppRejected {
		return Application{}, ErrInvalidInput
	}

	a, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if a.Status == target {
		return a, nil
	}
	if a.Status != AppPending {
		return Application{}, ErrInvalidTransition
	}

	a.Status = target
	a.UpdatedAt = s.now()
	if err := s.apps.Update(ctx, a); err != nil {
		return Application{}, err
	}

	if err := s.mail.SendVolunteerStatus(ctx, a.Email, a.Name, string(target)); err != nil {
		s.log.Warn("volunteer status email failed", map[string]any{"application_id": a.ID, "err": err.Error()})
	}

	return a, nil
}

func (s *Service) ListApplications(ctx context.Context, status string) ([]Application, error) {
	st := ApplicationStatus(strings.TrimSpace(status))
	if st != "" && st != AppPending && st != AppApproved && st != AppRejected {
		return nil, ErrInvalidInput
	}
	return s.apps.List(ctx, st)
}

// ApprovedVolunteers filtra voluntarios aprobados, opcionalmente por rol.
func (s *Service) ApprovedVolunteers(ctx context.Context, role string) ([]Application, error) {
	items, err := s.apps.List(ctx, AppApproved)
	if err != nil {
		return nil, err
	}

	role = strings.TrimSpace(role)
	if role == "" {
		return items, nil
	}

	out := items[:0]
	for _, a := range items {
		if strings.EqualFold(a.Role, role) {
			out = append(out, a)
		}
	}
	return out, nil
}

type EventInput struct {
	Title            string
	Description      string
	Date             string
	Time             string
	Location         string
	Address          string
	Responsibilities string
	MaxVolunteers    int
}

func (s *Service) CreateEvent(ctx context.Context, in EventInput) (Event, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.MaxVolunteers < 0 {
		return Event{}, ErrInvalidInput
	}

	e := Event{
		ID:               uuid.NewString(),
		Title:            title,
		Description:      strings.TrimSpace(in.Description),
		Date:             strings.TrimSpace(in.Date),
		Time:             strings.TrimSpace(in.Time),
		Location:         strings.TrimSpace(in.Location),
		Address:          strings.TrimSpace(in.Address),
		Responsibilities: strings.TrimSpace(in.Responsibilities),
		MaxVolunteers:    in.MaxVolunteers,
		CreatedAt:        s.now(),
	}

	if err := s.events.Create(ctx, e); err != nil {
		return Event{}, err
	}
	return e, nil
}

func (s *Service) UpdateEvent(ctx context.Context, id string, in EventInput) (Event, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return Event{}, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" || in.MaxVolunteers < 0 {
		return Event{}, ErrInvalidInput
	}

	e.Title = title
	e.Description = strings.TrimSpace(in.Description)
	e.Date = strings.TrimSpace(in.Date)
	e.Time = strings.TrimSpace(in.Time)
	e.Location = strings.TrimSpace(in.Location)
	e.Address = strings.TrimSpace(in.Address)
	e.Responsibilities = strings.TrimSpace(in.Responsibilities)
	e.MaxVolunteers = in.MaxVolunteers

	if err := s.events.Update(ctx, e); err != nil {
		return Event{}, err
	}
	return e, nil
}

func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	return s.events.Delete(ctx, id)
}

func (s *Service) ListEvents(ctx context.Context) ([]Event, error) {
	return s.events.List(ctx)
}

type RegisterInput struct {
	Name  string
	Email string
}

// Register anota a un usuario en un evento. El cupo se valida contra el
// contador de aprobados, no contra las inscripciones pendientes.
func (s *Service) Register(ctx context.Context, eventID, userID string, in RegisterInput) (Registration, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if eventID == "" || userID == "" || name == "" || email == "" {
		return Registration{}, ErrInvalidInput
	}

	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return Registration{}, err
	}
	if e.MaxVolunteers > 0 && e.CurrentVolunteers >= e.MaxVolunteers {
		return Registration{}, ErrEventFull
	}

	existing, err := s.regs.ListByEvent(ctx, eventID)
	if err != nil {
		return Registration{}, err
	}
	for _, reg := range existing {
		if reg.UserID == userID && reg.Status != RegRejected {
			return Registration{}, ErrAlreadyRegistered
		}
	}

	reg := Registration{
		ID:        uuid.NewString(),
		EventID:   eventID,
		UserID:    userID,
		Name:      name,
		Email:     email,
		Status:    RegPending,
		CreatedAt: s.now(),
	}

	if err := s.regs.Create(ctx, reg); err != nil {
		return Registration{}, err
	}
	return reg, nil
}

// UpdateRegistrationStatus decide una inscripción. Aprobar incrementa el
// contador del evento; des-aprobar lo decrementa.
func (s *Service) UpdateRegistrationStatus(ctx context.Context, id string, status string) (Registration, error) {
	target := RegistrationStatus(strings.TrimSpace(status))
	if target != RegApproved && target != RegRejected {
		return Registration{}, ErrInvalidInput
	}

	reg, err := s.regs.GetByID(ctx, id)
	if err != nil {
		return Registration{}, err
	}
	if reg.Status == target {
		return reg, nil
	}

	e, err := s.events.GetByID(ctx, reg.EventID)
	if err != nil {
		return Registration{}, err
	}

	switch {
	case target == RegApproved:
		if e.MaxVolunteers > 0 && e.CurrentVolunteers >= e.MaxVolunteers {
			return Registration{}, ErrEventFull
		}
		e.CurrentVolunteers++
	case reg.Status == RegApproved:
		if e.CurrentVolunteers > 0 {
			e.CurrentVolunteers--
		}
	}

	reg.Status = target
	if err := s.regs.Update(ctx, reg); err != nil {
		return Registration{}, err
	}
	if err := s.events.Update(ctx, e); err != nil {
		return Registration{}, err
	}
	return reg, nil
}

func (s *Service) ListRegistrations(ctx context.Context, eventID string) ([]Registration, error) {
	if eventID == "" {
		return nil, ErrInvalidInput
	}
	return s.regs.ListByEvent(ctx, eventID)
}

func (s *Service) ListMyRegistrations(ctx context.Context, userID string) ([]Registration, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.regs.ListByUser(ctx, userID)
}

// MassInvite invita a todos los voluntarios aprobados (filtrados por rol)
// a un evento, en un solo envío batcheado.
func (s *Service) MassInvite(ctx context.Context, eventID, role, customMessage string) (int, error) {
	e, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return 0, err
	}

	vols, err := s.ApprovedVolunteers(ctx, role)
	if err != nil {
		return 0, err
	}
	if len(vols) == 0 {
		return 0, nil
	}

	seen := make(map[string]bool, len(vols))
	recipients := make([]string, 0, len(vols))
	for _, v := range vols {
		if v.Email == "" || seen[v.Email] {
			continue
		}
		seen[v.Email] = true
		recipients = append(recipients, v.Email)
	}

	err = s.mail.SendVolunteerEvent(ctx, recipients, mail.EventDetails{
		Title:            e.Title,
		Description:      e.Description,
		Date:             e.Date,
		Time:             e.Time,
		Location:         e.Location,
		Address:          e.Address,
		Responsibilities: e.Responsibilities,
	}, customMessage)
	if err != nil {
		return 0, err
	}
	return len(recipients), nil
}
