package signup

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"petverse/internal/domain/profiles"
	"petverse/internal/platform/logger"
	"petverse/internal/ports/auth"
	"petverse/internal/ports/mail"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmailTaken      = errors.New("email already registered")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrReservedEmail   = errors.New("this email cannot be used for registration")
	ErrNoPendingSignup = errors.New("no pending signup")
	ErrExpiredCode     = errors.New("verification code expired")
	ErrInvalidCode     = errors.New("invalid verification code")
)

const (
	DefaultTTL        = 10 * time.Minute
	minPasswordLen    = 6
	mailDispatchLimit = 10 * time.Second
)

// reservedEmails no pueden registrarse como usuarios normales.
var reservedEmails = map[string]struct{}{
	"admin@petverse.com": {},
}

// Service orquesta el handshake signup → OTP → perfil.
// Máquina de estados: NoSignup → PendingUnverified → (Verified | Expired).
// Expired solo vuelve a PendingUnverified vía Resend. No hay vuelta atrás
// desde Verified.
type Service struct {
	store      PendingStore
	identities auth.IdentityProvider
	profiles   *profiles.Service
	mailer     mail.Mailer
	log        logger.Logger

	ttl time.Duration
	now func() time.Time

	// code genera el OTP; inyectable en tests.
	code func() (string, error)

	// asyncMail desacopla el envío del OTP del request (como producción).
	// Los tests lo apagan para poder asertar sobre los envíos.
	asyncMail bool
}

type Options struct {
	Store      PendingStore
	Identities auth.IdentityProvider
	Profiles   *profiles.Service
	Mailer     mail.Mailer
	Log        logger.Logger
	TTL        time.Duration
}

func NewService(opts Options) *Service {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	lg := opts.Log
	if lg == nil {
		lg = logger.Nop()
	}
	mailer := opts.Mailer
	if mailer == nil {
		mailer = mail.Nop{}
	}
	identities := opts.Identities
	if identities == nil {
		identities = localIdentities{}
	}

	return &Service{
		store:      opts.Store,
		identities: identities,
		profiles:   opts.Profiles,
		mailer:     mailer,
		log:        lg,
		ttl:        ttl,
		now:        time.Now,
		code:       sixDigitCode,
		asyncMail:  true,
	}
}

// Begin registra una identidad y deja un pending signup esperando el OTP.
// No crea el Profile: ese es el invariante del flujo. Un Begin nuevo para el
// mismo email pisa el slot anterior.
func (s *Service) Begin(ctx context.Context, email, password, username string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.ToLower(strings.TrimSpace(username))

	if email == "" || !strings.Contains(email, "@") || username == "" {
		return ErrInvalidInput
	}
	if len(password) < minPasswordLen {
		return ErrInvalidInput
	}
	if _, reserved := reservedEmails[email]; reserved {
		return ErrReservedEmail
	}

	// Lookups de cortesía para feedback inmediato. El check definitivo es la
	// constraint de unicidad al insertar el perfil en Verify.
	if taken, err := s.profiles.ExistsByEmail(ctx, email); err != nil {
		return err
	} else if taken {
		return ErrEmailTaken
	}
	if taken, err := s.profiles.ExistsByUsername(ctx, username); err != nil {
		return err
	} else if taken {
		return ErrUsernameTaken
	}

	// Identidad en el proveedor. "Ya registrado" es no-fatal: el email puede
	// existir en auth sin perfil (un signup anterior que nunca verificó).
	identityID := ""
	id, err := s.identities.SignUp(ctx, email, password, username)
	switch {
	case err == nil:
		identityID = id.ID
	case errors.Is(err, auth.ErrEmailRegistered):
		s.log.Warn("auth provider already has identity, continuing", map[string]any{"email": email})
	default:
		return fmt.Errorf("auth signup: %w", err)
	}
	if identityID == "" {
		identityID = uuid.NewString()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	code, err := s.code()
	if err != nil {
		return err
	}

	p := PendingSignup{
		Code:         code,
		Email:        email,
		PasswordHash: string(hash),
		Username:     username,
		IdentityID:   identityID,
		CreatedAt:    s.now(),
		TTL:          s.ttl,
		Verified:     false,
	}

	if err := s.store.Put(ctx, p); err != nil {
		return err
	}

	// El envío del OTP no bloquea el alta; un fallo se loguea y el usuario
	// puede pedir reenvío.
	s.dispatchOTP(ctx, email, code, username)

	return nil
}

// Verify valida el código y recién ahí promueve el pending a Profile durable.
func (s *Service) Verify(ctx context.Context, email, code string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	code = strings.TrimSpace(code)

	if email == "" || code == "" {
		return "", ErrInvalidInput
	}

	p, err := s.store.Get(ctx, email)
	if err != nil {
		return "", err
	}

	if p.Expired(s.now()) {
		_ = s.store.Delete(ctx, email)
		return "", ErrExpiredCode
	}

	if p.Code != code || p.Email != email {
		return "", ErrInvalidCode
	}

	err = s.profiles.Create(ctx, profiles.Profile{
		ID:        p.IdentityID,
		Username:  p.Username,
		Email:     p.Email,
		CreatedAt: s.now(),
	})
	if err != nil && !errors.Is(err, profiles.ErrDuplicate) {
		return "", fmt.Errorf("create profile: %w", err)
	}
	// Duplicado => el perfil ya existe; verificar dos veces es idempotente.

	if err := s.store.Delete(ctx, email); err != nil {
		s.log.Warn("clear pending signup failed", map[string]any{"email": email, "err": err.Error()})
	}

	s.dispatchWelcome(ctx, email, p.Username)

	return p.Username, nil
}

// Resend rota el código y reinicia la ventana. Única vía de Expired → Pending.
func (s *Service) Resend(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrInvalidInput
	}

	p, err := s.store.Get(ctx, email)
	if err != nil {
		return err
	}

	code, err := s.code()
	if err != nil {
		return err
	}

	p.Code = code
	p.CreatedAt = s.now()

	if err := s.store.Put(ctx, p); err != nil {
		return err
	}

	// A diferencia de Begin, acá el fallo de envío sí se surfacea: el único
	// motivo del reenvío es que llegue el mail.
	return s.mailer.SendOTP(ctx, email, code, p.Username)
}

func (s *Service) dispatchOTP(ctx context.Context, email, code, username string) {
	if !s.asyncMail {
		if err := s.mailer.SendOTP(ctx, email, code, username); err != nil {
			s.log.Error("send otp email failed", map[string]any{"email": email, "err": err.Error()})
		}
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mailDispatchLimit)
		defer cancel()
		if err := s.mailer.SendOTP(ctx, email, code, username); err != nil {
			s.log.Error("send otp email failed", map[string]any{"email": email, "err": err.Error()})
		}
	}()
}

func (s *Service) dispatchWelcome(ctx context.Context, email, username string) {
	if !s.asyncMail {
		if err := s.mailer.SendWelcome(ctx, email, username); err != nil {
			s.log.Warn("send welcome email failed", map[string]any{"email": email, "err": err.Error()})
		}
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mailDispatchLimit)
		defer cancel()
		if err := s.mailer.SendWelcome(ctx, email, username); err != nil {
			s.log.Warn("send welcome email failed", map[string]any{"email": email, "err": err.Error()})
		}
	}()
}

// localIdentities genera ids locales cuando no hay auth provider
// configurado (modo dev all-in-memory).
type localIdentities struct{}

func (localIdentities) SignUp(context.Context, string, string, string) (auth.Identity, error) {
	return auth.Identity{ID: uuid.NewString()}, nil
}

// sixDigitCode: draw uniforme en [100000, 999999].
func sixDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
