// Package relay implementa mail.Mailer delegando en el mail service
// propio (cmd/mailer) vía su API HTTP.
package relay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"petverse/internal/platform/httpclient"
	"petverse/internal/ports/mail"
)

var ErrNotConfigured = errors.New("mail relay not configured")

type Mailer struct {
	http *httpclient.Client
}

func New(baseURL string, timeout time.Duration) (*Mailer, error) {
	if baseURL == "" {
		return nil, ErrNotConfigured
	}
	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &Mailer{http: hc}, nil
}

// apiResponse es el contrato de respuesta del mail service.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (m *Mailer) post(ctx context.Context, path string, body any) error {
	if m == nil || m.http == nil {
		return ErrNotConfigured
	}

	var resp apiResponse
	if err := m.http.DoJSON(ctx, "POST", path, nil, body, &resp); err != nil {
		return fmt.Errorf("mail relay %s: %w", path, err)
	}
	if !resp.Success {
		return fmt.Errorf("mail relay %s: %s", path, resp.Error)
	}
	return nil
}

func (m *Mailer) SendOTP(ctx context.Context, to, code, userName string) error {
	return m.post(ctx, "/api/email/otp", map[string]string{
		"email":     to,
		"otp":       code,
		"user_name": userName,
	})
}

func (m *Mailer) SendWelcome(ctx context.Context, to, userName string) error {
	return m.post(ctx, "/api/email/welcome", map[string]string{
		"email":     to,
		"user_name": userName,
	})
}

func (m *Mailer) SendPasswordReset(ctx context.Context, to, resetLink string) error {
	return m.post(ctx, "/api/email/password-reset", map[string]string{
		"email":      to,
		"reset_link": resetLink,
	})
}

func (m *Mailer) SendVolunteerStatus(ctx context.Context, to, volunteerName, status string) error {
	return m.post(ctx, "/api/email/volunteer-status", map[string]string{
		"email":          to,
		"volunteer_name": volunteerName,
		"status":         status,
	})
}

func (m *Mailer) SendVolunteerEvent(ctx context.Context, recipients []string, ev mail.EventDetails, customMessage string) error {
	return m.post(ctx, "/api/email/volunteer-event", map[string]any{
		"recipients": recipients,
		"event": map[string]string{
			"title":            ev.Title,
			"description":      ev.Description,
			"date":             ev.Date,
			"time":             ev.Time,
			"location":         ev.Location,
			"address":          ev.Address,
			"responsibilities": ev.Responsibilities,
		},
		"custom_message": customMessage,
	})
}

func (m *Mailer) SendLostFoundStatus(ctx context.Context, to, petName, status, reportType string) error {
	return m.post(ctx, "/api/email/lost-found-status", map[string]string{
		"email":       to,
		"pet_name":    petName,
		"status":      status,
		"report_type": reportType,
	})
}

func (m *Mailer) SendPetFoundMatch(ctx context.Context, to, petName string, finder mail.FinderDetails) error {
	return m.post(ctx, "/api/email/pet-found-match", map[string]any{
		"email":    to,
		"pet_name": petName,
		"finder": map[string]string{
			"phone":    finder.Phone,
			"email":    finder.Email,
			"location": finder.Location,
		},
	})
}
