// Package mailjet implementa mail.Mailer contra la API v3.1 de Mailjet.
// Lo usa el mail service (cmd/mailer); el API server habla con el mail
// service vía el adapter relay.
package mailjet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"petverse/internal/platform/httpclient"
	"petverse/internal/ports/mail"
)

const sendURL = "https://api.mailjet.com/v3.1/send"

var ErrNotConfigured = errors.New("mailjet not configured")

type Config struct {
	APIKey    string
	APISecret string
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

type Mailer struct {
	http      *httpclient.Client
	fromEmail string
	fromName  string
}

func New(cfg Config) (*Mailer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" || strings.TrimSpace(cfg.APISecret) == "" {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(cfg.FromEmail) == "" {
		return nil, errors.New("mailjet: missing from email")
	}

	fromName := strings.TrimSpace(cfg.FromName)
	if fromName == "" {
		fromName = "PetVerse"
	}

	return &Mailer{
		http:      httpclient.New(cfg.Timeout).WithBasicAuth(cfg.APIKey, cfg.APISecret),
		fromEmail: strings.TrimSpace(cfg.FromEmail),
		fromName:  fromName,
	}, nil
}

type address struct {
	Email string `json:"Email"`
	Name  string `json:"Name,omitempty"`
}

type message struct {
	From     address   `json:"From"`
	To       []address `json:"To"`
	Subject  string    `json:"Subject"`
	HTMLPart string    `json:"HTMLPart"`
}

type sendRequest struct {
	Messages []message `json:"Messages"`
}

func (m *Mailer) send(ctx context.Context, recipients []string, subject, html string) error {
	if m == nil || m.http == nil {
		return ErrNotConfigured
	}
	if len(recipients) == 0 {
		return errors.New("mailjet: no recipients")
	}

	msgs := make([]message, 0, len(recipients))
	for _, to := range recipients {
		msgs = append(msgs, message{
			From:     address{Email: m.fromEmail, Name: m.fromName},
			To:       []address{{Email: to}},
			Subject:  subject,
			HTMLPart: html,
		})
	}

	if err := m.http.DoJSON(ctx, "POST", sendURL, nil, sendRequest{Messages: msgs}, nil); err != nil {
		return fmt.Errorf("mailjet send: %w", err)
	}
	return nil
}

func (m *Mailer) SendOTP(ctx context.Context, to, code, userName string) error {
	html := fmt.Sprintf(`
		<h2>Verify your email</h2>
		<p>Hi %s,</p>
		<p>Your verification code is:</p>
		<h1 style="letter-spacing: 4px;">%s</h1>
		<p>This code expires in 10 minutes.</p>`,
		orElse(userName, "there"), code)
	return m.send(ctx, []string{to}, "Your PetVerse verification code", html)
}

func (m *Mailer) SendWelcome(ctx context.Context, to, userName string) error {
	html := fmt.Sprintf(`
		<h2>Welcome to PetVerse, %s!</h2>
		<p>Your account is ready. You can now browse pets, report lost and
		found animals, volunteer and support our shelters.</p>`,
		orElse(userName, "friend"))
	return m.send(ctx, []string{to}, "Welcome to PetVerse", html)
}

func (m *Mailer) SendPasswordReset(ctx context.Context, to, resetLink string) error {
	html := fmt.Sprintf(`
		<h2>Reset your password</h2>
		<p>Click the link below to choose a new password:</p>
		<p><a href="%s">Reset password</a></p>
		<p>If you did not request this, you can ignore this email.</p>`,
		resetLink)
	return m.send(ctx, []string{to}, "Reset your PetVerse password", html)
}

func (m *Mailer) SendVolunteerStatus(ctx context.Context, to, volunteerName, status string) error {
	html := fmt.Sprintf(`
		<h2>Volunteer application update</h2>
		<p>Hi %s,</p>
		<p>Your volunteer application has been <strong>%s</strong>.</p>`,
		orElse(volunteerName, "volunteer"), status)
	return m.send(ctx, []string{to}, "Your volunteer application was "+status, html)
}

func (m *Mailer) SendVolunteerEvent(ctx context.Context, recipients []string, ev mail.EventDetails, customMessage string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>You're invited: %s</h2>", ev.Title)
	if customMessage != "" {
		fmt.Fprintf(&b, "<p>%s</p>", customMessage)
	}
	if ev.Description != "" {
		fmt.Fprintf(&b, "<p>%s</p>", ev.Description)
	}
	b.WriteString("<ul>")
	fmt.Fprintf(&b, "<li><strong>Date:</strong> %s</li>", ev.Date)
	fmt.Fprintf(&b, "<li><strong>Time:</strong> %s</li>", ev.Time)
	fmt.Fprintf(&b, "<li><strong>Location:</strong> %s</li>", ev.Location)
	if ev.Address != "" {
		fmt.Fprintf(&b, "<li><strong>Address:</strong> %s</li>", ev.Address)
	}
	if ev.Responsibilities != "" {
		fmt.Fprintf(&b, "<li><strong>Responsibilities:</strong> %s</li>", ev.Responsibilities)
	}
	b.WriteString("</ul>")

	return m.send(ctx, recipients, "Volunteer event: "+ev.Title, b.String())
}

func (m *Mailer) SendLostFoundStatus(ctx context.Context, to, petName, status, reportType string) error {
	html := fmt.Sprintf(`
		<h2>Report update</h2>
		<p>Your %s report for <strong>%s</strong> has been <strong>%s</strong>.</p>`,
		reportType, petName, status)
	return m.send(ctx, []string{to}, fmt.Sprintf("Your %s report was %s", reportType, status), html)
}

func (m *Mailer) SendPetFoundMatch(ctx context.Context, to, petName string, finder mail.FinderDetails) error {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Great news! %s may have been found</h2>", petName)
	b.WriteString("<p>Someone reported finding a pet matching your lost report. Contact details:</p><ul>")
	if finder.Phone != "" {
		fmt.Fprintf(&b, "<li><strong>Phone:</strong> %s</li>", finder.Phone)
	}
	if finder.Email != "" {
		fmt.Fprintf(&b, "<li><strong>Email:</strong> %s</li>", finder.Email)
	}
	if finder.Location != "" {
		fmt.Fprintf(&b, "<li><strong>Location:</strong> %s</li>", finder.Location)
	}
	b.WriteString("</ul>")

	return m.send(ctx, []string{to}, "Possible match for "+petName, b.String())
}

func orElse(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
