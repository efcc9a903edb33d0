package mail

import "context"

// EventDetails son los campos del evento que van en el template de invitación.
type EventDetails struct {
	Title            string
	Description      string
	Date             string
	Time             string
	Location         string
	Address          string
	Responsibilities string
}

// FinderDetails es el contacto de quien encontró una mascota perdida.
type FinderDetails struct {
	Phone    string
	Email    string
	Location string
}

// Mailer es el gateway de emails transaccionales.
// Un método por template; los campos calcan el contrato del mail service
// (POST /api/email/*). Las implementaciones no reintentan: cada flujo
// decide si un fallo de envío es fatal o solo se loguea.
type Mailer interface {
	SendOTP(ctx context.Context, to, code, userName string) error
	SendWelcome(ctx context.Context, to, userName string) error
	SendPasswordReset(ctx context.Context, to, resetLink string) error
	SendVolunteerStatus(ctx context.Context, to, volunteerName, status string) error
	SendVolunteerEvent(ctx context.Context, recipients []string, ev EventDetails, customMessage string) error
	SendLostFoundStatus(ctx context.Context, to, petName, status, reportType string) error
	SendPetFoundMatch(ctx context.Context, to, petName string, finder FinderDetails) error
}

// Nop descarta todos los envíos (modo dev sin mail service).
type Nop struct{}

func (Nop) SendOTP(context.Context, string, string, string) error                     { return nil }
func (Nop) SendWelcome(context.Context, string, string) error                         { return nil }
func (Nop) SendPasswordReset(context.Context, string, string) error                   { return nil }
func (Nop) SendVolunteerStatus(context.Context, string, string, string) error         { return nil }
func (Nop) SendVolunteerEvent(context.Context, []string, EventDetails, string) error  { return nil }
func (Nop) SendLostFoundStatus(context.Context, string, string, string, string) error { return nil }
func (Nop) SendPetFoundMatch(context.Context, string, string, FinderDetails) error    { return nil }
