package donations

import "time"

type Status string

const (
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

// Donation entra directamente en verified: el callback de pago ya confirmó
// el cobro. El admin solo puede rechazarla después (reembolso manual).
type Donation struct {
	ID         string
	UserID     string
	DonorName  string
	Email      string
	Amount     int
	Message    string
	PaymentID  string
	Method     string // payment_method del gateway (card, yape, etc.)
	Status     Status
	CreatedAt  time.Time
	VerifiedAt *time.Time
}
