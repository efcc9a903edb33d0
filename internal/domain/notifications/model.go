package notifications

import "time"

// Notification es un aviso para la consola admin (nueva adopción pagada,
// nueva donación, etc).
type Notification struct {
	ID      string
	Type    string // "adoption", "donation", ...
	Title   string
	Message string

	AdoptionID string
	DonationID string

	Read      bool
	CreatedAt time.Time
}
