package adoptions

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Adoption es una solicitud de adopción ya pagada. El fee queda congelado
// al momento del pago aunque el precio de la mascota cambie después.
type Adoption struct {
	ID          string
	PetID       string
	PetName     string
	UserID      string
	AdopterName string
	Phone       string
	Email       string
	Address     string
	Reason      string
	Fee         int
	PaymentID   string
	Status      Status
	CreatedAt   time.Time
	VerifiedAt  *time.Time
}
