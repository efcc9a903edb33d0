package signup

import "time"

// PendingSignup es el estado efímero entre el alta y la verificación del OTP.
// Vive solo en el pending store (Redis o memoria), nunca en el store durable.
// El password se guarda hasheado con bcrypt.
type PendingSignup struct {
	Code         string        `json:"code"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"password_hash"`
	Username     string        `json:"username"`
	IdentityID   string        `json:"identity_id"`
	CreatedAt    time.Time     `json:"created_at"`
	TTL          time.Duration `json:"ttl"`
	Verified     bool          `json:"verified"`
}

// Expired reporta si la ventana del código ya venció.
// La expiración lógica se decide acá, no en el store: así un slot vencido
// puede reportarse como "expired" en vez de "no existe".
func (p PendingSignup) Expired(now time.Time) bool {
	return now.Sub(p.CreatedAt) > p.TTL
}
