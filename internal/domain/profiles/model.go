package profiles

import "time"

// Profile es la cuenta durable de un usuario.
// El ID coincide con la identidad del proveedor de auth.
// Solo se crea después de verificar el OTP del signup; nunca
// directamente al registrarse.
type Profile struct {
	ID       string
	Username string // único, lowercase
	Email    string // único, lowercase

	Phone     string
	City      string
	AvatarURL string

	CreatedAt time.Time
	UpdatedAt time.Time
}
