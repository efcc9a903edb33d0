package auth

// Claims representa la información extraída del token del proveedor.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

const RoleAdmin = "admin"

// Identity es la identidad creada en el proveedor de auth.
// El Profile durable se crea recién después de verificar el OTP,
// con este mismo ID.
type Identity struct {
	ID string
}
