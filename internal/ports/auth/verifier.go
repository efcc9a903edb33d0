package auth

import (
	"context"
	"errors"
)

// ErrEmailRegistered: el proveedor ya tiene una identidad para ese email.
// El orquestador de signup lo trata como no-fatal.
var ErrEmailRegistered = errors.New("email already registered with auth provider")

// Verifier verifica un access token y devuelve claims o error.
type Verifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// IdentityProvider crea identidades en el proveedor de auth externo.
// La sesión que el proveedor emite al registrarse NUNCA se devuelve:
// la identidad no verificada no puede usarse contra recursos protegidos.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password, username string) (Identity, error)
}
