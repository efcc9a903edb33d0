package signup

import "context"

// PendingStore es el KV con namespace para pending signups.
// Semántica explícita de slot único por email: Put sobreescribe sin
// preguntar (último signup gana, carrera aceptada). Las implementaciones
// aplican un TTL físico mayor al lógico para que Get de un slot vencido
// siga devolviendo el registro y el service pueda reportar "expired".
type PendingStore interface {
	Put(ctx context.Context, p PendingSignup) error
	Get(ctx context.Context, email string) (PendingSignup, error) // ErrNoPendingSignup si no hay slot
	Delete(ctx context.Context, email string) error
}
