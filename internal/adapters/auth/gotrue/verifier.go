package gotrue

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"petverse/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Verifier valida access tokens HS256 firmados con el JWT secret del
// proyecto. No hay round-trip al auth server: el token se verifica local.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("gotrue verifier: empty jwt secret")
	}
	return &Verifier{secret: []byte(secret)}, nil
}

type accessClaims struct {
	Email   string `json:"email"`
	Role    string `json:"role"`
	AppMeta struct {
		Role string `json:"role"`
	} `json:"app_metadata"`
	jwt.RegisteredClaims
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var claims accessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return v.secret, nil
	})
	if err != nil {
		return auth.Claims{}, errors.Join(ErrTokenInvalid, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return auth.Claims{}, ErrTokenInvalid
	}

	// app_metadata.role pisa el role genérico ("authenticated").
	role := claims.Role
	if claims.AppMeta.Role != "" {
		role = claims.AppMeta.Role
	}

	return auth.Claims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   role,
	}, nil
}
