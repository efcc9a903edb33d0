package gotrue

import (
	"context"
	"errors"
	"strings"
	"time"

	"petverse/internal/platform/httpclient"
	"petverse/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("gotrue client not configured")
	ErrUpstream      = errors.New("gotrue upstream error")
)

// Config del cliente GoTrue (el auth server del BaaS).
type Config struct {
	BaseURL string
	AnonKey string
	Timeout time.Duration
}

// Client registra identidades contra /auth/v1/signup.
type Client struct {
	http    *httpclient.Client
	anonKey string
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" || strings.TrimSpace(cfg.AnonKey) == "" {
		return nil, ErrNotConfigured
	}

	hc, err := httpclient.NewWithBaseURL(base, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Client{
		http:    hc,
		anonKey: strings.TrimSpace(cfg.AnonKey),
	}, nil
}

type signUpRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     map[string]any `json:"data,omitempty"`
}

// La forma de la respuesta depende de si confirm-email está activo:
// con confirmación pendiente el id viene al tope, sin ella viene en user.
type signUpResponse struct {
	ID   string `json:"id"`
	User struct {
		ID string `json:"id"`
	} `json:"user"`
}

// SignUp registra la identidad. Un "already registered" upstream se
// normaliza a auth.ErrEmailRegistered para que el caller decida.
func (c *Client) SignUp(ctx context.Context, email, password, username string) (auth.Identity, error) {
	if c == nil || c.http == nil {
		return auth.Identity{}, ErrNotConfigured
	}

	var resp signUpResponse
	err := c.http.DoJSON(ctx, "POST", "/auth/v1/signup", map[string]string{
		"apikey": c.anonKey,
	}, signUpRequest{
		Email:    email,
		Password: password,
		Data:     map[string]any{"username": username},
	}, &resp)
	if err != nil {
		var he *httpclient.HTTPError
		if errors.As(err, &he) {
			if he.StatusCode == 422 || strings.Contains(strings.ToLower(he.Body), "already registered") {
				return auth.Identity{}, auth.ErrEmailRegistered
			}
			return auth.Identity{}, errors.Join(ErrUpstream, err)
		}
		return auth.Identity{}, err
	}

	id := resp.ID
	if id == "" {
		id = resp.User.ID
	}
	if id == "" {
		return auth.Identity{}, errors.Join(ErrUpstream, errors.New("signup response without user id"))
	}
	return auth.Identity{ID: id}, nil
}
