// Package redis implementa signup.PendingStore sobre un Redis compartido.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"petverse/internal/domain/signup"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "petverse:signup:"

func Open(addr string, db int) (*goredis.Client, error) {
	r := goredis.NewClient(&goredis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return r, nil
}

type Store struct {
	client *goredis.Client
}

func NewStore(client *goredis.Client) *Store {
	return &Store{client: client}
}

// Put persiste el slot con TTL físico del doble del lógico: un slot con
// el código vencido sigue legible para poder distinguir "expired" de
// "no existe".
func (s *Store) Put(ctx context.Context, p signup.PendingSignup) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("pending redis: marshal: %w", err)
	}
	return s.client.Set(ctx, key(p.Email), raw, 2*p.TTL).Err()
}

func (s *Store) Get(ctx context.Context, email string) (signup.PendingSignup, error) {
	raw, err := s.client.Get(ctx, key(email)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return signup.PendingSignup{}, signup.ErrNoPendingSignup
	}
	if err != nil {
		return signup.PendingSignup{}, fmt.Errorf("pending redis: get: %w", err)
	}

	var p signup.PendingSignup
	if err := json.Unmarshal(raw, &p); err != nil {
		return signup.PendingSignup{}, fmt.Errorf("pending redis: unmarshal: %w", err)
	}
	return p, nil
}

func (s *Store) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, key(email)).Err()
}

func key(email string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(email))
}
