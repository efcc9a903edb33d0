// Package supastorage implementa blob.Store contra el storage HTTP del
// BaaS (buckets públicos de objetos).
package supastorage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var ErrNotConfigured = errors.New("storage not configured")

type Config struct {
	BaseURL    string
	ServiceKey string
	Bucket     string
	Timeout    time.Duration
}

type Store struct {
	baseURL    string
	serviceKey string
	bucket     string
	http       *http.Client
}

func New(cfg Config) (*Store, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" || strings.TrimSpace(cfg.ServiceKey) == "" || strings.TrimSpace(cfg.Bucket) == "" {
		return nil, ErrNotConfigured
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Store{
		baseURL:    base,
		serviceKey: strings.TrimSpace(cfg.ServiceKey),
		bucket:     strings.TrimSpace(cfg.Bucket),
		http:       &http.Client{Timeout: timeout},
	}, nil
}

func (s *Store) Upload(ctx context.Context, path string, content []byte, contentType string) (string, error) {
	if s == nil || s.http == nil {
		return "", ErrNotConfigured
	}
	path = strings.TrimLeft(strings.TrimSpace(path), "/")
	if path == "" {
		return "", errors.New("supastorage: empty object path")
	}

	objectURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, objectURL, bytes.NewReader(content))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("supastorage upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("supastorage upload: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return s.PublicURL(path), nil
}

// Delete acepta el path del objeto o su URL pública completa.
func (s *Store) Delete(ctx context.Context, pathOrURL string) error {
	if s == nil || s.http == nil {
		return ErrNotConfigured
	}

	path := s.objectPath(pathOrURL)
	if path == "" {
		return errors.New("supastorage: empty object path")
	}

	objectURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, s.bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, objectURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("supastorage delete: %w", err)
	}
	defer resp.Body.Close()

	// 404 cuenta como borrado: el objeto ya no está.
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("supastorage delete: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

func (s *Store) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, strings.TrimLeft(path, "/"))
}

func (s *Store) objectPath(pathOrURL string) string {
	pathOrURL = strings.TrimSpace(pathOrURL)
	prefix := fmt.Sprintf("%s/storage/v1/object/public/%s/", s.baseURL, s.bucket)
	if strings.HasPrefix(pathOrURL, prefix) {
		return strings.TrimPrefix(pathOrURL, prefix)
	}
	return strings.TrimLeft(pathOrURL, "/")
}
