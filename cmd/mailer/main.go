package main

import (
	"errors"
	"net/http"
	"os"
	"time"

	"petverse/internal/adapters/mail/mailjet"
	"petverse/internal/config"
	"petverse/internal/mailer"
	"petverse/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg := config.Load()
	log := logger.NewFromEnv()

	if err := cfg.ValidateMailer(); err != nil {
		log.Error("invalid config", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	mj, err := mailjet.New(mailjet.Config{
		APIKey:    cfg.MailjetAPIKey,
		APISecret: cfg.MailjetSecretKey,
		FromEmail: cfg.MailjetFromEmail,
		FromName:  cfg.MailjetFromName,
	})
	if err != nil {
		log.Error("mailjet init failed", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	mailer.NewHandler(mj, log).RegisterRoutes(r)

	srv := &http.Server{
		Addr:         ":" + cfg.MailerPort,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.Info("starting mail service", map[string]any{"addr": srv.Addr})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
