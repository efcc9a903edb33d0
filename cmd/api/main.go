package main

import (
	"errors"
	"net/http"
	"os"
	"time"

	"petverse/internal/adapters/auth/gotrue"
	"petverse/internal/adapters/blob/supastorage"
	"petverse/internal/adapters/mail/relay"
	pendingredis "petverse/internal/adapters/pending/redis"
	"petverse/internal/adapters/storage/postgres"
	"petverse/internal/config"
	"petverse/internal/platform/logger"
	"petverse/internal/router"

	goredis "github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	log := logger.NewFromEnv()

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	opts := router.Options{
		Log:    log,
		OTPTTL: cfg.OTPTTL,
	}

	if cfg.DBDSN != "" {
		db, err := postgres.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		opts.DB = db
	} else {
		log.Warn("DB_DSN not set, using in-memory repositories", nil)
	}

	if cfg.RedisAddr != "" {
		rc, err := pendingredis.Open(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			log.Error("redis open failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		defer func(rc *goredis.Client) { _ = rc.Close() }(rc)
		opts.Redis = rc
	}

	if cfg.SupabaseURL != "" {
		verifier, err := gotrue.NewVerifier(cfg.SupabaseJWTSecret)
		if err != nil {
			log.Error("auth verifier init failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		opts.Verifier = verifier

		client, err := gotrue.NewClient(gotrue.Config{
			BaseURL: cfg.SupabaseURL,
			AnonKey: cfg.SupabaseAnonKey,
		})
		if err != nil {
			log.Error("auth client init failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		opts.Identities = client

		if cfg.SupabaseServiceKey != "" {
			store, err := supastorage.New(supastorage.Config{
				BaseURL:    cfg.SupabaseURL,
				ServiceKey: cfg.SupabaseServiceKey,
				Bucket:     cfg.StorageBucket,
			})
			if err != nil {
				log.Error("blob store init failed", map[string]any{"err": err.Error()})
				os.Exit(1)
			}
			opts.Blob = store
		}
	} else {
		log.Warn("SUPABASE_URL not set, running in dev auth mode", nil)
	}

	if cfg.EmailServerURL != "" {
		mailer, err := relay.New(cfg.EmailServerURL, 0)
		if err != nil {
			log.Error("mail relay init failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		opts.Mailer = mailer
	} else {
		log.Warn("EMAIL_SERVER_URL not set, emails will be dropped", nil)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting api server", map[string]any{"addr": srv.Addr})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
