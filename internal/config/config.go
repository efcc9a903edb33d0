package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort string

	// Postgres. Vacío => repos in-memory (modo dev).
	DBDSN string

	// Redis para pending signups. Vacío => store in-memory.
	RedisAddr string
	RedisDB   int

	// BaaS (auth + storage).
	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseServiceKey string
	SupabaseJWTSecret  string
	StorageBucket      string

	// Mail service (relay). Vacío => mailer nop.
	EmailServerURL string

	// Mailjet (solo cmd/mailer).
	MailerPort       string
	MailjetAPIKey    string
	MailjetSecretKey string
	MailjetFromEmail string
	MailjetFromName  string

	OTPTTL time.Duration
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func Load() *Config {
	c := &Config{
		AppPort: getenv("APP_PORT", "8080"),
		DBDSN:   os.Getenv("DB_DSN"),

		RedisAddr: os.Getenv("REDIS_ADDR"),

		SupabaseURL:        os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:    os.Getenv("SUPABASE_ANON_KEY"),
		SupabaseServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),
		SupabaseJWTSecret:  os.Getenv("SUPABASE_JWT_SECRET"),
		StorageBucket:      getenv("STORAGE_BUCKET", "pet-images"),

		EmailServerURL: os.Getenv("EMAIL_SERVER_URL"),

		MailerPort:       getenv("MAILER_PORT", "3001"),
		MailjetAPIKey:    os.Getenv("MAILJET_API_KEY"),
		MailjetSecretKey: os.Getenv("MAILJET_SECRET_KEY"),
		MailjetFromEmail: getenv("MAILJET_FROM_EMAIL", "petverse29@gmail.com"),
		MailjetFromName:  getenv("MAILJET_FROM_NAME", "PetVerse Team"),

		OTPTTL: 10 * time.Minute,
	}

	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("OTP_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.OTPTTL = time.Duration(n) * time.Second
		}
	}

	return c
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	// Auth real requiere URL + keys completas; sin nada => modo dev.
	if c.SupabaseURL != "" && (c.SupabaseAnonKey == "" || c.SupabaseJWTSecret == "") {
		return errors.New("SUPABASE_URL set but SUPABASE_ANON_KEY/SUPABASE_JWT_SECRET missing")
	}
	return nil
}

// ValidateMailer valida lo mínimo para cmd/mailer.
func (c *Config) ValidateMailer() error {
	if c.MailerPort == "" {
		return errors.New("missing MAILER_PORT")
	}
	if c.MailjetAPIKey == "" || c.MailjetSecretKey == "" {
		return errors.New("missing MAILJET_API_KEY/MAILJET_SECRET_KEY")
	}
	return nil
}
