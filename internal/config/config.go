package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	CORSModeStrict     = "strict"
	CORSModePermissive = "permissive"
)

type Config struct {
	AppPort string
	AppEnv  string

	// CORSMode selects strict or permissive origin checking.
	// FrontendURL, if set, is added to the allow list as a literal.
	CORSMode    string
	FrontendURL string

	RedisAddr     string
	RedisPassword string

	DatabaseDSN string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
}

func Load() (Config, error) {

	// Local development convenience only; the file is absent in deploys.
	_ = godotenv.Load()

	cfg := Config{

		AppPort: getEnv("APP_PORT", "5000"),
		AppEnv:  getEnv("APP_ENV", EnvDevelopment),

		CORSMode:    getEnv("CORS_MODE", CORSModeStrict),
		FrontendURL: os.Getenv("FRONTEND_URL"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),

		SMTPHost: getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort: getEnvInt("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),
		MailFrom: getEnv("MAIL_FROM", "no-reply@events.example"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.AppEnv {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("config: unknown APP_ENV %q", c.AppEnv)
	}

	switch c.CORSMode {
	case CORSModeStrict, CORSModePermissive:
	default:
		return fmt.Errorf("config: unknown CORS_MODE %q", c.CORSMode)
	}

	// Permissive mode falls back to allowing every origin, which would
	// defeat the cross-origin policy entirely if it ever reached a
	// production deploy. Refuse to boot rather than allow it silently.
	if c.AppEnv == EnvProduction && c.CORSMode == CORSModePermissive {
		return errors.New("config: CORS_MODE=permissive is not allowed with APP_ENV=production")
	}

	if c.AppEnv == EnvProduction && c.DatabaseDSN == "" {
		return errors.New("config: DATABASE_DSN is required in production")
	}

	return nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
