package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv            string
	Addr              string
	SaltRounds        int
	JwtSecret         string
	JwtRefreshSecret  string
	DbDsn             string
	SmtpHost          string
	SmtpPort          int
	SmtpUser          string
	SmtpPass          string
	SenderEmail       string
	AllowedOriginsRaw string
}

// Load reads the environment (optionally seeded from a .env file) and
// validates it. All missing required variables are reported in one error so
// the operator fixes them in a single pass.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Addr:              getEnv("APP_ADDR", ":3500"),
		SaltRounds:        getEnvInt("SALT_ROUNDS", 10),
		JwtSecret:         os.Getenv("JWT_SECRET"),
		JwtRefreshSecret:  os.Getenv("JWT_REFRESH_SECRET"),
		DbDsn:             os.Getenv("DB_DSN"),
		SmtpHost:          os.Getenv("SMTP_HOST"),
		SmtpPort:          getEnvInt("SMTP_PORT", 587),
		SmtpUser:          os.Getenv("SMTP_USER"),
		SmtpPass:          os.Getenv("SMTP_PASS"),
		SenderEmail:       os.Getenv("SENDER_EMAIL"),
		AllowedOriginsRaw: getEnv("ALLOWED_ORIGINS", ""),
	}

	if cfg.SaltRounds < 4 || cfg.SaltRounds > 31 {
		cfg.SaltRounds = 10
	}

	missing := []string{}
	if cfg.JwtSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if cfg.JwtRefreshSecret == "" {
		missing = append(missing, "JWT_REFRESH_SECRET")
	}
	if cfg.DbDsn == "" {
		missing = append(missing, "DB_DSN")
	}
	if cfg.SmtpHost == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if cfg.SmtpUser == "" {
		missing = append(missing, "SMTP_USER")
	}
	if cfg.SmtpPass == "" {
		missing = append(missing, "SMTP_PASS")
	}
	if cfg.SenderEmail == "" {
		missing = append(missing, "SENDER_EMAIL")
	}

	if len(missing) > 0 {
		return cfg, errors.New("missing env: " + strings.Join(missing, ", "))
	}

	return cfg, nil
}

// IsProduction controls the Secure/SameSite cookie attributes.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
