package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string
	APP_URL    string
	APP_ENV    string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string

	STRIPE_SECRET_KEY     string
	STRIPE_WEBHOOK_SECRET string
	STRIPE_PRICE_MONTHLY  string
	STRIPE_PRICE_YEARLY   string

	OPENAI_API_KEY string

	SMTP_HOST     string
	SMTP_PORT     int
	SMTP_FROM     string
	SMTP_PASSWORD string

	REDIS_URL string

	ADMIN_RECOVERY_TOKEN string

	// Emails and domains granted beta access when no subscription row exists.
	BETA_EMAILS  []string
	BETA_DOMAINS []string

	// Cron expression for the daily role-expiry sweep.
	ROLE_SWEEP_SCHEDULE string

	TRIAL_DAYS int
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")
	APP_URL = getEnv("APP_URL", "http://localhost:5173")
	APP_ENV = getEnv("APP_ENV", "production")

	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")

	STRIPE_SECRET_KEY = mustEnv("STRIPE_SECRET_KEY")
	STRIPE_WEBHOOK_SECRET = getEnv("STRIPE_WEBHOOK_SECRET", "")
	STRIPE_PRICE_MONTHLY = getEnv("STRIPE_PRICE_MONTHLY", "")
	STRIPE_PRICE_YEARLY = getEnv("STRIPE_PRICE_YEARLY", "")

	OPENAI_API_KEY = getEnv("OPENAI_API_KEY", "")

	SMTP_HOST = getEnv("SMTP_HOST", "")
	SMTP_PORT = getEnvInt("SMTP_PORT", 587)
	SMTP_FROM = getEnv("SMTP_FROM", "")
	SMTP_PASSWORD = getEnv("SMTP_PASSWORD", "")

	REDIS_URL = getEnv("REDIS_URL", "")

	ADMIN_RECOVERY_TOKEN = getEnv("ADMIN_RECOVERY_TOKEN", "")

	BETA_EMAILS = splitList(getEnv("BETA_EMAILS", ""))
	BETA_DOMAINS = splitList(getEnv("BETA_DOMAINS", ""))

	ROLE_SWEEP_SCHEDULE = getEnv("ROLE_SWEEP_SCHEDULE", "0 3 * * *")

	TRIAL_DAYS = getEnvInt("TRIAL_DAYS", 3)
}

// IsDevMode reports whether dev-mode access grants are enabled.
func IsDevMode() bool {
	return APP_ENV == "development"
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, exists := os.LookupEnv(key)
	if !exists || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}
