package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	SessionSecret string
	SessionTTL    string

	Log      string
	LogLevel string
	Env      string // dev|prod

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string

	BaseURL string

	VerifyTokenTTLHours string
	ResetTokenTTLHours  string
	SweepInterval       string
}

// LoadConfig загружает .env, читает переменные окружения и выставляет дефолты.
// Ничего не логирует — чтобы не создавать зависимость от logger.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	cfg := &Config{
		Port: def(os.Getenv("PORT"), "8080"),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    def(os.Getenv("SESSION_TTL"), "24h"),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     def(os.Getenv("SMTP_PORT"), "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),

		BaseURL: def(os.Getenv("BASE_URL"), "http://localhost:8080"),

		VerifyTokenTTLHours: def(os.Getenv("VERIFY_TOKEN_TTL_HOURS"), "24"),
		ResetTokenTTLHours:  def(os.Getenv("RESET_TOKEN_TTL_HOURS"), "1"),
		SweepInterval:       def(os.Getenv("SWEEP_INTERVAL"), "1h"),
	}

	return cfg, nil
}

// Validate возвращает предупреждения и фатальную ошибку (если критично).
func (c *Config) Validate() (warnings []string, err error) {
	// Критично: без секрета подписывать сессии нечем
	if strings.TrimSpace(c.SessionSecret) == "" {
		return nil, fmt.Errorf("SESSION_SECRET is empty")
	}

	// SMTP — предупреждение: без него ссылки уходят только в лог
	if c.SMTPHost == "" || c.SMTPUser == "" {
		warnings = append(warnings, "SMTP is not fully configured, emails will be logged only")
	}

	if c.Port == "" {
		warnings = append(warnings, "PORT is empty, using default 8080")
	}

	if _, convErr := strconv.Atoi(c.VerifyTokenTTLHours); convErr != nil {
		warnings = append(warnings, "VERIFY_TOKEN_TTL_HOURS is not a number, using 24")
	}
	if _, convErr := strconv.Atoi(c.ResetTokenTTLHours); convErr != nil {
		warnings = append(warnings, "RESET_TOKEN_TTL_HOURS is not a number, using 1")
	}

	return warnings, nil
}

// VerifyTokenTTL — срок жизни токена подтверждения e-mail в часах.
func (c *Config) VerifyTokenTTL() int {
	n, err := strconv.Atoi(c.VerifyTokenTTLHours)
	if err != nil || n <= 0 {
		return 24
	}
	return n
}

// ResetTokenTTL — срок жизни токена сброса пароля в часах.
func (c *Config) ResetTokenTTL() int {
	n, err := strconv.Atoi(c.ResetTokenTTLHours)
	if err != nil || n <= 0 {
		return 1
	}
	return n
}
