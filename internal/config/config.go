// Package config loads service configuration from the environment.
package config

import (
	"fmt"

	env "github.com/caarlos0/env/v11"
)

// Config holds all runtime settings. SMTP settings are optional: when
// SMTP_HOST is empty, debt notifications are logged instead of emailed.
type Config struct {
	Port      int    `env:"PORT" envDefault:"8080"`
	AppEnv    string `env:"APP_ENV" envDefault:"production"`
	DBPath    string `env:"DB_PATH" envDefault:"./data/splitledger.db"`
	JWTSecret string `env:"JWT_SECRET,required"`
	TokenTTL  int    `env:"TOKEN_TTL_HOURS" envDefault:"24"`

	// DefaultCurrency is the ledger currency for new accounts.
	DefaultCurrency string `env:"DEFAULT_CURRENCY" envDefault:"INR"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SenderEmail  string `env:"SENDER_EMAIL"`

	// OCRServiceURL points at the external bill-scan service. Empty
	// disables the scan endpoints.
	OCRServiceURL string `env:"OCR_SERVICE_URL"`
	OCRAPIKey     string `env:"OCR_API_KEY"`

	// ReminderSchedule is a cron expression for the pending-debt
	// reminder job. Empty disables reminders.
	ReminderSchedule string `env:"REMINDER_SCHEDULE" envDefault:"0 9 * * *"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return &cfg, nil
}
