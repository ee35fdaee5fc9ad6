package config

import (
	"fmt"
	"os"
	"strings"

	xerrors "github.com/clementatt/Stripe-customers-import/internal/pkg/errors"
)

const (
	DefaultAPIBase    = "https://api.stripe.com"
	DefaultLogDir     = "logs"
	DefaultEmptyValue = "nan"
)

type AppConfig struct {
	// Stripe
	StripeSecretKey string
	StripeAPIBase   string

	// Logging
	LogDir   string
	LogLevel string

	// EmptyValue is written into metadata for blank cells.
	EmptyValue string
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		StripeSecretKey: strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY")),
		StripeAPIBase:   strings.TrimRight(getEnv("STRIPE_API_BASE", DefaultAPIBase), "/"),

		LogDir:   getEnv("IMPORT_LOG_DIR", DefaultLogDir),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),

		EmptyValue: getEnv("IMPORT_EMPTY_VALUE", DefaultEmptyValue),
	}
}

// Validate reports settings the importer cannot run without.
func (c AppConfig) Validate() error {
	if c.StripeSecretKey == "" {
		return fmt.Errorf("%w: STRIPE_SECRET_KEY is not set, add it to the environment or a .env file", xerrors.ErrMissingConfiguration)
	}
	return nil
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
