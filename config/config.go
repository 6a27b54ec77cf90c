package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	ProviderFirebase = "firebase"
	ProviderMemory   = "memory"
)

type Config struct {
	Provider        string        `env:"AUTHSCREEN_PROVIDER" envDefault:"firebase"`
	FirebaseAPIKey  string        `env:"FIREBASE_API_KEY"`
	IdentityURL     string        `env:"AUTHSCREEN_IDENTITY_URL" envDefault:"https://identitytoolkit.googleapis.com"`
	RequestTimeout  time.Duration `env:"AUTHSCREEN_REQUEST_TIMEOUT" envDefault:"15s"`
	Locale          string        `env:"AUTHSCREEN_LOCALE" envDefault:"pt-BR"`
	LogFile         string        `env:"AUTHSCREEN_LOG_FILE" envDefault:"error.txt"`
	SubmitInterval  time.Duration `env:"AUTHSCREEN_SUBMIT_INTERVAL" envDefault:"500ms"`
	OTelEndpoint    string        `env:"AUTHSCREEN_OTEL_ENDPOINT"`
	OTelServiceName string        `env:"AUTHSCREEN_OTEL_SERVICE_NAME" envDefault:"authscreen"`
}

// LoadFromEnv parses the environment and validates the result.
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	switch c.Provider {
	case ProviderFirebase:
		if c.FirebaseAPIKey == "" {
			errs = append(errs, errors.New("FIREBASE_API_KEY is required for the firebase provider"))
		}
	case ProviderMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown provider %q (want %s or %s)", c.Provider, ProviderFirebase, ProviderMemory))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("AUTHSCREEN_REQUEST_TIMEOUT must be positive"))
	}
	if c.SubmitInterval < 0 {
		errs = append(errs, errors.New("AUTHSCREEN_SUBMIT_INTERVAL must not be negative"))
	}
	return errors.Join(errs...)
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
