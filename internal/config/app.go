package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

type App struct {
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn error"`
	Prometheus Prometheus
	Health     Health
	DB         DB
	Nats       Nats
	API        API
	AI         AI
	Analysis   Analysis
	Supabase   Supabase
	Vault      Vault
}

// Validate checks constraints the env tags cannot express
func (a App) Validate() error {
	if err := validator.New().Struct(a); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	return nil
}
