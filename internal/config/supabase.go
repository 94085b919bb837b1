package config

import "time"

type Supabase struct {
	URL            string        `env:"SUPABASE_URL" validate:"omitempty,url"`
	ServiceRoleKey string        `env:"SUPABASE_SERVICE_ROLE_KEY"`
	Timeout        time.Duration `env:"SUPABASE_TIMEOUT" envDefault:"10s"`
}
