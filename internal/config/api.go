package config

import "time"

type API struct {
	Bind              string        `env:"API_HTTP_SERVER_BIND" envDefault:":8080"`
	ReadHeaderTimeout time.Duration `env:"API_READ_HEADER_TIMEOUT" envDefault:"10s"`
	AllowedOrigin     string        `env:"API_CORS_ALLOWED_ORIGIN" envDefault:"*"`
}
