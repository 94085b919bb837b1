package config

type DB struct {
	DSN                string `env:"DATABASE_DSN" envDefault:"host=localhost port=5432 user=postgres password=postgres dbname=postgres sslmode=disable"`
	MaxOpenConnections int    `env:"DATABASE_MAX_OPEN_CONNECTIONS" envDefault:"10" validate:"min=1"`
	Debug              bool   `env:"DATABASE_DEBUG" envDefault:"false"`
	MigrateOnStart     bool   `env:"DATABASE_MIGRATE_ON_START" envDefault:"false"`
}
