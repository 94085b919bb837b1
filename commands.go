package main

import (
	"database/sql"
	"fmt"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rise-platform/rise-edge/internal"
	"github.com/rise-platform/rise-edge/internal/config"
	"github.com/rise-platform/rise-edge/internal/logging"
	"github.com/rise-platform/rise-edge/internal/migrations"
)

func newRootCmd() *cobra.Command {
	var cfg config.App

	root := &cobra.Command{
		Use:           "rise-edge",
		Short:         "RISE edge functions: startup analysis, AI assistant and investor suggestions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return loadConfig(&cfg)
		},
		RunE: func(*cobra.Command, []string) error {
			return serve(cfg)
		},
	}

	root.AddCommand(newServeCmd(&cfg))
	root.AddCommand(newMigrateCmd(&cfg))

	return root
}

func newServeCmd(cfg *config.App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and background workers",
		RunE: func(*cobra.Command, []string) error {
			return serve(*cfg)
		},
	}
}

func newMigrateCmd(cfg *config.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(*cobra.Command, []string) error {
			return withDB(cfg.DB.DSN, migrations.Up)
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		RunE: func(*cobra.Command, []string) error {
			return withDB(cfg.DB.DSN, func(db *sql.DB) error {
				return migrations.Down(db, steps)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	return cmd
}

// loadConfig reads .env when present, then the environment
func loadConfig(cfg *config.App) error {
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	return logging.SetLevel(cfg.LogLevel)
}

func serve(cfg config.App) error {
	app, err := internal.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("init application: %w", err)
	}

	log.Info().Str("bind", cfg.API.Bind).Msg("starting rise-edge")
	app.Run()

	return nil
}

func withDB(dsn string, fn func(db *sql.DB) error) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	return fn(db)
}
