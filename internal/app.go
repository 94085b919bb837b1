package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
	"github.com/s-larionov/process-manager"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rise-platform/rise-edge/internal/ai"
	"github.com/rise-platform/rise-edge/internal/api"
	"github.com/rise-platform/rise-edge/internal/assistant"
	"github.com/rise-platform/rise-edge/internal/auth"
	"github.com/rise-platform/rise-edge/internal/config"
	"github.com/rise-platform/rise-edge/internal/events"
	"github.com/rise-platform/rise-edge/internal/investor"
	"github.com/rise-platform/rise-edge/internal/logging"
	"github.com/rise-platform/rise-edge/internal/migrations"
	"github.com/rise-platform/rise-edge/internal/notification"
	"github.com/rise-platform/rise-edge/internal/realtime"
	"github.com/rise-platform/rise-edge/internal/secrets"
	"github.com/rise-platform/rise-edge/internal/startup"
	"github.com/rise-platform/rise-edge/pkg/health"
	"github.com/rise-platform/rise-edge/pkg/prometheus"
	"github.com/rise-platform/rise-edge/pkg/sdk/supabase"
)

type Application struct {
	sigChan <-chan os.Signal
	manager *process.Manager
	cfg     config.App
	db      *gorm.DB
	nc      *nats.Conn

	completer ai.Completer
	publisher startup.Publisher
	resolver  *auth.Resolver
	hub       *realtime.Hub

	startups  *startup.Service
	investors *investor.Service
	assistant *assistant.Service
}

func NewApplication(cfg config.App) (*Application, error) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	a := &Application{
		sigChan: sigChan,
		cfg:     cfg,
		manager: process.NewManager(),
	}

	err := a.bootstrap()
	if err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Application) Run() {
	a.manager.StartAll()
	a.registerShutdown()
}

func (a *Application) bootstrap() error {
	initializers := []func() error{
		a.initDB,
		a.initHub,
		a.initNats,
		a.initCompleter,

		// Init Dependencies
		a.initIdentity,
		a.initServices,

		// Init Workers: Application
		a.initAPI,
		a.initRealtimeConsumer,
		a.initStaleWorker,

		// Init Workers: System
		a.initPrometheusWorker,
		a.initHealthWorker,
	}

	for _, initializer := range initializers {
		if err := initializer(); err != nil {
			return err
		}
	}

	return nil
}

func (a *Application) initDB() error {
	db, err := gorm.Open(postgres.Open(a.cfg.DB.DSN), &gorm.Config{
		Logger: logging.NewGormLogger(a.cfg.DB.Debug),
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	ps, err := db.DB()
	if err != nil {
		return err
	}
	ps.SetMaxOpenConns(a.cfg.DB.MaxOpenConnections)

	if a.cfg.DB.MigrateOnStart {
		if err = migrations.Up(ps); err != nil {
			return err
		}
	}

	a.db = db

	return nil
}

func (a *Application) initHub() error {
	a.hub = realtime.NewHub()

	return nil
}

func (a *Application) initNats() error {
	if !a.cfg.Nats.Enabled {
		log.Warn().Msg("nats is disabled, analysis events are delivered to local websocket clients only")
		a.publisher = realtime.NewLocalPublisher(a.hub)

		return nil
	}

	nc, err := nats.Connect(
		a.cfg.Nats.URL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(a.cfg.Nats.MaxReconnects),
		nats.ReconnectWait(a.cfg.Nats.ReconnectTimeout),
	)
	if err != nil {
		return fmt.Errorf("connect to nats: %w", err)
	}

	a.nc = nc
	a.publisher = events.NewPublisher(nc)

	return nil
}

func (a *Application) initCompleter() error {
	cfg := a.cfg.AI
	if a.cfg.Vault.Enabled() {
		cli, err := secrets.NewVaultClient(a.cfg.Vault)
		if err != nil {
			return err
		}

		if err = secrets.NewStore(cli, a.cfg.Vault.BasePath).ApplyAI(&cfg); err != nil {
			return fmt.Errorf("load ai secrets: %w", err)
		}
	}

	completer, err := ai.NewCompleter(context.Background(), cfg, cfg.APIKey())
	if errors.Is(err, ai.ErrMissingAPIKey) {
		// handlers keep answering with 500 until the key is configured
		log.Warn().Err(err).Msg("ai provider is not configured")
		completer, err = ai.Unavailable{Err: err}, nil
	}
	if err != nil {
		return fmt.Errorf("init ai provider: %w", err)
	}

	a.completer = completer

	return nil
}

func (a *Application) initIdentity() error {
	cli := supabase.NewClient(a.cfg.Supabase.URL, a.cfg.Supabase.ServiceRoleKey, a.cfg.Supabase.Timeout, nil)
	a.resolver = auth.NewResolver(cli)

	return nil
}

func (a *Application) initServices() error {
	startupRepo := startup.NewRepo(a.db)
	investorRepo := investor.NewRepo(a.db)
	ns := notification.NewService(notification.NewRepo(a.db))

	a.startups = startup.NewService(startupRepo, a.completer, a.publisher, ns, a.cfg.Analysis.StaleAfter, a.cfg.AI.FinetunedModel)
	a.investors = investor.NewService(investorRepo, startupRepo, a.resolver, a.completer, a.cfg.Analysis.SuggestionCandidates)
	a.assistant = assistant.NewService(assistant.NewRepo(a.db), startupRepo, investorRepo, a.resolver, a.completer)
	return nil
}

func (a *Application) initAPI() error {
	handler := api.NewRouter(
		a.cfg.API.AllowedOrigin,
		startup.NewServer(a.startups),
		investor.NewServer(a.investors),
		assistant.NewServer(a.assistant),
		realtime.NewServer(a.hub, a.cfg.API.AllowedOrigin),
	)

	srv := &http.Server{
		Addr:              a.cfg.API.Bind,
		Handler:           handler,
		ReadHeaderTimeout: a.cfg.API.ReadHeaderTimeout,
	}
	a.manager.AddWorker(process.NewServerWorker("API", srv))

	return nil
}

func (a *Application) initRealtimeConsumer() error {
	if a.nc == nil {
		return nil
	}

	cs := realtime.NewConsumer(a.nc, a.hub)
	a.manager.AddWorker(process.NewCallbackWorker("realtime-consumer", cs.Start))

	return nil
}

func (a *Application) initStaleWorker() error {
	w := startup.NewStaleWorker(a.startups, a.cfg.Analysis.ReapInterval)
	a.manager.AddWorker(process.NewCallbackWorker("stale-analysis", w.Start))

	return nil
}

func (a *Application) initPrometheusWorker() error {
	srv := prometheus.NewServer(a.cfg.Prometheus.Listen, "/metrics")
	a.manager.AddWorker(process.NewServerWorker("prometheus", srv))

	return nil
}

func (a *Application) initHealthWorker() error {
	ps, err := a.db.DB()
	if err != nil {
		return err
	}

	checkers := []health.Checker{
		health.PingFunc{Target: "database", Ping: ps.PingContext},
	}
	if a.nc != nil {
		checkers = append(checkers, health.PingFunc{Target: "nats", Ping: a.natsStatus})
	}

	srv := health.NewHealthCheckServer(a.cfg.Health.Listen, "/status", health.DefaultHandler(checkers...))
	a.manager.AddWorker(process.NewServerWorker("health", srv))

	return nil
}

func (a *Application) natsStatus(context.Context) error {
	if !a.nc.IsConnected() {
		return fmt.Errorf("nats status: %s", a.nc.Status())
	}

	return nil
}

func (a *Application) registerShutdown() {
	go func(manager *process.Manager) {
		<-a.sigChan

		manager.StopAll()
	}(a.manager)

	a.manager.AwaitAll()

	if a.nc != nil {
		a.nc.Close()
	}
	log.Info().Msg("application stopped")
}
