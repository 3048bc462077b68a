package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/config"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/infra/kafka"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/infra/metrics"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/pkg/clock"
	repopg "github.com/NastyaGoryachaya/currency-rate-service/internal/repository/postgres"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/scheduler"
	batchsvc "github.com/NastyaGoryachaya/currency-rate-service/internal/service/batch"
	currencysvc "github.com/NastyaGoryachaya/currency-rate-service/internal/service/currency"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/service/gaps"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/service/gateway"
	ratesvc "github.com/NastyaGoryachaya/currency-rate-service/internal/service/rates"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/transport/httptransport"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type App struct {
	cfg config.Config
	log *slog.Logger

	db   *pgxpool.Pool
	e    *echo.Echo
	serv *http.Server

	currencyRepo *repopg.CurrencyRepo
	rateRepo     *repopg.RateRepo
	providerRepo *repopg.ProviderRepo
	batchRepo    *repopg.BatchRepo

	gateway    *gateway.Gateway
	rates      ratesvc.Service
	batch      *batchsvc.Engine
	currencies *currencysvc.Service

	events  *kafka.BatchEventPublisher
	updater *scheduler.Scheduler
}

func NewApp(cfg config.Config, log *slog.Logger, db *pgxpool.Pool) (*App, error) {
	app := &App{cfg: cfg, log: log, db: db}

	app.currencyRepo = repopg.NewCurrencyRepository(db)
	app.rateRepo = repopg.NewRateRepository(db)
	app.providerRepo = repopg.NewProviderRepository(db)
	app.batchRepo = repopg.NewBatchRepository(db)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	clk := clock.NewRealClock()
	detector := gaps.NewDetector(app.rateRepo)
	app.gateway = gateway.NewGateway(app.providerRepo, gateway.NewFactory(cfg.Providers), m, log)
	app.rates = ratesvc.NewServiceWithClock(app.currencyRepo, detector, app.gateway, app.rateRepo, clk, log)
	app.currencies = currencysvc.New(app.currencyRepo, log)

	deps := batchsvc.Deps{
		Currencies: app.currencyRepo,
		Gaps:       detector,
		Fetcher:    app.gateway,
		Rates:      app.rateRepo,
		Jobs:       app.batchRepo,
		Metrics:    m,
		Clock:      clk,
	}
	if cfg.Kafka.Enabled {
		app.events = kafka.NewBatchEventPublisher(cfg.Kafka, log)
		deps.Events = app.events
	}
	app.batch = batchsvc.NewEngine(deps, cfg.Backfill, log)

	e, err := httptransport.NewRouter(cfg, httptransport.Handlers{
		Rates:      httptransport.NewRatesHandler(log, app.rates, cfg.Server.RequestTimeout),
		Batches:    httptransport.NewBatchHandler(log, app.batch, cfg.Server.RequestTimeout),
		Currencies: httptransport.NewCurrencyHandler(log, app.currencies),
		Providers:  httptransport.NewProviderHandler(log, app.gateway),
	}, log, m, reg)
	if err != nil {
		log.Error("http router init failed", slog.String("error", err.Error()))
		return nil, err
	}
	app.e = e

	app.serv = &http.Server{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		Handler:      e,
	}

	if cfg.Scheduler.Enabled {
		app.updater = scheduler.NewScheduler(app.rates, cfg.Scheduler, clk, log)
	}

	log.Info("app initialized",
		slog.String("version", cfg.App.Version),
		slog.String("api_prefix", httptransport.APIPrefix(cfg.App.Version)),
		slog.Bool("scheduler_enabled", cfg.Scheduler.Enabled),
		slog.Bool("kafka_enabled", cfg.Kafka.Enabled),
		slog.String("http_addr", cfg.Server.Addr),
	)
	return app, nil
}

func (a *App) Run(ctx context.Context) error {
	if a.updater != nil {
		a.log.Info("starting updater")
		go a.updater.Start(ctx)
	}

	a.log.Info("starting server", slog.String("addr", a.cfg.Server.Addr))
	errCh := make(chan error, 1)
	go func() {
		if err := a.e.StartServer(a.serv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", slog.String("error", err.Error()))
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}
	if err := a.Shutdown(context.Background()); err != nil {
		return err
	}
	return runErr
}

func (a *App) Shutdown(ctx context.Context) error {
	timeout := a.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	shCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if a.e != nil {
		if err := a.e.Shutdown(shCtx); err != nil {
			a.log.Error("http shutdown error", slog.String("error", err.Error()))
		}
	}

	// незавершённые задачи догрузки помечаются FAILED
	if a.batch != nil {
		a.batch.Close()
	}

	if a.events != nil {
		if err := a.events.Close(); err != nil {
			a.log.Error("kafka writer close error", slog.String("error", err.Error()))
		}
	}

	if a.db != nil {
		a.db.Close()
	}

	a.log.Info("application stopped")
	return nil
}
