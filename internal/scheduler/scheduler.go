package scheduler

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/config"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/pkg/clock"
)

const defaultInterval = time.Hour

// Resolver — то, что нужно планировщику от сервиса курсов
type Resolver interface {
	Resolve(ctx context.Context, source string, from, to time.Time) (domain.GroupedRates, error)
}

type Scheduler struct {
	resolver Resolver
	sources  []string
	lookback int
	interval time.Duration
	clock    clock.Clock
	logger   *slog.Logger
}

// NewScheduler — конструктор планировщика прогрева курсов за последние дни
func NewScheduler(resolver Resolver, cfg config.SchedulerConfig, clk clock.Clock, logger *slog.Logger) *Scheduler {
	lookback := cfg.LookbackDays
	if lookback < 1 {
		lookback = 1
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	sources := make([]string, 0, len(cfg.Sources))
	for _, s := range cfg.Sources {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			sources = append(sources, s)
		}
	}
	return &Scheduler{
		resolver: resolver,
		sources:  sources,
		lookback: lookback,
		interval: interval,
		clock:    clk,
		logger:   logger,
	}
}

// Start — запускает периодическое выполнение задачи до остановки контекста
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("scheduler started", slog.Any("sources", s.sources))
	s.logger.Debug("scheduler interval configured", slog.Duration("interval", s.interval), slog.Int("lookback_days", s.lookback))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// первый запуск сразу
	s.RunOnce(ctx)

	for {
		select {
		case <-ticker.C:
			s.RunOnce(ctx)
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		}
	}
}

// RunOnce — одна итерация: догрузить последние lookback дней для каждой source.
// Ошибка по одной валюте не мешает остальным.
func (s *Scheduler) RunOnce(ctx context.Context) {
	to := domain.Day(s.clock.Now())
	from := to.AddDate(0, 0, -(s.lookback - 1))
	s.logger.Debug("tick: warming rates", slog.String("from", domain.FormatDate(from)), slog.String("to", domain.FormatDate(to)))

	for _, source := range s.sources {
		if ctx.Err() != nil {
			return
		}
		rates, err := s.resolver.Resolve(ctx, source, from, to)
		if err != nil {
			s.logger.Error("tick: warm-up failed", slog.String("source", source), slog.Any("err", err))
			continue
		}
		s.logger.Debug("tick: source warmed", slog.String("source", source), slog.Int("dates", len(rates)))
	}
	s.logger.Debug("tick: completed")
}
