package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	derrors "github.com/NastyaGoryachaya/currency-rate-service/internal/errors"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/infra/metrics"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=gateway.go -destination=mocks/gateway_mock.go -package=mocks

type ProviderReader interface {
	ListProviders(ctx context.Context) ([]domain.Provider, error)
}

// Gateway выбирает текущего провайдера на каждый вызов и делегирует ему запрос.
type Gateway struct {
	providers ProviderReader
	build     Factory
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewGateway(providers ProviderReader, build Factory, m *metrics.Metrics, logger *slog.Logger) *Gateway {
	return &Gateway{
		providers: providers,
		build:     build,
		metrics:   m,
		logger:    logger,
	}
}

// SelectProvider — включённый провайдер с наименьшим priority; false если таких нет.
func SelectProvider(rows []domain.Provider) (domain.Provider, bool) {
	var (
		best  domain.Provider
		found bool
	)
	for _, p := range rows {
		if !p.Enabled {
			continue
		}
		if !found || p.Priority < best.Priority {
			best, found = p, true
		}
	}
	return best, found
}

// MaskKey — ключ для логов и ответов API
func MaskKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// Current — строки провайдеров и имя текущего ("" если не выбран).
func (g *Gateway) Current(ctx context.Context) ([]domain.Provider, domain.ProviderName, error) {
	rows, err := g.providers.ListProviders(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("list providers: %w", err)
	}
	p, ok := SelectProvider(rows)
	if !ok {
		return rows, "", nil
	}
	return rows, p.Name, nil
}

func (g *Gateway) resolve(ctx context.Context) (domain.Provider, RateSource, error) {
	rows, err := g.providers.ListProviders(ctx)
	if err != nil {
		return domain.Provider{}, nil, fmt.Errorf("list providers: %w", err)
	}

	p, ok := SelectProvider(rows)
	if !ok {
		g.logger.Warn("no provider has been selected")
		return domain.Provider{}, nil, derrors.Configuration("no available providers")
	}
	g.logger.Info("provider has been selected", "provider", p.Name, "key", MaskKey(p.Key))

	src, err := g.build(p.Name, p.Key)
	if err != nil {
		g.logger.Error("provider is not supported", "provider", p.Name, "err", err)
		return domain.Provider{}, nil, err
	}
	return p, src, nil
}

// FetchRange — матрица курсов source к targets за [from, to] и имя провайдера.
func (g *Gateway) FetchRange(ctx context.Context, source string, targets []string, from, to time.Time) (domain.RateMatrix, string, error) {
	p, src, err := g.resolve(ctx)
	if err != nil {
		return nil, "", err
	}

	start := time.Now()
	matrix, err := src.FetchRange(ctx, source, targets, from, to)
	g.metrics.ObserveProviderCall(p.Name, "timeseries", err, time.Since(start))
	if err != nil {
		g.logger.Error("fetch time series failed",
			"provider", p.Name,
			"source", source,
			"from", domain.FormatDate(from),
			"to", domain.FormatDate(to),
			"err", err,
		)
		return nil, string(p.Name), fmt.Errorf("fetch %s %s..%s from %s: %w",
			source, domain.FormatDate(from), domain.FormatDate(to), p.Name, err)
	}
	return matrix, string(p.Name), nil
}

// FetchConversion — конвертация amount из source в target у текущего провайдера.
func (g *Gateway) FetchConversion(ctx context.Context, source, target string, amount decimal.Decimal) (domain.Conversion, string, error) {
	p, src, err := g.resolve(ctx)
	if err != nil {
		return domain.Conversion{}, "", err
	}

	start := time.Now()
	conv, err := src.FetchConversion(ctx, source, target, amount)
	g.metrics.ObserveProviderCall(p.Name, "convert", err, time.Since(start))
	if err != nil {
		g.logger.Error("fetch conversion failed", "provider", p.Name, "source", source, "target", target, "err", err)
		return domain.Conversion{}, string(p.Name), fmt.Errorf("convert %s to %s via %s: %w", source, target, p.Name, err)
	}
	return conv, string(p.Name), nil
}
