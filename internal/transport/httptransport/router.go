package httptransport

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/config"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/infra/metrics"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// Handlers — все группы маршрутов API.
type Handlers struct {
	Rates      *RatesHandler
	Batches    *BatchHandler
	Currencies *CurrencyHandler
	Providers  *ProviderHandler
}

// APIPrefix — "/v<major>" по версии приложения ("1.4.2" -> "/v1").
func APIPrefix(version string) string {
	major, _, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(version), "v"), ".")
	if major == "" {
		major = "1"
	}
	return "/v" + major
}

// NewRouter собирает echo: middleware, маршруты API, /version и /metrics.
func NewRouter(cfg config.Config, h Handlers, logger *slog.Logger, m *metrics.Metrics, gatherer prometheus.Gatherer) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()

	accessLog, err := RequestLogger(logger, m)
	if err != nil {
		return nil, fmt.Errorf("request id generator: %w", err)
	}
	e.Use(accessLog)
	e.Use(middleware.Recover())

	if cfg.RateLimit.Enabled {
		rate, err := limiter.NewRateFromFormatted(cfg.RateLimit.Rate)
		if err != nil {
			return nil, fmt.Errorf("rate limit %q: %w", cfg.RateLimit.Rate, err)
		}
		metricsPath := cfg.Metrics.Path
		e.Use(RateLimit(limiter.New(memory.NewStore(), rate), logger, func(c echo.Context) bool {
			return c.Path() == metricsPath
		}))
	}

	api := e.Group(APIPrefix(cfg.App.Version))
	if h.Rates != nil {
		h.Rates.RegisterRoutes(api)
	}
	if h.Batches != nil {
		h.Batches.RegisterRoutes(api)
	}
	if h.Providers != nil {
		h.Providers.RegisterRoutes(api)
	}
	if h.Currencies != nil {
		h.Currencies.RegisterRoutes(e)
	}

	version := cfg.App.Version
	e.GET("/version", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"version": version})
	})
	if cfg.Metrics.Enabled && gatherer != nil {
		e.GET(cfg.Metrics.Path, echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	return e, nil
}
