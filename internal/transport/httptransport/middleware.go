package httptransport

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/infra/metrics"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/ports/errcode"
	nanoid "github.com/jaevor/go-nanoid"
	"github.com/labstack/echo/v4"
	"github.com/ulule/limiter/v3"
)

const (
	headerRequestID = "X-Request-ID"
	ctxRequestID    = "request_id"
)

func requestID(c echo.Context) string {
	id, _ := c.Get(ctxRequestID).(string)
	return id
}

// RequestLogger присваивает запросу id (или берёт из заголовка), пишет строку
// access-лога и HTTP-метрики. Путь в метриках — шаблон маршрута echo.
func RequestLogger(logger *slog.Logger, m *metrics.Metrics) (echo.MiddlewareFunc, error) {
	newID, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			id := c.Request().Header.Get(headerRequestID)
			if id == "" {
				id = newID()
			}
			c.Set(ctxRequestID, id)
			c.Response().Header().Set(headerRequestID, id)

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			d := time.Since(start)
			m.ObserveHTTP(c.Request().Method, path, status, d)
			logger.Info("HTTP request",
				slog.String("request_id", id),
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.String("query", c.Request().URL.RawQuery),
				slog.Int("status", status),
				slog.Duration("duration", d),
				slog.String("remote_addr", c.RealIP()),
			)
			return nil
		}
	}, nil
}

// RateLimit ограничивает число запросов с одного IP. Запросы, для которых skip
// возвращает true, не учитываются.
func RateLimit(l *limiter.Limiter, logger *slog.Logger, skip func(echo.Context) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skip != nil && skip(c) {
				return next(c)
			}
			ip := c.RealIP()
			lc, err := l.Get(c.Request().Context(), ip)
			if err != nil {
				logger.Error("failed to get rate limit context", slog.String("ip", ip), slog.String("error", err.Error()))
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": errcode.Internal})
			}
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.FormatInt(lc.Limit, 10))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(lc.Remaining, 10))
			if lc.Reached {
				logger.Warn("rate limit exceeded", slog.String("ip", ip), slog.Int64("limit", lc.Limit))
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": errcode.TooManyRequests})
			}
			return next(c)
		}
	}
}
