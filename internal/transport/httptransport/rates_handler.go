package httptransport

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	derrors "github.com/NastyaGoryachaya/currency-rate-service/internal/errors"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// RatesService — абстракция для работы с курсами.
type RatesService interface {
	Resolve(ctx context.Context, source string, from, to time.Time) (domain.GroupedRates, error)
	ResolveConversion(ctx context.Context, source, target string, amount decimal.Decimal) (domain.Conversion, error)
}

// Router — общая часть *echo.Echo и *echo.Group, нужная для регистрации маршрутов.
type Router interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

type ratesQuery struct {
	SourceCurrency string `query:"source_currency" validate:"required,len=3,alpha"`
	DateFrom       string `query:"date_from" validate:"required,datetime=2006-01-02"`
	DateTo         string `query:"date_to" validate:"required,datetime=2006-01-02"`
}

type converterQuery struct {
	SourceCurrency    string `query:"source_currency" validate:"required,len=3,alpha"`
	ExchangedCurrency string `query:"exchanged_currency" validate:"required,len=3,alpha"`
	Amount            string `query:"amount" validate:"required"`
}

// RatesHandler — HTTP‑handler для курсов и конвертера.
type RatesHandler struct {
	logger  *slog.Logger
	svc     RatesService
	timeout time.Duration
}

func NewRatesHandler(logger *slog.Logger, svc RatesService, timeout time.Duration) *RatesHandler {
	if logger == nil {
		log.Fatal("nil logger")
	}
	if svc == nil {
		log.Fatal("nil service")
	}
	// Задаём таймаут по умолчанию, если он не задан
	if timeout <= 0 {
		timeout = time.Second * 25
	}
	return &RatesHandler{
		logger:  logger,
		svc:     svc,
		timeout: timeout,
	}
}

func (h *RatesHandler) RegisterRoutes(r Router) {
	r.GET("/currency-rates", h.GetRates)
	r.GET("/currency-converter", h.Convert)
}

func (h *RatesHandler) GetRates(c echo.Context) error {
	var q ratesQuery
	if err := bindAndValidate(c, &q); err != nil {
		return writeError(c, h.logger, "GetRates", err)
	}
	from, _ := domain.ParseDate(q.DateFrom)
	to, _ := domain.ParseDate(q.DateTo)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	out, err := h.svc.Resolve(ctx, q.SourceCurrency, from, to)
	if err != nil {
		return writeError(c, h.logger, "GetRates", err)
	}
	if out == nil {
		out = domain.GroupedRates{}
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RatesHandler) Convert(c echo.Context) error {
	var q converterQuery
	if err := bindAndValidate(c, &q); err != nil {
		return writeError(c, h.logger, "Convert", err)
	}
	amount, err := decimal.NewFromString(q.Amount)
	if err != nil {
		return writeError(c, h.logger, "Convert", fmt.Errorf("%w: amount %q is not a number", derrors.ErrInvalidAmount, q.Amount))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	out, err := h.svc.ResolveConversion(ctx, q.SourceCurrency, q.ExchangedCurrency, amount)
	if err != nil {
		return writeError(c, h.logger, "Convert", err)
	}
	return c.JSON(http.StatusOK, out)
}

// bindAndValidate — ошибки биндинга и валидации приводятся к ErrValidation.
func bindAndValidate(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return fmt.Errorf("%w: %v", derrors.ErrValidation, err)
	}
	return c.Validate(dst)
}
