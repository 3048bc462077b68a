package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	"github.com/labstack/echo/v4"
)

type CurrencyService interface {
	List(ctx context.Context) ([]domain.Currency, error)
	Get(ctx context.Context, code string) (domain.Currency, error)
	Create(ctx context.Context, c domain.Currency) (domain.Currency, error)
	Delete(ctx context.Context, code string) error
}

type currencyRequest struct {
	Code   string `json:"code" validate:"required,len=3,alpha"`
	Name   string `json:"name" validate:"required,max=64"`
	Symbol string `json:"symbol" validate:"max=8"`
}

type CurrencyHandler struct {
	logger *slog.Logger
	svc    CurrencyService
}

func NewCurrencyHandler(logger *slog.Logger, svc CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{logger: logger, svc: svc}
}

func (h *CurrencyHandler) RegisterRoutes(r Router) {
	r.GET("/currencies", h.List)
	r.POST("/currencies", h.Create)
	r.GET("/currencies/:code", h.Get)
	r.DELETE("/currencies/:code", h.Delete)
}

func (h *CurrencyHandler) List(c echo.Context) error {
	list, err := h.svc.List(c.Request().Context())
	if err != nil {
		return writeError(c, h.logger, "ListCurrencies", err)
	}
	if list == nil {
		list = []domain.Currency{}
	}
	return c.JSON(http.StatusOK, list)
}

func (h *CurrencyHandler) Get(c echo.Context) error {
	cur, err := h.svc.Get(c.Request().Context(), c.Param("code"))
	if err != nil {
		return writeError(c, h.logger, "GetCurrency", err)
	}
	return c.JSON(http.StatusOK, cur)
}

func (h *CurrencyHandler) Create(c echo.Context) error {
	var req currencyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, h.logger, "CreateCurrency", err)
	}
	cur, err := h.svc.Create(c.Request().Context(), domain.Currency{Code: req.Code, Name: req.Name, Symbol: req.Symbol})
	if err != nil {
		return writeError(c, h.logger, "CreateCurrency", err)
	}
	return c.JSON(http.StatusCreated, cur)
}

func (h *CurrencyHandler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("code")); err != nil {
		return writeError(c, h.logger, "DeleteCurrency", err)
	}
	return c.NoContent(http.StatusNoContent)
}
