package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/service/gateway"
	"github.com/labstack/echo/v4"
)

type ProviderLister interface {
	Current(ctx context.Context) ([]domain.Provider, domain.ProviderName, error)
}

// ProviderView — строка провайдера для API: ключ замаскирован.
type ProviderView struct {
	domain.Provider
	Key     string `json:"key"`
	Current bool   `json:"current"`
}

type ProviderHandler struct {
	logger *slog.Logger
	svc    ProviderLister
}

func NewProviderHandler(logger *slog.Logger, svc ProviderLister) *ProviderHandler {
	return &ProviderHandler{logger: logger, svc: svc}
}

func (h *ProviderHandler) RegisterRoutes(r Router) {
	r.GET("/providers", h.List)
}

func (h *ProviderHandler) List(c echo.Context) error {
	rows, current, err := h.svc.Current(c.Request().Context())
	if err != nil {
		return writeError(c, h.logger, "ListProviders", err)
	}
	out := make([]ProviderView, 0, len(rows))
	for _, p := range rows {
		out = append(out, ProviderView{
			Provider: p,
			Key:      gateway.MaskKey(p.Key),
			Current:  current != "" && p.Name == current,
		})
	}
	return c.JSON(http.StatusOK, out)
}
