package httptransport

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	derrors "github.com/NastyaGoryachaya/currency-rate-service/internal/errors"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type BatchService interface {
	StartBatch(ctx context.Context, source string, from, to time.Time) (uuid.UUID, error)
	Job(ctx context.Context, id uuid.UUID) (domain.BatchProcess, error)
}

type batchRequest struct {
	SourceCurrency string `json:"source_currency" validate:"required,len=3,alpha"`
	DateFrom       string `json:"date_from" validate:"required,datetime=2006-01-02"`
	DateTo         string `json:"date_to" validate:"required,datetime=2006-01-02"`
}

// BatchStatus — состояние задачи с процентом выполнения.
type BatchStatus struct {
	domain.BatchProcess
	Coverage int `json:"coverage"`
}

type BatchHandler struct {
	logger  *slog.Logger
	svc     BatchService
	timeout time.Duration
}

func NewBatchHandler(logger *slog.Logger, svc BatchService, timeout time.Duration) *BatchHandler {
	if timeout <= 0 {
		timeout = time.Second * 25
	}
	return &BatchHandler{logger: logger, svc: svc, timeout: timeout}
}

func (h *BatchHandler) RegisterRoutes(r Router) {
	r.POST("/currency-history-rates", h.Start)
	r.GET("/currency-history-rates/:process_id", h.Status)
}

// Start запускает догрузку и сразу отвечает id задачи.
func (h *BatchHandler) Start(c echo.Context) error {
	var req batchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, h.logger, "StartBatch", err)
	}
	from, _ := domain.ParseDate(req.DateFrom)
	to, _ := domain.ParseDate(req.DateTo)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	id, err := h.svc.StartBatch(ctx, req.SourceCurrency, from, to)
	if err != nil {
		return writeError(c, h.logger, "StartBatch", err)
	}
	return c.JSON(http.StatusAccepted, echo.Map{"process_id": id.String()})
}

func (h *BatchHandler) Status(c echo.Context) error {
	raw := c.Param("process_id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return writeError(c, h.logger, "BatchStatus", fmt.Errorf("%w: process_id %q is not a uuid", derrors.ErrValidation, raw))
	}

	job, err := h.svc.Job(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.logger, "BatchStatus", err)
	}
	return c.JSON(http.StatusOK, BatchStatus{BatchProcess: job, Coverage: job.Coverage()})
}
