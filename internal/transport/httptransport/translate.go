package httptransport

import (
	"errors"
	"log/slog"
	"net/http"

	derrors "github.com/NastyaGoryachaya/currency-rate-service/internal/errors"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/ports/errcode"
	"github.com/labstack/echo/v4"
)

func FromServiceError(err error) errcode.Code {
	switch {
	case errors.Is(err, derrors.ErrValidation):
		return errcode.BadRequest
	case errors.Is(err, derrors.ErrNotFound):
		return errcode.NotFound
	case errors.Is(err, derrors.ErrConfiguration):
		return errcode.ProviderUnavailable
	case errors.Is(err, derrors.ErrData):
		return errcode.ProviderBadData
	case errors.Is(err, derrors.ErrProvider):
		return errcode.ProviderFailed
	default:
		return errcode.Internal
	}
}

func StatusFor(code errcode.Code) int {
	switch code {
	case errcode.BadRequest:
		return http.StatusBadRequest
	case errcode.NotFound:
		return http.StatusNotFound
	case errcode.ProviderUnavailable:
		return http.StatusServiceUnavailable
	case errcode.ProviderFailed, errcode.ProviderBadData:
		return http.StatusBadGateway
	case errcode.TooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// writeError — единый формат ошибки: {"error": code, "detail": ...}.
// Для внутренних ошибок detail не раскрывается.
func writeError(c echo.Context, logger *slog.Logger, op string, err error) error {
	code := FromServiceError(err)
	status := StatusFor(code)
	body := echo.Map{"error": code}

	if status >= http.StatusInternalServerError && code == errcode.Internal {
		logger.Error(op+" failed",
			slog.String("op", op),
			slog.String("request_id", requestID(c)),
			slog.String("error", err.Error()),
		)
	} else {
		body["detail"] = err.Error()
		var ue *derrors.UpstreamError
		if errors.As(err, &ue) {
			body["upstream_status"] = ue.Status
		}
	}
	return c.JSON(status, body)
}
