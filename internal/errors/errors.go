package errors

import (
	"errors"
	"fmt"
)

// Классы ошибок ядра. Сервисы оборачивают их через %w, транспорт различает через errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrProvider      = errors.New("provider error")
	ErrData          = errors.New("unexpected provider data")
	ErrStorage       = errors.New("storage error")
	ErrNotFound      = errors.New("not found")
)

// UpstreamError — неуспешный ответ внешнего провайдера (статус и detail из тела ответа).
type UpstreamError struct {
	Provider string
	Status   int
	Detail   string
}

func (e *UpstreamError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: API request failed: %d", e.Provider, e.Status)
	}
	return fmt.Sprintf("%s: API request failed: %d - %s", e.Provider, e.Status, e.Detail)
}

func (e *UpstreamError) Unwrap() error { return ErrProvider }

// Validation — ошибка валидации входных данных.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Configuration — нет провайдера или провайдер не поддерживается.
func Configuration(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// Data — ответ провайдера не той формы.
func Data(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrData, fmt.Sprintf(format, args...))
}

// Storage оборачивает ошибку хранилища, сохраняя исходную цепочку.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// Частные случаи ErrValidation
var (
	ErrUnknownCurrency  = fmt.Errorf("%w: unknown currency", ErrValidation)
	ErrInvalidDateRange = fmt.Errorf("%w: invalid date range", ErrValidation)
	ErrInvalidAmount    = fmt.Errorf("%w: invalid amount", ErrValidation)
)
