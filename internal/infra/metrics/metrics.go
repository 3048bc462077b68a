package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	derrors "github.com/NastyaGoryachaya/currency-rate-service/internal/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "currency_rate_service"

// Metrics содержит все метрики сервиса. nil *Metrics допустим: методы ничего не делают.
type Metrics struct {
	// Вызовы внешних провайдеров
	ProviderRequestsTotal   *prometheus.CounterVec
	ProviderRequestDuration *prometheus.HistogramVec

	// Фоновая догрузка
	BatchJobsTotal  *prometheus.CounterVec
	BatchUnitsTotal *prometheus.CounterVec

	// Сохранённые курсы
	RatesInsertedTotal prometheus.Counter

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New регистрирует метрики в reg (в тестах — отдельный prometheus.NewRegistry()).
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ProviderRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Calls to the current rate provider by operation and outcome",
		}, []string{"provider", "operation", "outcome"}),
		ProviderRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Latency of rate provider calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider", "operation"}),
		BatchJobsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_jobs_total",
			Help:      "Batch backfill jobs by lifecycle status",
		}, []string{"status"}),
		BatchUnitsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_units_total",
			Help:      "Batch work units by outcome",
		}, []string{"outcome"}),
		RatesInsertedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rates_inserted_total",
			Help:      "Exchange rate rows created",
		}),
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

// Outcome — метка результата по классу ошибки
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, derrors.ErrConfiguration):
		return "configuration_error"
	case errors.Is(err, derrors.ErrProvider):
		return "provider_error"
	case errors.Is(err, derrors.ErrData):
		return "data_error"
	case errors.Is(err, derrors.ErrStorage):
		return "storage_error"
	default:
		return "error"
	}
}

func (m *Metrics) ObserveProviderCall(provider domain.ProviderName, operation string, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.ProviderRequestsTotal.WithLabelValues(string(provider), operation, Outcome(err)).Inc()
	m.ProviderRequestDuration.WithLabelValues(string(provider), operation).Observe(d.Seconds())
}

func (m *Metrics) RecordBatchJob(status domain.BatchStatus) {
	if m == nil {
		return
	}
	m.BatchJobsTotal.WithLabelValues(string(status)).Inc()
}

func (m *Metrics) RecordBatchUnit(err error) {
	if m == nil {
		return
	}
	m.BatchUnitsTotal.WithLabelValues(Outcome(err)).Inc()
}

func (m *Metrics) AddRatesInserted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.RatesInsertedTotal.Add(float64(n))
}

func (m *Metrics) ObserveHTTP(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}
