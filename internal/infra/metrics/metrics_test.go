package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	derrors "github.com/NastyaGoryachaya/currency-rate-service/internal/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "success", Outcome(nil))
	assert.Equal(t, "provider_error", Outcome(&derrors.UpstreamError{Status: 500}))
	assert.Equal(t, "data_error", Outcome(fmt.Errorf("gap: %w", derrors.ErrData)))
	assert.Equal(t, "configuration_error", Outcome(derrors.Configuration("no available providers")))
	assert.Equal(t, "error", Outcome(errors.New("boom")))
}

func TestMetrics_Record(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveProviderCall(domain.ProviderMock, "timeseries", nil, 10*time.Millisecond)
	m.ObserveProviderCall(domain.ProviderMock, "timeseries", derrors.Data("x"), time.Millisecond)
	m.RecordBatchJob(domain.BatchDone)
	m.RecordBatchUnit(nil)
	m.AddRatesInserted(3)
	m.AddRatesInserted(0)
	m.ObserveHTTP("GET", "/v1/currency-rates", 200, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderRequestsTotal.WithLabelValues("MockProvider", "timeseries", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderRequestsTotal.WithLabelValues("MockProvider", "timeseries", "data_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BatchJobsTotal.WithLabelValues("DONE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BatchUnitsTotal.WithLabelValues("success")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.RatesInsertedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/v1/currency-rates", "200")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveProviderCall(domain.ProviderMock, "convert", nil, 0)
		m.RecordBatchJob(domain.BatchFailed)
		m.RecordBatchUnit(nil)
		m.AddRatesInserted(1)
		m.ObserveHTTP("GET", "/", 200, 0)
	})
}
