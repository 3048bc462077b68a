package api_client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/config"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	derrors "github.com/NastyaGoryachaya/currency-rate-service/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *CurrencyBeaconClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewCurrencyBeaconClient(config.CurrencyBeaconConfig{BaseURL: srv.URL + "/v1", Timeout: 2 * time.Second}, "secret")
}

func date(s string) time.Time {
	d, _ := domain.ParseDate(s)
	return d
}

func TestFetchRange_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/timeseries", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		q := r.URL.Query()
		assert.Equal(t, "2025-04-01", q.Get("start_date"))
		assert.Equal(t, "2025-04-02", q.Get("end_date"))
		assert.Equal(t, "USD", q.Get("base"))
		assert.Equal(t, "EUR,GBP", q.Get("symbols"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"meta": {"code": 200},
			"response": {
				"2025-04-01": {"EUR": null, "GBP": 0.77123456},
				"2025-04-02": {"EUR": 0.91, "GBP": 0.77}
			}
		}`))
	})

	got, err := c.FetchRange(context.Background(), "USD", []string{"EUR", "GBP"}, date("2025-04-01"), date("2025-04-02"))
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.False(t, got["2025-04-01"]["EUR"].Valid)
	assert.True(t, got["2025-04-01"]["GBP"].Decimal.Equal(decimal.RequireFromString("0.77123456")))
	assert.True(t, got["2025-04-02"]["EUR"].Valid)
}

func TestFetchRange_UpstreamError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"meta": {"code": 401, "error_type": "auth", "error_detail": "invalid api key"}}`))
	})

	_, err := c.FetchRange(context.Background(), "USD", []string{"EUR"}, date("2025-04-01"), date("2025-04-01"))

	require.ErrorIs(t, err, derrors.ErrProvider)
	var ue *derrors.UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusUnauthorized, ue.Status)
	assert.Equal(t, "invalid api key", ue.Detail)
}

func TestFetchRange_UpstreamErrorPlainBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway"))
	})

	_, err := c.FetchRange(context.Background(), "USD", []string{"EUR"}, date("2025-04-01"), date("2025-04-01"))

	var ue *derrors.UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "bad gateway", ue.Detail)
}

func TestFetchRange_MissingPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meta": {"code": 200}}`))
	})

	_, err := c.FetchRange(context.Background(), "USD", []string{"EUR"}, date("2025-04-01"), date("2025-04-01"))

	assert.ErrorIs(t, err, derrors.ErrData)
	assert.NotErrorIs(t, err, derrors.ErrProvider)
}

func TestFetchRange_WrongShape(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response": ["not", "a", "map"]}`))
	})

	_, err := c.FetchRange(context.Background(), "USD", []string{"EUR"}, date("2025-04-01"), date("2025-04-01"))

	assert.ErrorIs(t, err, derrors.ErrData)
}

func TestFetchConversion_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/convert", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "USD", q.Get("from"))
		assert.Equal(t, "EUR", q.Get("to"))
		assert.Equal(t, "12.5", q.Get("amount"))
		_, _ = w.Write([]byte(`{"response": {"timestamp": 1742515200, "date": "2025-03-21", "from": "USD", "to": "EUR", "amount": 12.5, "value": 11.4875}}`))
	})

	got, err := c.FetchConversion(context.Background(), "USD", "EUR", decimal.RequireFromString("12.50"))
	require.NoError(t, err)

	assert.Equal(t, int64(1742515200), got.Timestamp)
	assert.Equal(t, "2025-03-21", got.Date)
	assert.Equal(t, "USD", got.SourceCurrency)
	assert.Equal(t, "EUR", got.ExchangedCurrency)
	assert.True(t, got.Value.Equal(decimal.RequireFromString("11.4875")))
}

func TestFetchConversion_ContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchConversion(ctx, "USD", "EUR", decimal.NewFromInt(1))

	assert.ErrorIs(t, err, derrors.ErrProvider)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockProvider(t *testing.T) {
	m := NewMockProviderClient("mock_key")
	m.now = func() time.Time { return time.Date(2025, 3, 21, 10, 0, 0, 0, time.UTC) }

	matrix, err := m.FetchRange(context.Background(), "USD", []string{"EUR", "GBP"}, date("2025-03-01"), date("2025-03-03"))
	require.NoError(t, err)
	require.Len(t, matrix, 3)
	low, high := decimal.RequireFromString("0.5"), decimal.RequireFromString("1.5")
	for _, byTarget := range matrix {
		require.Len(t, byTarget, 2)
		for _, v := range byTarget {
			assert.True(t, v.Valid)
			assert.True(t, v.Decimal.GreaterThanOrEqual(low) && v.Decimal.LessThanOrEqual(high), "rate %s out of range", v.Decimal)
		}
	}

	conv, err := m.FetchConversion(context.Background(), "USD", "EUR", decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.Equal(t, "2025-03-21", conv.Date)
	assert.True(t, conv.Value.GreaterThanOrEqual(decimal.NewFromInt(5)))
	assert.True(t, conv.Value.LessThanOrEqual(decimal.NewFromInt(15)))
}
