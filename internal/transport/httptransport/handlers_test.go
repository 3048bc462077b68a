package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/config"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	derrors "github.com/NastyaGoryachaya/currency-rate-service/internal/errors"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/infra/metrics"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRates struct{ mock.Mock }

func (m *mockRates) Resolve(ctx context.Context, source string, from, to time.Time) (domain.GroupedRates, error) {
	args := m.Called(ctx, source, from, to)
	g, _ := args.Get(0).(domain.GroupedRates)
	return g, args.Error(1)
}

func (m *mockRates) ResolveConversion(ctx context.Context, source, target string, amount decimal.Decimal) (domain.Conversion, error) {
	args := m.Called(ctx, source, target, amount.String())
	conv, _ := args.Get(0).(domain.Conversion)
	return conv, args.Error(1)
}

type mockBatches struct{ mock.Mock }

func (m *mockBatches) StartBatch(ctx context.Context, source string, from, to time.Time) (uuid.UUID, error) {
	args := m.Called(ctx, source, from, to)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockBatches) Job(ctx context.Context, id uuid.UUID) (domain.BatchProcess, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.BatchProcess), args.Error(1)
}

type mockCurrencies struct{ mock.Mock }

func (m *mockCurrencies) List(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]domain.Currency)
	return list, args.Error(1)
}

func (m *mockCurrencies) Get(ctx context.Context, code string) (domain.Currency, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.Currency), args.Error(1)
}

func (m *mockCurrencies) Create(ctx context.Context, c domain.Currency) (domain.Currency, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(domain.Currency), args.Error(1)
}

func (m *mockCurrencies) Delete(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

type mockProviders struct{ mock.Mock }

func (m *mockProviders) Current(ctx context.Context) ([]domain.Provider, domain.ProviderName, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]domain.Provider)
	return rows, args.Get(1).(domain.ProviderName), args.Error(2)
}

type testServer struct {
	e          *echo.Echo
	rates      *mockRates
	batches    *mockBatches
	currencies *mockCurrencies
	providers  *mockProviders
}

func testConfig() config.Config {
	return config.Config{
		App:       config.AppConfig{Name: "currency-rate-service", Version: "1.2.0"},
		RateLimit: config.RateLimitConfig{Enabled: false, Rate: "100-M"},
		Metrics:   config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

func newTestServer(t *testing.T, cfg config.Config) *testServer {
	t.Helper()
	s := &testServer{
		rates:      new(mockRates),
		batches:    new(mockBatches),
		currencies: new(mockCurrencies),
		providers:  new(mockProviders),
	}
	logger := slog.Default()
	reg := prometheus.NewRegistry()
	e, err := NewRouter(cfg, Handlers{
		Rates:      NewRatesHandler(logger, s.rates, time.Second),
		Batches:    NewBatchHandler(logger, s.batches, time.Second),
		Currencies: NewCurrencyHandler(logger, s.currencies),
		Providers:  NewProviderHandler(logger, s.providers),
	}, logger, metrics.New(reg), reg)
	require.NoError(t, err)
	s.e = e
	return s
}

func (s *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestGetRates_OK(t *testing.T) {
	s := newTestServer(t, testConfig())
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	g := domain.GroupedRates{}
	g.Add(domain.ExchangeRate{SourceCurrency: "USD", ExchangedCurrency: "EUR", ValuationDate: from, RateValue: decimal.RequireFromString("0.912345")})
	s.rates.On("Resolve", mock.Anything, "USD", from, to).Return(g, nil).Once()

	rec := s.do(http.MethodGet, "/v1/currency-rates?source_currency=USD&date_from=2025-03-01&date_to=2025-03-02", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"2025-03-01":{"USD/EUR":0.912345}}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(headerRequestID))
	s.rates.AssertExpectations(t)
}

func TestGetRates_FixedScaleNumbers(t *testing.T) {
	s := newTestServer(t, testConfig())
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	g := domain.GroupedRates{}
	g.Add(domain.ExchangeRate{SourceCurrency: "USD", ExchangedCurrency: "EUR", ValuationDate: day, RateValue: decimal.RequireFromString("0.900000")})
	s.rates.On("Resolve", mock.Anything, "USD", day, day).Return(g, nil).Once()

	rec := s.do(http.MethodGet, "/v1/currency-rates?source_currency=USD&date_from=2025-03-01&date_to=2025-03-01", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"USD/EUR":0.900000`)
}

func TestConvert_FixedScaleNumbers(t *testing.T) {
	s := newTestServer(t, testConfig())
	amount := decimal.RequireFromString("1.00")
	s.rates.On("ResolveConversion", mock.Anything, "USD", "EUR", "1").Return(domain.Conversion{
		Date:              "2025-03-01",
		SourceCurrency:    "USD",
		ExchangedCurrency: "EUR",
		Amount:            amount,
		Value:             amount.Mul(decimal.RequireFromString("0.900000")),
	}, nil)

	rec := s.do(http.MethodGet, "/v1/currency-converter?source_currency=USD&exchanged_currency=EUR&amount=1.00", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"amount":1.00`)
	assert.Contains(t, body, `"value":0.90`)
}

func TestGetRates_BadQuery(t *testing.T) {
	s := newTestServer(t, testConfig())

	for _, target := range []string{
		"/v1/currency-rates?date_from=2025-03-01&date_to=2025-03-02",
		"/v1/currency-rates?source_currency=USDX&date_from=2025-03-01&date_to=2025-03-02",
		"/v1/currency-rates?source_currency=USD&date_from=01-03-2025&date_to=2025-03-02",
	} {
		rec := s.do(http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, "BAD_REQUEST", decodeMap(t, rec)["error"], target)
	}
	s.rates.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetRates_ServiceErrorsMapToStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", derrors.ErrInvalidDateRange, http.StatusBadRequest, "BAD_REQUEST"},
		{"no provider", derrors.Configuration("no available providers"), http.StatusServiceUnavailable, "PROVIDER_NOT_CONFIGURED"},
		{"upstream", &derrors.UpstreamError{Provider: "CurrencyBeacon", Status: 401, Detail: "bad key"}, http.StatusBadGateway, "PROVIDER_ERROR"},
		{"payload", derrors.Data("response is null"), http.StatusBadGateway, "PROVIDER_BAD_DATA"},
		{"storage", derrors.Storage("select rates", errors.New("down")), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t, testConfig())
			s.rates.On("Resolve", mock.Anything, "USD", mock.Anything, mock.Anything).Return(nil, tc.err)

			rec := s.do(http.MethodGet, "/v1/currency-rates?source_currency=USD&date_from=2025-03-01&date_to=2025-03-02", "")
			assert.Equal(t, tc.status, rec.Code)
			body := decodeMap(t, rec)
			assert.Equal(t, tc.code, body["error"])
			if tc.status == http.StatusInternalServerError {
				assert.NotContains(t, body, "detail")
			}
		})
	}
}

func TestConvert(t *testing.T) {
	s := newTestServer(t, testConfig())
	s.rates.On("ResolveConversion", mock.Anything, "USD", "EUR", "1.5").Return(domain.Conversion{
		Date:              "2025-03-01",
		SourceCurrency:    "USD",
		ExchangedCurrency: "EUR",
		Amount:            decimal.RequireFromString("1.5"),
		Value:             decimal.RequireFromString("1.35"),
	}, nil)

	rec := s.do(http.MethodGet, "/v1/currency-converter?source_currency=USD&exchanged_currency=EUR&amount=1.50", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeMap(t, rec)
	assert.EqualValues(t, 1.35, body["value"])
	assert.Contains(t, rec.Body.String(), `"amount":1.50`)
	assert.NotContains(t, body, "timestamp")

	rec = s.do(http.MethodGet, "/v1/currency-converter?source_currency=USD&exchanged_currency=EUR&amount=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConvert_UpstreamStatusIsExposed(t *testing.T) {
	s := newTestServer(t, testConfig())
	s.rates.On("ResolveConversion", mock.Anything, "USD", "EUR", "2").
		Return(nil, &derrors.UpstreamError{Provider: "CurrencyBeacon", Status: 429, Detail: "limit"})

	rec := s.do(http.MethodGet, "/v1/currency-converter?source_currency=USD&exchanged_currency=EUR&amount=2", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.EqualValues(t, 429, decodeMap(t, rec)["upstream_status"])
}

func TestBatch_StartAndPoll(t *testing.T) {
	s := newTestServer(t, testConfig())
	id := uuid.New()
	from := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)
	s.batches.On("StartBatch", mock.Anything, "EUR", from, to).Return(id, nil)
	s.batches.On("Job", mock.Anything, id).Return(domain.BatchProcess{
		ID:               id,
		Status:           domain.BatchProcessing,
		Processes:        3,
		ProcessesCounter: 2,
		SourceCurrency:   "EUR",
	}, nil)

	rec := s.do(http.MethodPost, "/v1/currency-history-rates", `{"source_currency":"EUR","date_from":"2000-01-01","date_to":"2020-12-31"}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, id.String(), decodeMap(t, rec)["process_id"])

	rec = s.do(http.MethodGet, "/v1/currency-history-rates/"+id.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeMap(t, rec)
	assert.EqualValues(t, 66, body["coverage"])
	assert.Equal(t, "PROCESSING", body["status"])
	assert.NotContains(t, body, "ending_time")
}

func TestBatch_PollErrors(t *testing.T) {
	s := newTestServer(t, testConfig())
	missing := uuid.New()
	s.batches.On("Job", mock.Anything, missing).Return(domain.BatchProcess{}, derrors.ErrNotFound)

	rec := s.do(http.MethodGet, "/v1/currency-history-rates/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/v1/currency-history-rates/"+missing.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCurrencies_CRUD(t *testing.T) {
	s := newTestServer(t, testConfig())
	chf := domain.Currency{Code: "CHF", Name: "Swiss franc", Symbol: "Fr"}
	s.currencies.On("List", mock.Anything).Return([]domain.Currency{chf}, nil)
	s.currencies.On("Create", mock.Anything, chf).Return(chf, nil)
	s.currencies.On("Get", mock.Anything, "JPY").Return(domain.Currency{}, derrors.ErrNotFound)
	s.currencies.On("Delete", mock.Anything, "CHF").Return(nil)

	rec := s.do(http.MethodGet, "/currencies", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"code":"CHF","name":"Swiss franc","symbol":"Fr"}]`, rec.Body.String())

	rec = s.do(http.MethodPost, "/currencies", `{"code":"CHF","name":"Swiss franc","symbol":"Fr"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(http.MethodPost, "/currencies", `{"code":"CH","name":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/currencies/JPY", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete, "/currencies/CHF", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	s.currencies.AssertExpectations(t)
}

func TestProviders_KeyIsMasked(t *testing.T) {
	s := newTestServer(t, testConfig())
	s.providers.On("Current", mock.Anything).Return([]domain.Provider{
		{Name: domain.ProviderCurrencyBeacon, Key: "abcd1234efgh5678", Enabled: true, Priority: 1},
		{Name: domain.ProviderMock, Key: "", Enabled: true, Priority: 2},
	}, domain.ProviderCurrencyBeacon, nil)

	rec := s.do(http.MethodGet, "/v1/providers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "abcd1234efgh5678")

	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "abcd...5678", out[0]["key"])
	assert.Equal(t, true, out[0]["current"])
	assert.Equal(t, false, out[1]["current"])
}

func TestVersionAndMetrics(t *testing.T) {
	s := newTestServer(t, testConfig())

	rec := s.do(http.MethodGet, "/version", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"version":"1.2.0"}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "currency_rate_service_http_requests_total")
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, Rate: "2-M"}
	s := newTestServer(t, cfg)

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/version", "").Code)
	}
	rec := s.do(http.MethodGet, "/version", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", decodeMap(t, rec)["error"])

	// /metrics не лимитируется
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/metrics", "").Code)
}

func TestAPIPrefix(t *testing.T) {
	assert.Equal(t, "/v1", APIPrefix("1.0.0"))
	assert.Equal(t, "/v2", APIPrefix("v2.3"))
	assert.Equal(t, "/v1", APIPrefix(""))
}
