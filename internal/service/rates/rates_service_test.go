package rates_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	derrors "github.com/NastyaGoryachaya/currency-rate-service/internal/errors"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/pkg/clock"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/repository"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/service/gaps"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/service/rates"
	ratesmocks "github.com/NastyaGoryachaya/currency-rate-service/internal/service/rates/mocks"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	day1  = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	day2  = time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	day3  = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	today = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	codes = []string{"EUR", "GBP", "USD"}
)

type fixture struct {
	currencies *ratesmocks.MockCurrencyReader
	gaps       *ratesmocks.MockGapFinder
	fetcher    *ratesmocks.MockRateFetcher
	store      *ratesmocks.MockRateStore
	svc        rates.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		currencies: ratesmocks.NewMockCurrencyReader(ctrl),
		gaps:       ratesmocks.NewMockGapFinder(ctrl),
		fetcher:    ratesmocks.NewMockRateFetcher(ctrl),
		store:      ratesmocks.NewMockRateStore(ctrl),
	}
	clk := clock.NewFixed(today.Add(15 * time.Hour))
	f.svc = rates.NewServiceWithClock(f.currencies, f.gaps, f.fetcher, f.store, clk, slog.Default())
	return f
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func grouped(rs ...domain.ExchangeRate) domain.GroupedRates {
	g := domain.GroupedRates{}
	for _, r := range rs {
		g.Add(r)
	}
	return g
}

func rate(day time.Time, target, v string) domain.ExchangeRate {
	return domain.ExchangeRate{SourceCurrency: "USD", ExchangedCurrency: target, ValuationDate: day, RateValue: dec(v)}
}

func TestResolve_CoveredShortCircuits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	stored := grouped(rate(day1, "EUR", "0.91"), rate(day2, "EUR", "0.92"))

	f.currencies.EXPECT().AllCodes(gomock.Any()).Return(codes, nil)
	f.gaps.EXPECT().Detect(gomock.Any(), "USD", day1, day2).Return(gaps.Result{Covered: true, Rates: stored}, nil)
	// ни провайдера, ни повторного чтения хранилища

	got, err := f.svc.Resolve(ctx, "usd", day1, day2)
	require.NoError(t, err)
	assert.Equal(t, stored, got)
}

func TestResolve_FillsEveryGapWithOtherCurrencies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.currencies.EXPECT().AllCodes(gomock.Any()).Return(codes, nil)
	f.gaps.EXPECT().Detect(gomock.Any(), "USD", day1, day3).Return(gaps.Result{
		Gaps: []domain.Gap{{day1}, {day3}},
	}, nil)

	for _, day := range []time.Time{day1, day3} {
		ds := domain.FormatDate(day)
		f.fetcher.EXPECT().
			FetchRange(gomock.Any(), "USD", []string{"EUR", "GBP"}, day, day).
			Return(domain.RateMatrix{ds: {
				"EUR": decimal.NewNullDecimal(dec("0.9123456789")),
				"GBP": {}, // null — пропускается
			}}, "CurrencyBeacon", nil)
	}

	var stored []domain.ExchangeRate
	f.store.EXPECT().InsertRates(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rs []domain.ExchangeRate) (int, error) {
			stored = append(stored, rs...)
			return len(rs), nil
		}).Times(2)

	want := grouped(rate(day1, "EUR", "0.912346"), rate(day2, "EUR", "0.9"), rate(day3, "EUR", "0.912346"))
	f.store.EXPECT().GroupedRates(gomock.Any(), "USD", day1, day3).Return(want, nil)

	got, err := f.svc.Resolve(ctx, "USD", day1, day3)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.Len(t, stored, 2)
	for _, r := range stored {
		assert.Equal(t, "EUR", r.ExchangedCurrency)
		assert.True(t, r.RateValue.Equal(dec("0.912346")), "rate must be rounded to 6 places, got %s", r.RateValue)
	}
}

func TestResolve_SecondCallIsServedFromStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	view := grouped(rate(day1, "EUR", "0.91"))

	f.currencies.EXPECT().AllCodes(gomock.Any()).Return(codes, nil).Times(2)
	gomock.InOrder(
		f.gaps.EXPECT().Detect(gomock.Any(), "USD", day1, day1).Return(gaps.Result{Gaps: []domain.Gap{{day1}}}, nil),
		f.gaps.EXPECT().Detect(gomock.Any(), "USD", day1, day1).Return(gaps.Result{Covered: true, Rates: view}, nil),
	)
	f.fetcher.EXPECT().FetchRange(gomock.Any(), "USD", gomock.Any(), day1, day1).
		Return(domain.RateMatrix{"2025-03-01": {"EUR": decimal.NewNullDecimal(dec("0.91"))}}, "MockProvider", nil).
		Times(1)
	f.store.EXPECT().InsertRates(gomock.Any(), gomock.Any()).Return(1, nil)
	f.store.EXPECT().GroupedRates(gomock.Any(), "USD", day1, day1).Return(view, nil)

	first, err := f.svc.Resolve(ctx, "USD", day1, day1)
	require.NoError(t, err)
	second, err := f.svc.Resolve(ctx, "USD", day1, day1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolve_GapFailureStopsAndKeepsEarlierGaps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	upstream := &derrors.UpstreamError{Provider: "CurrencyBeacon", Status: 401, Detail: "invalid key"}

	f.currencies.EXPECT().AllCodes(gomock.Any()).Return(codes, nil)
	f.gaps.EXPECT().Detect(gomock.Any(), "USD", day1, day3).Return(gaps.Result{
		Gaps: []domain.Gap{{day1}, {day3}},
	}, nil)
	gomock.InOrder(
		f.fetcher.EXPECT().FetchRange(gomock.Any(), "USD", gomock.Any(), day1, day1).
			Return(domain.RateMatrix{"2025-03-01": {"EUR": decimal.NewNullDecimal(dec("0.91"))}}, "CurrencyBeacon", nil),
		f.fetcher.EXPECT().FetchRange(gomock.Any(), "USD", gomock.Any(), day3, day3).
			Return(nil, "CurrencyBeacon", upstream),
	)
	f.store.EXPECT().InsertRates(gomock.Any(), gomock.Any()).Return(1, nil).Times(1)

	_, err := f.svc.Resolve(ctx, "USD", day1, day3)
	require.Error(t, err)
	assert.ErrorIs(t, err, derrors.ErrProvider)

	var ue *derrors.UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, 401, ue.Status)
}

func TestResolve_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Resolve(ctx, "USD", day2, day1)
	assert.ErrorIs(t, err, derrors.ErrInvalidDateRange)
	assert.ErrorIs(t, err, derrors.ErrValidation)

	f.currencies.EXPECT().AllCodes(gomock.Any()).Return(codes, nil)
	_, err = f.svc.Resolve(ctx, "JPY", day1, day2)
	assert.ErrorIs(t, err, derrors.ErrUnknownCurrency)
}

func TestResolve_NoTargetsSkipsProvider(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.currencies.EXPECT().AllCodes(gomock.Any()).Return([]string{"USD"}, nil)
	f.gaps.EXPECT().Detect(gomock.Any(), "USD", day1, day1).Return(gaps.Result{Gaps: []domain.Gap{{day1}}}, nil)
	f.store.EXPECT().GroupedRates(gomock.Any(), "USD", day1, day1).Return(domain.GroupedRates{}, nil)

	got, err := f.svc.Resolve(ctx, "USD", day1, day1)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestResolveConversion_UsesStoredRate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.currencies.EXPECT().AllCodes(gomock.Any()).Return(codes, nil)
	f.store.EXPECT().GetRate(gomock.Any(), "USD", "EUR", today).
		Return(&domain.ExchangeRate{SourceCurrency: "USD", ExchangedCurrency: "EUR", ValuationDate: today, RateValue: dec("0.900000")}, nil)
	// провайдер не вызывается

	got, err := f.svc.ResolveConversion(ctx, "USD", "EUR", dec("1.00"))
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", got.Date)
	assert.Equal(t, "USD", got.SourceCurrency)
	assert.Equal(t, "EUR", got.ExchangedCurrency)
	assert.True(t, got.Value.Equal(dec("0.90")), "value %s", got.Value)
	assert.Zero(t, got.Timestamp)
}

func TestResolveConversion_FetchesAndStoresImpliedRate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	amount := dec("3.00")

	f.currencies.EXPECT().AllCodes(gomock.Any()).Return(codes, nil)
	f.store.EXPECT().GetRate(gomock.Any(), "USD", "GBP", today).Return(nil, repository.ErrNotFound)
	f.fetcher.EXPECT().FetchConversion(gomock.Any(), "USD", "GBP", amount).Return(domain.Conversion{
		Timestamp:         1749513600,
		Date:              "2025-06-10",
		SourceCurrency:    "USD",
		ExchangedCurrency: "GBP",
		Amount:            amount,
		Value:             dec("2.3456789"),
	}, "CurrencyBeacon", nil)

	var upserted domain.ExchangeRate
	f.store.EXPECT().InsertRate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r domain.ExchangeRate) (bool, error) {
			upserted = r
			return true, nil
		})

	got, err := f.svc.ResolveConversion(ctx, "usd", "gbp", amount)
	require.NoError(t, err)
	assert.Zero(t, got.Timestamp)
	assert.True(t, got.Value.Equal(dec("2.3456789")))

	assert.Equal(t, "USD", upserted.SourceCurrency)
	assert.Equal(t, "GBP", upserted.ExchangedCurrency)
	assert.Equal(t, today, upserted.ValuationDate)
	assert.True(t, upserted.RateValue.Equal(dec("0.781893")), "implied rate %s", upserted.RateValue)
}

func TestResolveConversion_StorageErrorIsNotTreatedAsMiss(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.currencies.EXPECT().AllCodes(gomock.Any()).Return(codes, nil)
	f.store.EXPECT().GetRate(gomock.Any(), "USD", "EUR", today).
		Return(nil, derrors.Storage("select rate", errors.New("conn reset")))

	_, err := f.svc.ResolveConversion(ctx, "USD", "EUR", dec("1"))
	assert.ErrorIs(t, err, derrors.ErrStorage)
}

func TestResolveConversion_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, amount := range []string{"0", "-1", "1.005"} {
		_, err := f.svc.ResolveConversion(ctx, "USD", "EUR", dec(amount))
		assert.ErrorIs(t, err, derrors.ErrInvalidAmount, amount)
	}

	_, err := f.svc.ResolveConversion(ctx, "USD", "usd", dec("1"))
	assert.ErrorIs(t, err, derrors.ErrValidation)

	f.currencies.EXPECT().AllCodes(gomock.Any()).Return(codes, nil)
	_, err = f.svc.ResolveConversion(ctx, "USD", "JPY", dec("1"))
	assert.ErrorIs(t, err, derrors.ErrUnknownCurrency)
}
