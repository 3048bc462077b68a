package api_client

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	derrors "github.com/NastyaGoryachaya/currency-rate-service/internal/errors"
	"github.com/shopspring/decimal"
)

// MockProviderClient — провайдер без сети: случайные курсы в диапазоне [0.5, 1.5].
// Используется для локальной разработки и как резервная строка в providers.
type MockProviderClient struct {
	now func() time.Time
}

func NewMockProviderClient(_ string) *MockProviderClient {
	return &MockProviderClient{now: func() time.Time { return time.Now().UTC() }}
}

func randomRate() decimal.Decimal {
	return decimal.NewFromFloat(0.5 + rand.Float64()).Round(8)
}

func (m *MockProviderClient) FetchRange(ctx context.Context, source string, targets []string, from, to time.Time) (domain.RateMatrix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	days := domain.DaysInRange(from, to)
	if len(days) == 0 {
		return nil, derrors.Data("time series rates not found")
	}

	out := make(domain.RateMatrix, len(days))
	for _, day := range days {
		byTarget := make(map[string]decimal.NullDecimal, len(targets))
		for _, t := range targets {
			byTarget[t] = decimal.NewNullDecimal(randomRate())
		}
		out[domain.FormatDate(day)] = byTarget
	}
	return out, nil
}

func (m *MockProviderClient) FetchConversion(ctx context.Context, source, target string, amount decimal.Decimal) (domain.Conversion, error) {
	if err := ctx.Err(); err != nil {
		return domain.Conversion{}, err
	}
	now := m.now()
	return domain.Conversion{
		Timestamp:         now.Unix(),
		Date:              domain.FormatDate(now),
		SourceCurrency:    source,
		ExchangedCurrency: target,
		Amount:            amount,
		Value:             randomRate().Mul(amount),
	}, nil
}
