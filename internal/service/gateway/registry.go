package gateway

import (
	"context"
	"time"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/config"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	derrors "github.com/NastyaGoryachaya/currency-rate-service/internal/errors"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/infra/api_client"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=registry.go -destination=mocks/registry_mock.go -package=mocks

// RateSource — возможность конкретного провайдера курсов
type RateSource interface {
	FetchRange(ctx context.Context, source string, targets []string, from, to time.Time) (domain.RateMatrix, error)
	FetchConversion(ctx context.Context, source, target string, amount decimal.Decimal) (domain.Conversion, error)
}

// Factory строит реализацию провайдера по имени и ключу из строки providers.
type Factory func(name domain.ProviderName, key string) (RateSource, error)

// NewFactory — закрытый реестр: имя, которого нет в switch, это ошибка конфигурации.
func NewFactory(cfg config.ProvidersConfig) Factory {
	return func(name domain.ProviderName, key string) (RateSource, error) {
		switch name {
		case domain.ProviderCurrencyBeacon:
			return api_client.NewCurrencyBeaconClient(cfg.CurrencyBeacon, key), nil
		case domain.ProviderMock:
			return api_client.NewMockProviderClient(key), nil
		default:
			return nil, derrors.Configuration("provider %s is not supported", name)
		}
	}
}
