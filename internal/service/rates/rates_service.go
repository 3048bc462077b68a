package rates

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	derrors "github.com/NastyaGoryachaya/currency-rate-service/internal/errors"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/pkg/clock"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/repository"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/service/gaps"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=rates_service.go -destination=mocks/rates_mock.go -package=mocks

// Синхронное получение курсов: дозагрузка пропусков у провайдера и конвертация

type Service interface {
	// Resolve — курсы source за [from, to]; пропущенные даты догружаются у провайдера
	Resolve(ctx context.Context, source string, from, to time.Time) (domain.GroupedRates, error)
	// ResolveConversion — пересчёт amount из source в target по курсу на сегодня
	ResolveConversion(ctx context.Context, source, target string, amount decimal.Decimal) (domain.Conversion, error)
}

type CurrencyReader interface {
	AllCodes(ctx context.Context) ([]string, error)
}

type GapFinder interface {
	Detect(ctx context.Context, source string, from, to time.Time) (gaps.Result, error)
}

type RateFetcher interface {
	FetchRange(ctx context.Context, source string, targets []string, from, to time.Time) (domain.RateMatrix, string, error)
	FetchConversion(ctx context.Context, source, target string, amount decimal.Decimal) (domain.Conversion, string, error)
}

type RateStore interface {
	GroupedRates(ctx context.Context, source string, from, to time.Time) (domain.GroupedRates, error)
	GetRate(ctx context.Context, source, exchanged string, date time.Time) (*domain.ExchangeRate, error)
	InsertRates(ctx context.Context, rates []domain.ExchangeRate) (int, error)
	InsertRate(ctx context.Context, rate domain.ExchangeRate) (bool, error)
}

type service struct {
	currencies CurrencyReader
	gaps       GapFinder
	fetcher    RateFetcher
	store      RateStore
	clock      clock.Clock
	logger     *slog.Logger
}

func NewService(currencies CurrencyReader, detector GapFinder, fetcher RateFetcher, store RateStore, logger *slog.Logger) Service {
	return NewServiceWithClock(currencies, detector, fetcher, store, clock.NewRealClock(), logger)
}

// NewServiceWithClock - Конструктор для тестов: позволяет подставить фиксированные "часы".
func NewServiceWithClock(currencies CurrencyReader, detector GapFinder, fetcher RateFetcher, store RateStore, clk clock.Clock, logger *slog.Logger) Service {
	return &service{
		currencies: currencies,
		gaps:       detector,
		fetcher:    fetcher,
		store:      store,
		clock:      clk,
		logger:     logger,
	}
}

func (s *service) Resolve(ctx context.Context, source string, from, to time.Time) (domain.GroupedRates, error) {
	source = normalizeCode(source)
	from, to = domain.Day(from), domain.Day(to)
	if from.After(to) {
		return nil, fmt.Errorf("%w: %s is after %s", derrors.ErrInvalidDateRange, domain.FormatDate(from), domain.FormatDate(to))
	}

	codes, err := s.knownCodes(ctx, source)
	if err != nil {
		return nil, err
	}

	res, err := s.gaps.Detect(ctx, source, from, to)
	if err != nil {
		s.logger.Error("failed to detect gaps", "source", source, "err", err)
		return nil, err
	}
	if res.Covered {
		s.logger.Debug("rates fully covered", "source", source, "from", domain.FormatDate(from), "to", domain.FormatDate(to))
		return res.Rates, nil
	}

	targets := exclude(codes, source)
	if len(targets) == 0 {
		s.logger.Warn("no target currencies configured", "source", source)
	} else {
		for _, gap := range res.Gaps {
			if err := s.fillGap(ctx, source, targets, gap); err != nil {
				return nil, err
			}
		}
	}

	rates, err := s.store.GroupedRates(ctx, source, from, to)
	if err != nil {
		s.logger.Error("failed to load stored rates", "source", source, "err", err)
		return nil, err
	}
	return rates, nil
}

// fillGap догружает одну непрерывную серию пропущенных дат и сохраняет курсы.
func (s *service) fillGap(ctx context.Context, source string, targets []string, gap domain.Gap) error {
	matrix, provider, err := s.fetcher.FetchRange(ctx, source, targets, gap.First(), gap.Last())
	if err != nil {
		s.logger.Error("failed to fetch gap", "source", source, "gap", gap.String(), "err", err)
		return err
	}

	rates, skipped, err := matrix.Rates(source)
	if err != nil {
		s.logger.Error("bad provider payload", "provider", provider, "gap", gap.String(), "err", err)
		return err
	}
	inserted, err := s.store.InsertRates(ctx, rates)
	if err != nil {
		s.logger.Error("failed to store rates", "source", source, "gap", gap.String(), "err", err)
		return err
	}

	s.logger.Info("gap filled",
		"provider", provider,
		"source", source,
		"gap", gap.String(),
		"inserted", inserted,
		"skipped_null", skipped,
	)
	return nil
}

func (s *service) ResolveConversion(ctx context.Context, source, target string, amount decimal.Decimal) (domain.Conversion, error) {
	source, target = normalizeCode(source), normalizeCode(target)
	if !amount.IsPositive() || !amount.Equal(amount.Round(domain.AmountScale)) {
		return domain.Conversion{}, fmt.Errorf("%w: %s must be positive with at most %d decimals", derrors.ErrInvalidAmount, amount, domain.AmountScale)
	}
	if source == target {
		return domain.Conversion{}, derrors.Validation("source and exchanged currency must differ")
	}

	codes, err := s.knownCodes(ctx, source)
	if err != nil {
		return domain.Conversion{}, err
	}
	if !slices.Contains(codes, target) {
		return domain.Conversion{}, fmt.Errorf("%w: %s", derrors.ErrUnknownCurrency, target)
	}

	today := domain.Day(s.clock.Now())
	stored, err := s.store.GetRate(ctx, source, target, today)
	switch {
	case err == nil:
		s.logger.Debug("conversion from stored rate", "source", source, "target", target)
		return domain.Conversion{
			Date:              domain.FormatDate(stored.ValuationDate),
			SourceCurrency:    source,
			ExchangedCurrency: target,
			Amount:            amount,
			Value:             amount.Mul(stored.RateValue),
		}, nil
	case !errors.Is(err, repository.ErrNotFound):
		s.logger.Error("failed to read stored rate", "source", source, "target", target, "err", err)
		return domain.Conversion{}, err
	}

	conv, provider, err := s.fetcher.FetchConversion(ctx, source, target, amount)
	if err != nil {
		s.logger.Error("failed to fetch conversion", "source", source, "target", target, "err", err)
		return domain.Conversion{}, err
	}

	implied := conv.Value.DivRound(amount, domain.RateScale)
	inserted, err := s.store.InsertRate(ctx, domain.ExchangeRate{
		SourceCurrency:    source,
		ExchangedCurrency: target,
		ValuationDate:     today,
		RateValue:         implied,
	})
	if err != nil {
		s.logger.Error("failed to store implied rate", "source", source, "target", target, "err", err)
		return domain.Conversion{}, err
	}
	s.logger.Info("conversion fetched",
		"provider", provider,
		"source", source,
		"target", target,
		"implied_rate", implied.String(),
		"stored", inserted,
	)

	conv.Timestamp = 0
	if conv.Date == "" {
		conv.Date = domain.FormatDate(today)
	}
	conv.SourceCurrency = source
	conv.ExchangedCurrency = target
	conv.Amount = amount
	return conv, nil
}

// knownCodes — все коды справочника; source обязан в нём присутствовать.
func (s *service) knownCodes(ctx context.Context, source string) ([]string, error) {
	codes, err := s.currencies.AllCodes(ctx)
	if err != nil {
		s.logger.Error("failed to load currencies", "err", err)
		return nil, err
	}
	if !slices.Contains(codes, source) {
		s.logger.Warn("unknown currency", "code", source)
		return nil, fmt.Errorf("%w: %s", derrors.ErrUnknownCurrency, source)
	}
	return codes, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func exclude(codes []string, code string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c != code {
			out = append(out, c)
		}
	}
	return out
}
