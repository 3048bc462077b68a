package domain

import (
	"encoding/json"
	"sort"
	"time"

	derrors "github.com/NastyaGoryachaya/currency-rate-service/internal/errors"
	"github.com/shopspring/decimal"
)

// RateScale — число знаков после запятой у хранимого курса
const RateScale = 6

// ExchangeRate - курс пары валют на дату. Уникален по (source, exchanged, date).
type ExchangeRate struct {
	SourceCurrency    string          `json:"source_currency"`
	ExchangedCurrency string          `json:"exchanged_currency"`
	ValuationDate     time.Time       `json:"valuation_date"`
	RateValue         decimal.Decimal `json:"rate_value"`
}

// PairKey — ключ пары в сгруппированном представлении ("USD/EUR").
func PairKey(source, exchanged string) string {
	return source + "/" + exchanged
}

// GroupedRates — дата (YYYY-MM-DD) -> пара (SRC/TGT) -> курс.
type GroupedRates map[string]map[string]decimal.Decimal

func (g GroupedRates) Add(r ExchangeRate) {
	key := FormatDate(r.ValuationDate)
	byPair, ok := g[key]
	if !ok {
		byPair = make(map[string]decimal.Decimal)
		g[key] = byPair
	}
	byPair[PairKey(r.SourceCurrency, r.ExchangedCurrency)] = r.RateValue
}

// MarshalJSON отдаёт курсы числами с фиксированными RateScale знаками (0.900000).
func (g GroupedRates) MarshalJSON() ([]byte, error) {
	out := make(map[string]map[string]json.RawMessage, len(g))
	for date, byPair := range g {
		pairs := make(map[string]json.RawMessage, len(byPair))
		for pair, v := range byPair {
			pairs[pair] = json.RawMessage(v.StringFixed(RateScale))
		}
		out[date] = pairs
	}
	return json.Marshal(out)
}

// Dates возвращает ключи дат по возрастанию.
func (g GroupedRates) Dates() []string {
	out := make([]string, 0, len(g))
	for d := range g {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// RateMatrix — ответ провайдера: дата -> код валюты -> курс.
// Невалидный (null) курс означает, что у провайдера нет значения.
type RateMatrix map[string]map[string]decimal.NullDecimal

// Rates разворачивает матрицу в записи для source. Null-курсы пропускаются
// и считаются в skipped. Записи упорядочены по дате, затем по коду валюты.
func (m RateMatrix) Rates(source string) (rates []ExchangeRate, skipped int, err error) {
	dates := make([]string, 0, len(m))
	for d := range m {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, ds := range dates {
		day, err := ParseDate(ds)
		if err != nil {
			return nil, 0, derrors.Data("bad valuation date %q", ds)
		}
		byTarget := m[ds]
		targets := make([]string, 0, len(byTarget))
		for t := range byTarget {
			targets = append(targets, t)
		}
		sort.Strings(targets)

		for _, target := range targets {
			v := byTarget[target]
			if !v.Valid {
				skipped++
				continue
			}
			if target == source {
				continue
			}
			rates = append(rates, ExchangeRate{
				SourceCurrency:    source,
				ExchangedCurrency: target,
				ValuationDate:     day,
				RateValue:         v.Decimal.Round(RateScale),
			})
		}
	}
	return rates, skipped, nil
}
