package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// AmountScale — точность суммы для конвертации
const AmountScale = 2

// Conversion - результат конвертации суммы по курсу на дату.
// Timestamp заполняет только провайдер, наружу он не отдаётся.
type Conversion struct {
	Timestamp         int64           `json:"-"`
	Date              string          `json:"date"`
	SourceCurrency    string          `json:"source_currency"`
	ExchangedCurrency string          `json:"exchanged_currency"`
	Amount            decimal.Decimal `json:"amount"`
	Value             decimal.Decimal `json:"value"`
}

// MarshalJSON — amount и value числами с AmountScale знаками (1.00, 0.90).
func (c Conversion) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date              string          `json:"date"`
		SourceCurrency    string          `json:"source_currency"`
		ExchangedCurrency string          `json:"exchanged_currency"`
		Amount            json.RawMessage `json:"amount"`
		Value             json.RawMessage `json:"value"`
	}{
		Date:              c.Date,
		SourceCurrency:    c.SourceCurrency,
		ExchangedCurrency: c.ExchangedCurrency,
		Amount:            json.RawMessage(c.Amount.StringFixed(AmountScale)),
		Value:             json.RawMessage(c.Value.StringFixed(AmountScale)),
	})
}
