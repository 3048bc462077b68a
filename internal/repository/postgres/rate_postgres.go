package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	derrors "github.com/NastyaGoryachaya/currency-rate-service/internal/errors"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Вставка только если тройки (source, exchanged, date) ещё нет: существующий курс не перезаписывается.
const insertRateQuery = `
	INSERT INTO exchange_rates (source_currency, exchanged_currency, valuation_date, rate_value)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (source_currency, exchanged_currency, valuation_date) DO NOTHING
`

// RateRepo — репозиторий курсов (таблица exchange_rates).
type RateRepo struct {
	db *pgxpool.Pool
}

// NewRateRepository - Создаёт репозиторий курсов на основе пула соединений.
func NewRateRepository(db *pgxpool.Pool) *RateRepo {
	return &RateRepo{db: db}
}

// ObservedDates - даты, за которые есть хотя бы один курс для source.
func (r *RateRepo) ObservedDates(ctx context.Context, source string, from, to time.Time) ([]time.Time, error) {
	query := `
        SELECT DISTINCT valuation_date
        FROM exchange_rates
        WHERE source_currency = $1 AND valuation_date BETWEEN $2 AND $3
        ORDER BY valuation_date
    `
	rows, err := r.db.Query(ctx, query, source, domain.Day(from), domain.Day(to))
	if err != nil {
		return nil, derrors.Storage("select observed dates", err)
	}
	dates, err := pgx.CollectRows(rows, pgx.RowTo[time.Time])
	if err != nil {
		return nil, derrors.Storage("scan observed dates", err)
	}
	for i := range dates {
		dates[i] = domain.Day(dates[i])
	}
	return dates, nil
}

// GroupedRates - курсы source за период, сгруппированные по дате и паре.
func (r *RateRepo) GroupedRates(ctx context.Context, source string, from, to time.Time) (domain.GroupedRates, error) {
	query := `
        SELECT source_currency, exchanged_currency, valuation_date, rate_value
        FROM exchange_rates
        WHERE source_currency = $1 AND valuation_date BETWEEN $2 AND $3
        ORDER BY valuation_date, exchanged_currency
    `
	rows, err := r.db.Query(ctx, query, source, domain.Day(from), domain.Day(to))
	if err != nil {
		return nil, derrors.Storage("select rates", err)
	}
	defer rows.Close()

	out := domain.GroupedRates{}
	for rows.Next() {
		var rate domain.ExchangeRate
		if err := rows.Scan(&rate.SourceCurrency, &rate.ExchangedCurrency, &rate.ValuationDate, &rate.RateValue); err != nil {
			return nil, derrors.Storage("scan rate", err)
		}
		out.Add(rate)
	}
	if err := rows.Err(); err != nil {
		return nil, derrors.Storage("iterate rates", err)
	}
	return out, nil
}

// GetRate - курс пары на конкретную дату.
func (r *RateRepo) GetRate(ctx context.Context, source, exchanged string, date time.Time) (*domain.ExchangeRate, error) {
	query := `
        SELECT source_currency, exchanged_currency, valuation_date, rate_value
        FROM exchange_rates
        WHERE source_currency = $1 AND exchanged_currency = $2 AND valuation_date = $3
    `
	row := r.db.QueryRow(ctx, query, source, exchanged, domain.Day(date))

	var rate domain.ExchangeRate
	err := row.Scan(&rate.SourceCurrency, &rate.ExchangedCurrency, &rate.ValuationDate, &rate.RateValue)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, derrors.Storage("select rate", err)
	}
	rate.ValuationDate = domain.Day(rate.ValuationDate)
	return &rate, nil
}

// InsertRates - create-if-absent пачкой в одной транзакции. Возвращает число реально вставленных строк.
func (r *RateRepo) InsertRates(ctx context.Context, rates []domain.ExchangeRate) (int, error) {
	if len(rates) == 0 {
		return 0, nil
	}

	inserted := 0
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, rate := range rates {
			batch.Queue(insertRateQuery,
				rate.SourceCurrency,
				rate.ExchangedCurrency,
				domain.Day(rate.ValuationDate),
				rate.RateValue.Round(domain.RateScale),
			)
		}

		br := tx.SendBatch(ctx, batch)
		for range rates {
			tag, err := br.Exec()
			if err != nil {
				_ = br.Close()
				return err
			}
			inserted += int(tag.RowsAffected())
		}
		return br.Close()
	})
	if err != nil {
		return 0, derrors.Storage("insert rates", err)
	}
	return inserted, nil
}

// InsertRate - create-if-absent для одной тройки. false — запись уже была.
func (r *RateRepo) InsertRate(ctx context.Context, rate domain.ExchangeRate) (bool, error) {
	tag, err := r.db.Exec(ctx, insertRateQuery,
		rate.SourceCurrency,
		rate.ExchangedCurrency,
		domain.Day(rate.ValuationDate),
		rate.RateValue.Round(domain.RateScale),
	)
	if err != nil {
		return false, derrors.Storage("insert rate", err)
	}
	return tag.RowsAffected() == 1, nil
}
