package postgres

import (
	"context"
	"errors"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	derrors "github.com/NastyaGoryachaya/currency-rate-service/internal/errors"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgUniqueViolation — SQLSTATE нарушения уникальности
const pgUniqueViolation = "23505"

// CurrencyRepo — справочник валют (таблица currencies).
type CurrencyRepo struct {
	db *pgxpool.Pool
}

// NewCurrencyRepository - Создаёт репозиторий валют на основе пула соединений.
func NewCurrencyRepository(db *pgxpool.Pool) *CurrencyRepo {
	return &CurrencyRepo{db: db}
}

// GetAllCurrencies - Получить все валюты, упорядоченные по коду
func (r *CurrencyRepo) GetAllCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `SELECT code, name, symbol FROM currencies ORDER BY code;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, derrors.Storage("select currencies", err)
	}
	currencies, err := pgx.CollectRows(rows, pgx.RowToStructByPos[domain.Currency])
	if err != nil {
		return nil, derrors.Storage("scan currencies", err)
	}
	return currencies, nil
}

// AllCodes - Множество допустимых кодов валют
func (r *CurrencyRepo) AllCodes(ctx context.Context) ([]string, error) {
	query := `SELECT code FROM currencies ORDER BY code;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, derrors.Storage("select currency codes", err)
	}
	codes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, derrors.Storage("scan currency codes", err)
	}
	return codes, nil
}

// GetCurrencyByCode - Найти валюту по коду
func (r *CurrencyRepo) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	query := `SELECT code, name, symbol FROM currencies WHERE code = UPPER($1);`
	row := r.db.QueryRow(ctx, query, code)

	var c domain.Currency
	if err := row.Scan(&c.Code, &c.Name, &c.Symbol); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, derrors.Storage("select currency", err)
	}
	return &c, nil
}

func (r *CurrencyRepo) CreateCurrency(ctx context.Context, c domain.Currency) error {
	query := `INSERT INTO currencies (code, name, symbol) VALUES ($1, $2, $3);`
	if _, err := r.db.Exec(ctx, query, c.Code, c.Name, c.Symbol); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return repository.ErrAlreadyExists
		}
		return derrors.Storage("insert currency", err)
	}
	return nil
}

// DeleteCurrency - удаляет валюту вместе с её курсами
func (r *CurrencyRepo) DeleteCurrency(ctx context.Context, code string) error {
	query := `DELETE FROM currencies WHERE code = UPPER($1);`
	tag, err := r.db.Exec(ctx, query, code)
	if err != nil {
		return derrors.Storage("delete currency", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
