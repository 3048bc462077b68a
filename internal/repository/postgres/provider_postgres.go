package postgres

import (
	"context"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	derrors "github.com/NastyaGoryachaya/currency-rate-service/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProviderRepo — строки настроек провайдеров (таблица providers).
type ProviderRepo struct {
	db *pgxpool.Pool
}

func NewProviderRepository(db *pgxpool.Pool) *ProviderRepo {
	return &ProviderRepo{db: db}
}

// ListProviders - снимок всех провайдеров по возрастанию priority
func (r *ProviderRepo) ListProviders(ctx context.Context) ([]domain.Provider, error) {
	query := `SELECT name, key, is_enabled, priority FROM providers ORDER BY priority;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, derrors.Storage("select providers", err)
	}
	providers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Provider, error) {
		var p domain.Provider
		var name string
		err := row.Scan(&name, &p.Key, &p.Enabled, &p.Priority)
		p.Name = domain.ProviderName(name)
		return p, err
	})
	if err != nil {
		return nil, derrors.Storage("scan providers", err)
	}
	return providers, nil
}
