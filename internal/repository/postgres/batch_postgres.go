package postgres

import (
	"context"
	"errors"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	derrors "github.com/NastyaGoryachaya/currency-rate-service/internal/errors"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BatchRepo — задачи фоновой догрузки (таблица batch_processes).
type BatchRepo struct {
	db *pgxpool.Pool
}

func NewBatchRepository(db *pgxpool.Pool) *BatchRepo {
	return &BatchRepo{db: db}
}

func (r *BatchRepo) CreateJob(ctx context.Context, job domain.BatchProcess) error {
	query := `
        INSERT INTO batch_processes (process_id, status, processes, processes_counter, starting_time, source_currency)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.db.Exec(ctx, query,
		job.ID, string(job.Status), job.Processes, job.ProcessesCounter, job.StartingTime, job.SourceCurrency)
	if err != nil {
		return derrors.Storage("insert batch process", err)
	}
	return nil
}

// SetTotal - фиксирует общее число единиц работы у задачи в PROCESSING.
func (r *BatchRepo) SetTotal(ctx context.Context, id uuid.UUID, total int) error {
	query := `UPDATE batch_processes SET processes = $2 WHERE process_id = $1 AND status = 'PROCESSING';`
	tag, err := r.db.Exec(ctx, query, id, total)
	if err != nil {
		return derrors.Storage("update batch total", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SaveProgress - записывает счётчик, статус и время окончания.
// Обновляется только задача в PROCESSING: терминальные статусы не меняются.
func (r *BatchRepo) SaveProgress(ctx context.Context, job domain.BatchProcess) error {
	query := `
        UPDATE batch_processes
        SET processes_counter = $2, status = $3, ending_time = $4
        WHERE process_id = $1 AND status = 'PROCESSING'
    `
	tag, err := r.db.Exec(ctx, query, job.ID, job.ProcessesCounter, string(job.Status), job.EndingTime)
	if err != nil {
		return derrors.Storage("update batch progress", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BatchRepo) GetJob(ctx context.Context, id uuid.UUID) (*domain.BatchProcess, error) {
	query := `
        SELECT process_id, status, processes, processes_counter, starting_time, ending_time, source_currency
        FROM batch_processes
        WHERE process_id = $1
    `
	var (
		job    domain.BatchProcess
		status string
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &status, &job.Processes, &job.ProcessesCounter, &job.StartingTime, &job.EndingTime, &job.SourceCurrency)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, derrors.Storage("select batch process", err)
	}
	job.Status = domain.BatchStatus(status)
	return &job, nil
}
