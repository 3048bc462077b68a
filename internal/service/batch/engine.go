package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/config"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	derrors "github.com/NastyaGoryachaya/currency-rate-service/internal/errors"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/infra/metrics"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/pkg/clock"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/repository"
	"github.com/google/uuid"
)

//go:generate mockgen -source=engine.go -destination=mocks/engine_mock.go -package=mocks

// Фоновая догрузка длинных диапазонов: задача BatchProcess, пул воркеров и координатор

type CurrencyReader interface {
	AllCodes(ctx context.Context) ([]string, error)
}

type GapFinder interface {
	MissingGaps(ctx context.Context, source string, from, to time.Time) ([]domain.Gap, error)
}

type RateFetcher interface {
	FetchRange(ctx context.Context, source string, targets []string, from, to time.Time) (domain.RateMatrix, string, error)
}

type RateWriter interface {
	InsertRates(ctx context.Context, rates []domain.ExchangeRate) (int, error)
}

type JobStore interface {
	CreateJob(ctx context.Context, job domain.BatchProcess) error
	SetTotal(ctx context.Context, id uuid.UUID, total int) error
	SaveProgress(ctx context.Context, job domain.BatchProcess) error
	GetJob(ctx context.Context, id uuid.UUID) (*domain.BatchProcess, error)
}

// EventPublisher — получатель событий жизненного цикла задачи
type EventPublisher interface {
	Publish(ctx context.Context, event domain.BatchEvent) error
}

// Deps — зависимости движка. Events, Metrics и Clock необязательны.
type Deps struct {
	Currencies CurrencyReader
	Gaps       GapFinder
	Fetcher    RateFetcher
	Rates      RateWriter
	Jobs       JobStore
	Events     EventPublisher
	Metrics    *metrics.Metrics
	Clock      clock.Clock
}

// сохранение статуса после отмены базового контекста
const saveTimeout = 5 * time.Second

// ErrClosed — движок остановлен, новые задачи не принимаются
var ErrClosed = errors.New("batch engine is closed")

type Engine struct {
	deps   Deps
	cfg    config.BackfillConfig
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex // closed и wg.Add
	closed bool
	wg     sync.WaitGroup
}

func NewEngine(deps Deps, cfg config.BackfillConfig, logger *slog.Logger) *Engine {
	if deps.Clock == nil {
		deps.Clock = clock.NewRealClock()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.YearsPerChunk < 1 {
		cfg.YearsPerChunk = 5
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		deps:   deps,
		cfg:    cfg,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// unit — одна единица работы: gap внутри куска.
type unit struct {
	chunk int
	gap   domain.Gap
}

type unitResult struct {
	unit     unit
	inserted int
	err      error
}

// StartBatch создаёт задачу, считает объём работы и запускает догрузку в фоне.
// Возвращает id сразу, не дожидаясь окончания.
func (e *Engine) StartBatch(ctx context.Context, source string, from, to time.Time) (uuid.UUID, error) {
	if e.isClosed() {
		return uuid.Nil, ErrClosed
	}
	source = strings.ToUpper(strings.TrimSpace(source))
	from, to = domain.Day(from), domain.Day(to)
	if from.After(to) {
		return uuid.Nil, fmt.Errorf("%w: %s is after %s", derrors.ErrInvalidDateRange, domain.FormatDate(from), domain.FormatDate(to))
	}

	codes, err := e.deps.Currencies.AllCodes(ctx)
	if err != nil {
		e.logger.Error("failed to load currencies", "err", err)
		return uuid.Nil, err
	}
	if !slices.Contains(codes, source) {
		return uuid.Nil, fmt.Errorf("%w: %s", derrors.ErrUnknownCurrency, source)
	}
	targets := slices.DeleteFunc(slices.Clone(codes), func(c string) bool { return c == source })

	job := domain.BatchProcess{
		ID:             uuid.New(),
		Status:         domain.BatchProcessing,
		StartingTime:   e.deps.Clock.Now(),
		SourceCurrency: source,
	}
	if err := e.deps.Jobs.CreateJob(ctx, job); err != nil {
		e.logger.Error("failed to create batch process", "source", source, "err", err)
		return uuid.Nil, err
	}
	e.deps.Metrics.RecordBatchJob(domain.BatchProcessing)
	log := e.logger.With("process_id", job.ID.String(), "source", source)

	units, err := e.plan(ctx, source, from, to)
	if err != nil {
		log.Error("failed to plan batch", "err", err)
		e.finish(&job, domain.BatchFailed)
		return uuid.Nil, err
	}
	if len(targets) == 0 && len(units) > 0 {
		log.Warn("no target currencies configured, nothing to fetch", "gaps", len(units))
		units = nil
	}

	if len(units) == 0 {
		e.finish(&job, domain.BatchDone)
		log.Info("nothing to backfill", "from", domain.FormatDate(from), "to", domain.FormatDate(to))
		return job.ID, nil
	}

	job.Processes = len(units)
	if err := e.deps.Jobs.SetTotal(ctx, job.ID, job.Processes); err != nil {
		log.Error("failed to persist batch total", "err", err)
		e.finish(&job, domain.BatchFailed)
		return uuid.Nil, err
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		log.Warn("engine closed before batch start")
		e.finish(&job, domain.BatchFailed)
		return uuid.Nil, ErrClosed
	}
	e.wg.Add(1)
	e.mu.Unlock()

	e.publish(job)
	log.Info("batch started", "units", job.Processes, "from", domain.FormatDate(from), "to", domain.FormatDate(to))

	go func() {
		defer e.wg.Done()
		e.run(job, units, targets)
	}()
	return job.ID, nil
}

func (e *Engine) isClosed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}

// plan — gaps по всем кускам в хронологическом порядке.
func (e *Engine) plan(ctx context.Context, source string, from, to time.Time) ([]unit, error) {
	var units []unit
	for i, chunk := range SplitRange(from, to, e.cfg.YearsPerChunk) {
		gaps, err := e.deps.Gaps.MissingGaps(ctx, source, chunk.From, chunk.To)
		if err != nil {
			return nil, fmt.Errorf("chunk %s: %w", chunk, err)
		}
		for _, g := range gaps {
			units = append(units, unit{chunk: i, gap: g})
		}
	}
	return units, nil
}

// Job — текущее состояние задачи для опроса.
func (e *Engine) Job(ctx context.Context, id uuid.UUID) (domain.BatchProcess, error) {
	job, err := e.deps.Jobs.GetJob(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.BatchProcess{}, fmt.Errorf("%w: process %s", derrors.ErrNotFound, id)
	}
	if err != nil {
		return domain.BatchProcess{}, err
	}
	return *job, nil
}

// Wait ждёт завершения всех запущенных задач.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// Close прерывает выполняющиеся задачи и ждёт, пока координаторы отметят их FAILED.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.cancel()
	e.mu.Unlock()
	e.wg.Wait()
}

func (e *Engine) run(job domain.BatchProcess, units []unit, targets []string) {
	results := make(chan unitResult)
	stop := make(chan struct{})
	go e.submit(stop, job.SourceCurrency, targets, units, results)

	e.coordinate(job, results, stop)
}

// submit выдаёт единицы работы по одной с паузой SubmitDelay; одновременно
// выполняется не больше Workers. После закрытия stop новые единицы не выдаются.
// results закрывается, когда все выданные единицы отчитались.
func (e *Engine) submit(stop <-chan struct{}, source string, targets []string, units []unit, results chan<- unitResult) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, e.cfg.Workers)
	defer func() {
		wg.Wait()
		close(results)
	}()

	for i, u := range units {
		// пауза между любыми соседними единицами, в том числе на границе кусков
		if i > 0 && !e.pause(stop) {
			return
		}
		select {
		case sem <- struct{}{}:
		case <-stop:
			return
		case <-e.ctx.Done():
			return
		}
		select {
		case <-stop:
			<-sem
			return
		default:
		}

		wg.Add(1)
		go func(u unit) {
			defer func() {
				<-sem
				wg.Done()
			}()
			n, err := e.process(source, targets, u)
			results <- unitResult{unit: u, inserted: n, err: err}
		}(u)
	}
}

func (e *Engine) pause(stop <-chan struct{}) bool {
	if e.cfg.SubmitDelay <= 0 {
		return true
	}
	t := time.NewTimer(e.cfg.SubmitDelay)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-stop:
		return false
	case <-e.ctx.Done():
		return false
	}
}

// process — fetch-and-persist одного gap. Все курсы gap пишутся одной транзакцией.
func (e *Engine) process(source string, targets []string, u unit) (inserted int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gap %s: panic: %v", u.gap, r)
		}
	}()

	matrix, provider, err := e.deps.Fetcher.FetchRange(e.ctx, source, targets, u.gap.First(), u.gap.Last())
	if err != nil {
		return 0, fmt.Errorf("gap %s: %w", u.gap, err)
	}
	rates, skipped, err := matrix.Rates(source)
	if err != nil {
		return 0, fmt.Errorf("gap %s: %w", u.gap, err)
	}
	inserted, err = e.deps.Rates.InsertRates(e.ctx, rates)
	if err != nil {
		return 0, fmt.Errorf("gap %s: %w", u.gap, err)
	}
	e.logger.Debug("batch unit done",
		"provider", provider,
		"source", source,
		"gap", u.gap.String(),
		"inserted", inserted,
		"skipped_null", skipped,
	)
	return inserted, nil
}

// coordinate — единственный владелец счётчика и статуса задачи.
// Результаты, пришедшие после терминального статуса, не меняют задачу.
func (e *Engine) coordinate(job domain.BatchProcess, results <-chan unitResult, stop chan<- struct{}) {
	log := e.logger.With("process_id", job.ID.String(), "source", job.SourceCurrency)

	for res := range results {
		e.deps.Metrics.RecordBatchUnit(res.err)
		e.deps.Metrics.AddRatesInserted(res.inserted)
		if job.Status.Terminal() {
			if res.err != nil {
				log.Warn("unit failed after batch finished", "err", res.err)
			}
			continue
		}

		if res.err != nil {
			close(stop)
			log.Error("batch unit failed", "gap", res.unit.gap.String(), "chunk", res.unit.chunk, "err", res.err)
			e.finish(&job, domain.BatchFailed)
			continue
		}

		job.ProcessesCounter++
		if job.ProcessesCounter == job.Processes {
			e.finish(&job, domain.BatchDone)
			log.Info("batch done", "units", job.Processes)
			continue
		}
		e.save(job)
	}

	if !job.Status.Terminal() {
		log.Warn("batch interrupted", "completed", job.ProcessesCounter, "total", job.Processes)
		e.finish(&job, domain.BatchFailed)
	}
}

// finish переводит задачу в терминальный статус и сохраняет её.
func (e *Engine) finish(job *domain.BatchProcess, status domain.BatchStatus) {
	now := e.deps.Clock.Now()
	job.Status = status
	job.EndingTime = &now
	e.save(*job)
	e.deps.Metrics.RecordBatchJob(status)
	e.publish(*job)
}

func (e *Engine) save(job domain.BatchProcess) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(e.ctx), saveTimeout)
	defer cancel()
	if err := e.deps.Jobs.SaveProgress(ctx, job); err != nil {
		e.logger.Error("failed to save batch progress",
			"process_id", job.ID.String(),
			"status", job.Status,
			"counter", job.ProcessesCounter,
			"err", err,
		)
	}
}

func (e *Engine) publish(job domain.BatchProcess) {
	if e.deps.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(e.ctx), saveTimeout)
	defer cancel()
	if err := e.deps.Events.Publish(ctx, domain.NewBatchEvent(job, e.deps.Clock.Now())); err != nil {
		e.logger.Warn("failed to publish batch event", "process_id", job.ID.String(), "err", err)
	}
}
