package gaps

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	derrors "github.com/NastyaGoryachaya/currency-rate-service/internal/errors"
)

// Поиск пропущенных дат и разбиение их на непрерывные серии (gap)

type RateReader interface {
	ObservedDates(ctx context.Context, source string, from, to time.Time) ([]time.Time, error)
	GroupedRates(ctx context.Context, source string, from, to time.Time) (domain.GroupedRates, error)
}

// Result — ответ детектора. При Covered=true пропусков нет и Rates содержит
// полное сгруппированное представление периода; иначе заполнен Gaps.
type Result struct {
	Covered bool
	Rates   domain.GroupedRates
	Gaps    []domain.Gap
}

type Detector struct {
	store RateReader
}

func NewDetector(store RateReader) *Detector {
	return &Detector{store: store}
}

// Detect — пропуски для source в [from, to]. Если пропусков нет, сразу
// возвращает сохранённые курсы за период.
func (d *Detector) Detect(ctx context.Context, source string, from, to time.Time) (Result, error) {
	gaps, err := d.MissingGaps(ctx, source, from, to)
	if err != nil {
		return Result{}, err
	}
	if len(gaps) > 0 {
		return Result{Gaps: gaps}, nil
	}

	rates, err := d.store.GroupedRates(ctx, source, from, to)
	if err != nil {
		return Result{}, fmt.Errorf("load stored rates: %w", err)
	}
	return Result{Covered: true, Rates: rates}, nil
}

// MissingGaps — только пропуски, без чтения самих курсов.
func (d *Detector) MissingGaps(ctx context.Context, source string, from, to time.Time) ([]domain.Gap, error) {
	from, to = domain.Day(from), domain.Day(to)
	if from.After(to) {
		return nil, derrors.Validation("date_from %s is after date_to %s", domain.FormatDate(from), domain.FormatDate(to))
	}

	observed, err := d.store.ObservedDates(ctx, source, from, to)
	if err != nil {
		return nil, fmt.Errorf("load observed dates: %w", err)
	}
	return Partition(from, to, observed), nil
}

// Partition — отсутствующие в observed даты отрезка [from, to], разбитые
// на максимальные серии подряд идущих дней в хронологическом порядке.
func Partition(from, to time.Time, observed []time.Time) []domain.Gap {
	seen := make(map[time.Time]struct{}, len(observed))
	for _, d := range observed {
		seen[domain.Day(d)] = struct{}{}
	}

	var missing []time.Time
	for _, d := range domain.DaysInRange(from, to) {
		if _, ok := seen[d]; !ok {
			missing = append(missing, d)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i].Before(missing[j]) })

	var out []domain.Gap
	current := domain.Gap{missing[0]}
	for _, d := range missing[1:] {
		if d.Equal(current.Last().AddDate(0, 0, 1)) {
			current = append(current, d)
			continue
		}
		out = append(out, current)
		current = domain.Gap{d}
	}
	return append(out, current)
}
