package domain

import (
	"time"

	"github.com/google/uuid"
)

type BatchStatus string

const (
	BatchProcessing BatchStatus = "PROCESSING"
	BatchFailed     BatchStatus = "FAILED"
	BatchDone       BatchStatus = "DONE"
)

// Terminal — из DONE и FAILED переходов нет.
func (s BatchStatus) Terminal() bool {
	return s == BatchDone || s == BatchFailed
}

// BatchProcess - фоновая задача догрузки курсов.
// Processes — общее число единиц работы (gap), ProcessesCounter — выполненные.
type BatchProcess struct {
	ID               uuid.UUID   `json:"process_id"`
	Status           BatchStatus `json:"status"`
	Processes        int         `json:"processes"`
	ProcessesCounter int         `json:"processes_counter"`
	StartingTime     time.Time   `json:"starting_time"`
	EndingTime       *time.Time  `json:"ending_time,omitempty"`
	SourceCurrency   string      `json:"source_currency"`
}

// Coverage — процент выполнения, округлённый вниз; 0 если работ нет.
func (b BatchProcess) Coverage() int {
	if b.Processes == 0 {
		return 0
	}
	return b.ProcessesCounter * 100 / b.Processes
}

// BatchEvent — событие жизненного цикла задачи для внешних подписчиков
type BatchEvent struct {
	ProcessID        string      `json:"process_id"`
	Status           BatchStatus `json:"status"`
	SourceCurrency   string      `json:"source_currency"`
	Processes        int         `json:"processes"`
	ProcessesCounter int         `json:"processes_counter"`
	Coverage         int         `json:"coverage"`
	At               time.Time   `json:"at"`
}

func NewBatchEvent(b BatchProcess, at time.Time) BatchEvent {
	return BatchEvent{
		ProcessID:        b.ID.String(),
		Status:           b.Status,
		SourceCurrency:   b.SourceCurrency,
		Processes:        b.Processes,
		ProcessesCounter: b.ProcessesCounter,
		Coverage:         b.Coverage(),
		At:               at,
	}
}
