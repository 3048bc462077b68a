package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockWriter) Close() error {
	return m.Called().Error(0)
}

func TestPublish_EncodesEventKeyedByProcess(t *testing.T) {
	w := new(mockWriter)
	p := NewBatchEventPublisherWithWriter(w, slog.Default())

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	job := domain.BatchProcess{
		ID:               uuid.MustParse("7f1e6a52-6d6c-4f0e-9a35-0c6e2b4f8a11"),
		Status:           domain.BatchProcessing,
		Processes:        4,
		ProcessesCounter: 1,
		SourceCurrency:   "USD",
	}

	var sent []kafka.Message
	w.On("WriteMessages", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]kafka.Message) }).
		Return(nil).Once()

	require.NoError(t, p.Publish(context.Background(), domain.NewBatchEvent(job, at)))
	w.AssertExpectations(t)

	require.Len(t, sent, 1)
	assert.Equal(t, []byte(job.ID.String()), sent[0].Key)
	assert.Equal(t, at, sent[0].Time)

	var got domain.BatchEvent
	require.NoError(t, json.Unmarshal(sent[0].Value, &got))
	assert.Equal(t, domain.BatchProcessing, got.Status)
	assert.Equal(t, 25, got.Coverage)
	assert.Equal(t, "USD", got.SourceCurrency)
}

func TestPublish_WrapsWriterError(t *testing.T) {
	w := new(mockWriter)
	p := NewBatchEventPublisherWithWriter(w, slog.Default())
	boom := errors.New("broker unavailable")
	w.On("WriteMessages", mock.Anything, mock.Anything).Return(boom)

	err := p.Publish(context.Background(), domain.BatchEvent{ProcessID: "x"})
	assert.ErrorIs(t, err, boom)
}
