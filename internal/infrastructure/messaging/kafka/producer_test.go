package kafka

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ghscrunch/internal/config"
	"github.com/turtacn/ghscrunch/pkg/errors"
	"github.com/turtacn/ghscrunch/pkg/types/table"
)

type mockKafkaWriter struct {
	batches   [][]kafka.Message
	writeErr  error
	closed    int
	statsFunc func() kafka.WriterStats
}

func (m *mockKafkaWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.batches = append(m.batches, append([]kafka.Message(nil), msgs...))
	return nil
}

func (m *mockKafkaWriter) Close() error {
	m.closed++
	return nil
}

func (m *mockKafkaWriter) Stats() kafka.WriterStats {
	if m.statsFunc != nil {
		return m.statsFunc()
	}
	return kafka.WriterStats{}
}

func retainedTable(n int) *table.Table {
	t := table.New("nz", "retained", "Identifier", "Name", "Source code")
	for i := 0; i < n; i++ {
		t.Append("64-17-5", "Ethanol", "3.1B")
	}
	return t
}

func TestValidateProducerConfig(t *testing.T) {
	assert.NoError(t, ValidateProducerConfig(config.KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "rows"}))
	assert.True(t, errors.IsCode(ValidateProducerConfig(config.KafkaConfig{Topic: "rows"}), errors.CodeConfigInvalid))
	assert.True(t, errors.IsCode(ValidateProducerConfig(config.KafkaConfig{Brokers: []string{"b"}}), errors.CodeConfigInvalid))

	_, err := NewProducer(config.KafkaConfig{}, "", nil)
	assert.Error(t, err)
}

func TestProducer_WriteBatches(t *testing.T) {
	w := &mockKafkaWriter{}
	p := NewProducerWithWriter(w, "ghscrunch.rows", 2, "run-1", nil)

	require.NoError(t, p.Write(context.Background(), retainedTable(5)))

	require.Len(t, w.batches, 3)
	assert.Len(t, w.batches[0], 2)
	assert.Len(t, w.batches[2], 1)
	assert.EqualValues(t, 5, p.Metrics().MessagesSent.Load())

	msg := w.batches[2][0]
	assert.Equal(t, "64-17-5", string(msg.Key))
	assert.Equal(t, []kafka.Header{
		{Key: "dataset", Value: []byte("nz")},
		{Key: "table", Value: []byte("retained")},
	}, msg.Headers)

	var ev RowEvent
	require.NoError(t, json.Unmarshal(msg.Value, &ev))
	assert.Equal(t, RowEvent{
		RunID:    "run-1",
		Dataset:  "nz",
		Table:    "retained",
		Position: 4,
		Record:   map[string]string{"Identifier": "64-17-5", "Name": "Ethanol", "Source code": "3.1B"},
	}, ev)
}

func TestProducer_EmptyTable(t *testing.T) {
	w := &mockKafkaWriter{}
	p := NewProducerWithWriter(w, "rows", 10, "", nil)

	require.NoError(t, p.Write(context.Background(), retainedTable(0)))
	assert.Empty(t, w.batches)
}

func TestProducer_WriteFailure(t *testing.T) {
	w := &mockKafkaWriter{writeErr: stderrors.New("leader not available")}
	p := NewProducerWithWriter(w, "rows", 10, "", nil)

	err := p.Write(context.Background(), retainedTable(3))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeSinkWrite))
	assert.EqualValues(t, 3, p.Metrics().MessagesFailed.Load())
}

func TestProducer_Close(t *testing.T) {
	w := &mockKafkaWriter{}
	p := NewProducerWithWriter(w, "rows", 10, "", nil)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.Equal(t, 1, w.closed)

	err := p.Write(context.Background(), retainedTable(1))
	assert.True(t, errors.IsCode(err, errors.CodeSinkWrite))
	assert.Equal(t, "kafka", p.Name())
}
