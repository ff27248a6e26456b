// Package kafka publishes every output row as a JSON event so downstream
// consumers can index classifications without reading files.
package kafka

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/ghscrunch/internal/config"
	"github.com/turtacn/ghscrunch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ghscrunch/pkg/errors"
	"github.com/turtacn/ghscrunch/pkg/types/table"
)

// WriterInterface abstracts kafka.Writer for testing.
type WriterInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
	Stats() kafka.WriterStats
}

// RowEvent is the value of every message.
type RowEvent struct {
	RunID    string            `json:"run_id,omitempty"`
	Dataset  string            `json:"dataset"`
	Table    string            `json:"table"`
	Position int               `json:"position"`
	Record   map[string]string `json:"record"`
}

// ProducerMetrics holds producer counters.
type ProducerMetrics struct {
	MessagesSent   atomic.Int64
	MessagesFailed atomic.Int64
	BytesSent      atomic.Int64
}

// Producer is a crunch.Sink that publishes rows to one topic.
type Producer struct {
	writer    WriterInterface
	topic     string
	batchSize int
	runID     string
	logger    logging.Logger
	closed    atomic.Bool
	metrics   *ProducerMetrics
}

// ValidateProducerConfig checks the settings NewProducer needs.
func ValidateProducerConfig(cfg config.KafkaConfig) error {
	if len(cfg.Brokers) == 0 {
		return errors.New(errors.CodeConfigInvalid, "kafka brokers required")
	}
	if cfg.Topic == "" {
		return errors.New(errors.CodeConfigInvalid, "kafka topic required")
	}
	return nil
}

// NewProducer builds a producer on a kafka.Writer. Messages are keyed by
// substance identifier and balanced by hash, so all rows of one substance
// land in the same partition.
func NewProducer(cfg config.KafkaConfig, runID string, log logging.Logger) (*Producer, error) {
	if err := ValidateProducerConfig(cfg); err != nil {
		return nil, err
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: kafka.RequireAll,
	}
	return NewProducerWithWriter(writer, cfg.Topic, cfg.BatchSize, runID, log), nil
}

// NewProducerWithWriter builds a producer on an existing writer.
func NewProducerWithWriter(w WriterInterface, topic string, batchSize int, runID string, log logging.Logger) *Producer {
	if batchSize <= 0 {
		batchSize = 100
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Producer{
		writer:    w,
		topic:     topic,
		batchSize: batchSize,
		runID:     runID,
		logger:    log.Named("kafka"),
		metrics:   &ProducerMetrics{},
	}
}

// Metrics returns the producer counters.
func (p *Producer) Metrics() *ProducerMetrics {
	return p.metrics
}

func (p *Producer) Name() string { return "kafka" }

// Write publishes one message per row, in batches of batchSize.
func (p *Producer) Write(ctx context.Context, t *table.Table) error {
	if p.closed.Load() {
		return errors.New(errors.CodeSinkWrite, "producer closed")
	}

	batch := make([]kafka.Message, 0, p.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := p.writer.WriteMessages(ctx, batch...); err != nil {
			p.metrics.MessagesFailed.Add(int64(len(batch)))
			return errors.Wrap(err, errors.CodeSinkWrite, "publish failed").
				WithDetailf("topic=%s table=%s", p.topic, t.Key())
		}
		p.metrics.MessagesSent.Add(int64(len(batch)))
		batch = batch[:0]
		return nil
	}

	now := time.Now()
	for i, row := range t.Rows {
		msg, err := p.message(t, i, row, now)
		if err != nil {
			return err
		}
		batch = append(batch, msg)
		if len(batch) == p.batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}
	p.logger.Debug("table published", logging.String("table", t.Key()), logging.Int("rows", t.Len()))
	return nil
}

func (p *Producer) message(t *table.Table, i int, row []string, now time.Time) (kafka.Message, error) {
	ev := RowEvent{RunID: p.runID, Dataset: t.Dataset, Table: t.Name, Position: i, Record: make(map[string]string, len(t.Header))}
	for c, h := range t.Header {
		if c < len(row) {
			ev.Record[h] = row[c]
		} else {
			ev.Record[h] = ""
		}
	}
	value, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, errors.Wrap(err, errors.CodeSerialization, "failed to encode row event")
	}
	p.metrics.BytesSent.Add(int64(len(value)))

	var key string
	if len(row) > 0 {
		key = row[0]
	}
	return kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  now,
		Headers: []kafka.Header{
			{Key: "dataset", Value: []byte(t.Dataset)},
			{Key: "table", Value: []byte(t.Name)},
		},
	}, nil
}

// Close flushes and closes the writer. Later calls are no-ops.
func (p *Producer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	stats := p.writer.Stats()
	p.logger.Info("Kafka producer closed",
		logging.Int64("messages", p.metrics.MessagesSent.Load()),
		logging.Int64("errors", stats.Errors),
	)
	if err := p.writer.Close(); err != nil {
		return errors.Wrap(err, errors.CodeSinkWrite, "failed to close kafka writer")
	}
	return nil
}
