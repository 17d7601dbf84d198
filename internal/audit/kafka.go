package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaSink streams audit events to a Kafka topic. Publishing is
// asynchronous and fail-open; delivery failures are logged, not returned.
type KafkaSink struct {
	client *kgo.Client
	logger *slog.Logger
}

func NewKafkaSink(brokers []string, topic string, logger *slog.Logger) (*KafkaSink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &KafkaSink{client: client, logger: logger}, nil
}

func (s *KafkaSink) Publish(ctx context.Context, event Event) {
	if s == nil {
		return
	}
	value, err := json.Marshal(event)
	if err != nil {
		return
	}
	record := &kgo.Record{Key: []byte(event.Provider), Value: value}
	s.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			s.logger.Warn("audit event publish failed",
				"provider", event.Provider,
				"error", err,
			)
		}
	})
}

func (s *KafkaSink) Close() {
	if s == nil {
		return
	}
	s.client.Close()
}
