// Package audit records what each verification run did. Events are
// append-only and fail-open: an audit write that fails is logged and
// dropped, it never fails the verification that produced it.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Outcome labels for verification events.
const (
	OutcomeVerified  = "verified"
	OutcomeNoRecords = "no_records"
)

// Event is one audited verification outcome.
type Event struct {
	ID            string    `json:"id"`
	RunID         string    `json:"run_id"`
	Action        string    `json:"action"`
	Provider      string    `json:"provider"`
	State         string    `json:"state,omitempty"`
	LicenseNumber string    `json:"license_number,omitempty"`
	Outcome       string    `json:"outcome"`
	Timestamp     time.Time `json:"timestamp"`
}

// Store is the append-only event sink.
type Store interface {
	Append(ctx context.Context, event Event) error
	List(ctx context.Context) ([]Event, error)
}

// Publisher writes events to the store and, when configured, to Kafka. A
// nil Publisher is a no-op so audit stays optional in wiring.
type Publisher struct {
	store  Store
	sink   *KafkaSink
	logger *slog.Logger
}

func NewPublisher(store Store, sink *KafkaSink, logger *slog.Logger) *Publisher {
	return &Publisher{store: store, sink: sink, logger: logger}
}

func (p *Publisher) Emit(ctx context.Context, event Event) {
	if p == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.Action == "" {
		event.Action = "license.verify"
	}
	if err := p.store.Append(ctx, event); err != nil {
		p.logger.Warn("audit append failed", "provider", event.Provider, "error", err)
	}
	p.sink.Publish(ctx, event)
}
