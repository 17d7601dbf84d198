// Package job runs verification batches: one verify call per requested
// name, one upsert per extracted record.
package job

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"licensure/internal/audit"
	"licensure/internal/domain"
	"licensure/internal/license"
)

// Verifier looks up one person and returns zero or more records. It never
// fails; a name that cannot be verified simply contributes nothing.
type Verifier interface {
	Verify(ctx context.Context, fullName string) []domain.LicenseRecord
}

// Summary is what a batch reports. A name yielding zero records is not
// distinguishable here from one that failed internally; that distinction
// lives in logs, metrics, and audit events.
type Summary struct {
	Processed int `json:"processed"`
}

// Runner verifies an ordered list of names. Names run with bounded
// parallelism: sessions share no state, but the remote site is a shared
// resource and unbounded parallelism risks tripping its abuse defenses.
type Runner struct {
	verifier    Verifier
	store       license.Store
	audit       *audit.Publisher
	logger      *slog.Logger
	concurrency int
}

func NewRunner(verifier Verifier, store license.Store, publisher *audit.Publisher, logger *slog.Logger, concurrency int) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{
		verifier:    verifier,
		store:       store,
		audit:       publisher,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Run verifies every name and upserts each returned record in its own
// atomic write, so a failure partway through never rolls back records
// already stored. A store failure aborts the remainder of the batch and is
// returned to the caller; verification failures never do.
func (r *Runner) Run(ctx context.Context, providers []string) (Summary, error) {
	runID := uuid.New().String()
	start := time.Now()
	var processed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, name := range providers {
		g.Go(func() error {
			records := r.verifier.Verify(ctx, name)

			event := audit.Event{RunID: runID, Provider: name, Outcome: audit.OutcomeNoRecords}
			for _, record := range records {
				if err := r.store.Upsert(ctx, record); err != nil {
					return fmt.Errorf("upsert %s: %w", record.NaturalKey(), err)
				}
				processed.Add(1)
				event.Outcome = audit.OutcomeVerified
				event.State = record.State
				event.LicenseNumber = record.LicenseNumber
			}
			r.audit.Emit(ctx, event)
			return nil
		})
	}

	summary := Summary{}
	err := g.Wait()
	summary.Processed = int(processed.Load())

	r.logger.Info("verification run finished",
		"run_id", runID,
		"requested", len(providers),
		"processed", summary.Processed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return summary, err
}
