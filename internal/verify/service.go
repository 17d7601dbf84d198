// Package verify drives one licensing-board lookup end to end: acquire an
// isolated browser session, locate the search form in a frame-nested
// document, fill and submit it, match a result, extract the detail fields,
// and normalize them into a LicenseRecord.
package verify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"licensure/internal/domain"
	"licensure/internal/verify/browse"
	"licensure/internal/verify/cache"
	"licensure/internal/verify/metrics"
	"licensure/internal/verify/normalize"
	"licensure/internal/verify/profile"
	"licensure/pkg/requestcontext"
)

// SessionSource hands out isolated browsing sessions. Acquisition failure is
// a session fault: fatal for the call that wanted the session, never for
// the host process.
type SessionSource interface {
	Acquire(ctx context.Context) (browse.Session, error)
}

// Service is the verification orchestrator. One Verify call owns exactly
// one session; no state is shared between calls.
type Service struct {
	sessions SessionSource
	profile  profile.Profile
	cache    *cache.Cache
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
}

func New(sessions SessionSource, p profile.Profile, c *cache.Cache, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		sessions: sessions,
		profile:  p,
		cache:    c,
		logger:   logger,
		metrics:  m,
		tracer:   otel.Tracer("licensure/verify"),
	}
}

// Verify looks up one person's license and returns zero or one record. It
// never returns an error or panics past its own boundary: a not-found
// search and an internal fault both resolve to a list, with the distinction
// preserved in logs, metrics, and the trace span.
func (s *Service) Verify(ctx context.Context, fullName string) []domain.LicenseRecord {
	query := domain.NewSearchQuery(fullName)
	start := time.Now()

	ctx, span := s.tracer.Start(ctx, "verify",
		trace.WithAttributes(attribute.String("verify.state", s.profile.State)))
	defer span.End()

	if records, ok := s.cache.Lookup(ctx, fullName); ok {
		s.metrics.RecordCacheHit()
		span.SetAttributes(attribute.Bool("verify.cached", true))
		return records
	}
	s.metrics.RecordCacheMiss()

	outcome, records, err := s.runGuarded(ctx, query)

	span.SetAttributes(attribute.String("verify.outcome", string(outcome)))
	s.metrics.ObserveVerification(string(outcome), time.Since(start))

	switch outcome {
	case OutcomeDone:
		s.logger.Info("verification complete",
			"provider", query.FullName,
			"state", s.profile.State,
			"license_number", records[0].LicenseNumber,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		s.cache.Store(ctx, fullName, records)
	case OutcomeNotFound:
		s.logger.Info("verification found no match",
			"provider", query.FullName,
			"state", s.profile.State,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	case OutcomeFailed:
		s.logger.Error("verification failed",
			"provider", query.FullName,
			"state", s.profile.State,
			"error", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}

	if records == nil {
		records = []domain.LicenseRecord{}
	}
	return records
}

// runGuarded converts panics from the browser driver into a failed outcome.
// An unexpected top-level failure is a session fault: it must cost one name,
// not the batch.
func (s *Service) runGuarded(ctx context.Context, q domain.SearchQuery) (outcome Outcome, records []domain.LicenseRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome = OutcomeFailed
			records = nil
			err = fmt.Errorf("session panic: %v", r)
		}
	}()
	return s.run(ctx, q)
}

func (s *Service) run(ctx context.Context, q domain.SearchQuery) (Outcome, []domain.LicenseRecord, error) {
	sess, err := s.sessions.Acquire(ctx)
	if err != nil {
		return OutcomeFailed, nil, fmt.Errorf("session acquire: %w", err)
	}
	defer sess.Close()

	if err := sess.Navigate(s.profile.SearchURL); err != nil {
		return OutcomeFailed, nil, fmt.Errorf("stage %s: %w", StageInit, err)
	}

	container := browse.FindSearchContainer(sess, s.profile)
	if container == nil {
		return OutcomeFailed, nil, errors.New("no document container after navigation")
	}
	s.advance(q, StageContainerResolved)
	browse.OpenSearchTab(container, s.profile, s.logger)

	filled := browse.FillSearch(container, s.profile, q, s.logger)
	if !filled {
		s.logger.Warn("no search field populated, submitting anyway", "provider", q.FullName)
	}
	s.advance(q, StageFormFilled)

	submitted := browse.Submit(container, s.profile, s.logger)
	s.advance(q, StageSubmitted)

	detail, ok := browse.MatchResult(sess, container, s.profile, q, submitted, s.logger)
	if !ok {
		return OutcomeNotFound, nil, nil
	}
	s.advance(q, StageResultMatched)

	details, ok := browse.ExtractDetails(detail, s.profile)
	if !ok {
		// A matched row with nothing behind it was a false positive.
		s.logger.Debug("matched candidate yielded no fields, discarding", "provider", q.FullName)
		return OutcomeNotFound, nil, nil
	}
	s.advance(q, StageDetailExtracted)

	record := s.buildRecord(ctx, q, details)
	return OutcomeDone, []domain.LicenseRecord{record}, nil
}

func (s *Service) advance(q domain.SearchQuery, stage Stage) {
	s.logger.Debug("stage reached", "stage", string(stage), "provider", q.FullName)
}

func (s *Service) buildRecord(ctx context.Context, q domain.SearchQuery, d browse.Details) domain.LicenseRecord {
	record := domain.LicenseRecord{
		FullName:       q.FullName,
		State:          s.profile.State,
		LicenseNumber:  d.LicenseNumber,
		Status:         d.Status,
		IssueDate:      normalize.DatePtr(d.IssueDate),
		ExpiryDate:     normalize.DatePtr(d.ExpiryDate),
		SourceURI:      s.profile.SearchURL,
		LastVerifiedAt: requestcontext.Now(ctx).UTC(),
	}
	normalize.Finalize(&record)
	return record
}
