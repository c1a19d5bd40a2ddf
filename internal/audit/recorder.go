// Package audit records sensitive actions in an append-only log.
//
// Audit writes are best effort: a failed write is logged, counted and
// reported as an Outcome, but never fails the operation it describes.
// Business code must not branch on the Outcome.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"adequa/pkg/requestcontext"
)

// OutcomeStatus says whether a record reached the store.
type OutcomeStatus string

const (
	OutcomeRecorded OutcomeStatus = "recorded"
	OutcomeFailed   OutcomeStatus = "failed"
)

// Outcome is the explicit result of a Record call, for operational monitoring.
type Outcome struct {
	Status   OutcomeStatus
	Reason   string
	RecordID uuid.UUID
}

// Recorded reports whether the record was persisted.
func (o Outcome) Recorded() bool { return o.Status == OutcomeRecorded }

const defaultWriteTimeout = 2 * time.Second

// Recorder builds complete records and appends them to a Store.
type Recorder struct {
	store        Store
	logger       *slog.Logger
	metrics      *Metrics
	breaker      *CircuitBreaker
	writeTimeout time.Duration
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithLogger sets the operational logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) { r.logger = logger }
}

// WithMetrics sets the Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(r *Recorder) { r.metrics = m }
}

// WithCircuitBreaker drops records without a store call while the store keeps failing.
func WithCircuitBreaker(cb *CircuitBreaker) Option {
	return func(r *Recorder) { r.breaker = cb }
}

// WithWriteTimeout bounds a single append.
func WithWriteTimeout(d time.Duration) Option {
	return func(r *Recorder) { r.writeTimeout = d }
}

// NewRecorder creates a Recorder over store.
func NewRecorder(store Store, opts ...Option) (*Recorder, error) {
	if store == nil {
		return nil, errors.New("audit store is required")
	}
	r := &Recorder{store: store, logger: slog.Default(), writeTimeout: defaultWriteTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Record persists one audit record built from e and the request context.
// The record is fully built before the single Append call.
func (r *Recorder) Record(ctx context.Context, e Event) Outcome {
	record, err := r.build(ctx, e)
	if err != nil {
		return r.fail(ctx, e, err)
	}

	if r.breaker != nil && !r.breaker.Allow() {
		r.metrics.incCircuitDropped()
		return r.fail(ctx, e, errors.New("audit store circuit open"))
	}

	// The primary operation may finish (and cancel its context) first.
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.writeTimeout)
	defer cancel()

	if err := r.store.Append(writeCtx, record); err != nil {
		if r.breaker != nil {
			r.breaker.RecordFailure()
			r.metrics.setCircuitState(r.breaker.IsOpen())
		}
		return r.fail(ctx, e, err)
	}
	if r.breaker != nil {
		r.breaker.RecordSuccess()
		r.metrics.setCircuitState(false)
	}

	r.metrics.incRecorded(record.Category)
	return Outcome{Status: OutcomeRecorded, RecordID: record.ID}
}

func (r *Recorder) build(ctx context.Context, e Event) (Record, error) {
	record := Record{
		ID:           uuid.New(),
		ActorID:      e.ActorID,
		Action:       e.Action,
		Category:     e.Action.Category(),
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		IPAddress:    e.IPAddress,
		UserAgent:    e.UserAgent,
		Success:      e.Success,
		ErrorMessage: e.ErrorMessage,
		AccessLevel:  e.AccessLevel,
		RequestID:    requestcontext.RequestID(ctx),
		Timestamp:    requestcontext.Now(ctx).UTC(),
	}
	if record.ActorID.IsNil() {
		record.ActorID = requestcontext.ActorID(ctx)
	}
	if record.IPAddress == "" {
		record.IPAddress = requestcontext.ClientIP(ctx)
	}
	if record.UserAgent == "" {
		record.UserAgent = requestcontext.UserAgent(ctx)
	}

	var err error
	if record.Details, err = encode(e.Details); err != nil {
		return Record{}, fmt.Errorf("encode details: %w", err)
	}
	if record.PreviousState, err = encode(e.PreviousState); err != nil {
		return Record{}, fmt.Errorf("encode previous state: %w", err)
	}
	if record.NewState, err = encode(e.NewState); err != nil {
		return Record{}, fmt.Errorf("encode new state: %w", err)
	}
	return record, nil
}

func encode(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	if m, ok := v.(map[string]any); ok && len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(v)
}

func (r *Recorder) fail(ctx context.Context, e Event, err error) Outcome {
	r.metrics.incFailures()
	r.logger.ErrorContext(ctx, "failed to record audit event",
		"action", string(e.Action),
		"resource_type", e.ResourceType,
		"resource_id", e.ResourceID,
		"error", err,
	)
	return Outcome{Status: OutcomeFailed, Reason: err.Error()}
}
