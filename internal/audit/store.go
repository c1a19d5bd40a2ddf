package audit

import (
	"context"
	"time"
)

// Store is the append-only audit log. QueryRange returns records with
// start <= Timestamp < end ordered by timestamp.
type Store interface {
	Append(ctx context.Context, record Record) error
	QueryRange(ctx context.Context, start, end time.Time) ([]Record, error)
}
