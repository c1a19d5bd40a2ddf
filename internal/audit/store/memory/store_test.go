package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adequa/internal/audit"
)

func TestQueryRange(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for _, offset := range []time.Duration{30 * time.Minute, 0, time.Hour, -time.Minute} {
		require.NoError(t, s.Append(ctx, audit.Record{ID: uuid.New(), Timestamp: base.Add(offset)}))
	}

	got, err := s.QueryRange(ctx, base, base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, base, got[0].Timestamp)
	assert.Equal(t, base.Add(30*time.Minute), got[1].Timestamp)
}

func TestConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	s := New()
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Append(ctx, audit.Record{ID: uuid.New(), Timestamp: time.Now()})
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, s.Len())
}
