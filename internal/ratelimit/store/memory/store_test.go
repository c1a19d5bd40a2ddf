package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const testWindow = time.Minute

type MemoryStoreSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
	now   time.Time
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
	s.now = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
}

func (s *MemoryStoreSuite) TestIncrement() {
	s.Run("first call opens a window", func() {
		count, resetAt, err := s.store.Increment(s.ctx, "k:first", testWindow, s.now)
		s.Require().NoError(err)
		s.Equal(1, count)
		s.Equal(s.now.Add(testWindow), resetAt)
	})

	s.Run("calls within the window share it", func() {
		for i := 1; i <= 3; i++ {
			count, resetAt, err := s.store.Increment(s.ctx, "k:within", testWindow, s.now.Add(time.Duration(i)*time.Second))
			s.Require().NoError(err)
			s.Equal(i, count)
			s.Equal(s.now.Add(testWindow+time.Second), resetAt)
		}
	})

	s.Run("call at reset time opens a new window", func() {
		_, _, err := s.store.Increment(s.ctx, "k:reset", testWindow, s.now)
		s.Require().NoError(err)
		_, _, err = s.store.Increment(s.ctx, "k:reset", testWindow, s.now)
		s.Require().NoError(err)

		count, resetAt, err := s.store.Increment(s.ctx, "k:reset", testWindow, s.now.Add(testWindow))
		s.Require().NoError(err)
		s.Equal(1, count)
		s.Equal(s.now.Add(2*testWindow), resetAt)
	})

	s.Run("keys are independent", func() {
		_, _, _ = s.store.Increment(s.ctx, "k:a", testWindow, s.now)
		_, _, _ = s.store.Increment(s.ctx, "k:a", testWindow, s.now)
		count, _, err := s.store.Increment(s.ctx, "k:b", testWindow, s.now)
		s.Require().NoError(err)
		s.Equal(1, count)
	})
}

func (s *MemoryStoreSuite) TestSweep() {
	_, _, _ = s.store.Increment(s.ctx, "old", testWindow, s.now)
	_, _, _ = s.store.Increment(s.ctx, "new", testWindow, s.now.Add(30*time.Second))
	s.Equal(2, s.store.Len())

	dropped := s.store.Sweep(s.now.Add(testWindow))
	s.Equal(1, dropped)
	s.Equal(1, s.store.Len())

	count, _, err := s.store.Increment(s.ctx, "old", testWindow, s.now.Add(testWindow))
	s.Require().NoError(err)
	s.Equal(1, count)
}

// TestConcurrentIncrements checks that no increment is lost across goroutines,
// including while a sweeper runs.
func (s *MemoryStoreSuite) TestConcurrentIncrements() {
	const (
		keys       = 8
		goroutines = 16
		perWorker  = 50
	)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
				// Nothing has expired at s.now, so this never drops a live window.
				s.store.Sweep(s.now)
			}
		}
	}()

	for g := range goroutines {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			key := fmt.Sprintf("k:%d", g%keys)
			for range perWorker {
				_, _, err := s.store.Increment(s.ctx, key, testWindow, s.now)
				s.NoError(err)
			}
		}(g)
	}
	wg.Wait()
	close(stop)

	for k := range keys {
		count, _, err := s.store.Increment(s.ctx, fmt.Sprintf("k:%d", k), testWindow, s.now)
		s.Require().NoError(err)
		s.Equal(goroutines/keys*perWorker+1, count)
	}
}
