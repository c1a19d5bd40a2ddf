//go:build integration

package redis_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	ratelimitredis "adequa/internal/ratelimit/store/redis"
	"adequa/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *ratelimitredis.Store
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.store = ratelimitredis.New(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestIncrementOpensAndSharesWindow() {
	ctx := context.Background()
	now := time.Now()

	count, resetAt, err := s.store.Increment(ctx, "ratelimit:a:op", time.Minute, now)
	s.Require().NoError(err)
	s.Equal(1, count)
	s.WithinDuration(now.Add(time.Minute), resetAt, time.Second)

	count, _, err = s.store.Increment(ctx, "ratelimit:a:op", time.Minute, now)
	s.Require().NoError(err)
	s.Equal(2, count)

	ttl, err := s.redis.Client.PTTL(ctx, "ratelimit:a:op").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
}

func (s *RedisStoreSuite) TestWindowExpires() {
	ctx := context.Background()

	_, _, err := s.store.Increment(ctx, "ratelimit:b:op", 200*time.Millisecond, time.Now())
	s.Require().NoError(err)

	s.Eventually(func() bool {
		n, err := s.redis.Client.Exists(ctx, "ratelimit:b:op").Result()
		return err == nil && n == 0
	}, 2*time.Second, 50*time.Millisecond)

	count, _, err := s.store.Increment(ctx, "ratelimit:b:op", 200*time.Millisecond, time.Now())
	s.Require().NoError(err)
	s.Equal(1, count)
}

// TestConcurrentIncrements verifies the script counts every call exactly once.
func (s *RedisStoreSuite) TestConcurrentIncrements() {
	ctx := context.Background()
	const goroutines = 50

	var wg sync.WaitGroup
	var maxSeen atomic.Int64
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			count, _, err := s.store.Increment(ctx, "ratelimit:c:op", time.Minute, time.Now())
			s.NoError(err)
			for {
				cur := maxSeen.Load()
				if int64(count) <= cur || maxSeen.CompareAndSwap(cur, int64(count)) {
					break
				}
			}
		}()
	}
	wg.Wait()

	s.Equal(int64(goroutines), maxSeen.Load())
}
