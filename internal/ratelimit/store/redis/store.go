// Package redis keeps fixed-window counters in Redis so several processes share them.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// incrementScript counts one call and starts the window on the first one.
// A key left without a TTL (e.g. by a failed PEXPIRE) is given one.
var incrementScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// Store implements ports.CounterStore on Redis.
type Store struct {
	client redis.Scripter
}

// New creates a store over client.
func New(client redis.Scripter) *Store {
	return &Store{client: client}
}

// Increment counts one call against key. The window length is applied by Redis;
// resetAt is derived from the key's remaining TTL relative to now.
func (s *Store) Increment(ctx context.Context, key string, window time.Duration, now time.Time) (int, time.Time, error) {
	res, err := incrementScript.Run(ctx, s.client, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("increment rate limit window: %w", err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("increment rate limit window: unexpected reply of length %d", len(res))
	}
	return int(res[0]), now.Add(time.Duration(res[1]) * time.Millisecond), nil
}
