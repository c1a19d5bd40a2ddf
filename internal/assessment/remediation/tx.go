package remediation

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	id "adequa/pkg/domain"
	dErrors "adequa/pkg/domain-errors"
)

// numOrgShards spreads organizations over independent locks so unrelated
// organizations never wait on each other.
const numOrgShards = 128

// defaultTxTimeout is the maximum duration for a task transaction.
const defaultTxTimeout = 5 * time.Second

// shardedTx serializes task mutations per organization for stores without
// transactions.
type shardedTx struct {
	shards  [numOrgShards]sync.Mutex
	store   Store
	timeout time.Duration
}

func newShardedTx(store Store, timeout time.Duration) *shardedTx {
	return &shardedTx{store: store, timeout: timeout}
}

func (t *shardedTx) RunInTx(ctx context.Context, orgID id.OrganizationID, fn func(ctx context.Context, store Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	shard := shardFor(orgID)
	t.shards[shard].Lock()
	defer t.shards[shard].Unlock()

	// The wait for the lock may have used up the deadline.
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	return fn(ctx, t.store)
}

func shardFor(orgID id.OrganizationID) int {
	h := fnv.New32a()
	_, _ = h.Write(orgID[:])
	return int(h.Sum32() % numOrgShards)
}
