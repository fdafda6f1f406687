package accounts

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/wangenkai1024/zksync-era/client"
)

// nonceTracker owns nonce assignment for one account. It syncs lazily from
// the operator, advances optimistically after each accepted submission, and
// re-syncs — never guesses — after a nonce-mismatch rejection.
type nonceTracker struct {
	op      Operator
	address common.Address

	mu        sync.Mutex
	synced    bool
	next      uint32
	accountID uint32
}

func newNonceTracker(op Operator, address common.Address) *nonceTracker {
	return &nonceTracker{op: op, address: address}
}

// Do runs fn with the next nonce while holding the assignment lock,
// serializing concurrent submissions from the same account. The nonce
// advances only when fn succeeds; a nonce-mismatch rejection invalidates
// the cache so the next call re-syncs from the operator.
func (t *nonceTracker) Do(ctx context.Context, fn func(accountID, nonce uint32) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.syncLocked(ctx); err != nil {
		return err
	}
	if err := fn(t.accountID, t.next); err != nil {
		if client.IsNonceMismatch(err) {
			t.synced = false
		}
		return err
	}
	t.next++
	return nil
}

// Nonce returns the nonce the next transaction would use.
func (t *nonceTracker) Nonce(ctx context.Context) (uint32, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.syncLocked(ctx); err != nil {
		return 0, err
	}
	return t.next, nil
}

// AccountID returns the rollup-assigned account id.
func (t *nonceTracker) AccountID(ctx context.Context) (uint32, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.syncLocked(ctx); err != nil {
		return 0, err
	}
	return t.accountID, nil
}

// Invalidate drops the cached state; the next use re-fetches it.
func (t *nonceTracker) Invalidate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.synced = false
}

func (t *nonceTracker) syncLocked(ctx context.Context) error {
	if t.synced {
		return nil
	}
	state, err := t.op.AccountState(ctx, t.address)
	if err != nil {
		return err
	}
	t.next = state.Committed.Nonce
	t.accountID = state.ID
	t.synced = true
	return nil
}
