// Package tracker drives submitted transactions and L1 priority operations
// through their lifecycle by polling the operator. Progress is inferred from
// status responses only, never from elapsed time; timeouts end the local
// wait without touching the remote transaction.
package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/wangenkai1024/zksync-era/core/types"
)

// StatusSource answers transaction status queries. *client.Client satisfies it.
type StatusSource interface {
	TxStatus(ctx context.Context, txHash common.Hash) (*types.TxReceipt, error)
}

// WaitConfig bounds one waiting call. Zero fields take defaults.
type WaitConfig struct {
	PollInterval      time.Duration
	BackoffMultiplier float64
	MaxWait           time.Duration
}

var DefaultWaitConfig = WaitConfig{
	PollInterval:      500 * time.Millisecond,
	BackoffMultiplier: 1.5,
	MaxWait:           2 * time.Minute,
}

func (cfg WaitConfig) withDefaults() WaitConfig {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultWaitConfig.PollInterval
	}
	if cfg.BackoffMultiplier < 1 {
		cfg.BackoffMultiplier = DefaultWaitConfig.BackoffMultiplier
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = DefaultWaitConfig.MaxWait
	}
	return cfg
}

// TimeoutError reports that a wait budget ran out. It is not a transaction
// failure: the operation may still complete, and the caller can resume
// waiting with another call.
type TimeoutError struct {
	LastStatus types.Status
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("tracker: wait budget exceeded (last status %s)", e.LastStatus)
}

// IsTimeout reports whether err is a resumable wait timeout.
func IsTimeout(err error) bool {
	_, ok := err.(*TimeoutError)
	return ok
}

const defaultCacheSize = 1024

// Monitor tracks submitted transactions. It caches the last observed status
// per hash and guarantees the reported lifecycle never regresses.
type Monitor struct {
	src   StatusSource
	clock clockwork.Clock
	log   *zap.Logger
	cache *lru.Cache[common.Hash, types.Status]
}

// MonitorOption configures a Monitor.
type MonitorOption func(*Monitor)

func WithClock(clock clockwork.Clock) MonitorOption {
	return func(m *Monitor) { m.clock = clock }
}

func WithLogger(log *zap.Logger) MonitorOption {
	return func(m *Monitor) { m.log = log }
}

// NewMonitor creates a monitor polling the given source.
func NewMonitor(src StatusSource, opts ...MonitorOption) *Monitor {
	cache, _ := lru.New[common.Hash, types.Status](defaultCacheSize)
	m := &Monitor{
		src:   src,
		clock: clockwork.NewRealClock(),
		log:   zap.NewNop(),
		cache: cache,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// LastObserved returns the cached status of a previously polled hash.
func (m *Monitor) LastObserved(txHash common.Hash) (types.Status, bool) {
	return m.cache.Get(txHash)
}

// Wait polls until the transaction reaches target (or fails), or the budget
// runs out. On timeout it returns a TimeoutError; the transaction itself is
// untouched and a later Wait resumes from the operator's current state.
func (m *Monitor) Wait(ctx context.Context, txHash common.Hash, target types.Status, cfg WaitConfig) (*types.TxReceipt, error) {
	cfg = cfg.withDefaults()
	deadline := m.clock.Now().Add(cfg.MaxWait)
	interval := cfg.PollInterval
	state := types.StatusUnknown
	if cached, ok := m.cache.Get(txHash); ok {
		state = cached
	}

	for {
		receipt, err := m.src.TxStatus(ctx, txHash)
		if err != nil {
			return nil, err
		}
		state = m.advance(txHash, state, receipt.Status)
		m.cache.Add(txHash, state)

		if state == types.StatusFailed {
			return withStatus(receipt, state), nil
		}
		if state.AtLeast(target) || state.Terminal() {
			return withStatus(receipt, state), nil
		}
		if !m.clock.Now().Before(deadline) {
			return withStatus(receipt, state), &TimeoutError{LastStatus: state}
		}
		if err := m.sleep(ctx, interval); err != nil {
			return withStatus(receipt, state), err
		}
		interval = backoff(interval, cfg.BackoffMultiplier)
	}
}

// advance applies one observation to the lifecycle state machine. Terminal
// states are never exited and the stage ordering never regresses; an
// out-of-order poll result is logged and discarded.
func (m *Monitor) advance(txHash common.Hash, state, observed types.Status) types.Status {
	if state.Terminal() {
		return state
	}
	if observed == types.StatusFailed {
		return types.StatusFailed
	}
	if observed > state && observed != types.StatusFailed {
		return observed
	}
	if observed < state {
		m.log.Warn("operator reported regressed status, keeping prior",
			zap.Stringer("tx", txHash),
			zap.Stringer("observed", observed),
			zap.Stringer("state", state))
	}
	return state
}

func (m *Monitor) sleep(ctx context.Context, d time.Duration) error {
	timer := m.clock.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.Chan():
		return nil
	}
}

func withStatus(r *types.TxReceipt, s types.Status) *types.TxReceipt {
	if r.Status == s {
		return r
	}
	cpy := *r
	cpy.Status = s
	return &cpy
}
