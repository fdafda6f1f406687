package tracker

import (
	"context"
	"encoding/binary"
	"errors"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/wangenkai1024/zksync-era/core/types"
)

// PriorityOpState is the lifecycle stage of an L1-originated operation.
type PriorityOpState int

const (
	OpSubmitted PriorityOpState = iota
	OpAwaitingSerialID
	OpSerialIDKnown
	OpL2Pending
	OpL2Confirmed
	OpL2Failed
)

func (s PriorityOpState) String() string {
	switch s {
	case OpSubmitted:
		return "submitted"
	case OpAwaitingSerialID:
		return "awaiting-serial-id"
	case OpSerialIDKnown:
		return "serial-id-known"
	case OpL2Pending:
		return "l2-pending"
	case OpL2Confirmed:
		return "l2-confirmed"
	case OpL2Failed:
		return "l2-failed"
	default:
		return "unknown"
	}
}

// NewPriorityRequestTopic is the first topic of the rollup contract's log
// announcing an accepted priority operation.
var NewPriorityRequestTopic = ethcrypto.Keccak256Hash(
	[]byte("NewPriorityRequest(address,uint64,uint8,bytes)"))

var (
	// ErrNoPriorityOp means the L1 receipt carried no priority request log
	// from the rollup contract.
	ErrNoPriorityOp = errors.New("tracker: no priority operation in receipt")
	// ErrL1Reverted means the base chain included the submission but the
	// contract call reverted; no priority operation was queued.
	ErrL1Reverted = errors.New("tracker: L1 submission reverted")
)

// OperatorSource answers priority-queue status queries. *client.Client
// satisfies it.
type OperatorSource interface {
	PriorityOpStatus(ctx context.Context, serialID uint64) (*types.PriorityOpReceipt, error)
}

// L1Source yields base-chain transaction receipts. *ethclient.Client
// satisfies it.
type L1Source interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error)
}

// PriorityTracker follows a deposit (or other priority operation) from its
// L1 submission to its L2-side processing.
type PriorityTracker struct {
	op       OperatorSource
	l1       L1Source
	contract common.Address
	clock    clockwork.Clock
	log      *zap.Logger
}

// PriorityOption configures a PriorityTracker.
type PriorityOption func(*PriorityTracker)

func WithPriorityClock(clock clockwork.Clock) PriorityOption {
	return func(t *PriorityTracker) { t.clock = clock }
}

func WithPriorityLogger(log *zap.Logger) PriorityOption {
	return func(t *PriorityTracker) { t.log = log }
}

// NewPriorityTracker creates a tracker for priority operations queued via
// the given rollup contract.
func NewPriorityTracker(op OperatorSource, l1 L1Source, contract common.Address, opts ...PriorityOption) *PriorityTracker {
	t := &PriorityTracker{
		op:       op,
		l1:       l1,
		contract: contract,
		clock:    clockwork.NewRealClock(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SerialIDFromLogs extracts the contract-assigned serial id from the logs of
// a mined L1 receipt.
func (t *PriorityTracker) SerialIDFromLogs(logs []*ethtypes.Log) (uint64, error) {
	for _, l := range logs {
		if l == nil || l.Address != t.contract {
			continue
		}
		if len(l.Topics) == 0 || l.Topics[0] != NewPriorityRequestTopic {
			continue
		}
		if len(l.Data) < 32 {
			continue
		}
		// serial id is the first ABI word of the log data
		return binary.BigEndian.Uint64(l.Data[24:32]), nil
	}
	return 0, ErrNoPriorityOp
}

// AwaitSerialID polls the base chain until the submission is mined and
// returns the queued operation's serial id.
func (t *PriorityTracker) AwaitSerialID(ctx context.Context, l1TxHash common.Hash, cfg WaitConfig) (uint64, error) {
	cfg = cfg.withDefaults()
	deadline := t.clock.Now().Add(cfg.MaxWait)
	interval := cfg.PollInterval

	for {
		receipt, err := t.l1.TransactionReceipt(ctx, l1TxHash)
		switch {
		case errors.Is(err, ethereum.NotFound):
			// not mined yet, keep polling
		case err != nil:
			return 0, err
		case receipt.Status != ethtypes.ReceiptStatusSuccessful:
			return 0, ErrL1Reverted
		default:
			return t.SerialIDFromLogs(receipt.Logs)
		}

		if !t.clock.Now().Before(deadline) {
			return 0, &TimeoutError{LastStatus: types.StatusUnknown}
		}
		if err := t.sleep(ctx, interval); err != nil {
			return 0, err
		}
		interval = backoff(interval, cfg.BackoffMultiplier)
	}
}

// WaitL2 polls the operator's priority queue until the operation completes,
// fails, or the budget runs out. A timeout is resumable by serial id.
func (t *PriorityTracker) WaitL2(ctx context.Context, serialID uint64, cfg WaitConfig) (*types.PriorityOpReceipt, error) {
	cfg = cfg.withDefaults()
	deadline := t.clock.Now().Add(cfg.MaxWait)
	interval := cfg.PollInterval

	for {
		receipt, err := t.op.PriorityOpStatus(ctx, serialID)
		if err != nil {
			return nil, err
		}
		switch StateOf(receipt) {
		case OpL2Confirmed, OpL2Failed:
			return receipt, nil
		}

		if !t.clock.Now().Before(deadline) {
			return receipt, &TimeoutError{LastStatus: receipt.Status}
		}
		if err := t.sleep(ctx, interval); err != nil {
			return receipt, err
		}
		interval = backoff(interval, cfg.BackoffMultiplier)
	}
}

// Track follows an L1 submission end to end: inclusion, serial id
// extraction, then L2-side processing.
func (t *PriorityTracker) Track(ctx context.Context, l1TxHash common.Hash, cfg WaitConfig) (*types.PriorityOpReceipt, error) {
	serialID, err := t.AwaitSerialID(ctx, l1TxHash, cfg)
	if err != nil {
		return nil, err
	}
	t.log.Debug("priority operation queued",
		zap.Stringer("l1Tx", l1TxHash),
		zap.Uint64("serialId", serialID))
	return t.WaitL2(ctx, serialID, cfg)
}

// StateOf maps an operator receipt onto the tracker's state machine.
func StateOf(r *types.PriorityOpReceipt) PriorityOpState {
	switch {
	case r == nil:
		return OpL2Pending
	case r.Status == types.StatusFailed:
		return OpL2Failed
	case r.Status.AtLeast(types.StatusCommitted):
		return OpL2Confirmed
	default:
		return OpL2Pending
	}
}

func (t *PriorityTracker) sleep(ctx context.Context, d time.Duration) error {
	timer := t.clock.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.Chan():
		return nil
	}
}

func backoff(interval time.Duration, multiplier float64) time.Duration {
	return time.Duration(float64(interval) * multiplier)
}
