package tracker

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/jonboulle/clockwork"

	"github.com/wangenkai1024/zksync-era/core/types"
)

var testContract = common.HexToAddress("0xabea9132b05a70803a4e85094fd0e1800777fbef")

func priorityLog(contract common.Address, serialID uint64) *ethtypes.Log {
	data := make([]byte, 32)
	binary.BigEndian.PutUint64(data[24:32], serialID)
	return &ethtypes.Log{
		Address: contract,
		Topics:  []common.Hash{NewPriorityRequestTopic},
		Data:    data,
	}
}

// scriptedL1 returns ethereum.NotFound until the receipt becomes available.
type scriptedL1 struct {
	notFoundPolls int
	receipt       *ethtypes.Receipt
	calls         int
}

func (s *scriptedL1) TransactionReceipt(ctx context.Context, txHash common.Hash) (*ethtypes.Receipt, error) {
	s.calls++
	if s.calls <= s.notFoundPolls {
		return nil, ethereum.NotFound
	}
	return s.receipt, nil
}

// scriptedQueue replays priority-queue statuses, holding the last one.
type scriptedQueue struct {
	statuses []types.Status
	calls    int
}

func (s *scriptedQueue) PriorityOpStatus(ctx context.Context, serialID uint64) (*types.PriorityOpReceipt, error) {
	i := s.calls
	if i >= len(s.statuses) {
		i = len(s.statuses) - 1
	}
	s.calls++
	return &types.PriorityOpReceipt{SerialID: serialID, Status: s.statuses[i]}, nil
}

func TestSerialIDFromLogs(t *testing.T) {
	tr := NewPriorityTracker(nil, nil, testContract)

	logs := []*ethtypes.Log{
		{Address: common.HexToAddress("0x01")}, // other contract
		priorityLog(testContract, 42),
	}
	id, err := tr.SerialIDFromLogs(logs)
	if err != nil {
		t.Fatalf("SerialIDFromLogs: %v", err)
	}
	if id != 42 {
		t.Fatalf("serial id = %d, want 42", id)
	}
}

func TestSerialIDFromLogsNoMatch(t *testing.T) {
	tr := NewPriorityTracker(nil, nil, testContract)

	// right contract, wrong topic
	logs := []*ethtypes.Log{{
		Address: testContract,
		Topics:  []common.Hash{common.HexToHash("0x01")},
		Data:    make([]byte, 32),
	}}
	if _, err := tr.SerialIDFromLogs(logs); !errors.Is(err, ErrNoPriorityOp) {
		t.Fatalf("SerialIDFromLogs error = %v, want ErrNoPriorityOp", err)
	}
}

func TestAwaitSerialIDPollsUntilMined(t *testing.T) {
	l1 := &scriptedL1{
		notFoundPolls: 2,
		receipt: &ethtypes.Receipt{
			Status: ethtypes.ReceiptStatusSuccessful,
			Logs:   []*ethtypes.Log{priorityLog(testContract, 42)},
		},
	}
	tr := NewPriorityTracker(nil, l1, testContract)

	id, err := tr.AwaitSerialID(context.Background(), common.HexToHash("0x01"), fastWait)
	if err != nil {
		t.Fatalf("AwaitSerialID: %v", err)
	}
	if id != 42 {
		t.Fatalf("serial id = %d, want 42", id)
	}
	if l1.calls != 3 {
		t.Fatalf("L1 poll count = %d, want 3", l1.calls)
	}
}

func TestAwaitSerialIDReverted(t *testing.T) {
	l1 := &scriptedL1{receipt: &ethtypes.Receipt{Status: ethtypes.ReceiptStatusFailed}}
	tr := NewPriorityTracker(nil, l1, testContract)

	if _, err := tr.AwaitSerialID(context.Background(), common.HexToHash("0x01"), fastWait); !errors.Is(err, ErrL1Reverted) {
		t.Fatalf("AwaitSerialID error = %v, want ErrL1Reverted", err)
	}
}

func TestAwaitSerialIDTimeout(t *testing.T) {
	// Never mined: every poll reports not found until the budget runs out.
	l1 := &scriptedL1{notFoundPolls: 100}
	fake := clockwork.NewFakeClock()
	clk := &recordingClock{Clock: fake}
	tr := NewPriorityTracker(nil, l1, testContract, WithPriorityClock(clk))

	cfg := WaitConfig{
		PollInterval:      time.Second,
		BackoffMultiplier: 2,
		MaxWait:           3 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		_, err := tr.AwaitSerialID(context.Background(), common.HexToHash("0x01"), cfg)
		errc <- err
	}()

	// Sleeps of 1s then 2s land the third poll exactly on the deadline.
	for _, d := range []time.Duration{time.Second, 2 * time.Second} {
		fake.BlockUntil(1)
		fake.Advance(d)
	}
	if err := <-errc; !IsTimeout(err) {
		t.Fatalf("AwaitSerialID error = %v, want timeout", err)
	}
	if l1.calls != 3 {
		t.Fatalf("L1 poll count = %d, want 3", l1.calls)
	}
	sleeps := clk.recorded()
	if len(sleeps) != 2 || sleeps[0] != time.Second || sleeps[1] != 2*time.Second {
		t.Fatalf("sleep schedule = %v, want [1s 2s]", sleeps)
	}
}

func TestWaitL2ResolvesOnCommit(t *testing.T) {
	q := &scriptedQueue{statuses: []types.Status{
		types.StatusPending,
		types.StatusPending,
		types.StatusCommitted,
	}}
	tr := NewPriorityTracker(q, nil, testContract)

	receipt, err := tr.WaitL2(context.Background(), 42, fastWait)
	if err != nil {
		t.Fatalf("WaitL2: %v", err)
	}
	if receipt.SerialID != 42 {
		t.Fatalf("serial id = %d, want 42", receipt.SerialID)
	}
	if StateOf(receipt) != OpL2Confirmed {
		t.Fatalf("state = %s, want l2-confirmed", StateOf(receipt))
	}
	if q.calls != 3 {
		t.Fatalf("queue poll count = %d, want 3", q.calls)
	}
}

func TestWaitL2Timeout(t *testing.T) {
	q := &scriptedQueue{statuses: []types.Status{types.StatusPending}}
	fake := clockwork.NewFakeClock()
	tr := NewPriorityTracker(q, nil, testContract, WithPriorityClock(fake))

	cfg := WaitConfig{
		PollInterval:      time.Second,
		BackoffMultiplier: 1,
		MaxWait:           2 * time.Second,
	}
	type result struct {
		receipt *types.PriorityOpReceipt
		err     error
	}
	done := make(chan result, 1)
	go func() {
		r, err := tr.WaitL2(context.Background(), 7, cfg)
		done <- result{r, err}
	}()

	for i := 0; i < 2; i++ {
		fake.BlockUntil(1)
		fake.Advance(time.Second)
	}
	got := <-done
	if !IsTimeout(got.err) {
		t.Fatalf("WaitL2 error = %v, want timeout", got.err)
	}
	if got.receipt == nil || got.receipt.Status != types.StatusPending {
		t.Fatalf("receipt on timeout = %+v, want pending", got.receipt)
	}
	if q.calls != 3 {
		t.Fatalf("queue poll count = %d, want 3", q.calls)
	}
}

func TestTrackEndToEnd(t *testing.T) {
	l1 := &scriptedL1{
		notFoundPolls: 1,
		receipt: &ethtypes.Receipt{
			Status: ethtypes.ReceiptStatusSuccessful,
			Logs:   []*ethtypes.Log{priorityLog(testContract, 42)},
		},
	}
	q := &scriptedQueue{statuses: []types.Status{
		types.StatusPending,
		types.StatusExecuted,
	}}
	tr := NewPriorityTracker(q, l1, testContract)

	receipt, err := tr.Track(context.Background(), common.HexToHash("0x01"), fastWait)
	if err != nil {
		t.Fatalf("Track: %v", err)
	}
	if receipt.SerialID != 42 {
		t.Fatalf("serial id = %d, want 42", receipt.SerialID)
	}
	if receipt.Status != types.StatusExecuted {
		t.Fatalf("status = %s, want executed", receipt.Status)
	}
}

func TestStateOf(t *testing.T) {
	cases := []struct {
		status types.Status
		want   PriorityOpState
	}{
		{types.StatusPending, OpL2Pending},
		{types.StatusCommitted, OpL2Confirmed},
		{types.StatusExecuted, OpL2Confirmed},
		{types.StatusFailed, OpL2Failed},
	}
	for _, c := range cases {
		got := StateOf(&types.PriorityOpReceipt{Status: c.status})
		if got != c.want {
			t.Fatalf("StateOf(%s) = %s, want %s", c.status, got, c.want)
		}
	}
}
