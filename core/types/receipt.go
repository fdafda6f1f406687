package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Status is the operator-reported lifecycle stage of a transaction or
// priority operation. The operator is authoritative; the client only caches
// the last observed value.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusPending
	StatusCommitted
	StatusVerified
	StatusExecuted
	StatusFailed
)

var statusNames = map[Status]string{
	StatusUnknown:   "unknown",
	StatusPending:   "pending",
	StatusCommitted: "committed",
	StatusVerified:  "verified",
	StatusExecuted:  "executed",
	StatusFailed:    "failed",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusExecuted || s == StatusFailed
}

// AtLeast reports whether s has reached the target finality stage. Failed
// satisfies only Failed: it is a side exit, not a stage on the happy path.
func (s Status) AtLeast(target Status) bool {
	if s == StatusFailed || target == StatusFailed {
		return s == target
	}
	return s >= target
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	for k, v := range statusNames {
		if v == string(text) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("types: unknown status %q", text)
}

// BlockInfo locates a transaction inside an L2 block and its finality flags.
type BlockInfo struct {
	BlockNumber uint64 `json:"blockNumber"`
	Committed   bool   `json:"committed"`
	Verified    bool   `json:"verified"`
}

// TxReceipt is the operator's view of a submitted transaction.
type TxReceipt struct {
	TxHash     common.Hash `json:"txHash"`
	Status     Status      `json:"status"`
	FailReason string      `json:"failReason,omitempty"`
	Block      *BlockInfo  `json:"block,omitempty"`
}

// PriorityOpReceipt is the operator's view of an L1-originated priority
// operation, addressed by its contract-assigned serial id.
type PriorityOpReceipt struct {
	SerialID   uint64     `json:"serialId"`
	Status     Status     `json:"status"`
	FailReason string     `json:"failReason,omitempty"`
	Block      *BlockInfo `json:"block,omitempty"`
}
