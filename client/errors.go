package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"
)

// Rejection codes the operator attaches to protocol-level refusals.
const (
	CodeNonceMismatch       = 101
	CodeInsufficientBalance = 102
	CodeInvalidSignature    = 103
	CodeFeeTooLow           = 104
	CodeAccountLocked       = 105
	CodeTokenUnknown        = 110
	CodeFeeUnavailable      = 111
)

// ErrFeeUnavailable is returned when the operator cannot price the requested
// token/operation combination.
var ErrFeeUnavailable = errors.New("client: operator cannot price this operation")

// RejectedError is an operator refusal: the request was delivered and
// understood, and the operator said no. It is never retried verbatim — the
// caller must rebuild (refresh nonce, refresh fee) before resubmitting.
type RejectedError struct {
	Code   int
	Reason string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("client: operator rejected (code %d): %s", e.Code, e.Reason)
}

// TransientError is a transport-level failure: the request may never have
// reached the operator. It is retried with backoff up to the configured
// bound before being surfaced.
type TransientError struct {
	Op  string
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("client: transient failure in %s: %v", e.Op, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// IsTransient reports whether err is retryable.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// IsRejected reports whether err is an operator refusal.
func IsRejected(err error) bool {
	var re *RejectedError
	return errors.As(err, &re)
}

// IsNonceMismatch reports whether the operator refused the transaction for a
// stale or duplicate nonce. The nonce tracker re-syncs on this signal.
func IsNonceMismatch(err error) bool {
	var re *RejectedError
	if !errors.As(err, &re) {
		return false
	}
	return re.Code == CodeNonceMismatch || strings.Contains(strings.ToLower(re.Reason), "nonce")
}

// mapRPCError classifies a transport error into the client taxonomy.
func mapRPCError(op string, err error) error {
	if err == nil {
		return nil
	}
	// Caller-driven cancellation is neither transient nor rejected.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode >= 500 || httpErr.StatusCode == 429 {
			return &TransientError{Op: op, Err: err}
		}
		return &RejectedError{Code: httpErr.StatusCode, Reason: httpErr.Status}
	}
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		if rpcErr.ErrorCode() == CodeFeeUnavailable {
			return fmt.Errorf("%w: %v", ErrFeeUnavailable, rpcErr)
		}
		return &RejectedError{Code: rpcErr.ErrorCode(), Reason: rpcErr.Error()}
	}
	// Everything else is the transport misbehaving: connection refused,
	// timeouts, truncated responses.
	return &TransientError{Op: op, Err: err}
}
