package accounts

import (
	"context"
	"fmt"
	"math/big"

	"github.com/wangenkai1024/zksync-era/core/types"
)

// FeeTooHighError reports an estimate above the caller's cap. The operation
// fails fast; nothing is submitted.
type FeeTooHighError struct {
	Estimated *big.Int
	Max       *big.Int
}

func (e *FeeTooHighError) Error() string {
	return fmt.Sprintf("accounts: fee %s exceeds cap %s", e.Estimated, e.Max)
}

// PrecisionLossError reports an amount the packed encoding cannot carry
// exactly. Closest is the trimmed value that would be transferred; the
// caller re-issues with AllowRounding (or with Closest) to accept it.
type PrecisionLossError struct {
	Requested *big.Int
	Closest   *big.Int
}

func (e *PrecisionLossError) Error() string {
	return fmt.Sprintf("accounts: amount %s not packable, closest is %s (rounded down)", e.Requested, e.Closest)
}

// resolveAmount enforces the precision policy: unpackable amounts are only
// trimmed — always downward — when the caller opted in.
func resolveAmount(amount *big.Int, allowRounding bool) (*big.Int, error) {
	if types.IsPackableAmount(amount) {
		return amount, nil
	}
	closest, err := types.ClosestPackableAmount(amount)
	if err != nil {
		return nil, err
	}
	if !allowRounding {
		return nil, &PrecisionLossError{Requested: amount, Closest: closest}
	}
	return closest, nil
}

// resolveFee produces the packable fee for an operation: the caller's
// override when given, the operator estimate otherwise, rounded up to the
// packed form so the quote is never underpaid, then checked against the cap.
func (w *Wallet) resolveFee(ctx context.Context, feeType types.TxFeeType, token types.TokenID, override, max *big.Int) (*big.Int, error) {
	fee := override
	if fee == nil {
		estimate, err := w.op.EstimateFee(ctx, feeType, w.address, token)
		if err != nil {
			return nil, err
		}
		fee = estimate.Total()
	}
	fee, err := types.ClosestPackableFee(fee)
	if err != nil {
		return nil, err
	}
	if max != nil && fee.Cmp(max) > 0 {
		return nil, &FeeTooHighError{Estimated: fee, Max: max}
	}
	return fee, nil
}
