package types

import (
	"errors"
	"math/big"
)

// Amounts and fees cross the wire in a lossy mantissa/exponent form:
// value = mantissa * 10^exponent. Packing is canonical (smallest exponent
// whose mantissa fits), so re-encoding a packable value is deterministic.
const (
	AmountExpBits      = 5
	AmountMantissaBits = 35
	FeeExpBits         = 5
	FeeMantissaBits    = 11

	// PackedAmountBytes is the canonical width of a packed amount.
	PackedAmountBytes = (AmountExpBits + AmountMantissaBits) / 8
	// PackedFeeBytes is the canonical width of a packed fee.
	PackedFeeBytes = (FeeExpBits + FeeMantissaBits) / 8
)

var (
	// ErrNotPackable reports a value that the mantissa/exponent form cannot
	// represent exactly. Callers round first (see ClosestPackableAmount) and
	// must surface the trimming rather than lose funds silently.
	ErrNotPackable = errors.New("types: value not exactly representable in packed form")
	// ErrAmountTooLarge reports a value above the packed format's range.
	ErrAmountTooLarge = errors.New("types: value exceeds packed range")
	// ErrNegativeAmount reports a nil or negative value.
	ErrNegativeAmount = errors.New("types: amount must be non-negative")
)

var pow10Tab = func() []*big.Int {
	tab := make([]*big.Int, 32)
	tab[0] = big.NewInt(1)
	ten := big.NewInt(10)
	for i := 1; i < len(tab); i++ {
		tab[i] = new(big.Int).Mul(tab[i-1], ten)
	}
	return tab
}()

func maxMantissa(mantissaBits uint) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), mantissaBits)
	return m.Sub(m, big.NewInt(1))
}

var (
	maxAmountMantissa = maxMantissa(AmountMantissaBits)
	maxFeeMantissa    = maxMantissa(FeeMantissaBits)
)

// packValue encodes value as (mantissa << expBits | exponent) big-endian.
func packValue(value *big.Int, expBits, mantissaBits uint, maxM *big.Int) ([]byte, error) {
	if value == nil || value.Sign() < 0 {
		return nil, ErrNegativeAmount
	}
	maxExp := uint(1)<<expBits - 1
	mantissa := new(big.Int).Set(value)
	var exp uint
	for mantissa.Cmp(maxM) > 0 {
		if exp == maxExp {
			return nil, ErrAmountTooLarge
		}
		q, r := new(big.Int).QuoRem(mantissa, pow10Tab[1], new(big.Int))
		if r.Sign() != 0 {
			return nil, ErrNotPackable
		}
		mantissa = q
		exp++
	}
	packed := new(big.Int).Lsh(mantissa, expBits)
	packed.Or(packed, new(big.Int).SetUint64(uint64(exp)))
	out := make([]byte, (expBits+mantissaBits)/8)
	packed.FillBytes(out)
	return out, nil
}

// PackAmount encodes a transfer amount. The amount must be exactly
// representable; use ClosestPackableAmount first otherwise.
func PackAmount(amount *big.Int) ([]byte, error) {
	return packValue(amount, AmountExpBits, AmountMantissaBits, maxAmountMantissa)
}

// PackFee encodes an operator fee.
func PackFee(fee *big.Int) ([]byte, error) {
	return packValue(fee, FeeExpBits, FeeMantissaBits, maxFeeMantissa)
}

// IsPackableAmount reports whether amount survives packing without loss.
func IsPackableAmount(amount *big.Int) bool {
	_, err := PackAmount(amount)
	return err == nil
}

// IsPackableFee reports whether fee survives packing without loss.
func IsPackableFee(fee *big.Int) bool {
	_, err := PackFee(fee)
	return err == nil
}

func closestPackable(value *big.Int, expBits uint, maxM *big.Int, roundUp bool) (*big.Int, error) {
	if value == nil || value.Sign() < 0 {
		return nil, ErrNegativeAmount
	}
	maxExp := uint(1)<<expBits - 1
	for exp := uint(0); exp <= maxExp; exp++ {
		q, r := new(big.Int).QuoRem(value, pow10Tab[exp], new(big.Int))
		if roundUp && r.Sign() != 0 {
			q.Add(q, big.NewInt(1))
		}
		if q.Cmp(maxM) <= 0 {
			return q.Mul(q, pow10Tab[exp]), nil
		}
	}
	return nil, ErrAmountTooLarge
}

// ClosestPackableAmount returns the largest packable amount not exceeding
// amount. Rounding is always downward: funds are trimmed, never invented.
func ClosestPackableAmount(amount *big.Int) (*big.Int, error) {
	return closestPackable(amount, AmountExpBits, maxAmountMantissa, false)
}

// ClosestPackableFee returns the smallest packable fee not below fee, so a
// rounded fee never underpays the operator's quote.
func ClosestPackableFee(fee *big.Int) (*big.Int, error) {
	return closestPackable(fee, FeeExpBits, maxFeeMantissa, true)
}
