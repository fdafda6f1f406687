package types

import (
	"fmt"
	"math/big"
)

// ValidationError reports a structurally invalid transaction field. It is a
// local failure: a transaction failing validation is never submitted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("types: invalid %s: %s", e.Field, e.Reason)
}

func errInvalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func validatePackableAmount(field string, v *big.Int) error {
	if v == nil || v.Sign() < 0 {
		return errInvalid(field, "must be non-negative")
	}
	if !IsPackableAmount(v) {
		return errInvalid(field, "not packable, round with ClosestPackableAmount first")
	}
	return nil
}

func validatePackableFee(field string, v *big.Int) error {
	if v == nil || v.Sign() < 0 {
		return errInvalid(field, "must be non-negative")
	}
	if !IsPackableFee(v) {
		return errInvalid(field, "not packable, round with ClosestPackableFee first")
	}
	return nil
}

func validateFullAmount(field string, v *big.Int) error {
	if v == nil || v.Sign() < 0 {
		return errInvalid(field, "must be non-negative")
	}
	if v.BitLen() > 8*fullAmountBytes {
		return errInvalid(field, "exceeds 128 bits")
	}
	return nil
}
