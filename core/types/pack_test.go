package types

import (
	"bytes"
	"errors"
	"math/big"
	"testing"
)

func TestPackAmountRoundTripExact(t *testing.T) {
	cases := []int64{0, 1, 1000, 2047, 34359738367, 1000000000000}
	for _, v := range cases {
		amount := big.NewInt(v)
		packed, err := PackAmount(amount)
		if err != nil {
			t.Fatalf("PackAmount(%d): %v", v, err)
		}
		if len(packed) != PackedAmountBytes {
			t.Fatalf("PackAmount(%d): got %d bytes, want %d", v, len(packed), PackedAmountBytes)
		}
		again, err := PackAmount(amount)
		if err != nil {
			t.Fatalf("repack(%d): %v", v, err)
		}
		if !bytes.Equal(packed, again) {
			t.Fatalf("PackAmount(%d) not deterministic: %x vs %x", v, packed, again)
		}
	}
}

func TestPackAmountRejectsUnrepresentable(t *testing.T) {
	// one above the mantissa limit and not divisible by 10
	v := new(big.Int).Lsh(big.NewInt(1), AmountMantissaBits)
	if _, err := PackAmount(v); !errors.Is(err, ErrNotPackable) {
		t.Fatalf("PackAmount(2^35) error = %v, want ErrNotPackable", err)
	}
	if _, err := PackAmount(big.NewInt(-1)); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("PackAmount(-1) error = %v, want ErrNegativeAmount", err)
	}
	if _, err := PackAmount(nil); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("PackAmount(nil) error = %v, want ErrNegativeAmount", err)
	}
}

func TestClosestPackableAmountRoundsDown(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		// within mantissa range: exact
		{"34359738367", "34359738367"},
		// above: trimmed to the nearest lower representable value
		{"34359738368", "34359738360"},
		{"123456789012345", "123456789010000"},
	}
	for _, c := range cases {
		in, _ := new(big.Int).SetString(c.in, 10)
		want, _ := new(big.Int).SetString(c.want, 10)
		got, err := ClosestPackableAmount(in)
		if err != nil {
			t.Fatalf("ClosestPackableAmount(%s): %v", c.in, err)
		}
		if got.Cmp(want) != 0 {
			t.Fatalf("ClosestPackableAmount(%s) = %s, want %s", c.in, got, want)
		}
		if got.Cmp(in) > 0 {
			t.Fatalf("ClosestPackableAmount(%s) = %s rounded up", c.in, got)
		}
		if !IsPackableAmount(got) {
			t.Fatalf("ClosestPackableAmount(%s) = %s is not packable", c.in, got)
		}
	}
}

func TestClosestPackableFeeRoundsUp(t *testing.T) {
	// 2048 exceeds the 11-bit fee mantissa; the next representable value
	// upward is 2050.
	got, err := ClosestPackableFee(big.NewInt(2048))
	if err != nil {
		t.Fatalf("ClosestPackableFee: %v", err)
	}
	if got.Cmp(big.NewInt(2050)) != 0 {
		t.Fatalf("ClosestPackableFee(2048) = %s, want 2050", got)
	}
	if !IsPackableFee(got) {
		t.Fatalf("rounded fee %s is not packable", got)
	}
}

func TestPackAmountTooLarge(t *testing.T) {
	// beyond mantissa * 10^maxExp
	huge := new(big.Int).Exp(big.NewInt(10), big.NewInt(45), nil)
	if _, err := PackAmount(huge); !errors.Is(err, ErrAmountTooLarge) {
		t.Fatalf("PackAmount(10^45) error = %v, want ErrAmountTooLarge", err)
	}
	if _, err := ClosestPackableAmount(huge); !errors.Is(err, ErrAmountTooLarge) {
		t.Fatalf("ClosestPackableAmount(10^45) error = %v, want ErrAmountTooLarge", err)
	}
}

func TestPackFeeKnownEncoding(t *testing.T) {
	// 10^6 = 1000 * 10^3: mantissa 1000, exponent 3 -> 1000<<5 | 3 = 0x7d03
	got, err := PackFee(big.NewInt(1000000))
	if err != nil {
		t.Fatalf("PackFee: %v", err)
	}
	if !bytes.Equal(got, []byte{0x7d, 0x03}) {
		t.Fatalf("PackFee(1e6) = %x, want 7d03", got)
	}
}
