package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Token describes a token registered on the rollup.
type Token struct {
	ID       TokenID        `json:"id"`
	Address  common.Address `json:"address"`
	Symbol   string         `json:"symbol"`
	Decimals uint8          `json:"decimals"`
}

// IsNative reports whether this is the base chain's native token
// (registered at the zero address with id 0).
func (t *Token) IsNative() bool {
	return t.ID == 0 && t.Address == (common.Address{})
}

// ToUnits converts a human-readable decimal quantity into smallest units.
// The quantity must not carry more fractional digits than the token allows.
func (t *Token) ToUnits(quantity *big.Rat) (*big.Int, bool) {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(t.Decimals)), nil)
	scaled := new(big.Rat).Mul(quantity, new(big.Rat).SetInt(scale))
	if !scaled.IsInt() {
		return nil, false
	}
	return new(big.Int).Set(scaled.Num()), true
}

// FromUnits converts smallest units into a human-readable decimal quantity.
func (t *Token) FromUnits(units *big.Int) *big.Rat {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(t.Decimals)), nil)
	return new(big.Rat).SetFrac(new(big.Int).Set(units), scale)
}
