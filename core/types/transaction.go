// Package types implements the rollup transaction model: the closed set of
// typed transaction variants, their canonical signing bytes, and the account,
// fee and receipt structures exchanged with the operator.
package types

import (
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// TxType tags a transaction variant. The numbering matches the rollup
// protocol's operation codes and is part of the canonical encoding.
type TxType uint8

const (
	TxTypeWithdraw     TxType = 3
	TxTypeTransfer     TxType = 5
	TxTypeChangePubKey TxType = 7
	TxTypeForcedExit   TxType = 8
	TxTypeMintNFT      TxType = 9
	TxTypeWithdrawNFT  TxType = 10
	TxTypeSwap         TxType = 11
)

func (t TxType) String() string {
	switch t {
	case TxTypeWithdraw:
		return "Withdraw"
	case TxTypeTransfer:
		return "Transfer"
	case TxTypeChangePubKey:
		return "ChangePubKey"
	case TxTypeForcedExit:
		return "ForcedExit"
	case TxTypeMintNFT:
		return "MintNFT"
	case TxTypeWithdrawNFT:
		return "WithdrawNFT"
	case TxTypeSwap:
		return "Swap"
	default:
		return "Unknown"
	}
}

// TokenID identifies a token registered on the rollup.
type TokenID uint32

// TimeRange bounds the L2 blocks in which a transaction may be included.
// The zero value means "always valid" and encodes ValidUntil as MaxUint64.
type TimeRange struct {
	ValidFrom  uint64 `json:"validFrom"`
	ValidUntil uint64 `json:"validUntil"`
}

func (tr TimeRange) withDefaults() TimeRange {
	if tr.ValidUntil == 0 {
		tr.ValidUntil = ^uint64(0)
	}
	return tr
}

func (tr TimeRange) validate() error {
	eff := tr.withDefaults()
	if eff.ValidFrom > eff.ValidUntil {
		return errInvalid("timeRange", "validFrom exceeds validUntil")
	}
	return nil
}

// TxData is implemented by all transaction variants. The methods are
// unexported: external code constructs concrete variants and wraps them
// with NewTx.
type TxData interface {
	txType() TxType
	account() common.Address
	nonce() uint32
	fee() *big.Int
	feeToken() TokenID
	validate() error
	signPayload() ([]byte, error)
	marshalJSON() ([]byte, error)
}

// Transaction is a rollup transaction of any variant.
type Transaction struct {
	inner TxData

	// cache of the canonical hash
	hash atomic.Value
}

// NewTx wraps a concrete transaction variant.
func NewTx(inner TxData) *Transaction {
	return &Transaction{inner: inner}
}

// Type returns the variant tag.
func (tx *Transaction) Type() TxType { return tx.inner.txType() }

// Account returns the L1 address of the account issuing the transaction.
func (tx *Transaction) Account() common.Address { return tx.inner.account() }

// Nonce returns the account nonce the transaction was built against.
func (tx *Transaction) Nonce() uint32 { return tx.inner.nonce() }

// Fee returns the operator fee in the fee token's smallest unit.
func (tx *Transaction) Fee() *big.Int { return tx.inner.fee() }

// FeeToken returns the token the fee is denominated in.
func (tx *Transaction) FeeToken() TokenID { return tx.inner.feeToken() }

// Validate checks structural constraints: field presence, value ranges and
// packability of amounts. It performs no network access.
func (tx *Transaction) Validate() error { return tx.inner.validate() }

// SignPayload returns the canonical byte encoding covered by the rollup
// signature. It is pure and deterministic: the same logical transaction
// always yields identical bytes.
func (tx *Transaction) SignPayload() ([]byte, error) { return tx.inner.signPayload() }

// RequiresLayerOneAuth reports whether this variant must always carry an
// auxiliary base-chain signature proving control of the L1 address.
func (tx *Transaction) RequiresLayerOneAuth() bool {
	return tx.Type() == TxTypeChangePubKey
}

// Hash returns the transaction hash: keccak256 over the canonical bytes.
// The hash identifies the transaction before any receipt exists.
func (tx *Transaction) Hash() (common.Hash, error) {
	if h := tx.hash.Load(); h != nil {
		return h.(common.Hash), nil
	}
	payload, err := tx.SignPayload()
	if err != nil {
		return common.Hash{}, err
	}
	h := ethcrypto.Keccak256Hash(payload)
	tx.hash.Store(h)
	return h, nil
}

// MarshalJSON encodes the transaction in the operator's wire form, with the
// variant name in a "type" field.
func (tx *Transaction) MarshalJSON() ([]byte, error) {
	return tx.inner.marshalJSON()
}

// Data returns the underlying variant, for assertion to a concrete type.
func (tx *Transaction) Data() TxData { return tx.inner }

func copyBig(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
