package types

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Withdraw moves funds from a rollup account to an L1 address. Withdrawn
// amounts are encoded in full 128-bit precision, not packed: exits must be
// exact to the unit.
type Withdraw struct {
	AccountID uint32
	From      common.Address
	To        common.Address // L1 recipient
	Token     TokenID
	Amount    *big.Int
	Fee       *big.Int
	Nonce     uint32
	Valid     TimeRange
}

func (tx *Withdraw) txType() TxType          { return TxTypeWithdraw }
func (tx *Withdraw) account() common.Address { return tx.From }
func (tx *Withdraw) nonce() uint32           { return tx.Nonce }
func (tx *Withdraw) fee() *big.Int           { return copyBig(tx.Fee) }
func (tx *Withdraw) feeToken() TokenID       { return tx.Token }

func (tx *Withdraw) validate() error {
	if tx.To == (common.Address{}) {
		return errInvalid("to", "empty L1 recipient")
	}
	if err := validateFullAmount("amount", tx.Amount); err != nil {
		return err
	}
	if err := validatePackableFee("fee", tx.Fee); err != nil {
		return err
	}
	return tx.Valid.validate()
}

func (tx *Withdraw) signPayload() ([]byte, error) {
	p := newPayload(TxTypeWithdraw)
	p.writeUint32(tx.AccountID)
	p.writeAddress(tx.From)
	p.writeAddress(tx.To)
	p.writeToken(tx.Token)
	p.writeFullAmount(tx.Amount)
	p.writePackedFee(tx.Fee)
	p.writeUint32(tx.Nonce)
	p.writeTimeRange(tx.Valid)
	return p.bytes()
}

func (tx *Withdraw) marshalJSON() ([]byte, error) {
	eff := tx.Valid.withDefaults()
	return json.Marshal(struct {
		Type       string         `json:"type"`
		AccountID  uint32         `json:"accountId"`
		From       common.Address `json:"from"`
		To         common.Address `json:"to"`
		Token      TokenID        `json:"token"`
		Amount     *hexutil.Big   `json:"amount"`
		Fee        *hexutil.Big   `json:"fee"`
		Nonce      uint32         `json:"nonce"`
		ValidFrom  uint64         `json:"validFrom"`
		ValidUntil uint64         `json:"validUntil"`
	}{
		Type:       TxTypeWithdraw.String(),
		AccountID:  tx.AccountID,
		From:       tx.From,
		To:         tx.To,
		Token:      tx.Token,
		Amount:     (*hexutil.Big)(tx.Amount),
		Fee:        (*hexutil.Big)(tx.Fee),
		Nonce:      tx.Nonce,
		ValidFrom:  eff.ValidFrom,
		ValidUntil: eff.ValidUntil,
	})
}
