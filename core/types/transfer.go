package types

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Transfer moves funds between two rollup accounts. The amount must be
// packable; fee is paid in the transferred token.
type Transfer struct {
	AccountID uint32
	From      common.Address
	To        common.Address
	Token     TokenID
	Amount    *big.Int
	Fee       *big.Int
	Nonce     uint32
	Valid     TimeRange
}

func (tx *Transfer) txType() TxType          { return TxTypeTransfer }
func (tx *Transfer) account() common.Address { return tx.From }
func (tx *Transfer) nonce() uint32           { return tx.Nonce }
func (tx *Transfer) fee() *big.Int           { return copyBig(tx.Fee) }
func (tx *Transfer) feeToken() TokenID       { return tx.Token }

func (tx *Transfer) validate() error {
	if tx.To == (common.Address{}) {
		return errInvalid("to", "empty recipient")
	}
	if err := validatePackableAmount("amount", tx.Amount); err != nil {
		return err
	}
	if err := validatePackableFee("fee", tx.Fee); err != nil {
		return err
	}
	return tx.Valid.validate()
}

func (tx *Transfer) signPayload() ([]byte, error) {
	p := newPayload(TxTypeTransfer)
	p.writeUint32(tx.AccountID)
	p.writeAddress(tx.From)
	p.writeAddress(tx.To)
	p.writeToken(tx.Token)
	p.writePackedAmount(tx.Amount)
	p.writePackedFee(tx.Fee)
	p.writeUint32(tx.Nonce)
	p.writeTimeRange(tx.Valid)
	return p.bytes()
}

func (tx *Transfer) marshalJSON() ([]byte, error) {
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
		Type:       TxTypeTransfer.String(),
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
