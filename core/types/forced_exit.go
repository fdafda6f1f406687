package types

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ForcedExit pushes the full balance of a keyless target account out to its
// L1 address. The initiator pays the fee; the target signs nothing.
type ForcedExit struct {
	InitiatorID uint32
	Initiator   common.Address
	Target      common.Address
	Token       TokenID
	Fee         *big.Int
	Nonce       uint32
	Valid       TimeRange
}

func (tx *ForcedExit) txType() TxType          { return TxTypeForcedExit }
func (tx *ForcedExit) account() common.Address { return tx.Initiator }
func (tx *ForcedExit) nonce() uint32           { return tx.Nonce }
func (tx *ForcedExit) fee() *big.Int           { return copyBig(tx.Fee) }
func (tx *ForcedExit) feeToken() TokenID       { return tx.Token }

func (tx *ForcedExit) validate() error {
	if tx.Target == (common.Address{}) {
		return errInvalid("target", "empty target address")
	}
	if err := validatePackableFee("fee", tx.Fee); err != nil {
		return err
	}
	return tx.Valid.validate()
}

func (tx *ForcedExit) signPayload() ([]byte, error) {
	p := newPayload(TxTypeForcedExit)
	p.writeUint32(tx.InitiatorID)
	p.writeAddress(tx.Initiator)
	p.writeAddress(tx.Target)
	p.writeToken(tx.Token)
	p.writePackedFee(tx.Fee)
	p.writeUint32(tx.Nonce)
	p.writeTimeRange(tx.Valid)
	return p.bytes()
}

func (tx *ForcedExit) marshalJSON() ([]byte, error) {
	eff := tx.Valid.withDefaults()
	return json.Marshal(struct {
		Type        string         `json:"type"`
		InitiatorID uint32         `json:"initiatorAccountId"`
		Initiator   common.Address `json:"initiator"`
		Target      common.Address `json:"target"`
		Token       TokenID        `json:"token"`
		Fee         *hexutil.Big   `json:"fee"`
		Nonce       uint32         `json:"nonce"`
		ValidFrom   uint64         `json:"validFrom"`
		ValidUntil  uint64         `json:"validUntil"`
	}{
		Type:        TxTypeForcedExit.String(),
		InitiatorID: tx.InitiatorID,
		Initiator:   tx.Initiator,
		Target:      tx.Target,
		Token:       tx.Token,
		Fee:         (*hexutil.Big)(tx.Fee),
		Nonce:       tx.Nonce,
		ValidFrom:   eff.ValidFrom,
		ValidUntil:  eff.ValidUntil,
	})
}
