package types

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/wangenkai1024/zksync-era/crypto"
)

// ChangePubKey registers (or rotates) the rollup signing key of an account.
// It is the one variant that always carries an auxiliary L1 signature, since
// it establishes the binding between the L1 address and the L2 key.
type ChangePubKey struct {
	AccountID uint32
	Account   common.Address
	NewPkHash crypto.PubKeyHash
	FeeToken  TokenID
	Fee       *big.Int
	Nonce     uint32
	Valid     TimeRange
}

func (tx *ChangePubKey) txType() TxType          { return TxTypeChangePubKey }
func (tx *ChangePubKey) account() common.Address { return tx.Account }
func (tx *ChangePubKey) nonce() uint32           { return tx.Nonce }
func (tx *ChangePubKey) fee() *big.Int           { return copyBig(tx.Fee) }
func (tx *ChangePubKey) feeToken() TokenID       { return tx.FeeToken }

func (tx *ChangePubKey) validate() error {
	if tx.Account == (common.Address{}) {
		return errInvalid("account", "empty account address")
	}
	if tx.NewPkHash.IsZero() {
		return errInvalid("newPkHash", "empty public key hash")
	}
	if err := validatePackableFee("fee", tx.Fee); err != nil {
		return err
	}
	return tx.Valid.validate()
}

func (tx *ChangePubKey) signPayload() ([]byte, error) {
	p := newPayload(TxTypeChangePubKey)
	p.writeUint32(tx.AccountID)
	p.writeAddress(tx.Account)
	p.writeBytes(tx.NewPkHash.Bytes())
	p.writeToken(tx.FeeToken)
	p.writePackedFee(tx.Fee)
	p.writeUint32(tx.Nonce)
	p.writeTimeRange(tx.Valid)
	return p.bytes()
}

func (tx *ChangePubKey) marshalJSON() ([]byte, error) {
	eff := tx.Valid.withDefaults()
	return json.Marshal(struct {
		Type       string            `json:"type"`
		AccountID  uint32            `json:"accountId"`
		Account    common.Address    `json:"account"`
		NewPkHash  crypto.PubKeyHash `json:"newPkHash"`
		FeeToken   TokenID           `json:"feeToken"`
		Fee        *hexutil.Big      `json:"fee"`
		Nonce      uint32            `json:"nonce"`
		ValidFrom  uint64            `json:"validFrom"`
		ValidUntil uint64            `json:"validUntil"`
	}{
		Type:       TxTypeChangePubKey.String(),
		AccountID:  tx.AccountID,
		Account:    tx.Account,
		NewPkHash:  tx.NewPkHash,
		FeeToken:   tx.FeeToken,
		Fee:        (*hexutil.Big)(tx.Fee),
		Nonce:      tx.Nonce,
		ValidFrom:  eff.ValidFrom,
		ValidUntil: eff.ValidUntil,
	})
}
