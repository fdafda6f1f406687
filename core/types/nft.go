package types

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// MintNFT creates a rollup-native NFT from a 32-byte content hash. The
// minted token id is assigned by the operator on execution.
type MintNFT struct {
	CreatorID   uint32
	Creator     common.Address
	ContentHash common.Hash
	Recipient   common.Address
	FeeToken    TokenID
	Fee         *big.Int
	Nonce       uint32
}

func (tx *MintNFT) txType() TxType          { return TxTypeMintNFT }
func (tx *MintNFT) account() common.Address { return tx.Creator }
func (tx *MintNFT) nonce() uint32           { return tx.Nonce }
func (tx *MintNFT) fee() *big.Int           { return copyBig(tx.Fee) }
func (tx *MintNFT) feeToken() TokenID       { return tx.FeeToken }

func (tx *MintNFT) validate() error {
	if tx.Recipient == (common.Address{}) {
		return errInvalid("recipient", "empty recipient")
	}
	if tx.ContentHash == (common.Hash{}) {
		return errInvalid("contentHash", "empty content hash")
	}
	return validatePackableFee("fee", tx.Fee)
}

func (tx *MintNFT) signPayload() ([]byte, error) {
	p := newPayload(TxTypeMintNFT)
	p.writeUint32(tx.CreatorID)
	p.writeAddress(tx.Creator)
	p.writeBytes(tx.ContentHash.Bytes())
	p.writeAddress(tx.Recipient)
	p.writeToken(tx.FeeToken)
	p.writePackedFee(tx.Fee)
	p.writeUint32(tx.Nonce)
	return p.bytes()
}

func (tx *MintNFT) marshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        string         `json:"type"`
		CreatorID   uint32         `json:"creatorId"`
		Creator     common.Address `json:"creatorAddress"`
		ContentHash common.Hash    `json:"contentHash"`
		Recipient   common.Address `json:"recipient"`
		FeeToken    TokenID        `json:"feeToken"`
		Fee         *hexutil.Big   `json:"fee"`
		Nonce       uint32         `json:"nonce"`
	}{
		Type:        TxTypeMintNFT.String(),
		CreatorID:   tx.CreatorID,
		Creator:     tx.Creator,
		ContentHash: tx.ContentHash,
		Recipient:   tx.Recipient,
		FeeToken:    tx.FeeToken,
		Fee:         (*hexutil.Big)(tx.Fee),
		Nonce:       tx.Nonce,
	})
}

// WithdrawNFT exits a rollup-native NFT to an L1 address.
type WithdrawNFT struct {
	AccountID uint32
	From      common.Address
	To        common.Address // L1 recipient
	Token     TokenID        // the NFT id
	FeeToken  TokenID
	Fee       *big.Int
	Nonce     uint32
	Valid     TimeRange
}

func (tx *WithdrawNFT) txType() TxType          { return TxTypeWithdrawNFT }
func (tx *WithdrawNFT) account() common.Address { return tx.From }
func (tx *WithdrawNFT) nonce() uint32           { return tx.Nonce }
func (tx *WithdrawNFT) fee() *big.Int           { return copyBig(tx.Fee) }
func (tx *WithdrawNFT) feeToken() TokenID       { return tx.FeeToken }

func (tx *WithdrawNFT) validate() error {
	if tx.To == (common.Address{}) {
		return errInvalid("to", "empty L1 recipient")
	}
	if err := validatePackableFee("fee", tx.Fee); err != nil {
		return err
	}
	return tx.Valid.validate()
}

func (tx *WithdrawNFT) signPayload() ([]byte, error) {
	p := newPayload(TxTypeWithdrawNFT)
	p.writeUint32(tx.AccountID)
	p.writeAddress(tx.From)
	p.writeAddress(tx.To)
	p.writeToken(tx.Token)
	p.writeToken(tx.FeeToken)
	p.writePackedFee(tx.Fee)
	p.writeUint32(tx.Nonce)
	p.writeTimeRange(tx.Valid)
	return p.bytes()
}

func (tx *WithdrawNFT) marshalJSON() ([]byte, error) {
	eff := tx.Valid.withDefaults()
	return json.Marshal(struct {
		Type       string         `json:"type"`
		AccountID  uint32         `json:"accountId"`
		From       common.Address `json:"from"`
		To         common.Address `json:"to"`
		Token      TokenID        `json:"token"`
		FeeToken   TokenID        `json:"feeToken"`
		Fee        *hexutil.Big   `json:"fee"`
		Nonce      uint32         `json:"nonce"`
		ValidFrom  uint64         `json:"validFrom"`
		ValidUntil uint64         `json:"validUntil"`
	}{
		Type:       TxTypeWithdrawNFT.String(),
		AccountID:  tx.AccountID,
		From:       tx.From,
		To:         tx.To,
		Token:      tx.Token,
		FeeToken:   tx.FeeToken,
		Fee:        (*hexutil.Big)(tx.Fee),
		Nonce:      tx.Nonce,
		ValidFrom:  eff.ValidFrom,
		ValidUntil: eff.ValidUntil,
	})
}
