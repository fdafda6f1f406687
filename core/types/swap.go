package types

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/wangenkai1024/zksync-era/crypto"
)

// orderTag is the canonical-encoding marker of an order ('o'); orders are not
// transactions and do not share the transaction type numbering.
const orderTag = 0x6f

// Ratio is the sell/buy exchange limit of an order, in smallest token units.
type Ratio struct {
	Sell *big.Int `json:"sell"`
	Buy  *big.Int `json:"buy"`
}

// Order is a signed intent to exchange tokens, matched pairwise inside a
// Swap. Each order is signed by its own account, independently of the swap
// submitter.
type Order struct {
	AccountID uint32
	Recipient common.Address
	Nonce     uint32
	TokenSell TokenID
	TokenBuy  TokenID
	Ratio     Ratio
	Amount    *big.Int // zero means market order for the matched amount
	Valid     TimeRange

	Signature *crypto.Signature
}

// Validate checks the order's structural constraints.
func (o *Order) Validate() error {
	if o.Recipient == (common.Address{}) {
		return errInvalid("recipient", "empty recipient")
	}
	if o.TokenSell == o.TokenBuy {
		return errInvalid("tokenBuy", "sell and buy tokens are equal")
	}
	if o.Ratio.Sell == nil || o.Ratio.Buy == nil || o.Ratio.Sell.Sign() <= 0 || o.Ratio.Buy.Sign() <= 0 {
		return errInvalid("ratio", "both sides must be positive")
	}
	if err := validateFullAmount("ratio.sell", o.Ratio.Sell); err != nil {
		return err
	}
	if err := validateFullAmount("ratio.buy", o.Ratio.Buy); err != nil {
		return err
	}
	if err := validatePackableAmount("amount", o.Amount); err != nil {
		return err
	}
	return o.Valid.validate()
}

// SignPayload returns the canonical bytes the order owner signs.
func (o *Order) SignPayload() ([]byte, error) {
	p := &payload{}
	p.buf.WriteByte(payloadVersion)
	p.buf.WriteByte(orderTag)
	p.writeUint32(o.AccountID)
	p.writeAddress(o.Recipient)
	p.writeUint32(o.Nonce)
	p.writeToken(o.TokenSell)
	p.writeToken(o.TokenBuy)
	p.writeFullAmount(o.Ratio.Sell)
	p.writeFullAmount(o.Ratio.Buy)
	p.writePackedAmount(o.Amount)
	p.writeTimeRange(o.Valid)
	return p.bytes()
}

// MarshalJSON emits the operator wire form, the same shape an order takes
// when carried inside a swap.
func (o *Order) MarshalJSON() ([]byte, error) {
	eff := o.Valid.withDefaults()
	return json.Marshal(struct {
		AccountID  uint32            `json:"accountId"`
		Recipient  common.Address    `json:"recipient"`
		Nonce      uint32            `json:"nonce"`
		TokenSell  TokenID           `json:"tokenSell"`
		TokenBuy   TokenID           `json:"tokenBuy"`
		RatioSell  *hexutil.Big      `json:"ratioSell"`
		RatioBuy   *hexutil.Big      `json:"ratioBuy"`
		Amount     *hexutil.Big      `json:"amount"`
		ValidFrom  uint64            `json:"validFrom"`
		ValidUntil uint64            `json:"validUntil"`
		Signature  *crypto.Signature `json:"signature,omitempty"`
	}{
		AccountID:  o.AccountID,
		Recipient:  o.Recipient,
		Nonce:      o.Nonce,
		TokenSell:  o.TokenSell,
		TokenBuy:   o.TokenBuy,
		RatioSell:  (*hexutil.Big)(o.Ratio.Sell),
		RatioBuy:   (*hexutil.Big)(o.Ratio.Buy),
		Amount:     (*hexutil.Big)(o.Amount),
		ValidFrom:  eff.ValidFrom,
		ValidUntil: eff.ValidUntil,
		Signature:  o.Signature,
	})
}

// Swap atomically settles two matched orders. The submitter is a rollup
// account that pays the fee and need not own either order.
type Swap struct {
	SubmitterID uint32
	Submitter   common.Address
	Nonce       uint32
	Orders      [2]*Order
	Amounts     [2]*big.Int
	FeeToken    TokenID
	Fee         *big.Int
}

func (tx *Swap) txType() TxType          { return TxTypeSwap }
func (tx *Swap) account() common.Address { return tx.Submitter }
func (tx *Swap) nonce() uint32           { return tx.Nonce }
func (tx *Swap) fee() *big.Int           { return copyBig(tx.Fee) }
func (tx *Swap) feeToken() TokenID       { return tx.FeeToken }

func (tx *Swap) validate() error {
	for i, o := range tx.Orders {
		if o == nil {
			return errInvalid("orders", "missing order")
		}
		if err := o.Validate(); err != nil {
			return err
		}
		if err := validatePackableAmount("amounts", tx.Amounts[i]); err != nil {
			return err
		}
	}
	if tx.Orders[0].TokenSell != tx.Orders[1].TokenBuy || tx.Orders[0].TokenBuy != tx.Orders[1].TokenSell {
		return errInvalid("orders", "token pairs do not match")
	}
	return validatePackableFee("fee", tx.Fee)
}

// ordersHash commits the swap to the exact orders being settled.
func (tx *Swap) ordersHash() (common.Hash, error) {
	p0, err := tx.Orders[0].SignPayload()
	if err != nil {
		return common.Hash{}, err
	}
	p1, err := tx.Orders[1].SignPayload()
	if err != nil {
		return common.Hash{}, err
	}
	return ethcrypto.Keccak256Hash(p0, p1), nil
}

func (tx *Swap) signPayload() ([]byte, error) {
	if tx.Orders[0] == nil || tx.Orders[1] == nil {
		return nil, errInvalid("orders", "missing order")
	}
	oh, err := tx.ordersHash()
	if err != nil {
		return nil, err
	}
	p := newPayload(TxTypeSwap)
	p.writeUint32(tx.SubmitterID)
	p.writeAddress(tx.Submitter)
	p.writeUint32(tx.Nonce)
	p.writeBytes(oh.Bytes())
	p.writePackedAmount(tx.Amounts[0])
	p.writePackedAmount(tx.Amounts[1])
	p.writeToken(tx.FeeToken)
	p.writePackedFee(tx.Fee)
	return p.bytes()
}

func (tx *Swap) marshalJSON() ([]byte, error) {
	o0, err := tx.Orders[0].MarshalJSON()
	if err != nil {
		return nil, err
	}
	o1, err := tx.Orders[1].MarshalJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Type        string            `json:"type"`
		SubmitterID uint32            `json:"submitterId"`
		Submitter   common.Address    `json:"submitterAddress"`
		Nonce       uint32            `json:"nonce"`
		Orders      [2]json.RawMessage `json:"orders"`
		Amounts     [2]*hexutil.Big   `json:"amounts"`
		FeeToken    TokenID           `json:"feeToken"`
		Fee         *hexutil.Big      `json:"fee"`
	}{
		Type:        TxTypeSwap.String(),
		SubmitterID: tx.SubmitterID,
		Submitter:   tx.Submitter,
		Nonce:       tx.Nonce,
		Orders:      [2]json.RawMessage{o0, o1},
		Amounts:     [2]*hexutil.Big{(*hexutil.Big)(tx.Amounts[0]), (*hexutil.Big)(tx.Amounts[1])},
		FeeToken:    tx.FeeToken,
		Fee:         (*hexutil.Big)(tx.Fee),
	})
}
