package types

import (
	"bytes"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/wangenkai1024/zksync-era/crypto"
)

func testOrder(nonce uint32, sell, buy TokenID) *Order {
	return &Order{
		AccountID: 12,
		Recipient: common.HexToAddress("0x2122232425262728292a2b2c2d2e2f3031323334"),
		Nonce:     nonce,
		TokenSell: sell,
		TokenBuy:  buy,
		Ratio:     Ratio{Sell: big.NewInt(1), Buy: big.NewInt(2)},
		Amount:    big.NewInt(1000000),
		Signature: &crypto.Signature{
			PubKey:    crypto.PublicKey{0x01, 0x02},
			Signature: bytes.Repeat([]byte{0xab}, 64),
		},
	}
}

func TestOrderJSONWireForm(t *testing.T) {
	raw, err := json.Marshal(testOrder(3, 0, 1))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, want := range []string{
		"accountId", "recipient", "nonce", "tokenSell", "tokenBuy",
		"ratioSell", "ratioBuy", "amount", "validFrom", "validUntil", "signature",
	} {
		if _, ok := keys[want]; !ok {
			t.Fatalf("order JSON missing %q: %s", want, raw)
		}
	}
	for _, stray := range []string{"AccountID", "Recipient", "Ratio", "TokenSell"} {
		if _, ok := keys[stray]; ok {
			t.Fatalf("order JSON carries untagged key %q: %s", stray, raw)
		}
	}
	var until uint64
	if err := json.Unmarshal(keys["validUntil"], &until); err != nil {
		t.Fatalf("decode validUntil: %v", err)
	}
	if until != ^uint64(0) {
		t.Fatalf("validUntil = %d, want MaxUint64", until)
	}
}

func TestOrderJSONSameShapeInsideSwap(t *testing.T) {
	o0 := testOrder(3, 0, 1)
	o1 := testOrder(4, 1, 0)
	swap := NewTx(&Swap{
		SubmitterID: 9,
		Submitter:   common.HexToAddress("0x5152535455565758595a5b5c5d5e5f6061626364"),
		Nonce:       17,
		Orders:      [2]*Order{o0, o1},
		Amounts:     [2]*big.Int{big.NewInt(1000000), big.NewInt(2000000)},
		FeeToken:    0,
		Fee:         big.NewInt(1000000),
	})
	raw, err := json.Marshal(swap)
	if err != nil {
		t.Fatalf("marshal swap: %v", err)
	}
	var decoded struct {
		Orders [2]json.RawMessage `json:"orders"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode swap: %v", err)
	}
	for i, o := range []*Order{o0, o1} {
		direct, err := json.Marshal(o)
		if err != nil {
			t.Fatalf("marshal order %d: %v", i, err)
		}
		if !bytes.Equal(direct, []byte(decoded.Orders[i])) {
			t.Fatalf("order %d wire form differs when embedded in a swap:\n got %s\nwant %s",
				i, decoded.Orders[i], direct)
		}
	}
}

func TestSwapValidateRejectsMismatchedPairs(t *testing.T) {
	swap := NewTx(&Swap{
		SubmitterID: 9,
		Submitter:   common.HexToAddress("0x51"),
		Orders:      [2]*Order{testOrder(3, 0, 1), testOrder(4, 2, 0)},
		Amounts:     [2]*big.Int{big.NewInt(1000000), big.NewInt(2000000)},
		FeeToken:    0,
		Fee:         big.NewInt(1000000),
	})
	if err := swap.Validate(); err == nil {
		t.Fatal("Validate accepted orders with unmatched token pairs")
	}
}
