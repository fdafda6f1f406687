package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/wangenkai1024/zksync-era/crypto"
)

func goldenTx(t *testing.T, name string) *Transaction {
	t.Helper()
	switch name {
	case "transfer-packed":
		return NewTx(&Transfer{
			AccountID: 2,
			From:      common.HexToAddress("0x0102030405060708090a0b0c0d0e0f1011121314"),
			To:        common.HexToAddress("0x1112131415161718191a1b1c1d1e1f2021222324"),
			Token:     1,
			Amount:    big.NewInt(1000000000000),
			Fee:       big.NewInt(1000000),
			Nonce:     5,
		})
	case "changepubkey-zero-fee":
		pkHash, err := crypto.ParsePubKeyHash("sync:4142434445464748494a4b4c4d4e4f5051525354")
		if err != nil {
			t.Fatalf("ParsePubKeyHash: %v", err)
		}
		return NewTx(&ChangePubKey{
			AccountID: 7,
			Account:   common.HexToAddress("0x2122232425262728292a2b2c2d2e2f3031323334"),
			NewPkHash: pkHash,
			FeeToken:  0,
			Fee:       big.NewInt(0),
			Nonce:     0,
		})
	case "withdraw-full-amount":
		return NewTx(&Withdraw{
			AccountID: 3,
			From:      common.HexToAddress("0x5152535455565758595a5b5c5d5e5f6061626364"),
			To:        common.HexToAddress("0x7172737475767778797a7b7c7d7e7f8081828384"),
			Token:     2,
			Amount:    big.NewInt(5000000),
			Fee:       big.NewInt(1000000),
			Nonce:     9,
		})
	default:
		t.Fatalf("unknown golden vector %q", name)
		return nil
	}
}

func TestSignPayloadGoldenVectors(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("testdata", "sign_payload_vectors.json"))
	if err != nil {
		t.Fatalf("read vectors: %v", err)
	}
	var file struct {
		Vectors []struct {
			Name    string        `json:"name"`
			Payload hexutil.Bytes `json:"payload"`
		} `json:"vectors"`
	}
	if err := json.Unmarshal(raw, &file); err != nil {
		t.Fatalf("decode vectors: %v", err)
	}
	if len(file.Vectors) == 0 {
		t.Fatal("no vectors")
	}
	for _, vec := range file.Vectors {
		tx := goldenTx(t, vec.Name)
		if err := tx.Validate(); err != nil {
			t.Fatalf("%s: Validate: %v", vec.Name, err)
		}
		payload, err := tx.SignPayload()
		if err != nil {
			t.Fatalf("%s: SignPayload: %v", vec.Name, err)
		}
		if !bytes.Equal(payload, vec.Payload) {
			t.Fatalf("%s: payload mismatch\n got %x\nwant %x", vec.Name, payload, []byte(vec.Payload))
		}
	}
}

func TestSignPayloadDeterministic(t *testing.T) {
	a := goldenTx(t, "transfer-packed")
	b := goldenTx(t, "transfer-packed")
	pa, err := a.SignPayload()
	if err != nil {
		t.Fatalf("SignPayload: %v", err)
	}
	pb, err := b.SignPayload()
	if err != nil {
		t.Fatalf("SignPayload: %v", err)
	}
	if !bytes.Equal(pa, pb) {
		t.Fatalf("payloads differ for identical transactions:\n%x\n%x", pa, pb)
	}
	ha, _ := a.Hash()
	hb, _ := b.Hash()
	if ha != hb {
		t.Fatalf("hashes differ: %s vs %s", ha, hb)
	}
}

func TestSignPayloadRejectsUnpackableAmount(t *testing.T) {
	tx := NewTx(&Transfer{
		AccountID: 1,
		From:      common.HexToAddress("0x01"),
		To:        common.HexToAddress("0x02"),
		Token:     0,
		Amount:    big.NewInt(34359738368), // 2^35, not divisible by 10
		Fee:       big.NewInt(0),
		Nonce:     0,
	})
	if err := tx.Validate(); err == nil {
		t.Fatal("Validate accepted an unpackable amount")
	}
	if _, err := tx.SignPayload(); !errors.Is(err, ErrNotPackable) {
		t.Fatalf("SignPayload error = %v, want ErrNotPackable", err)
	}
}

func TestTimeRangeDefaults(t *testing.T) {
	eff := TimeRange{}.withDefaults()
	if eff.ValidFrom != 0 || eff.ValidUntil != ^uint64(0) {
		t.Fatalf("zero TimeRange = %+v, want [0, MaxUint64]", eff)
	}
	if err := (TimeRange{ValidFrom: 10, ValidUntil: 5}).validate(); err == nil {
		t.Fatal("validate accepted validFrom > validUntil")
	}
}

func TestRequiresLayerOneAuth(t *testing.T) {
	if !goldenTx(t, "changepubkey-zero-fee").RequiresLayerOneAuth() {
		t.Fatal("ChangePubKey must require base-chain auth")
	}
	if goldenTx(t, "transfer-packed").RequiresLayerOneAuth() {
		t.Fatal("Transfer must not require base-chain auth")
	}
}

func TestTransactionJSONCarriesType(t *testing.T) {
	cases := map[string]string{
		"transfer-packed":       "Transfer",
		"changepubkey-zero-fee": "ChangePubKey",
		"withdraw-full-amount":  "Withdraw",
	}
	for name, wantType := range cases {
		raw, err := json.Marshal(goldenTx(t, name))
		if err != nil {
			t.Fatalf("%s: marshal: %v", name, err)
		}
		var decoded struct {
			Type       string `json:"type"`
			ValidUntil uint64 `json:"validUntil"`
		}
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("%s: decode: %v", name, err)
		}
		if decoded.Type != wantType {
			t.Fatalf("%s: type = %q, want %q", name, decoded.Type, wantType)
		}
		if decoded.ValidUntil != ^uint64(0) {
			t.Fatalf("%s: validUntil = %d, want MaxUint64", name, decoded.ValidUntil)
		}
	}
}

func TestTransferValidation(t *testing.T) {
	tx := NewTx(&Transfer{
		AccountID: 1,
		From:      common.HexToAddress("0x01"),
		Token:     0,
		Amount:    big.NewInt(100),
		Fee:       big.NewInt(0),
	})
	err := tx.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Validate error = %v, want *ValidationError", err)
	}
	if verr.Field != "to" {
		t.Fatalf("ValidationError.Field = %q, want \"to\"", verr.Field)
	}
}
