package crypto

import (
	"encoding/hex"
	"errors"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// PubKeyHashSize is the byte length of an on-rollup key identifier.
const PubKeyHashSize = 20

// pubKeyHashPrefix tags the human-readable form of a PubKeyHash.
const pubKeyHashPrefix = "sync:"

var ErrInvalidPubKeyHash = errors.New("crypto: invalid public key hash")

// PubKeyHash is the on-rollup identifier binding an L1 address to its L2
// signing key. A zero value means "no signing key registered".
type PubKeyHash [PubKeyHashSize]byte

// PubKeyHashFromKey derives the rollup identifier of an encoded public key.
func PubKeyHashFromKey(pub PublicKey) PubKeyHash {
	var h PubKeyHash
	sum := ethcrypto.Keccak256(pub)
	copy(h[:], sum[len(sum)-PubKeyHashSize:])
	return h
}

// ParsePubKeyHash parses the "sync:"-prefixed hex form.
func ParsePubKeyHash(s string) (PubKeyHash, error) {
	var h PubKeyHash
	raw := strings.TrimPrefix(s, pubKeyHashPrefix)
	b, err := hex.DecodeString(raw)
	if err != nil || len(b) != PubKeyHashSize {
		return h, ErrInvalidPubKeyHash
	}
	copy(h[:], b)
	return h, nil
}

// IsZero reports whether no signing key is registered.
func (h PubKeyHash) IsZero() bool {
	return h == PubKeyHash{}
}

// Bytes returns a copy of the hash bytes.
func (h PubKeyHash) Bytes() []byte {
	out := make([]byte, PubKeyHashSize)
	copy(out, h[:])
	return out
}

func (h PubKeyHash) String() string {
	return pubKeyHashPrefix + hex.EncodeToString(h[:])
}

// MarshalText implements encoding.TextMarshaler.
func (h PubKeyHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *PubKeyHash) UnmarshalText(text []byte) error {
	parsed, err := ParsePubKeyHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
