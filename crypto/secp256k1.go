package crypto

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Hash is the scheme's message digest: keccak256 over the raw bytes.
func Hash(msg []byte) common.Hash {
	return ethcrypto.Keccak256Hash(msg)
}

// Secp256k1Signer is the default rollup signing scheme: deterministic ECDSA
// over secp256k1 of the keccak256 digest of the canonical transaction bytes.
// Alternative curve backends plug in behind the Signer interface.
type Secp256k1Signer struct {
	key *ecdsa.PrivateKey
	pub PublicKey
}

// NewSecp256k1Signer wraps an existing private key.
func NewSecp256k1Signer(key *ecdsa.PrivateKey) (*Secp256k1Signer, error) {
	if key == nil || key.D == nil || key.D.Sign() <= 0 {
		return nil, ErrNoKey
	}
	return &Secp256k1Signer{
		key: key,
		pub: ethcrypto.CompressPubkey(&key.PublicKey),
	}, nil
}

// NewSecp256k1SignerFromSeed derives a rollup key from a 32-byte seed,
// typically itself an L1 signature over a fixed derivation message.
func NewSecp256k1SignerFromSeed(seed []byte) (*Secp256k1Signer, error) {
	key, err := ethcrypto.ToECDSA(ethcrypto.Keccak256(seed))
	if err != nil {
		return nil, ErrNoKey
	}
	return NewSecp256k1Signer(key)
}

func (s *Secp256k1Signer) Sign(msg []byte) (*Signature, error) {
	if s.key == nil {
		return nil, ErrNoKey
	}
	digest := Hash(msg)
	sig, err := ethcrypto.Sign(digest.Bytes(), s.key)
	if err != nil {
		return nil, ErrSignRejected
	}
	// The recovery byte is not part of the rollup signature.
	return &Signature{PubKey: s.pub, Signature: sig[:64]}, nil
}

func (s *Secp256k1Signer) PublicKey() PublicKey {
	out := make(PublicKey, len(s.pub))
	copy(out, s.pub)
	return out
}

func (s *Secp256k1Signer) PubKeyHash() PubKeyHash {
	return PubKeyHashFromKey(s.pub)
}

// Verify implements Verifier for the default scheme.
func (s *Secp256k1Signer) Verify(sig *Signature, msg []byte) bool {
	return Verify(sig, msg)
}

// Verify checks a signature produced by the default scheme.
func Verify(sig *Signature, msg []byte) bool {
	if sig == nil || len(sig.Signature) != 64 {
		return false
	}
	digest := Hash(msg)
	return ethcrypto.VerifySignature(sig.PubKey, digest.Bytes(), sig.Signature)
}
