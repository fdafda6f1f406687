// Package crypto defines the primitive signing adapter used by the rollup SDK.
//
// The rollup signature scheme is consumed as a black box: anything implementing
// Signer can produce rollup-native signatures, and the SDK never inspects key
// material beyond the derived public key hash.
package crypto

import (
	"bytes"
	"errors"
)

var (
	// ErrNoKey is returned when signing is requested but no key material
	// is available.
	ErrNoKey = errors.New("crypto: signing key unavailable")
	// ErrSignRejected is returned when the underlying primitive refused to
	// sign the given message.
	ErrSignRejected = errors.New("crypto: primitive rejected message")
)

// PublicKey is an opaque encoded public key of the rollup signature scheme.
type PublicKey []byte

// Signature carries a rollup-native signature together with the public key
// that produced it, as required by the operator submission protocol.
type Signature struct {
	PubKey    PublicKey `json:"pubKey"`
	Signature []byte    `json:"signature"`
}

// Equal reports whether two signatures are byte-identical.
func (s *Signature) Equal(o *Signature) bool {
	if s == nil || o == nil {
		return s == o
	}
	return bytes.Equal(s.PubKey, o.PubKey) && bytes.Equal(s.Signature, o.Signature)
}

// Signer produces rollup-native signatures over canonical transaction bytes.
//
// Implementations must be deterministic: signing the same message twice
// yields the same signature.
type Signer interface {
	// Sign signs the given message with the rollup key.
	Sign(msg []byte) (*Signature, error)

	// PublicKey returns the encoded rollup public key.
	PublicKey() PublicKey

	// PubKeyHash returns the on-rollup identifier of the key.
	PubKeyHash() PubKeyHash
}

// Verifier checks rollup-native signatures. It is satisfied by the schemes
// shipped with the SDK and by external primitive adapters alike.
type Verifier interface {
	Verify(sig *Signature, msg []byte) bool
}
