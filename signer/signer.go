// Package signer produces complete signature bundles for rollup
// transactions: the rollup-native signature over the canonical bytes, and,
// where the operation proves L1 key ownership, an auxiliary base-chain
// signature over the fixed auth message.
package signer

import (
	"github.com/pkg/errors"

	"github.com/wangenkai1024/zksync-era/core/types"
	"github.com/wangenkai1024/zksync-era/crypto"
)

// AuthPolicy selects when transactions carry the auxiliary L1 signature.
// ChangePubKey always does, regardless of policy.
type AuthPolicy int

const (
	// AuthOnKeyChange attaches the L1 signature only to ChangePubKey.
	AuthOnKeyChange AuthPolicy = iota
	// AuthAlways attaches the L1 signature to every transaction, for
	// operators that demand continuous proof of L1 ownership.
	AuthAlways
)

var (
	ErrNoRollupKey = errors.New("signer: no rollup signing key")
	ErrNoL1Key     = errors.New("signer: operation requires an L1 key")
)

// DualSigner binds a rollup key and an optional L1 key for one account.
// Signing is pure: it never touches network state.
type DualSigner struct {
	rollup crypto.Signer
	l1     L1Signer
	policy AuthPolicy
}

// New creates a dual signer. l1 may be nil when the policy is
// AuthOnKeyChange and no ChangePubKey will be signed.
func New(rollup crypto.Signer, l1 L1Signer, policy AuthPolicy) (*DualSigner, error) {
	if rollup == nil {
		return nil, ErrNoRollupKey
	}
	return &DualSigner{rollup: rollup, l1: l1, policy: policy}, nil
}

// PubKeyHash returns the rollup identifier of the signing key.
func (s *DualSigner) PubKeyHash() crypto.PubKeyHash {
	return s.rollup.PubKeyHash()
}

// Sign validates the transaction and produces its signature bundle.
func (s *DualSigner) Sign(tx *types.Transaction) (*types.SignatureBundle, error) {
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	payload, err := tx.SignPayload()
	if err != nil {
		return nil, err
	}
	rollupSig, err := s.rollup.Sign(payload)
	if err != nil {
		return nil, errors.Wrap(err, "signer: rollup signature")
	}
	bundle := &types.SignatureBundle{Rollup: rollupSig}

	if !s.needsL1Auth(tx) {
		return bundle, nil
	}
	if s.l1 == nil {
		return nil, ErrNoL1Key
	}
	msg := AuthMessage(s.authPkHash(tx), tx.Nonce(), s.accountID(tx))
	l1Sig, err := s.l1.SignText([]byte(msg))
	if err != nil {
		return nil, errors.Wrap(err, "signer: L1 signature")
	}
	bundle.L1 = &types.L1Signature{
		Type:      types.L1SignatureTypeEIP191,
		Signature: l1Sig,
	}
	return bundle, nil
}

// SignOrder signs a single swap order with the rollup key.
func (s *DualSigner) SignOrder(o *types.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	payload, err := o.SignPayload()
	if err != nil {
		return err
	}
	sig, err := s.rollup.Sign(payload)
	if err != nil {
		return errors.Wrap(err, "signer: order signature")
	}
	o.Signature = sig
	return nil
}

func (s *DualSigner) needsL1Auth(tx *types.Transaction) bool {
	if tx.RequiresLayerOneAuth() {
		return true
	}
	return s.policy == AuthAlways
}

// authPkHash is the key the auth message vouches for: the new hash for
// ChangePubKey, the current signing key otherwise.
func (s *DualSigner) authPkHash(tx *types.Transaction) crypto.PubKeyHash {
	if cpk, ok := txInner(tx); ok {
		return cpk.NewPkHash
	}
	return s.rollup.PubKeyHash()
}

func (s *DualSigner) accountID(tx *types.Transaction) uint32 {
	if cpk, ok := txInner(tx); ok {
		return cpk.AccountID
	}
	return 0
}

func txInner(tx *types.Transaction) (*types.ChangePubKey, bool) {
	cpk, ok := tx.Data().(*types.ChangePubKey)
	return cpk, ok
}
