package signer

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/wangenkai1024/zksync-era/crypto"
)

// L1Signer signs human-readable auth messages with the account's base-chain
// key (EIP-191 personal sign). Hardware wallets and remote signers implement
// this interface; EthereumSigner wraps a local key.
type L1Signer interface {
	SignText(msg []byte) ([]byte, error)
	Address() common.Address
}

// AuthMessage is the fixed template the L1 key signs. Embedding the key hash
// and nonce makes the vouching replay-resistant: a signature authorizes one
// key at one nonce only.
func AuthMessage(pkHash crypto.PubKeyHash, nonce uint32, accountID uint32) string {
	return fmt.Sprintf(
		"Register rollup signing key\n\n"+
			"pubKeyHash: %s\n"+
			"nonce: 0x%08x\n"+
			"account id: 0x%08x\n\n"+
			"Only sign this message for a trusted client.",
		pkHash, nonce, accountID)
}

// KeyDerivationMessage is signed once by the L1 key to derive the account's
// rollup key. The signature is deterministic for a given key, so the same
// wallet always derives the same rollup key.
const KeyDerivationMessage = "Access rollup account.\n\nOnly sign this message for a trusted client!"

// DeriveRollupSigner derives the rollup signing key from an L1 signature
// over the fixed derivation message.
func DeriveRollupSigner(l1 L1Signer) (*crypto.Secp256k1Signer, error) {
	sig, err := l1.SignText([]byte(KeyDerivationMessage))
	if err != nil {
		return nil, err
	}
	return crypto.NewSecp256k1SignerFromSeed(sig)
}

// EthereumSigner is an L1Signer over a local secp256k1 key.
type EthereumSigner struct {
	key  *ecdsa.PrivateKey
	addr common.Address
}

// NewEthereumSigner wraps a local L1 private key.
func NewEthereumSigner(key *ecdsa.PrivateKey) (*EthereumSigner, error) {
	if key == nil || key.D == nil || key.D.Sign() <= 0 {
		return nil, ErrNoL1Key
	}
	return &EthereumSigner{
		key:  key,
		addr: ethcrypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// SignText produces a 65-byte EIP-191 signature with V in {27, 28}.
func (s *EthereumSigner) SignText(msg []byte) ([]byte, error) {
	sig, err := ethcrypto.Sign(accounts.TextHash(msg), s.key)
	if err != nil {
		return nil, err
	}
	sig[64] += 27
	return sig, nil
}

func (s *EthereumSigner) Address() common.Address {
	return s.addr
}
