package types

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/wangenkai1024/zksync-era/crypto"
)

// L1SignatureTypeEIP191 marks a personal-sign (EIP-191) base-chain signature.
const L1SignatureTypeEIP191 = "EthereumSignature"

// L1Signature is an auxiliary base-chain signature over the fixed auth
// message, proving control of the account's L1 address.
type L1Signature struct {
	Type      string        `json:"type"`
	Signature hexutil.Bytes `json:"signature"`
}

// SignatureBundle is the complete signature material for one transaction:
// the rollup-native signature over the canonical bytes, plus the optional
// L1 signature for operations that must prove L1 key ownership.
type SignatureBundle struct {
	Rollup *crypto.Signature `json:"signature"`
	L1     *L1Signature      `json:"ethereumSignature,omitempty"`
}
