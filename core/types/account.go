package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/wangenkai1024/zksync-era/crypto"
)

// AccountSnapshot is the account's state at one finality stage. Balances are
// an informational cache keyed by token symbol, not authoritative.
type AccountSnapshot struct {
	Nonce      uint32                  `json:"nonce"`
	PubKeyHash crypto.PubKeyHash       `json:"pubKeyHash"`
	Balances   map[string]*hexutil.Big `json:"balances"`
}

// Balance returns the cached balance for a token symbol, zero if absent.
func (s *AccountSnapshot) Balance(symbol string) *big.Int {
	if b, ok := s.Balances[symbol]; ok && b != nil {
		return (*big.Int)(b)
	}
	return new(big.Int)
}

// AccountState is the operator's view of one account: the committed stage
// advances as L2 blocks form, the verified stage follows L1 proofs.
type AccountState struct {
	Address   common.Address  `json:"address"`
	ID        uint32          `json:"id"`
	Committed AccountSnapshot `json:"committed"`
	Verified  AccountSnapshot `json:"verified"`
}

// SigningKeySet reports whether the account has a registered rollup key.
func (a *AccountState) SigningKeySet() bool {
	return !a.Committed.PubKeyHash.IsZero()
}
