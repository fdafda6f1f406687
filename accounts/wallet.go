// Package accounts implements the wallet surface of the SDK: nonce-tracked
// transaction building, fee resolution, dual signing and submission.
package accounts

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/wangenkai1024/zksync-era/core/types"
	"github.com/wangenkai1024/zksync-era/signer"
)

// Operator is the slice of the operator API the wallet needs.
// *client.Client satisfies it.
type Operator interface {
	SubmitTx(ctx context.Context, tx *types.Transaction, sigs *types.SignatureBundle) (common.Hash, error)
	AccountState(ctx context.Context, address common.Address) (*types.AccountState, error)
	EstimateFee(ctx context.Context, feeType types.TxFeeType, address common.Address, token types.TokenID) (*types.Fee, error)
	Tokens(ctx context.Context) ([]types.Token, error)
}

// Wallet acts on behalf of one rollup account. Transactions for the same
// wallet are serialized through the nonce tracker; wallets for different
// accounts operate fully in parallel.
type Wallet struct {
	address common.Address
	op      Operator
	signer  *signer.DualSigner
	nonces  *nonceTracker
	tokens  *tokenRegistry
	log     *zap.Logger
}

// WalletOption configures a Wallet.
type WalletOption func(*Wallet)

func WithLogger(log *zap.Logger) WalletOption {
	return func(w *Wallet) { w.log = log }
}

// NewWallet creates a wallet for the account at address, signing with ds and
// talking to op.
func NewWallet(address common.Address, ds *signer.DualSigner, op Operator, opts ...WalletOption) *Wallet {
	w := &Wallet{
		address: address,
		op:      op,
		signer:  ds,
		nonces:  newNonceTracker(op, address),
		tokens:  newTokenRegistry(op),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Address returns the wallet's L1 address.
func (w *Wallet) Address() common.Address { return w.address }

// AccountState fetches the operator's current view of the account.
func (w *Wallet) AccountState(ctx context.Context) (*types.AccountState, error) {
	return w.op.AccountState(ctx, w.address)
}

// Nonce returns the next nonce the wallet would assign.
func (w *Wallet) Nonce(ctx context.Context) (uint32, error) {
	return w.nonces.Nonce(ctx)
}

// ResyncNonce drops the cached nonce; the next use re-fetches it.
func (w *Wallet) ResyncNonce() {
	w.nonces.Invalidate()
}

// Token resolves a token by symbol from the operator's registry.
func (w *Wallet) Token(ctx context.Context, symbol string) (types.Token, error) {
	return w.tokens.BySymbol(ctx, symbol)
}

// TransferParams describes a transfer between rollup accounts.
type TransferParams struct {
	To     common.Address
	Token  types.TokenID
	Amount *big.Int
	// Fee overrides the operator estimate when non-nil.
	Fee *big.Int
	// MaxFee fails the operation fast when the resolved fee exceeds it.
	MaxFee *big.Int
	// AllowRounding accepts downward trimming of unpackable amounts.
	// Without it an unpackable amount fails with PrecisionLossError.
	AllowRounding bool
	Valid         types.TimeRange
}

// Transfer builds, signs and submits a transfer, returning its hash.
func (w *Wallet) Transfer(ctx context.Context, p TransferParams) (common.Hash, error) {
	amount, err := resolveAmount(p.Amount, p.AllowRounding)
	if err != nil {
		return common.Hash{}, err
	}
	fee, err := w.resolveFee(ctx, types.FeeTransfer, p.Token, p.Fee, p.MaxFee)
	if err != nil {
		return common.Hash{}, err
	}
	return w.submit(ctx, func(accountID, nonce uint32) *types.Transaction {
		return types.NewTx(&types.Transfer{
			AccountID: accountID,
			From:      w.address,
			To:        p.To,
			Token:     p.Token,
			Amount:    amount,
			Fee:       fee,
			Nonce:     nonce,
			Valid:     p.Valid,
		})
	})
}

// WithdrawParams describes an exit to the base chain. Amounts are exact
// (full precision), only the fee is packed.
type WithdrawParams struct {
	To     common.Address
	Token  types.TokenID
	Amount *big.Int
	Fee    *big.Int
	MaxFee *big.Int
	Valid  types.TimeRange
}

// Withdraw builds, signs and submits a withdrawal to L1.
func (w *Wallet) Withdraw(ctx context.Context, p WithdrawParams) (common.Hash, error) {
	fee, err := w.resolveFee(ctx, types.FeeWithdraw, p.Token, p.Fee, p.MaxFee)
	if err != nil {
		return common.Hash{}, err
	}
	return w.submit(ctx, func(accountID, nonce uint32) *types.Transaction {
		return types.NewTx(&types.Withdraw{
			AccountID: accountID,
			From:      w.address,
			To:        p.To,
			Token:     p.Token,
			Amount:    p.Amount,
			Fee:       fee,
			Nonce:     nonce,
			Valid:     p.Valid,
		})
	})
}

// SetSigningKeyParams configures registration of the wallet's rollup key.
type SetSigningKeyParams struct {
	FeeToken types.TokenID
	Fee      *big.Int
	MaxFee   *big.Int
	Valid    types.TimeRange
}

// SetSigningKey registers the wallet's rollup signing key on the account.
// The resulting ChangePubKey carries the auxiliary L1 signature binding the
// L1 address to the new key.
func (w *Wallet) SetSigningKey(ctx context.Context, p SetSigningKeyParams) (common.Hash, error) {
	fee, err := w.resolveFee(ctx, types.FeeChangePubKey, p.FeeToken, p.Fee, p.MaxFee)
	if err != nil {
		return common.Hash{}, err
	}
	return w.submit(ctx, func(accountID, nonce uint32) *types.Transaction {
		return types.NewTx(&types.ChangePubKey{
			AccountID: accountID,
			Account:   w.address,
			NewPkHash: w.signer.PubKeyHash(),
			FeeToken:  p.FeeToken,
			Fee:       fee,
			Nonce:     nonce,
			Valid:     p.Valid,
		})
	})
}

// ForcedExitParams describes a forced exit of a keyless target account.
type ForcedExitParams struct {
	Target common.Address
	Token  types.TokenID
	Fee    *big.Int
	MaxFee *big.Int
	Valid  types.TimeRange
}

// ForcedExit pushes the target's balance of a token out to its L1 address.
func (w *Wallet) ForcedExit(ctx context.Context, p ForcedExitParams) (common.Hash, error) {
	fee, err := w.resolveFee(ctx, types.FeeForcedExit, p.Token, p.Fee, p.MaxFee)
	if err != nil {
		return common.Hash{}, err
	}
	return w.submit(ctx, func(accountID, nonce uint32) *types.Transaction {
		return types.NewTx(&types.ForcedExit{
			InitiatorID: accountID,
			Initiator:   w.address,
			Target:      p.Target,
			Token:       p.Token,
			Fee:         fee,
			Nonce:       nonce,
			Valid:       p.Valid,
		})
	})
}

// MintNFTParams describes minting of a rollup-native NFT.
type MintNFTParams struct {
	ContentHash common.Hash
	Recipient   common.Address
	FeeToken    types.TokenID
	Fee         *big.Int
	MaxFee      *big.Int
}

// MintNFT mints an NFT from a content hash to the recipient.
func (w *Wallet) MintNFT(ctx context.Context, p MintNFTParams) (common.Hash, error) {
	fee, err := w.resolveFee(ctx, types.FeeMintNFT, p.FeeToken, p.Fee, p.MaxFee)
	if err != nil {
		return common.Hash{}, err
	}
	return w.submit(ctx, func(accountID, nonce uint32) *types.Transaction {
		return types.NewTx(&types.MintNFT{
			CreatorID:   accountID,
			Creator:     w.address,
			ContentHash: p.ContentHash,
			Recipient:   p.Recipient,
			FeeToken:    p.FeeToken,
			Fee:         fee,
			Nonce:       nonce,
		})
	})
}

// WithdrawNFTParams describes an NFT exit to the base chain.
type WithdrawNFTParams struct {
	To       common.Address
	Token    types.TokenID // the NFT id
	FeeToken types.TokenID
	Fee      *big.Int
	MaxFee   *big.Int
	Valid    types.TimeRange
}

// WithdrawNFT exits an NFT to an L1 address.
func (w *Wallet) WithdrawNFT(ctx context.Context, p WithdrawNFTParams) (common.Hash, error) {
	fee, err := w.resolveFee(ctx, types.FeeWithdrawNFT, p.FeeToken, p.Fee, p.MaxFee)
	if err != nil {
		return common.Hash{}, err
	}
	return w.submit(ctx, func(accountID, nonce uint32) *types.Transaction {
		return types.NewTx(&types.WithdrawNFT{
			AccountID: accountID,
			From:      w.address,
			To:        p.To,
			Token:     p.Token,
			FeeToken:  p.FeeToken,
			Fee:       fee,
			Nonce:     nonce,
			Valid:     p.Valid,
		})
	})
}

// SwapParams describes settlement of two already-signed orders.
type SwapParams struct {
	Orders   [2]*types.Order
	Amounts  [2]*big.Int
	FeeToken types.TokenID
	Fee      *big.Int
	MaxFee   *big.Int
}

// Swap submits two matched, signed orders for atomic settlement, with the
// wallet as fee-paying submitter.
func (w *Wallet) Swap(ctx context.Context, p SwapParams) (common.Hash, error) {
	fee, err := w.resolveFee(ctx, types.FeeSwap, p.FeeToken, p.Fee, p.MaxFee)
	if err != nil {
		return common.Hash{}, err
	}
	return w.submit(ctx, func(accountID, nonce uint32) *types.Transaction {
		return types.NewTx(&types.Swap{
			SubmitterID: accountID,
			Submitter:   w.address,
			Nonce:       nonce,
			Orders:      p.Orders,
			Amounts:     p.Amounts,
			FeeToken:    p.FeeToken,
			Fee:         fee,
		})
	})
}

// SignOrder signs a swap order with the wallet's rollup key.
func (w *Wallet) SignOrder(ctx context.Context, o *types.Order) error {
	accountID, err := w.nonces.AccountID(ctx)
	if err != nil {
		return err
	}
	o.AccountID = accountID
	return w.signer.SignOrder(o)
}

// submit runs the build-sign-submit sequence under the nonce assignment
// lock, so two transactions from this wallet can never share a nonce.
func (w *Wallet) submit(ctx context.Context, build func(accountID, nonce uint32) *types.Transaction) (common.Hash, error) {
	var hash common.Hash
	err := w.nonces.Do(ctx, func(accountID, nonce uint32) error {
		tx := build(accountID, nonce)
		bundle, err := w.signer.Sign(tx)
		if err != nil {
			return err
		}
		h, err := w.op.SubmitTx(ctx, tx, bundle)
		if err != nil {
			return err
		}
		hash = h
		w.log.Debug("transaction submitted",
			zap.Stringer("type", tx.Type()),
			zap.Uint32("nonce", nonce),
			zap.Stringer("hash", h))
		return nil
	})
	return hash, err
}
