// Package client provides a typed client for the rollup operator RPC API.
//
// Transport failures are mapped to TransientError and retried with bounded
// exponential backoff; operator rejections are mapped to RejectedError and
// surfaced immediately so the caller can rebuild before resubmitting.
package client

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	zksync "github.com/wangenkai1024/zksync-era"
	"github.com/wangenkai1024/zksync-era/core/types"
)

// Config bounds the client's retry behaviour for transient failures.
type Config struct {
	RetryAttempts  int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration
}

var DefaultConfig = Config{
	RetryAttempts:  4,
	RetryBaseDelay: 200 * time.Millisecond,
	RetryMaxDelay:  5 * time.Second,
}

// Client defines typed wrappers for the operator RPC API.
type Client struct {
	c     *rpc.Client
	cfg   Config
	clock clockwork.Clock
	log   *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithConfig overrides the retry configuration.
func WithConfig(cfg Config) Option {
	return func(c *Client) { c.cfg = cfg }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithClock injects the clock driving retry backoff. Tests use a fake.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Client) { c.clock = clock }
}

// Dial connects a client to the given operator URL.
func Dial(rawurl string, opts ...Option) (*Client, error) {
	return DialContext(context.Background(), rawurl, opts...)
}

func DialContext(ctx context.Context, rawurl string, opts ...Option) (*Client, error) {
	c, err := rpc.DialContext(ctx, rawurl)
	if err != nil {
		return nil, err
	}
	return NewClient(c, opts...), nil
}

// NewClient creates a client that uses the given RPC client.
func NewClient(c *rpc.Client, opts ...Option) *Client {
	cl := &Client{
		c:     c,
		cfg:   DefaultConfig,
		clock: clockwork.NewRealClock(),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cl)
	}
	return cl
}

func (c *Client) Close() {
	c.c.Close()
}

// SubmitTx submits a signed transaction and returns the hash the operator
// will track it under. Resubmitting the same signed bytes is idempotent on
// the operator side, so transient failures are retried.
func (c *Client) SubmitTx(ctx context.Context, tx *types.Transaction, sigs *types.SignatureBundle) (common.Hash, error) {
	var hash common.Hash
	err := c.call(ctx, &hash, "rollup_submitTx", tx, sigs.Rollup, sigs.L1)
	return hash, err
}

// TxStatus returns the operator's receipt for a transaction hash. A
// transaction the operator has not seen yet reports StatusUnknown.
func (c *Client) TxStatus(ctx context.Context, txHash common.Hash) (*types.TxReceipt, error) {
	var r *types.TxReceipt
	if err := c.call(ctx, &r, "rollup_txStatus", txHash); err != nil {
		return nil, err
	}
	if r == nil {
		return &types.TxReceipt{TxHash: txHash, Status: types.StatusUnknown}, nil
	}
	return r, nil
}

// PriorityOpStatus returns the processing status of an L1-originated
// priority operation by its serial id.
func (c *Client) PriorityOpStatus(ctx context.Context, serialID uint64) (*types.PriorityOpReceipt, error) {
	var r *types.PriorityOpReceipt
	if err := c.call(ctx, &r, "rollup_priorityOpStatus", serialID); err != nil {
		return nil, err
	}
	if r == nil {
		return &types.PriorityOpReceipt{SerialID: serialID, Status: types.StatusUnknown}, nil
	}
	return r, nil
}

// AccountState returns the operator's view of an account.
func (c *Client) AccountState(ctx context.Context, address common.Address) (*types.AccountState, error) {
	var state *types.AccountState
	if err := c.call(ctx, &state, "rollup_accountInfo", address); err != nil {
		return nil, err
	}
	if state == nil {
		return nil, zksync.NotFound
	}
	return state, nil
}

// EstimateFee asks the operator to price an operation for a token. The
// estimate is advisory; the operator re-validates at submission time.
func (c *Client) EstimateFee(ctx context.Context, feeType types.TxFeeType, address common.Address, token types.TokenID) (*types.Fee, error) {
	var fee *types.Fee
	if err := c.call(ctx, &fee, "rollup_getTxFee", feeType, address, token); err != nil {
		return nil, err
	}
	if fee == nil {
		return nil, ErrFeeUnavailable
	}
	return fee, nil
}

// Tokens returns the operator's token registry.
func (c *Client) Tokens(ctx context.Context) ([]types.Token, error) {
	var tokens []types.Token
	err := c.call(ctx, &tokens, "rollup_tokens")
	return tokens, err
}

// ContractAddress returns the rollup contract's address on the base chain.
func (c *Client) ContractAddress(ctx context.Context) (common.Address, error) {
	var addr common.Address
	err := c.call(ctx, &addr, "rollup_contractAddress")
	return addr, err
}
