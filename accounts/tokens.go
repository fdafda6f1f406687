package accounts

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	zksync "github.com/wangenkai1024/zksync-era"
	"github.com/wangenkai1024/zksync-era/core/types"
)

// tokenRegistry caches the operator's token list. Concurrent cold lookups
// collapse into a single registry fetch.
type tokenRegistry struct {
	op Operator
	sf singleflight.Group

	mu       sync.RWMutex
	bySymbol map[string]types.Token
	byID     map[types.TokenID]types.Token
}

func newTokenRegistry(op Operator) *tokenRegistry {
	return &tokenRegistry{op: op}
}

// BySymbol resolves a token by its symbol, case-insensitively.
func (r *tokenRegistry) BySymbol(ctx context.Context, symbol string) (types.Token, error) {
	key := strings.ToUpper(symbol)
	r.mu.RLock()
	t, ok := r.bySymbol[key]
	r.mu.RUnlock()
	if ok {
		return t, nil
	}
	if err := r.refresh(ctx); err != nil {
		return types.Token{}, err
	}
	r.mu.RLock()
	t, ok = r.bySymbol[key]
	r.mu.RUnlock()
	if !ok {
		return types.Token{}, zksync.NotFound
	}
	return t, nil
}

// ByID resolves a token by its rollup id.
func (r *tokenRegistry) ByID(ctx context.Context, id types.TokenID) (types.Token, error) {
	r.mu.RLock()
	t, ok := r.byID[id]
	r.mu.RUnlock()
	if ok {
		return t, nil
	}
	if err := r.refresh(ctx); err != nil {
		return types.Token{}, err
	}
	r.mu.RLock()
	t, ok = r.byID[id]
	r.mu.RUnlock()
	if !ok {
		return types.Token{}, zksync.NotFound
	}
	return t, nil
}

func (r *tokenRegistry) refresh(ctx context.Context) error {
	_, err, _ := r.sf.Do("tokens", func() (interface{}, error) {
		tokens, err := r.op.Tokens(ctx)
		if err != nil {
			return nil, err
		}
		bySymbol := make(map[string]types.Token, len(tokens))
		byID := make(map[types.TokenID]types.Token, len(tokens))
		for _, t := range tokens {
			bySymbol[strings.ToUpper(t.Symbol)] = t
			byID[t.ID] = t
		}
		r.mu.Lock()
		r.bySymbol = bySymbol
		r.byID = byID
		r.mu.Unlock()
		return nil, nil
	})
	return err
}
