package balances

import (
	"context"
	"math/big"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/landvote/balance-register/internal/registry"
)

var testAccount = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

type fakeTx struct {
	hash    common.Hash
	err     error
	release chan struct{}
}

func (t *fakeTx) Hash() common.Hash { return t.hash }

func (t *fakeTx) Wait(ctx context.Context, _ uint64) (*types.Receipt, error) {
	if t.release != nil {
		select {
		case <-t.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if t.err != nil {
		return nil, t.err
	}
	return &types.Receipt{Status: types.ReceiptStatusSuccessful, TxHash: t.hash}, nil
}

// fakeRegistry is an in-memory registry. Register/unregister flip the
// on-chain flag only once the returned tx is confirmed.
type fakeRegistry struct {
	mu sync.Mutex

	registered bool
	balance    *big.Int
	size       *big.Int

	readErr   error
	submitErr error
	waitErr   error
	// gate, when set, holds every tx Wait until closed.
	gate chan struct{}

	submitted []string
}

var _ registry.AggregateRegistry = (*fakeRegistry)(nil)

func (r *fakeRegistry) RegisteredBalance(context.Context, common.Address) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil {
		return false, r.readErr
	}
	return r.registered, nil
}

func (r *fakeRegistry) BalanceOf(context.Context, common.Address) (*big.Int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil {
		return nil, r.readErr
	}
	return new(big.Int).Set(r.balance), nil
}

func (r *fakeRegistry) GetLANDsSize(context.Context, common.Address) (*big.Int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil {
		return nil, r.readErr
	}
	return new(big.Int).Set(r.size), nil
}

func (r *fakeRegistry) RegisterBalance(context.Context) (registry.Tx, error) {
	return r.submit("registerBalance", true)
}

func (r *fakeRegistry) UnregisterBalance(context.Context) (registry.Tx, error) {
	return r.submit("unregisterBalance", false)
}

func (r *fakeRegistry) submit(method string, to bool) (registry.Tx, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submitted = append(r.submitted, method)
	if r.submitErr != nil {
		return nil, r.submitErr
	}
	hash := common.BytesToHash([]byte{byte(len(r.submitted))})
	tx := &fakeTx{hash: hash, err: r.waitErr, release: r.gate}
	if r.waitErr == nil {
		r.registered = to
	}
	return tx, nil
}

func (r *fakeRegistry) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.submitted...)
}

// primaryOnly hides GetLANDsSize.
type primaryOnly struct{ registry.Registry }

type fakeToken struct {
	mu      sync.Mutex
	balance *big.Int
	err     error
}

func (t *fakeToken) BalanceOf(context.Context, common.Address) (*big.Int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return nil, t.err
	}
	return new(big.Int).Set(t.balance), nil
}

func (t *fakeToken) set(v int64) {
	t.mu.Lock()
	t.balance = big.NewInt(v)
	t.mu.Unlock()
}

var errRPC = errors.New("rpc: connection refused")

func newFixture(registered bool, balance, voting, size int64) (*fakeRegistry, *fakeToken) {
	return &fakeRegistry{
			registered: registered,
			balance:    big.NewInt(balance),
			size:       big.NewInt(size),
		}, &fakeToken{
			balance: big.NewInt(voting),
		}
}
