package registry

import (
	"context"
	"math/big"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/landvote/balance-register/internal/chains"
	"github.com/landvote/balance-register/internal/constants"
	"github.com/landvote/balance-register/internal/contracts/bindings/go/minime"
	registrybind "github.com/landvote/balance-register/internal/contracts/bindings/go/registry"
)

// EthRegistry implements AggregateRegistry on top of the generated binding.
// GetLANDsSize only succeeds against the aggregate registry deployment.
type EthRegistry struct {
	address  common.Address
	contract *registrybind.Registry
	backend  chains.Backend
	signer   Signer
	chainID  *big.Int
	poll     time.Duration
}

func NewEthRegistry(address common.Address, backend chains.Backend, signer Signer, chainID *big.Int) (*EthRegistry, error) {
	if backend == nil {
		return nil, errors.New("registry: nil backend")
	}
	if signer == nil {
		return nil, errors.New("registry: nil signer")
	}
	contract, err := registrybind.NewRegistry(address, backend)
	if err != nil {
		return nil, errors.Wrapf(err, "bind registry %s", address.Hex())
	}
	return &EthRegistry{
		address:  address,
		contract: contract,
		backend:  backend,
		signer:   signer,
		chainID:  chainID,
		poll:     constants.ReceiptPollInterval,
	}, nil
}

func (r *EthRegistry) Address() common.Address { return r.address }

func (r *EthRegistry) RegisteredBalance(ctx context.Context, owner common.Address) (bool, error) {
	ok, err := r.contract.RegisteredBalance(&bind.CallOpts{Context: ctx}, owner)
	if err != nil {
		return false, errors.Wrap(err, "registeredBalance")
	}
	return ok, nil
}

func (r *EthRegistry) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	bal, err := r.contract.BalanceOf(&bind.CallOpts{Context: ctx}, owner)
	if err != nil {
		return nil, errors.Wrap(err, "balanceOf")
	}
	return bal, nil
}

func (r *EthRegistry) GetLANDsSize(ctx context.Context, owner common.Address) (*big.Int, error) {
	size, err := r.contract.GetLANDsSize(&bind.CallOpts{Context: ctx}, owner)
	if err != nil {
		return nil, errors.Wrap(err, "getLANDsSize")
	}
	return size, nil
}

func (r *EthRegistry) RegisterBalance(ctx context.Context) (Tx, error) {
	return r.transact(ctx, "registerBalance", r.contract.RegisterBalance)
}

func (r *EthRegistry) UnregisterBalance(ctx context.Context) (Tx, error) {
	return r.transact(ctx, "unregisterBalance", r.contract.UnregisterBalance)
}

func (r *EthRegistry) transact(ctx context.Context, method string, send func(*bind.TransactOpts) (*types.Transaction, error)) (Tx, error) {
	opts, err := r.signer.TransactOpts(ctx, r.chainID)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: signer", method)
	}
	tx, err := send(opts)
	if err != nil {
		return nil, errors.Wrap(err, method)
	}
	return NewPendingTx(tx, r.backend, r.poll), nil
}

// EthVotingToken implements VotingToken on top of the MiniMe binding.
type EthVotingToken struct {
	address  common.Address
	contract *minime.MiniMeToken
}

func NewEthVotingToken(address common.Address, backend chains.Backend) (*EthVotingToken, error) {
	if backend == nil {
		return nil, errors.New("token: nil backend")
	}
	contract, err := minime.NewMiniMeToken(address, backend)
	if err != nil {
		return nil, errors.Wrapf(err, "bind minime token %s", address.Hex())
	}
	return &EthVotingToken{address: address, contract: contract}, nil
}

func (t *EthVotingToken) Address() common.Address { return t.address }

func (t *EthVotingToken) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	bal, err := t.contract.BalanceOf(&bind.CallOpts{Context: ctx}, owner)
	if err != nil {
		return nil, errors.Wrap(err, "token balanceOf")
	}
	return bal, nil
}

// BalanceOfAt reads the MiniMe checkpointed balance at a past block.
func (t *EthVotingToken) BalanceOfAt(ctx context.Context, owner common.Address, block uint64) (*big.Int, error) {
	bal, err := t.contract.BalanceOfAt(&bind.CallOpts{Context: ctx}, owner, new(big.Int).SetUint64(block))
	if err != nil {
		return nil, errors.Wrap(err, "token balanceOfAt")
	}
	return bal, nil
}

// Info reads the token's display metadata.
func (t *EthVotingToken) Info(ctx context.Context) (TokenInfo, error) {
	opts := &bind.CallOpts{Context: ctx}
	symbol, err := t.contract.Symbol(opts)
	if err != nil {
		return TokenInfo{}, errors.Wrap(err, "token symbol")
	}
	decimals, err := t.contract.Decimals(opts)
	if err != nil {
		return TokenInfo{}, errors.Wrap(err, "token decimals")
	}
	supply, err := t.contract.TotalSupply(opts)
	if err != nil {
		return TokenInfo{}, errors.Wrap(err, "token totalSupply")
	}
	name := ""
	if n, err := t.contract.Name(opts); err == nil {
		name = n
	}
	return TokenInfo{
		Address:     t.address.Hex(),
		Name:        name,
		Symbol:      symbol,
		Decimals:    decimals,
		TotalSupply: supply,
	}, nil
}

type TokenInfo struct {
	Address     string   `json:"address"`
	Name        string   `json:"name,omitempty"`
	Symbol      string   `json:"symbol"`
	Decimals    uint8    `json:"decimals"`
	TotalSupply *big.Int `json:"totalSupply"`
}
