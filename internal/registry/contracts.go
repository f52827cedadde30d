// Package registry adapts the generated contract bindings to the narrow call
// surface the balance workflows depend on.
package registry

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Tx is a submitted state-changing call.
type Tx interface {
	Hash() common.Hash
	// Wait blocks until the transaction has the requested number of
	// confirmations. A mined but reverted transaction is an error.
	Wait(ctx context.Context, confirmations uint64) (*types.Receipt, error)
}

// Registry is a balance registry contract bound to the session signer.
type Registry interface {
	RegisteredBalance(ctx context.Context, owner common.Address) (bool, error)
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)
	RegisterBalance(ctx context.Context) (Tx, error)
	UnregisterBalance(ctx context.Context) (Tx, error)
}

// AggregateRegistry also reports how many primary units an owner holds
// through its aggregates.
type AggregateRegistry interface {
	Registry
	GetLANDsSize(ctx context.Context, owner common.Address) (*big.Int, error)
}

// VotingToken is the MiniMe token that mirrors a registered balance.
type VotingToken interface {
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)
}

// Signer produces transaction options for the connected account.
type Signer interface {
	Address() common.Address
	TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error)
}
