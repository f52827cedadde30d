package registry

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ErrReverted marks a transaction that was mined with a failed status.
var ErrReverted = errors.New("transaction reverted")

// ReceiptBackend is the part of a node needed to wait for a transaction.
type ReceiptBackend interface {
	bind.DeployBackend
	BlockNumber(ctx context.Context) (uint64, error)
}

// PendingTx is a sent transaction. Mining is awaited with bind.WaitMined;
// deeper confirmations poll the head every interval.
type PendingTx struct {
	tx       *types.Transaction
	backend  ReceiptBackend
	interval time.Duration
}

func NewPendingTx(tx *types.Transaction, backend ReceiptBackend, interval time.Duration) *PendingTx {
	if interval <= 0 {
		interval = time.Second
	}
	return &PendingTx{tx: tx, backend: backend, interval: interval}
}

func (p *PendingTx) Hash() common.Hash { return p.tx.Hash() }

func (p *PendingTx) Wait(ctx context.Context, confirmations uint64) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(ctx, p.backend, p.tx)
	if err != nil {
		return nil, errors.Wrapf(err, "wait mined %s", p.Hash().Hex())
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, errors.Wrapf(ErrReverted, "tx %s in block %s", p.Hash().Hex(), receipt.BlockNumber)
	}
	if confirmations <= 1 || receipt.BlockNumber == nil {
		return receipt, nil
	}
	if err := p.waitDepth(ctx, receipt.BlockNumber.Uint64(), confirmations); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (p *PendingTx) waitDepth(ctx context.Context, mined, confirmations uint64) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		head, err := p.backend.BlockNumber(ctx)
		if err != nil {
			return errors.Wrap(err, "block number")
		}
		if head >= mined && head-mined+1 >= confirmations {
			return nil
		}

		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "waiting for %d confirmations of %s", confirmations, p.Hash().Hex())
		case <-ticker.C:
		}
	}
}
