package balances

import (
	"context"
	"math/big"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/landvote/balance-register/internal/metrics"
	"github.com/landvote/balance-register/internal/registry"
)

const (
	methodRegister   = "registerBalance"
	methodUnregister = "unregisterBalance"
)

// Toggle flips the registration of class and blocks until the transaction
// is confirmed or fails. Only one toggle per class can be in flight.
func (s *Session) Toggle(ctx context.Context, class AssetClass) error {
	b, pre, err := s.beginToggle(class)
	if err != nil {
		return err
	}
	return s.runToggle(ctx, class, b, pre)
}

// StartToggle checks the guard and returns; the transaction runs in the
// background and its outcome lands in the store.
func (s *Session) StartToggle(ctx context.Context, class AssetClass) error {
	b, pre, err := s.beginToggle(class)
	if err != nil {
		return err
	}
	go func() {
		_ = s.runToggle(ctx, class, b, pre)
	}()
	return nil
}

func (s *Session) beginToggle(class AssetClass) (Bindings, RegistrationState, error) {
	b, err := s.slot(class)
	if err != nil {
		return Bindings{}, RegistrationState{}, err
	}
	pre, ok := s.store.claim(class, true)
	if !ok {
		metrics.ToggleCounter.WithLabelValues(class.String(), "none", metrics.ResultRejected).Inc()
		return Bindings{}, RegistrationState{}, errors.Wrapf(ErrToggleInProgress, "%s", class)
	}
	return b, pre, nil
}

func (s *Session) runToggle(ctx context.Context, class AssetClass, b Bindings, pre RegistrationState) error {
	opID := uuid.NewString()
	method := methodRegister
	if pre.Registered {
		method = methodUnregister
	}
	start := time.Now()

	log.Info("registration toggle started", "op_id", opID, "asset", class.String(), "method", method)

	voting, txHash, err := s.transact(ctx, b, pre.Registered, method, opID, class)

	st := s.store.release(class, func(st *RegistrationState) {
		if err != nil {
			*st = pre
			return
		}
		st.Registered = !pre.Registered
		if st.Registered {
			st.VotingBalance = voting
		} else {
			st.VotingBalance = nil
		}
	})

	metrics.ToggleHistogram.WithLabelValues(class.String(), method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ToggleCounter.WithLabelValues(class.String(), method, metrics.ResultError).Inc()
		log.Error("registration toggle failed",
			"op_id", opID, "asset", class.String(), "method", method, "tx", txHash, "error", err)
		return errors.Mark(errors.Wrapf(err, "%s %s", method, class), ErrTransaction)
	}

	metrics.ToggleCounter.WithLabelValues(class.String(), method, metrics.ResultOK).Inc()
	metrics.RegisteredGauge.WithLabelValues(class.String()).Set(boolGauge(st.Registered))
	log.Info("registration toggle confirmed",
		"op_id", opID, "asset", class.String(), "method", method, "tx", txHash, "registered", st.Registered)
	return nil
}

// transact submits the call, waits for confirmation and, when the class
// became registered, reads the fresh voting balance.
func (s *Session) transact(ctx context.Context, b Bindings, registered bool, method, opID string, class AssetClass) (*big.Int, string, error) {
	var (
		tx  registry.Tx
		err error
	)
	if registered {
		tx, err = b.Registry.UnregisterBalance(ctx)
	} else {
		tx, err = b.Registry.RegisterBalance(ctx)
	}
	if err != nil {
		return nil, "", err
	}

	txHash := tx.Hash().Hex()
	log.Info("registration transaction submitted", "op_id", opID, "asset", class.String(), "method", method, "tx", txHash)

	if _, err := tx.Wait(ctx, s.confirmations); err != nil {
		return nil, txHash, err
	}
	if registered {
		return nil, txHash, nil
	}

	voting, err := b.Token.BalanceOf(ctx, s.account)
	if err != nil {
		return nil, txHash, errors.Wrap(err, "voting balance after registration")
	}
	return voting, txHash, nil
}
