package balances

import (
	"context"
	"math/big"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/quantumauth-io/quantum-go-utils/log"
	"golang.org/x/sync/errgroup"

	"github.com/landvote/balance-register/internal/metrics"
	"github.com/landvote/balance-register/internal/registry"
)

type readings struct {
	registered bool
	balance    *big.Int
	voting     *big.Int
	size       *big.Int
}

// Refresh reads the registration state of class from chain and stores it.
// On failure the stored values are left untouched. Loading is cleared
// either way.
func (s *Session) Refresh(ctx context.Context, class AssetClass) error {
	b, err := s.slot(class)
	if err != nil {
		return err
	}
	if _, ok := s.store.claim(class, false); !ok {
		return errors.Wrapf(ErrToggleInProgress, "%s", class)
	}
	return s.refresh(ctx, class, b)
}

// Reload is Refresh for an idle class. It refuses a class that is loading,
// the same way a toggle does.
func (s *Session) Reload(ctx context.Context, class AssetClass) error {
	b, err := s.slot(class)
	if err != nil {
		return err
	}
	if _, ok := s.store.claim(class, true); !ok {
		return errors.Wrapf(ErrToggleInProgress, "%s", class)
	}
	return s.refresh(ctx, class, b)
}

// RefreshAll refreshes every bound class concurrently. Classes fail
// independently; the returned error combines the individual failures.
func (s *Session) RefreshAll(ctx context.Context) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs error
	)
	for _, class := range AssetClasses {
		if !s.Ready(class) {
			continue
		}
		wg.Add(1)
		go func(class AssetClass) {
			defer wg.Done()
			if err := s.Refresh(ctx, class); err != nil {
				mu.Lock()
				errs = errors.CombineErrors(errs, err)
				mu.Unlock()
			}
		}(class)
	}
	wg.Wait()
	return errs
}

func (s *Session) refresh(ctx context.Context, class AssetClass, b Bindings) error {
	r, err := s.read(ctx, class, b)

	st := s.store.release(class, func(st *RegistrationState) {
		if err != nil {
			return
		}
		st.Registered = r.registered
		st.Balance = r.balance
		st.VotingBalance = r.voting
		st.Size = r.size
	})

	if err != nil {
		metrics.RefreshCounter.WithLabelValues(class.String(), metrics.ResultError).Inc()
		log.Error("balance refresh failed", "asset", class.String(), "account", s.account.Hex(), "error", err)
		return errors.Mark(errors.Wrapf(err, "refresh %s", class), ErrReadFailure)
	}

	metrics.RefreshCounter.WithLabelValues(class.String(), metrics.ResultOK).Inc()
	metrics.RegisteredGauge.WithLabelValues(class.String()).Set(boolGauge(st.Registered))
	log.Info("balance refreshed", "asset", class.String(), "registered", st.Registered, "balance", st.Balance.String())
	return nil
}

func (s *Session) read(ctx context.Context, class AssetClass, b Bindings) (readings, error) {
	var r readings
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		v, err := b.Registry.RegisteredBalance(gctx, s.account)
		r.registered = v
		return err
	})
	g.Go(func() error {
		v, err := b.Registry.BalanceOf(gctx, s.account)
		r.balance = v
		return err
	})
	g.Go(func() error {
		v, err := b.Token.BalanceOf(gctx, s.account)
		r.voting = v
		return err
	})
	if class == Aggregate {
		agg := b.Registry.(registry.AggregateRegistry)
		g.Go(func() error {
			v, err := agg.GetLANDsSize(gctx, s.account)
			r.size = v
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return readings{}, err
	}
	return r, nil
}

func boolGauge(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
