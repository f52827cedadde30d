// Package balances owns the per-account registration state and the two
// workflows that mutate it: refresh and toggle.
package balances

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"

	"github.com/landvote/balance-register/internal/constants"
	"github.com/landvote/balance-register/internal/registry"
)

// Bindings are the contracts behind one asset class. For Aggregate the
// registry must also implement registry.AggregateRegistry.
type Bindings struct {
	Registry registry.Registry
	Token    registry.VotingToken
}

func (b Bindings) validate(class AssetClass) error {
	if b.Registry == nil {
		return errors.Wrapf(ErrNotReady, "%s: nil registry", class)
	}
	if b.Token == nil {
		return errors.Wrapf(ErrNotReady, "%s: nil voting token", class)
	}
	if class == Aggregate {
		if _, ok := b.Registry.(registry.AggregateRegistry); !ok {
			return errors.Newf("%s: registry does not expose getLANDsSize", class)
		}
	}
	return nil
}

// Session ties one connected account to its bindings and state store.
type Session struct {
	account       common.Address
	store         *Store
	confirmations uint64

	mu       sync.RWMutex
	bindings [numAssetClasses]*Bindings
}

type Option func(*Session)

// WithConfirmations sets how many confirmations a toggle waits for.
// Values below one are ignored.
func WithConfirmations(n uint64) Option {
	return func(s *Session) {
		if n > 0 {
			s.confirmations = n
		}
	}
}

func WithStore(store *Store) Option {
	return func(s *Session) {
		if store != nil {
			s.store = store
		}
	}
}

func NewSession(account common.Address, opts ...Option) *Session {
	s := &Session{
		account:       account,
		store:         NewStore(),
		confirmations: constants.DefaultConfirmations,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Account() common.Address { return s.account }

func (s *Session) Confirmations() uint64 { return s.confirmations }

func (s *Session) Store() *Store { return s.store }

// Snapshot returns a copy of the state for class.
func (s *Session) Snapshot(class AssetClass) (RegistrationState, error) {
	if !class.Valid() {
		return RegistrationState{}, errors.Wrapf(ErrUnknownAssetClass, "%d", int(class))
	}
	return s.store.Snapshot(class), nil
}

// Bind installs the bindings for class and resets its state, so the caller
// must refresh afterwards. A class with a refresh or toggle in flight is
// refused with ErrToggleInProgress.
func (s *Session) Bind(class AssetClass, b Bindings) error {
	if !class.Valid() {
		return errors.Wrapf(ErrUnknownAssetClass, "%d", int(class))
	}
	if err := b.validate(class); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.store.reset(class) {
		return errors.Wrapf(ErrToggleInProgress, "bind %s", class)
	}
	bound := b
	s.bindings[class] = &bound
	return nil
}

// Ready reports whether class has bindings.
func (s *Session) Ready(class AssetClass) bool {
	_, err := s.slot(class)
	return err == nil
}

func (s *Session) slot(class AssetClass) (Bindings, error) {
	if !class.Valid() {
		return Bindings{}, errors.Wrapf(ErrUnknownAssetClass, "%d", int(class))
	}
	s.mu.RLock()
	b := s.bindings[class]
	s.mu.RUnlock()
	if b == nil {
		return Bindings{}, errors.Wrapf(ErrNotReady, "%s", class)
	}
	return *b, nil
}
