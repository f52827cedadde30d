package balances

import (
	"math/big"
	"sync"
)

// RegistrationState is the per-class view of the account. Nil balances mean
// "not fetched yet".
type RegistrationState struct {
	Registered    bool
	Balance       *big.Int
	VotingBalance *big.Int
	// Size is the number of primary units held through aggregates.
	// Only populated for Aggregate.
	Size    *big.Int
	Loading bool
}

func initialState() RegistrationState {
	return RegistrationState{Loading: true}
}

// Fetched reports whether a refresh has populated the balances.
func (s RegistrationState) Fetched() bool {
	return s.Balance != nil
}

func (s RegistrationState) clone() RegistrationState {
	out := s
	out.Balance = cloneInt(s.Balance)
	out.VotingBalance = cloneInt(s.VotingBalance)
	out.Size = cloneInt(s.Size)
	return out
}

func cloneInt(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}

type slot struct {
	state RegistrationState
	// busy is set while a refresh, reload or toggle owns the slot.
	busy bool
}

// Store holds one RegistrationState per asset class. Reads return copies, so
// callers never observe a half-applied update.
type Store struct {
	mu    sync.RWMutex
	slots [numAssetClasses]slot
}

func NewStore() *Store {
	s := &Store{}
	for i := range s.slots {
		s.slots[i].state = initialState()
	}
	return s
}

func (s *Store) Snapshot(class AssetClass) RegistrationState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slots[class].state.clone()
}

// reset puts the class back to its creation state. A busy slot is left
// alone and reset reports false.
func (s *Store) reset(class AssetClass) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slots[class].busy {
		return false
	}
	s.slots[class] = slot{state: initialState()}
	return true
}

// claim marks the slot busy and loading. With requireIdle it also refuses a
// slot that is loading, which is the toggle guard.
func (s *Store) claim(class AssetClass, requireIdle bool) (RegistrationState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl := &s.slots[class]
	if sl.busy || (requireIdle && sl.state.Loading) {
		return RegistrationState{}, false
	}
	pre := sl.state.clone()
	sl.busy = true
	sl.state.Loading = true
	return pre, true
}

// release applies fn to the state, then clears the loading and busy flags in
// the same critical section.
func (s *Store) release(class AssetClass, fn func(st *RegistrationState)) RegistrationState {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl := &s.slots[class]
	if fn != nil {
		fn(&sl.state)
	}
	sl.state.Loading = false
	sl.busy = false
	return sl.state.clone()
}
