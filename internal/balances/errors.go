package balances

import "github.com/cockroachdb/errors"

var (
	ErrUnknownAssetClass = errors.New("unknown asset class")
	// ErrNotReady means the contract bindings for the class are not resolved.
	ErrNotReady = errors.New("contract bindings not resolved")
	// ErrToggleInProgress rejects a toggle or reload while the class is loading.
	ErrToggleInProgress = errors.New("asset class is loading")

	ErrConnection  = errors.New("wallet or provider unavailable")
	ErrReadFailure = errors.New("balance read failed")
	ErrTransaction = errors.New("registration transaction failed")
)
