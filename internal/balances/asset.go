package balances

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// AssetClass selects which registry/token pair and which state slot an
// operation works on.
type AssetClass int

const (
	// Primary is the individually held LAND balance.
	Primary AssetClass = iota
	// Aggregate is the Estate balance, a grouping of LAND parcels.
	Aggregate

	numAssetClasses
)

// AssetClasses lists every class in display order.
var AssetClasses = []AssetClass{Primary, Aggregate}

func (a AssetClass) Valid() bool { return a >= Primary && a < numAssetClasses }

func (a AssetClass) String() string {
	switch a {
	case Primary:
		return "land"
	case Aggregate:
		return "estate"
	default:
		return fmt.Sprintf("asset(%d)", int(a))
	}
}

func (a AssetClass) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, errors.Wrapf(ErrUnknownAssetClass, "%d", int(a))
	}
	return []byte(a.String()), nil
}

func (a *AssetClass) UnmarshalText(b []byte) error {
	parsed, err := ParseAssetClass(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAssetClass accepts "land"/"primary" and "estate"/"aggregate".
func ParseAssetClass(s string) (AssetClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "land", "primary":
		return Primary, nil
	case "estate", "aggregate":
		return Aggregate, nil
	default:
		return 0, errors.Wrapf(ErrUnknownAssetClass, "%q", s)
	}
}
