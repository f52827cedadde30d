// Package view turns registration state into the text the web page, the
// terminal view and the CLI show.
package view

import (
	"fmt"
	"math/big"

	"github.com/landvote/balance-register/internal/balances"
	"github.com/landvote/balance-register/internal/constants"
)

const (
	WalletNotFound  = "Wallet not found"
	RegisteredLabel = "Registered"
	VoteLabel       = "Vote"
)

// Line is one row of panel text. Emphasis marks the voting power row.
type Line struct {
	Text     string `json:"text"`
	Emphasis bool   `json:"emphasis,omitempty"`
}

type Panel struct {
	Class      balances.AssetClass `json:"class"`
	Header     string              `json:"header"`
	Registered bool                `json:"registered"`
	Loading    bool                `json:"loading"`
	Lines      []Line              `json:"lines"`
}

// Formatter renders panels with a fixed voting power factor.
type Formatter struct {
	factor *big.Int
}

// NewFormatter falls back to the default factor when factor is not positive.
func NewFormatter(factor int64) Formatter {
	if factor <= 0 {
		factor = constants.DefaultVotingPowerFactor
	}
	return Formatter{factor: big.NewInt(factor)}
}

func (f Formatter) Factor() int64 { return f.factor.Int64() }

// VotingPower is factor*VotingBalance, reported only for a registered class
// whose voting balance has been fetched.
func (f Formatter) VotingPower(st balances.RegistrationState) (*big.Int, bool) {
	if !st.Registered || st.VotingBalance == nil {
		return nil, false
	}
	return new(big.Int).Mul(f.factor, st.VotingBalance), true
}

func (f Formatter) Panel(class balances.AssetClass, st balances.RegistrationState) Panel {
	p := Panel{
		Class:      class,
		Registered: st.Registered,
		Loading:    st.Loading,
	}

	switch class {
	case balances.Primary:
		p.Header = "LAND Balance"
		p.Lines = []Line{
			{Text: fmt.Sprintf("Balance: %s LAND", Amount(st.Balance))},
			f.votingLine(st, "Land balance not registered"),
		}
	case balances.Aggregate:
		p.Header = "Estate LAND Balance"
		p.Lines = []Line{
			{Text: fmt.Sprintf("balance: %s EST", Amount(st.Balance))},
			{Text: fmt.Sprintf("Estate LAND balance: %s LAND", Amount(st.Size))},
			f.votingLine(st, "Estate balance not registered"),
		}
	default:
		p.Header = class.String()
	}
	return p
}

func (f Formatter) votingLine(st balances.RegistrationState, notRegistered string) Line {
	text := notRegistered
	if vp, ok := f.VotingPower(st); ok {
		text = vp.String() + " MANA"
	}
	return Line{Text: "Voting Power: " + text, Emphasis: true}
}

// Amount prints an integer balance, treating nil as zero.
func Amount(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}
