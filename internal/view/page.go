package view

import (
	"github.com/landvote/balance-register/internal/balances"
)

// Page is everything the single page shows. Without a session the page only
// carries the title and WalletFound=false.
type Page struct {
	Title       string  `json:"title"`
	WalletFound bool    `json:"walletFound"`
	Account     string  `json:"account,omitempty"`
	VoteURL     string  `json:"voteUrl"`
	Panels      []Panel `json:"panels"`
}

// Snapshotter is the read side of a balances.Session.
type Snapshotter interface {
	Snapshot(class balances.AssetClass) (balances.RegistrationState, error)
}

// Build renders every asset class of s. s may be nil.
func (f Formatter) Build(title, voteURL, account string, s Snapshotter) Page {
	page := Page{Title: title, VoteURL: voteURL, Panels: []Panel{}}
	if s == nil {
		return page
	}
	page.WalletFound = true
	page.Account = account
	for _, class := range balances.AssetClasses {
		st, err := s.Snapshot(class)
		if err != nil {
			continue
		}
		page.Panels = append(page.Panels, f.Panel(class, st))
	}
	return page
}
