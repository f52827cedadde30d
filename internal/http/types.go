package http

import (
	"github.com/landvote/balance-register/internal/balances"
	"github.com/landvote/balance-register/internal/view"
)

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

type healthResponse struct {
	OK          bool   `json:"ok"`
	WalletFound bool   `json:"walletFound"`
	Account     string `json:"account,omitempty"`
}

// classState carries raw decimal values next to the rendered panel. Nil
// values are omitted.
type classState struct {
	Class         balances.AssetClass `json:"class"`
	Registered    bool                `json:"registered"`
	Loading       bool                `json:"loading"`
	Balance       *string             `json:"balance,omitempty"`
	VotingBalance *string             `json:"votingBalance,omitempty"`
	Size          *string             `json:"size,omitempty"`
	VotingPower   *string             `json:"votingPower,omitempty"`
	Panel         view.Panel          `json:"panel"`
}

type balancesResponse struct {
	Account           string       `json:"account"`
	VoteURL           string       `json:"voteUrl"`
	VotingPowerFactor int64        `json:"votingPowerFactor"`
	Classes           []classState `json:"classes"`
}

type tokenResponse struct {
	Class       balances.AssetClass `json:"class"`
	Address     string              `json:"address"`
	Name        string              `json:"name,omitempty"`
	Symbol      string              `json:"symbol"`
	Decimals    uint8               `json:"decimals"`
	TotalSupply *string             `json:"totalSupply,omitempty"`
	Supply      string              `json:"supply"`
}
