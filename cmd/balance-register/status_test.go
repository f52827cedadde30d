package main

import (
	"bytes"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/landvote/balance-register/internal/app"
	"github.com/landvote/balance-register/internal/balances"
	"github.com/landvote/balance-register/internal/registry"
	"github.com/landvote/balance-register/internal/view"
)

func samplePage() view.Page {
	f := view.NewFormatter(100)
	return view.Page{
		Title:       "LAND Balance Register",
		WalletFound: true,
		Account:     "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		VoteURL:     "https://vote.example/",
		Panels: []view.Panel{
			f.Panel(balances.Primary, balances.RegistrationState{
				Registered:    true,
				Balance:       big.NewInt(50),
				VotingBalance: big.NewInt(3),
			}),
		},
	}
}

func TestPrintStatusText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printStatus(&buf, "text", statusResult{
		Page: samplePage(),
		Tokens: []tokenStatus{
			{Class: balances.Primary, Info: registry.TokenInfo{Symbol: "VP", Address: "0xabc"}, Supply: "1.5", AtBlock: 10, BalanceAt: "2"},
			{Class: balances.Aggregate, Err: "rpc down"},
		},
	}))

	out := buf.String()
	require.Contains(t, out, "Balance: 50 LAND")
	require.Contains(t, out, "Voting Power: 300 MANA")
	require.Contains(t, out, "land token VP (0xabc) supply 1.5")
	require.Contains(t, out, "at block 10: 2 VP")
	require.Contains(t, out, "estate token: rpc down")
}

func TestPrintStatusJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printStatus(&buf, "json", statusResult{Page: samplePage()}))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Contains(t, got, "page")
	require.NotContains(t, got, "tokens")
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd(app.BuildInfo{Version: "1.2.3", Commit: "abc", BuildDate: "today"})
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	require.Equal(t, "balance-register 1.2.3 (commit abc, built today)\n", buf.String())
}

func TestToggleRejectsUnknownClass(t *testing.T) {
	root := newRootCmd(app.BuildInfo{})
	root.SetArgs([]string{"toggle", "parcel"})
	err := root.Execute()
	require.ErrorIs(t, err, balances.ErrUnknownAssetClass)
}
