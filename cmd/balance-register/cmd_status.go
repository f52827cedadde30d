package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/landvote/balance-register/internal/app"
	"github.com/landvote/balance-register/internal/balances"
	"github.com/landvote/balance-register/internal/registry"
	"github.com/landvote/balance-register/internal/tui"
	"github.com/landvote/balance-register/internal/view"
)

type tokenStatus struct {
	Class     balances.AssetClass `json:"class"`
	Info      registry.TokenInfo  `json:"info"`
	Supply    string              `json:"supply"`
	AtBlock   uint64              `json:"atBlock,omitempty"`
	BalanceAt string              `json:"balanceAt,omitempty"`
	Err       string              `json:"error,omitempty"`
}

type statusResult struct {
	Page   view.Page     `json:"page"`
	Tokens []tokenStatus `json:"tokens,omitempty"`
}

func createStatusCmd() *cobra.Command {
	var (
		output  string
		tokens  bool
		atBlock uint64
	)
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Refresh both balances once and print them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output != "text" && output != "json" {
				return errors.Newf("invalid --output: %s (use json|text)", output)
			}
			cfg, err := loadCfg()
			if err != nil {
				return err
			}
			env, err := openSession(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			if err := env.Session.RefreshAll(cmd.Context()); err != nil {
				return err
			}

			res := statusResult{Page: buildPage(cfg, env)}
			if tokens || atBlock > 0 {
				res.Tokens = tokenStatuses(cmd.Context(), env, atBlock)
			}
			return printStatus(cmd.OutOrStdout(), output, res)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: json|text")
	cmd.Flags().BoolVar(&tokens, "tokens", false, "Also show the voting token metadata")
	cmd.Flags().Uint64Var(&atBlock, "at-block", 0, "Also show the voting balance checkpointed at this block")
	return cmd
}

func tokenStatuses(ctx context.Context, env *app.Env, atBlock uint64) []tokenStatus {
	out := make([]tokenStatus, 0, len(balances.AssetClasses))
	for _, class := range balances.AssetClasses {
		token := env.Tokens[class]
		ts := tokenStatus{Class: class}

		info, err := token.Info(ctx)
		if err != nil {
			ts.Err = err.Error()
			out = append(out, ts)
			continue
		}
		ts.Info = info
		ts.Supply = view.FormatUnits(info.TotalSupply, info.Decimals, 4)

		if atBlock > 0 {
			ts.AtBlock = atBlock
			bal, err := token.BalanceOfAt(ctx, env.Session.Account(), atBlock)
			if err != nil {
				ts.Err = err.Error()
			} else {
				ts.BalanceAt = view.FormatUnits(bal, info.Decimals, 4)
			}
		}
		out = append(out, ts)
	}
	return out
}

func printStatus(w io.Writer, output string, res statusResult) error {
	if output == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	_, _ = fmt.Fprint(w, tui.RenderPage(res.Page))
	for _, ts := range res.Tokens {
		if ts.Err != "" && ts.Info.Symbol == "" {
			_, _ = fmt.Fprintf(w, "%s token: %s\n", ts.Class, ts.Err)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s token %s (%s) supply %s\n", ts.Class, ts.Info.Symbol, ts.Info.Address, ts.Supply)
		if ts.AtBlock > 0 {
			if ts.Err != "" {
				_, _ = fmt.Fprintf(w, "  at block %d: %s\n", ts.AtBlock, ts.Err)
			} else {
				_, _ = fmt.Fprintf(w, "  at block %d: %s %s\n", ts.AtBlock, ts.BalanceAt, ts.Info.Symbol)
			}
		}
	}
	return nil
}
