package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/landvote/balance-register/internal/balances"
	"github.com/landvote/balance-register/internal/tui"
)

func createToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "toggle <land|estate>",
		Short:     "Register or unregister one balance and wait for confirmation",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"land", "estate"},
		RunE: func(cmd *cobra.Command, args []string) error {
			class, err := balances.ParseAssetClass(args[0])
			if err != nil {
				return err
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

			// the toggle direction comes from the on-chain state
			if err := env.Session.Refresh(cmd.Context(), class); err != nil {
				return err
			}
			if err := env.Session.Toggle(cmd.Context(), class); err != nil {
				return err
			}

			st := env.Session.Store().Snapshot(class)
			panel := formatter(cfg).Panel(class, st)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), tui.RenderPanel(panel, false, ""))
			return nil
		},
	}
}
