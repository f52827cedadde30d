package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/landvote/balance-register/internal/app"
)

var flagConfig string

func newRootCmd(build app.BuildInfo) *cobra.Command {
	root := &cobra.Command{
		Use:           "balance-register",
		Short:         "View and toggle LAND and Estate balance registration for voting power",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: search ~/.config/balance-register, ~/config, .)")

	root.AddCommand(
		createServeCmd(build),
		createStatusCmd(),
		createToggleCmd(),
		createTUICmd(),
		createWalletCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Run: func(cmd *cobra.Command, _ []string) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "balance-register %s (commit %s, built %s)\n",
					build.Version, build.Commit, build.BuildDate)
			},
		},
	)
	return root
}
