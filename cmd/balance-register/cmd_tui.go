package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/quantumauth-io/quantum-go-utils/log"
	"github.com/spf13/cobra"

	"github.com/landvote/balance-register/internal/balances"
	"github.com/landvote/balance-register/internal/tui"
)

func createTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive terminal view of both balances",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadCfg()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			var session *balances.Session
			env, err := openSession(ctx, cfg)
			if err != nil {
				log.Warn("wallet not found", "error", err)
			} else {
				defer func() { _ = env.Close() }()
				session = env.Session
				go func() {
					_ = session.RefreshAll(ctx)
				}()
			}

			model := tui.New(tui.Options{
				Ctx:       ctx,
				Session:   session,
				Formatter: formatter(cfg),
				Title:     cfg.Display.Title,
				VoteURL:   cfg.Display.VoteURL,
			})
			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}
}
