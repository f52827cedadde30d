package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/quantumauth-io/quantum-go-utils/log"
	"github.com/spf13/cobra"

	"github.com/landvote/balance-register/internal/app"
	"github.com/landvote/balance-register/internal/balances"
	"github.com/landvote/balance-register/internal/constants"
	clienthttp "github.com/landvote/balance-register/internal/http"
	"github.com/landvote/balance-register/internal/metrics"
	"github.com/landvote/balance-register/internal/ui"
)

func createServeCmd(build app.BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the balance page, JSON API and metrics on the loopback address",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), build)
		},
	}
}

func runServe(ctx context.Context, build app.BuildInfo) error {
	log.Info("balance-register",
		"version", build.Version,
		"commit", build.Commit,
		"build_date", build.BuildDate,
	)

	cfg, err := loadCfg()
	if err != nil {
		return err
	}
	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return err
	}

	// Without a wallet the page still renders its fallback.
	var (
		session *balances.Session
		tokens  = map[balances.AssetClass]clienthttp.TokenInfoReader{}
	)
	env, err := openSession(ctx, cfg)
	if err != nil {
		log.Warn("wallet not found, serving fallback page", "error", err)
	} else {
		defer func() {
			if closeErr := env.Close(); closeErr != nil {
				log.Error("close chain connection", "error", closeErr)
			}
		}()
		session = env.Session
		for class, token := range env.Tokens {
			tokens[class] = token
		}
		go func() {
			_ = session.RefreshAll(ctx)
		}()
	}

	server := clienthttp.NewServer(ctx, clienthttp.Config{
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		Title:             cfg.Display.Title,
		VoteURL:           cfg.Display.VoteURL,
		VotingPowerFactor: cfg.Display.VotingPowerFactor,
		Tokens:            tokens,
	}, session, prometheus.DefaultGatherer)

	svc := ui.NewService(ui.Config{Addr: cfg.Server.Addr(), Handler: server.Handler()})
	if err := svc.Start(); err != nil {
		return err
	}
	log.Info("serving balance page", "url", svc.URL())

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := svc.Stop(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown failed", "error", err)
		return err
	}
	log.Info("HTTP server gracefully stopped")
	return nil
}
