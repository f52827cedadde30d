package main

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/landvote/balance-register/cmd/balance-register/config"
	"github.com/landvote/balance-register/internal/app"
	"github.com/landvote/balance-register/internal/balances"
	"github.com/landvote/balance-register/internal/constants"
	"github.com/landvote/balance-register/internal/prompt"
	"github.com/landvote/balance-register/internal/view"
)

const envWalletPassword = constants.EnvPrefix + "_WALLET_PASSWORD"

func loadCfg() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	return cfg, nil
}

// walletPassword prefers the env var so the binary can run unattended.
func walletPassword(confirm bool) ([]byte, error) {
	if pw := os.Getenv(envWalletPassword); pw != "" {
		b := []byte(pw)
		if err := prompt.ValidatePassword(b); err != nil {
			return nil, errors.Wrap(err, envWalletPassword)
		}
		return b, nil
	}
	if confirm {
		return prompt.NewPassword("Wallet password: ")
	}
	return prompt.Password("Wallet password: ")
}

// openSession unlocks the wallet and binds the contracts. The caller closes
// the returned env.
func openSession(ctx context.Context, cfg *config.Config) (*app.Env, error) {
	if _, err := app.WalletStore(cfg); err != nil {
		return nil, err
	}
	pw, err := walletPassword(false)
	if err != nil {
		return nil, errors.Mark(err, balances.ErrConnection)
	}
	defer prompt.ZeroBytes(pw)

	w, err := app.LoadWallet(cfg, pw)
	if err != nil {
		return nil, err
	}
	return app.Open(ctx, cfg, w)
}

func formatter(cfg *config.Config) view.Formatter {
	return view.NewFormatter(cfg.Display.VotingPowerFactor)
}

func buildPage(cfg *config.Config, env *app.Env) view.Page {
	f := formatter(cfg)
	if env == nil {
		return f.Build(cfg.Display.Title, cfg.Display.VoteURL, "", nil)
	}
	return f.Build(cfg.Display.Title, cfg.Display.VoteURL, env.Session.Account().Hex(), env.Session)
}
