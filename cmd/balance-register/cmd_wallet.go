package main

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/landvote/balance-register/internal/ethwallet/userwallet"
	"github.com/landvote/balance-register/internal/prompt"
)

func createWalletCmd() *cobra.Command {
	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage the encrypted local wallet",
	}

	walletCmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Create a new random wallet",
			RunE: func(cmd *cobra.Command, _ []string) error {
				w, err := userwallet.NewRandomWallet()
				if err != nil {
					return err
				}
				return saveWallet(cmd, w)
			},
		},
		&cobra.Command{
			Use:   "import",
			Short: "Import an existing private key",
			RunE: func(cmd *cobra.Command, _ []string) error {
				key, err := prompt.Secret("Private key (hex): ")
				if err != nil {
					return err
				}
				defer prompt.ZeroBytes(key)

				w, err := userwallet.FromPrivateKeyHex(strings.TrimSpace(string(key)))
				if err != nil {
					return err
				}
				return saveWallet(cmd, w)
			},
		},
		&cobra.Command{
			Use:   "address",
			Short: "Print the wallet address",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := loadCfg()
				if err != nil {
					return err
				}
				store, err := userwallet.NewStore(cfg.Wallet.Path)
				if err != nil {
					return err
				}
				pw, err := walletPassword(false)
				if err != nil {
					return err
				}
				defer prompt.ZeroBytes(pw)

				w, err := store.Load(pw)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), w.Address().Hex())
				return nil
			},
		},
	)
	return walletCmd
}

func saveWallet(cmd *cobra.Command, w *userwallet.Wallet) error {
	cfg, err := loadCfg()
	if err != nil {
		return err
	}
	store, err := userwallet.NewStore(cfg.Wallet.Path)
	if err != nil {
		return err
	}
	if store.Exists() {
		return errors.Newf("wallet already exists at %s", store.Path)
	}

	pw, err := walletPassword(true)
	if err != nil {
		return err
	}
	defer prompt.ZeroBytes(pw)

	if err := store.Save(w, pw); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wallet %s saved to %s\n", w.Address().Hex(), store.Path)
	return nil
}
