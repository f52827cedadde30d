package app

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/landvote/balance-register/cmd/balance-register/config"
	"github.com/landvote/balance-register/internal/balances"
	"github.com/landvote/balance-register/internal/chains"
	"github.com/landvote/balance-register/internal/ethwallet/userwallet"
)

const hardhatKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

type nodeStub struct {
	chains.Backend
	chainID *big.Int
	missing common.Address
	closed  bool
}

func (n *nodeStub) ChainID(context.Context) (*big.Int, error) { return n.chainID, nil }

func (n *nodeStub) CodeAt(_ context.Context, a common.Address, _ *big.Int) ([]byte, error) {
	if a == n.missing {
		return nil, nil
	}
	return []byte{0x60, 0x80}, nil
}

func (n *nodeStub) Close() { n.closed = true }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("INFURA_API_KEY", "")
	cfg, err := config.LoadFrom([]string{t.TempDir()}, "")
	require.NoError(t, err)
	return cfg
}

func dialTo(n *nodeStub) chains.Dialer {
	return func(context.Context, chains.ResolvedChain) (chains.Backend, error) { return n, nil }
}

func TestOpenBindsBothClasses(t *testing.T) {
	cfg := testConfig(t)
	w, err := userwallet.FromPrivateKeyHex(hardhatKey)
	require.NoError(t, err)
	node := &nodeStub{chainID: big.NewInt(1)}

	env, err := Open(context.Background(), cfg, w, WithDialer(dialTo(node)))
	require.NoError(t, err)

	require.Equal(t, w.Address(), env.Session.Account())
	require.Equal(t, "mainnet", env.Chain.NetworkName)
	require.Equal(t, int64(1), env.ChainID.Int64())
	for _, class := range balances.AssetClasses {
		require.True(t, env.Session.Ready(class))
		require.NotNil(t, env.Tokens[class])
	}
	require.Equal(t, common.HexToAddress(cfg.Contracts.EstateToken), env.Tokens[balances.Aggregate].Address())

	require.NoError(t, env.Close())
	require.True(t, node.closed)
}

func TestOpenFailsWhenContractMissing(t *testing.T) {
	cfg := testConfig(t)
	w, err := userwallet.FromPrivateKeyHex(hardhatKey)
	require.NoError(t, err)
	node := &nodeStub{chainID: big.NewInt(1), missing: common.HexToAddress(cfg.Contracts.LandToken)}

	_, err = Open(context.Background(), cfg, w, WithDialer(dialTo(node)))
	require.Error(t, err)
	require.True(t, errors.Is(err, balances.ErrConnection))
	require.Contains(t, err.Error(), "not deployed")
	require.True(t, node.closed)
}

func TestOpenFailsOnChainMismatch(t *testing.T) {
	cfg := testConfig(t)
	w, err := userwallet.FromPrivateKeyHex(hardhatKey)
	require.NoError(t, err)

	_, err = Open(context.Background(), cfg, w, WithDialer(dialTo(&nodeStub{chainID: big.NewInt(5)})))
	require.True(t, errors.Is(err, balances.ErrConnection))
}

func TestOpenWithoutSigner(t *testing.T) {
	_, err := Open(context.Background(), testConfig(t), nil)
	require.True(t, errors.Is(err, balances.ErrConnection))
}

func TestLoadWalletMissing(t *testing.T) {
	cfg := testConfig(t)
	cfg.Wallet.Path = t.TempDir() + "/wallet.json"

	_, err := LoadWallet(cfg, []byte("password-123"))
	require.True(t, errors.Is(err, balances.ErrConnection))
	require.True(t, errors.Is(err, userwallet.ErrWalletNotFound))
}

func TestWalletStoreChecksFileFirst(t *testing.T) {
	cfg := testConfig(t)
	cfg.Wallet.Path = filepath.Join(t.TempDir(), "wallet.json")

	_, err := WalletStore(cfg)
	require.True(t, errors.Is(err, userwallet.ErrWalletNotFound))
	require.True(t, errors.Is(err, balances.ErrConnection))

	store, err := userwallet.NewStore(cfg.Wallet.Path)
	require.NoError(t, err)
	store.ScryptN, store.ScryptP = keystore.LightScryptN, keystore.LightScryptP
	w, err := userwallet.FromPrivateKeyHex(hardhatKey)
	require.NoError(t, err)
	require.NoError(t, store.Save(w, []byte("password-123")))

	got, err := WalletStore(cfg)
	require.NoError(t, err)
	require.Equal(t, cfg.Wallet.Path, got.Path)

	loaded, err := LoadWallet(cfg, []byte("password-123"))
	require.NoError(t, err)
	require.Equal(t, w.Address(), loaded.Address())
}
