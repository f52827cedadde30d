package userwallet

import (
	"context"
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

// well-known hardhat account #0
const testKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

var testAddr = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "nested", "wallet.json"))
	require.NoError(t, err)
	s.ScryptN, s.ScryptP = keystore.LightScryptN, keystore.LightScryptP
	return s
}

func TestFromPrivateKeyHex(t *testing.T) {
	w, err := FromPrivateKeyHex(testKey)
	require.NoError(t, err)
	require.Equal(t, testAddr, w.Address())

	_, err = FromPrivateKeyHex("0x1234")
	require.Error(t, err)
}

func TestStoreSaveLoad(t *testing.T) {
	s := testStore(t)

	_, err := s.Load([]byte("password1"))
	require.True(t, errors.Is(err, ErrWalletNotFound))

	w, err := FromPrivateKeyHex(testKey)
	require.NoError(t, err)
	require.NoError(t, s.Save(w, []byte("password1")))
	require.True(t, s.Exists())

	info, err := os.Stat(s.Path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := s.Load([]byte("password1"))
	require.NoError(t, err)
	require.Equal(t, testAddr, got.Address())

	_, err = s.Load([]byte("password2"))
	require.True(t, errors.Is(err, ErrWrongPassword))
	require.False(t, errors.Is(err, ErrWalletNotFound))

	require.True(t, errors.Is(s.Save(w, []byte("password1")), ErrWalletExists))

	entries, err := os.ReadDir(filepath.Dir(s.Path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
}

func TestSavedFileIsKeystoreV3(t *testing.T) {
	s := testStore(t)
	w, err := FromPrivateKeyHex(testKey)
	require.NoError(t, err)
	require.NoError(t, s.Save(w, []byte("password1")))

	raw, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	require.NotContains(t, string(raw), testKey[2:])

	var doc struct {
		Address string `json:"address"`
		Version int    `json:"version"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))
	require.Equal(t, 3, doc.Version)
	require.Equal(t, testAddr, common.HexToAddress(doc.Address))

	key, err := keystore.DecryptKey(raw, "password1")
	require.NoError(t, err)
	require.Equal(t, testAddr, key.Address)
}

func TestSaveRejectsEmptyPassword(t *testing.T) {
	s := testStore(t)
	w, err := NewRandomWallet()
	require.NoError(t, err)
	require.Error(t, s.Save(w, nil))
	require.False(t, s.Exists())
}

func TestDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("AppData", dir)

	s, err := NewStore("")
	require.NoError(t, err)
	require.Equal(t, "wallet.json", filepath.Base(s.Path))
	require.Equal(t, "balance-register", filepath.Base(filepath.Dir(s.Path)))
}

func TestTransactOpts(t *testing.T) {
	w, err := FromPrivateKeyHex(testKey)
	require.NoError(t, err)

	ctx := context.Background()
	opts, err := w.TransactOpts(ctx, big.NewInt(1))
	require.NoError(t, err)
	require.Equal(t, testAddr, opts.From)
	require.Equal(t, ctx, opts.Context)
	require.NotNil(t, opts.Signer)

	_, err = w.TransactOpts(ctx, nil)
	require.Error(t, err)

	_, err = (&Wallet{}).TransactOpts(ctx, big.NewInt(1))
	require.Error(t, err)
}
