// Package userwallet keeps the account key in a go-ethereum keystore v3 file
// and hands out transaction signers for it.
package userwallet

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"

	"github.com/landvote/balance-register/internal/constants"
)

var (
	// ErrWalletNotFound is returned by Load when no wallet file exists yet.
	ErrWalletNotFound = errors.New("wallet file not found")
	// ErrWalletExists is returned by Save instead of overwriting a key.
	ErrWalletExists = errors.New("wallet already exists")
	// ErrWrongPassword wraps keystore.ErrDecrypt.
	ErrWrongPassword = errors.New("wrong wallet password")
)

// Wallet is the signer handle shared by every contract binding of a session.
type Wallet struct {
	key *keystore.Key
}

func (w *Wallet) Address() common.Address {
	if w == nil || w.key == nil {
		return common.Address{}
	}
	return w.key.Address
}

// TransactOpts returns signing options bound to ctx for the given chain.
func (w *Wallet) TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error) {
	if chainID == nil {
		return nil, errors.New("chain id is nil")
	}
	if w == nil || w.key == nil || w.key.PrivateKey == nil {
		return nil, errors.New("wallet has no key")
	}
	opts, err := bind.NewKeyedTransactorWithChainID(w.key.PrivateKey, chainID)
	if err != nil {
		return nil, errors.Wrap(err, "keyed transactor")
	}
	opts.Context = ctx
	return opts, nil
}

func NewRandomWallet() (*Wallet, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, errors.Wrap(err, "generate key")
	}
	return fromKey(key)
}

// FromPrivateKeyHex imports an existing secp256k1 key (with or without 0x).
func FromPrivateKeyHex(hexKey string) (*Wallet, error) {
	hexKey = strings.TrimSpace(hexKey)
	hexKey = strings.TrimPrefix(strings.TrimPrefix(hexKey, "0x"), "0X")
	if len(hexKey) != 64 {
		return nil, errors.Newf("invalid private key length: got %d hex chars, want 64", len(hexKey))
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, errors.Wrap(err, "decode private key")
	}
	return fromKey(key)
}

func fromKey(key *ecdsa.PrivateKey) (*Wallet, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, errors.Wrap(err, "key id")
	}
	return &Wallet{key: &keystore.Key{
		Id:         id,
		Address:    crypto.PubkeyToAddress(key.PublicKey),
		PrivateKey: key,
	}}, nil
}

// Store reads and writes one keystore file. ScryptN and ScryptP are the
// scrypt cost used when saving; loading takes them from the file.
type Store struct {
	Path    string
	ScryptN int
	ScryptP int
}

// NewStore sets up a wallet store at path, or at DefaultPath when path is
// empty.
func NewStore(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &Store{
		Path:    path,
		ScryptN: keystore.StandardScryptN,
		ScryptP: keystore.StandardScryptP,
	}, nil
}

// DefaultPath is <user config dir>/balance-register/wallet.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "user config dir")
	}
	return filepath.Join(dir, constants.AppName, constants.WalletFile), nil
}

func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

// Load decrypts the wallet file.
func (s *Store) Load(password []byte) (*Wallet, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Mark(errors.Wrapf(err, "load wallet %s", s.Path), ErrWalletNotFound)
		}
		return nil, errors.Wrapf(err, "load wallet %s", s.Path)
	}
	if len(password) == 0 {
		return nil, errors.New("empty wallet password")
	}

	key, err := keystore.DecryptKey(raw, string(password))
	if err != nil {
		if errors.Is(err, keystore.ErrDecrypt) {
			return nil, errors.Mark(errors.Wrapf(err, "load wallet %s", s.Path), ErrWrongPassword)
		}
		return nil, errors.Wrapf(err, "load wallet %s", s.Path)
	}
	return &Wallet{key: key}, nil
}

// Save encrypts w into a new file. The file is written next to its final
// path and renamed into place.
func (s *Store) Save(w *Wallet, password []byte) error {
	if w == nil || w.key == nil {
		return errors.New("nil wallet")
	}
	if len(password) == 0 {
		return errors.New("empty wallet password")
	}
	if s.Exists() {
		return errors.Wrapf(ErrWalletExists, "%s", s.Path)
	}

	blob, err := keystore.EncryptKey(w.key, string(password), s.ScryptN, s.ScryptP)
	if err != nil {
		return errors.Wrap(err, "encrypt wallet")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), constants.DirectoryPerm); err != nil {
		return errors.Wrapf(err, "create %s", filepath.Dir(s.Path))
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), "."+filepath.Base(s.Path)+".*")
	if err != nil {
		return errors.Wrap(err, "create temp wallet")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := tmp.Chmod(constants.FilePerm); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "chmod temp wallet")
	}
	if _, err := tmp.Write(blob); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "write temp wallet")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp wallet")
	}
	return errors.Wrapf(os.Rename(tmp.Name(), s.Path), "save wallet %s", s.Path)
}
