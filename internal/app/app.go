// Package app wires config, node connection, signer and contract bindings
// into a ready balances.Session.
package app

import (
	"context"
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/landvote/balance-register/cmd/balance-register/config"
	"github.com/landvote/balance-register/internal/balances"
	"github.com/landvote/balance-register/internal/chains"
	"github.com/landvote/balance-register/internal/ethwallet/userwallet"
	"github.com/landvote/balance-register/internal/registry"
)

type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// Env is an opened session plus the handles needed to close it.
type Env struct {
	Config  *config.Config
	Chain   chains.ResolvedChain
	ChainID *big.Int
	Session *balances.Session
	Tokens  map[balances.AssetClass]*registry.EthVotingToken

	chains *chains.Service
}

type openOptions struct {
	dialer chains.Dialer
}

type Option func(*openOptions)

// WithDialer replaces the ethclient dialer.
func WithDialer(d chains.Dialer) Option {
	return func(o *openOptions) { o.dialer = d }
}

// WalletStore returns the configured wallet store once its file exists, so
// callers can fail before asking for a password. A missing file is marked
// userwallet.ErrWalletNotFound and balances.ErrConnection.
func WalletStore(cfg *config.Config) (*userwallet.Store, error) {
	store, err := userwallet.NewStore(cfg.Wallet.Path)
	if err != nil {
		return nil, errors.Mark(err, balances.ErrConnection)
	}
	if !store.Exists() {
		err := errors.Wrapf(userwallet.ErrWalletNotFound, "%s", store.Path)
		return nil, errors.Mark(err, balances.ErrConnection)
	}
	return store, nil
}

// LoadWallet opens the encrypted wallet configured in cfg.
func LoadWallet(cfg *config.Config, password []byte) (*userwallet.Wallet, error) {
	store, err := WalletStore(cfg)
	if err != nil {
		return nil, err
	}
	w, err := store.Load(password)
	if err != nil {
		return nil, errors.Mark(err, balances.ErrConnection)
	}
	return w, nil
}

// Open connects to the configured node, checks the four contracts are
// deployed and binds both asset classes for signer. The session still needs
// a RefreshAll. Every failure is marked balances.ErrConnection.
func Open(ctx context.Context, cfg *config.Config, signer registry.Signer, opts ...Option) (*Env, error) {
	env, err := open(ctx, cfg, signer, opts...)
	if err != nil {
		return nil, errors.Mark(err, balances.ErrConnection)
	}
	return env, nil
}

func open(ctx context.Context, cfg *config.Config, signer registry.Signer, opts ...Option) (*Env, error) {
	if signer == nil {
		return nil, errors.New("no signer")
	}
	o := openOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	svc, err := chains.NewService(cfg.Ethereum)
	if err != nil {
		return nil, err
	}
	if o.dialer != nil {
		svc.WithDialer(o.dialer)
	}

	backend, err := svc.Connect(ctx)
	if err != nil {
		return nil, err
	}

	setupOK := false
	defer func() {
		if !setupOK {
			_ = svc.Close()
		}
	}()

	resolved, _, err := svc.Active()
	if err != nil {
		return nil, err
	}
	chainID, err := backend.ChainID(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "query chain id")
	}

	addrs := contractAddresses(cfg.Contracts)
	if err := verifyDeployed(ctx, backend, addrs); err != nil {
		return nil, err
	}

	session := balances.NewSession(signer.Address(), balances.WithConfirmations(cfg.Tx.Confirmations))
	tokens := make(map[balances.AssetClass]*registry.EthVotingToken, len(balances.AssetClasses))

	for _, class := range balances.AssetClasses {
		pair := addrs[class]
		reg, err := registry.NewEthRegistry(pair.registry, backend, signer, chainID)
		if err != nil {
			return nil, err
		}
		token, err := registry.NewEthVotingToken(pair.token, backend)
		if err != nil {
			return nil, err
		}
		if err := session.Bind(class, balances.Bindings{Registry: reg, Token: token}); err != nil {
			return nil, err
		}
		tokens[class] = token
	}

	setupOK = true
	log.Info("session opened",
		"account", signer.Address().Hex(),
		"network", resolved.NetworkName,
		"chain_id", chainID.String(),
	)
	return &Env{
		Config:  cfg,
		Chain:   resolved,
		ChainID: chainID,
		Session: session,
		Tokens:  tokens,
		chains:  svc,
	}, nil
}

func (e *Env) Close() error {
	if e == nil || e.chains == nil {
		return nil
	}
	return e.chains.Close()
}

type contractPair struct {
	registry common.Address
	token    common.Address
}

func contractAddresses(c config.ContractsConfig) map[balances.AssetClass]contractPair {
	return map[balances.AssetClass]contractPair{
		balances.Primary: {
			registry: common.HexToAddress(c.LandRegistry),
			token:    common.HexToAddress(c.LandToken),
		},
		balances.Aggregate: {
			registry: common.HexToAddress(c.EstateRegistry),
			token:    common.HexToAddress(c.EstateToken),
		},
	}
}

// verifyDeployed fails when any contract has no code on the connected chain,
// which usually means the wrong network is configured.
func verifyDeployed(ctx context.Context, backend chains.Backend, addrs map[balances.AssetClass]contractPair) error {
	for _, class := range balances.AssetClasses {
		pair := addrs[class]
		for _, a := range []common.Address{pair.registry, pair.token} {
			code, err := backend.CodeAt(ctx, a, nil)
			if err != nil {
				return errors.Wrapf(err, "code at %s", a.Hex())
			}
			if len(code) == 0 {
				return errors.Newf("%s contract not deployed on this chain: %s", class, a.Hex())
			}
		}
	}
	return nil
}
