package chains

import (
	"context"
	"math/big"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/quantumauth-io/quantum-go-utils/log"
)

// Backend is everything the bindings and the receipt waiter need from a node.
// *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

type ResolvedChain struct {
	NetworkName string
	ChainID     uint64
	Explorer    string

	RPCName string
	URL     string
}

// Dialer opens a Backend for a resolved chain. Replaced in tests.
type Dialer func(ctx context.Context, chain ResolvedChain) (Backend, error)

// Service owns the single RPC connection used by the session.
type Service struct {
	cfg     ChainConfig
	dial    Dialer
	chain   ResolvedChain
	backend Backend
}

func NewService(cfg ChainConfig) (*Service, error) {
	cfg.Normalize()
	if len(cfg.Networks) == 0 {
		return nil, errors.New("chains: no networks configured")
	}
	if cfg.DefaultNetwork == "" {
		return nil, errors.New("chains: network is empty")
	}
	return &Service{cfg: cfg, dial: dialHTTP}, nil
}

// WithDialer swaps the dial function and returns the service.
func (s *Service) WithDialer(d Dialer) *Service {
	s.dial = d
	return s
}

// Connect dials the configured network and checks that the node reports the
// configured chain id.
func (s *Service) Connect(ctx context.Context) (Backend, error) {
	resolved, err := s.ResolveNetworkByName(s.cfg.DefaultNetwork)
	if err != nil {
		return nil, err
	}

	backend, err := s.dial(ctx, resolved)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s (%s)", resolved.NetworkName, resolved.RPCName)
	}

	if resolved.ChainID != 0 {
		got, err := backend.ChainID(ctx)
		if err != nil {
			safeClose(backend)
			return nil, errors.Wrap(err, "query chain id")
		}
		if !got.IsUint64() || got.Uint64() != resolved.ChainID {
			safeClose(backend)
			return nil, errors.Newf("chains: node reports chain id %s, %q expects %d", got, resolved.NetworkName, resolved.ChainID)
		}
	}

	s.chain = resolved
	s.backend = backend
	log.Info("connected to ethereum node", "network", resolved.NetworkName, "rpc", resolved.RPCName, "chain_id", resolved.ChainID)
	return backend, nil
}

// Active returns the connected chain, if any.
func (s *Service) Active() (ResolvedChain, Backend, error) {
	if s.backend == nil {
		return ResolvedChain{}, nil, errors.New("chains: not connected")
	}
	return s.chain, s.backend, nil
}

func (s *Service) Close() error {
	if s.backend != nil {
		safeClose(s.backend)
		s.backend = nil
	}
	return nil
}

func (s *Service) ResolveNetworkByName(networkName string) (ResolvedChain, error) {
	networkName = strings.ToLower(strings.TrimSpace(networkName))
	if networkName == "" {
		return ResolvedChain{}, errors.New("network name is empty")
	}

	network, ok := s.cfg.Networks[networkName]
	if !ok {
		return ResolvedChain{}, errors.Newf("unknown network %q", networkName)
	}

	// pick RPC by preferred name; otherwise first
	var selected *RPC
	if preferred := strings.TrimSpace(s.cfg.PreferredRPC); preferred != "" {
		for i := range network.RPCs {
			if strings.EqualFold(strings.TrimSpace(network.RPCs[i].Name), preferred) {
				selected = &network.RPCs[i]
				break
			}
		}
	}
	if selected == nil {
		if len(network.RPCs) == 0 {
			return ResolvedChain{}, errors.Newf("network %q has no RPCs configured", networkName)
		}
		selected = &network.RPCs[0]
	}
	if strings.TrimSpace(selected.URL) == "" {
		return ResolvedChain{}, errors.Newf("network %q rpc %q url is empty", networkName, selected.Name)
	}

	return ResolvedChain{
		NetworkName: networkName,
		ChainID:     network.ChainID,
		Explorer:    network.Explorer,
		RPCName:     selected.Name,
		URL:         selected.URL,
	}, nil
}

func dialHTTP(ctx context.Context, chain ResolvedChain) (Backend, error) {
	client, err := ethclient.DialContext(ctx, chain.URL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func safeClose(b Backend) {
	if closer, ok := b.(interface{ Close() }); ok {
		closer.Close()
	}
}
