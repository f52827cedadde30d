package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/landvote/balance-register/internal/chains"
	"github.com/landvote/balance-register/internal/constants"
)

//go:embed config.yaml
var EmbeddedConfigYAML []byte

const infuraRPCName = "Infura"

type ServerConfig struct {
	Host           string
	Port           string
	AllowedOrigins []string
}

func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

type ContractsConfig struct {
	LandRegistry   string
	EstateRegistry string
	LandToken      string
	EstateToken    string
}

type WalletConfig struct {
	// Path of the encrypted wallet; empty means the user config dir.
	Path string
}

type DisplayConfig struct {
	Title             string
	VotingPowerFactor int64
	VoteURL           string
}

type TxConfig struct {
	Confirmations uint64
}

type Config struct {
	Server    ServerConfig       `mapstructure:"Server"`
	Ethereum  chains.ChainConfig `mapstructure:"Ethereum"`
	Contracts ContractsConfig    `mapstructure:"Contracts"`
	Wallet    WalletConfig       `mapstructure:"Wallet"`
	Display   DisplayConfig      `mapstructure:"Display"`
	Tx        TxConfig           `mapstructure:"Tx"`
}

func infuraRPC(chain string, key string) string {
	return fmt.Sprintf("https://%s.infura.io/v3/%s", chain, key)
}

// SearchPaths lists the directories a user config.yaml is looked up in.
func SearchPaths() []string {
	home, _ := os.UserHomeDir()
	return []string{
		filepath.Join(home, ".config", constants.AppName),
		filepath.Join(home, "config"),
		".",
	}
}

// Load reads the embedded defaults, merges the first user config found in
// SearchPaths (or file, when set) and applies BALANCE_REGISTER_* env vars.
// A .env file in the working directory is loaded first.
func Load(file string) (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(SearchPaths(), file)
}

func LoadFrom(paths []string, file string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(EmbeddedConfigYAML)); err != nil {
		return nil, errors.Wrap(err, "read embedded config")
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		for _, p := range paths {
			v.AddConfigPath(p)
		}
	}
	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read user config")
		}
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	c.Ethereum.Normalize()

	if key := strings.TrimSpace(os.Getenv("INFURA_API_KEY")); key != "" {
		if err := c.InjectInfuraKey(key); err != nil {
			return nil, err
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// InjectInfuraKey adds (or refreshes) an Infura RPC on every network and
// prefers it.
func (c *Config) InjectInfuraKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("infura api key is empty")
	}

	for netName, n := range c.Ethereum.Networks {
		rpcURL := infuraRPC(netName, key)

		found := false
		for i := range n.RPCs {
			if strings.EqualFold(n.RPCs[i].Name, infuraRPCName) {
				n.RPCs[i].URL = rpcURL
				found = true
			}
		}
		if !found {
			n.RPCs = append([]chains.RPC{{Name: infuraRPCName, URL: rpcURL}}, n.RPCs...)
		}

		// map values are copies
		c.Ethereum.Networks[netName] = n
	}
	c.Ethereum.PreferredRPC = infuraRPCName
	return nil
}

// Validate checks the config and rewrites contract addresses in checksummed
// form.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Host) == "" {
		return errors.New("Server.Host is empty")
	}
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return errors.Newf("Server.Port %q is not a valid port", c.Server.Port)
	}

	if c.Ethereum.DefaultNetwork == "" {
		return errors.New("Ethereum.Network is empty")
	}
	if _, ok := c.Ethereum.Networks[c.Ethereum.DefaultNetwork]; !ok {
		return errors.Newf("Ethereum.Network %q is not in Ethereum.Networks", c.Ethereum.DefaultNetwork)
	}

	for _, f := range []struct {
		name string
		addr *string
	}{
		{"Contracts.LandRegistry", &c.Contracts.LandRegistry},
		{"Contracts.EstateRegistry", &c.Contracts.EstateRegistry},
		{"Contracts.LandToken", &c.Contracts.LandToken},
		{"Contracts.EstateToken", &c.Contracts.EstateToken},
	} {
		canon, err := checksumAddress(*f.addr)
		if err != nil {
			return errors.Wrap(err, f.name)
		}
		*f.addr = canon
	}

	if c.Display.VotingPowerFactor <= 0 {
		return errors.Newf("Display.VotingPowerFactor must be positive, got %d", c.Display.VotingPowerFactor)
	}
	if c.Display.Title == "" {
		c.Display.Title = constants.DefaultTitle
	}
	if c.Display.VoteURL == "" {
		c.Display.VoteURL = constants.VoteURL
	}
	if c.Tx.Confirmations < 1 {
		return errors.New("Tx.Confirmations must be at least 1")
	}
	return nil
}

func checksumAddress(raw string) (string, error) {
	a := strings.TrimSpace(raw)
	if a == "" {
		return "", errors.New("address is empty")
	}
	if !strings.HasPrefix(a, "0x") && !strings.HasPrefix(a, "0X") {
		a = "0x" + a
	}
	if !common.IsHexAddress(a) {
		return "", errors.Newf("invalid address %q", raw)
	}
	return common.HexToAddress(a).Hex(), nil
}
