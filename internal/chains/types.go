package chains

import "strings"

// ChainConfig describes the networks the client may connect to.
type ChainConfig struct {
	Networks       map[string]NetworkConfig `mapstructure:"Networks"`
	DefaultNetwork string                   `mapstructure:"Network"`
	PreferredRPC   string                   `mapstructure:"PreferredRPC"`
}

// NetworkConfig describes a network and its RPC endpoints.
type NetworkConfig struct {
	Name     string `json:"name" yaml:"name"`
	ChainID  uint64 `json:"chainId" yaml:"chainId" mapstructure:"ChainID"`
	RPCs     []RPC  `json:"rpcs" yaml:"rpcs" mapstructure:"RPCs"`
	Explorer string `json:"explorer" yaml:"explorer" mapstructure:"Explorer"`
}

type RPC struct {
	Name string `json:"name" yaml:"name" mapstructure:"Name"`
	URL  string `json:"url" yaml:"url" mapstructure:"URL"`
}

// Normalize lower-cases network keys and copies them into NetworkConfig.Name.
func (c *ChainConfig) Normalize() {
	if c == nil || c.Networks == nil {
		return
	}
	out := make(map[string]NetworkConfig, len(c.Networks))
	for name, n := range c.Networks {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		n.Name = key
		out[key] = n
	}
	c.Networks = out
	c.DefaultNetwork = strings.ToLower(strings.TrimSpace(c.DefaultNetwork))
}
