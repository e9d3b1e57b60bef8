package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"cosmossdk.io/log"
)

const (
	// DefaultJSONRPCAddress is the default address the JSON-RPC server binds to.
	DefaultJSONRPCAddress = "127.0.0.1:9944"

	// DefaultHTTPTimeout is the default read/write timeout of the http json-rpc server.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultHTTPIdleTimeout is the default idle timeout of the http json-rpc server.
	DefaultHTTPIdleTimeout = 120 * time.Second

	// DefaultMaxOpenConnections represents the amount of open connections (unlimited = 0)
	DefaultMaxOpenConnections = 0

	// DefaultBlockTime is the default sealing interval. Zero seals a block as
	// soon as a transaction is pooled.
	DefaultBlockTime = time.Duration(0)

	// DefaultDBBackend is the default database backend.
	DefaultDBBackend = "goleveldb"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultKeystorePassphrase encrypts the dev node's keystore.
	DefaultKeystorePassphrase = "ethink"
)

var (
	// DefaultAPINamespaces are the JSON-RPC namespaces enabled by default.
	DefaultAPINamespaces = []string{"eth", "net", "web3"}

	// supportedDBBackends lists the backends the node can open.
	supportedDBBackends = []string{"goleveldb", "memdb"}
)

// Config defines the node configuration.
type Config struct {
	LogLevel string `mapstructure:"log_level"`

	Chain    ChainConfig    `mapstructure:"chain"`
	JSONRPC  JSONRPCConfig  `mapstructure:"json-rpc"`
	Keystore KeystoreConfig `mapstructure:"keystore"`
}

// ChainConfig defines the block production and storage configuration.
type ChainConfig struct {
	// DBBackend is the database backend (goleveldb or memdb).
	DBBackend string `mapstructure:"db-backend"`
	// BlockTime is the sealing interval. Zero seals on every pooled transaction.
	BlockTime time.Duration `mapstructure:"block-time"`
	// Genesis is the YAML genesis file. Empty uses the dev genesis.
	Genesis string `mapstructure:"genesis"`
	// PoolCapacity caps the number of pooled transactions.
	PoolCapacity int `mapstructure:"pool-capacity"`
}

// JSONRPCConfig defines configuration for the JSON-RPC server.
type JSONRPCConfig struct {
	// API defines a list of JSON-RPC namespaces that should be enabled
	API []string `mapstructure:"api"`
	// Address defines the HTTP server to listen on
	Address string `mapstructure:"address"`
	// Enable defines if the JSON-RPC server should be enabled.
	Enable bool `mapstructure:"enable"`
	// EnableUnsafeCORS defines if CORS should be enabled (unsafe - use it at your own risk)
	EnableUnsafeCORS bool `mapstructure:"enable-unsafe-cors"`
	// HTTPTimeout is the read/write timeout of http json-rpc server.
	HTTPTimeout time.Duration `mapstructure:"http-timeout"`
	// HTTPIdleTimeout is the idle timeout of http json-rpc server.
	HTTPIdleTimeout time.Duration `mapstructure:"http-idle-timeout"`
	// MaxOpenConnections sets the maximum number of simultaneous connections
	// for the server listener.
	MaxOpenConnections int `mapstructure:"max-open-connections"`
}

// KeystoreConfig defines the keys eth_sendTransaction and eth_sign can use.
type KeystoreConfig struct {
	// Dir is the encrypted keystore directory. Empty keeps the keys in memory.
	Dir string `mapstructure:"dir"`
	// Passphrase decrypts every key in Dir.
	Passphrase string `mapstructure:"passphrase"`
	// DevKeys loads the well-known development keys.
	DevKeys bool `mapstructure:"dev-keys"`
}

// DefaultChainConfig returns the default block production configuration.
func DefaultChainConfig() *ChainConfig {
	return &ChainConfig{
		DBBackend:    DefaultDBBackend,
		BlockTime:    DefaultBlockTime,
		PoolCapacity: 4096,
	}
}

// Validate returns an error if the chain configuration fields are invalid.
func (c ChainConfig) Validate() error {
	supported := false
	for _, backend := range supportedDBBackends {
		if c.DBBackend == backend {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported db backend %q, expected one of %v", c.DBBackend, supportedDBBackends)
	}
	if c.BlockTime < 0 {
		return errors.New("block time cannot be negative")
	}
	if c.PoolCapacity <= 0 {
		return errors.New("pool capacity must be positive")
	}
	return nil
}

// DefaultJSONRPCConfig returns an EVM config with the JSON-RPC API enabled by default
func DefaultJSONRPCConfig() *JSONRPCConfig {
	return &JSONRPCConfig{
		Enable:             true,
		API:                DefaultAPINamespaces,
		Address:            DefaultJSONRPCAddress,
		EnableUnsafeCORS:   false,
		HTTPTimeout:        DefaultHTTPTimeout,
		HTTPIdleTimeout:    DefaultHTTPIdleTimeout,
		MaxOpenConnections: DefaultMaxOpenConnections,
	}
}

// Validate returns an error if the JSON-RPC configuration fields are invalid.
func (c JSONRPCConfig) Validate() error {
	if c.Enable && len(c.API) == 0 {
		return errors.New("cannot enable JSON-RPC without defining any API namespace")
	}

	if c.HTTPTimeout < 0 {
		return errors.New("JSON-RPC HTTP timeout duration cannot be negative")
	}

	if c.HTTPIdleTimeout < 0 {
		return errors.New("JSON-RPC HTTP idle timeout duration cannot be negative")
	}

	if c.MaxOpenConnections < 0 {
		return errors.New("JSON-RPC max open connections cannot be negative")
	}

	// check for duplicates
	seenAPIs := make(map[string]bool)
	for _, api := range c.API {
		if seenAPIs[api] {
			return fmt.Errorf("repeated API namespace '%s'", api)
		}

		seenAPIs[api] = true
	}

	return nil
}

// DefaultKeystoreConfig returns the default keystore configuration.
func DefaultKeystoreConfig() *KeystoreConfig {
	return &KeystoreConfig{
		Passphrase: DefaultKeystorePassphrase,
		DevKeys:    true,
	}
}

// Validate returns an error if the keystore configuration fields are invalid.
func (c KeystoreConfig) Validate() error {
	if c.Dir != "" && c.Passphrase == "" {
		return errors.New("keystore passphrase cannot be empty")
	}
	return nil
}

// DefaultConfig returns the node's default configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Chain:    *DefaultChainConfig(),
		JSONRPC:  *DefaultJSONRPCConfig(),
		Keystore: *DefaultKeystoreConfig(),
	}
}

// ValidateBasic returns an error if any of the config fields are invalid.
func (c Config) ValidateBasic() error {
	if _, err := log.ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	if err := c.Chain.Validate(); err != nil {
		return fmt.Errorf("invalid chain config value: %w", err)
	}

	if err := c.JSONRPC.Validate(); err != nil {
		return fmt.Errorf("invalid json-rpc config value: %w", err)
	}

	if err := c.Keystore.Validate(); err != nil {
		return fmt.Errorf("invalid keystore config value: %w", err)
	}

	return nil
}

// GetConfig returns a fully parsed Config object.
func GetConfig(v *viper.Viper) (Config, error) {
	home := cast.ToString(v.Get("home"))
	keystoreDir := cast.ToString(v.Get("keystore.dir"))
	if keystoreDir != "" && home != "" && !filepath.IsAbs(keystoreDir) {
		keystoreDir = filepath.Join(home, keystoreDir)
	}

	cfg := Config{
		LogLevel: v.GetString("log_level"),
		Chain: ChainConfig{
			DBBackend:    v.GetString("chain.db-backend"),
			BlockTime:    v.GetDuration("chain.block-time"),
			Genesis:      v.GetString("chain.genesis"),
			PoolCapacity: v.GetInt("chain.pool-capacity"),
		},
		JSONRPC: JSONRPCConfig{
			Enable:             v.GetBool("json-rpc.enable"),
			API:                splitNamespaces(v.GetStringSlice("json-rpc.api")),
			Address:            v.GetString("json-rpc.address"),
			EnableUnsafeCORS:   v.GetBool("json-rpc.enable-unsafe-cors"),
			HTTPTimeout:        v.GetDuration("json-rpc.http-timeout"),
			HTTPIdleTimeout:    v.GetDuration("json-rpc.http-idle-timeout"),
			MaxOpenConnections: v.GetInt("json-rpc.max-open-connections"),
		},
		Keystore: KeystoreConfig{
			Dir:        keystoreDir,
			Passphrase: v.GetString("keystore.passphrase"),
			DevKeys:    v.GetBool("keystore.dev-keys"),
		},
	}

	return cfg, cfg.ValidateBasic()
}

// splitNamespaces accepts both list values and the comma separated string
// the config template renders.
func splitNamespaces(values []string) []string {
	var namespaces []string
	for _, value := range values {
		for _, ns := range strings.Split(value, ",") {
			if ns = strings.TrimSpace(ns); ns != "" {
				namespaces = append(namespaces, ns)
			}
		}
	}
	return namespaces
}

// SetDefaults registers the default configuration on v so that missing
// keys in the config file fall back to them.
func SetDefaults(v *viper.Viper) {
	cfg := DefaultConfig()
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("chain.db-backend", cfg.Chain.DBBackend)
	v.SetDefault("chain.block-time", cfg.Chain.BlockTime)
	v.SetDefault("chain.genesis", cfg.Chain.Genesis)
	v.SetDefault("chain.pool-capacity", cfg.Chain.PoolCapacity)
	v.SetDefault("json-rpc.enable", cfg.JSONRPC.Enable)
	v.SetDefault("json-rpc.api", cfg.JSONRPC.API)
	v.SetDefault("json-rpc.address", cfg.JSONRPC.Address)
	v.SetDefault("json-rpc.enable-unsafe-cors", cfg.JSONRPC.EnableUnsafeCORS)
	v.SetDefault("json-rpc.http-timeout", cfg.JSONRPC.HTTPTimeout)
	v.SetDefault("json-rpc.http-idle-timeout", cfg.JSONRPC.HTTPIdleTimeout)
	v.SetDefault("json-rpc.max-open-connections", cfg.JSONRPC.MaxOpenConnections)
	v.SetDefault("keystore.dir", cfg.Keystore.Dir)
	v.SetDefault("keystore.passphrase", cfg.Keystore.Passphrase)
	v.SetDefault("keystore.dev-keys", cfg.Keystore.DevKeys)
}
