package config

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.ValidateBasic())
	require.True(t, cfg.JSONRPC.Enable)
	require.Equal(t, DefaultJSONRPCAddress, cfg.JSONRPC.Address)
	require.Equal(t, []string{"eth", "net", "web3"}, cfg.JSONRPC.API)
	require.True(t, cfg.Keystore.DevKeys)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name     string
		malleate func(cfg *Config)
		expErr   string
	}{
		{"default", func(*Config) {}, ""},
		{"bad log level", func(cfg *Config) { cfg.LogLevel = "" }, "invalid log level"},
		{"bad db backend", func(cfg *Config) { cfg.Chain.DBBackend = "rocksdb" }, "unsupported db backend"},
		{"negative block time", func(cfg *Config) { cfg.Chain.BlockTime = -time.Second }, "block time cannot be negative"},
		{"zero pool capacity", func(cfg *Config) { cfg.Chain.PoolCapacity = 0 }, "pool capacity must be positive"},
		{"no namespaces", func(cfg *Config) { cfg.JSONRPC.API = nil }, "without defining any API namespace"},
		{"disabled without namespaces", func(cfg *Config) {
			cfg.JSONRPC.Enable = false
			cfg.JSONRPC.API = nil
		}, ""},
		{"repeated namespace", func(cfg *Config) { cfg.JSONRPC.API = []string{"eth", "eth"} }, "repeated API namespace 'eth'"},
		{"negative timeout", func(cfg *Config) { cfg.JSONRPC.HTTPTimeout = -1 }, "timeout duration cannot be negative"},
		{"negative connections", func(cfg *Config) { cfg.JSONRPC.MaxOpenConnections = -1 }, "max open connections cannot be negative"},
		{"keystore without passphrase", func(cfg *Config) {
			cfg.Keystore.Dir = "keys"
			cfg.Keystore.Passphrase = ""
		}, "keystore passphrase cannot be empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.malleate(cfg)
			err := cfg.ValidateBasic()
			if tc.expErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.expErr)
		})
	}
}

func TestRenderedTemplateRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Chain.BlockTime = 6 * time.Second
	cfg.Chain.DBBackend = "memdb"
	cfg.JSONRPC.Address = "0.0.0.0:8545"
	cfg.Keystore.Dir = "keystore"

	bz, err := Render(cfg)
	require.NoError(t, err)

	v := viper.New()
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(bytes.NewReader(bz)))
	v.Set("home", "/var/ethink")

	parsed, err := GetConfig(v)
	require.NoError(t, err)
	require.Equal(t, 6*time.Second, parsed.Chain.BlockTime)
	require.Equal(t, "memdb", parsed.Chain.DBBackend)
	require.Equal(t, "0.0.0.0:8545", parsed.JSONRPC.Address)
	require.Equal(t, []string{"eth", "net", "web3"}, parsed.JSONRPC.API)
	require.Equal(t, DefaultHTTPTimeout, parsed.JSONRPC.HTTPTimeout)
	require.Equal(t, filepath.Join("/var/ethink", "keystore"), parsed.Keystore.Dir)
	require.Equal(t, DefaultKeystorePassphrase, parsed.Keystore.Passphrase)
}

func TestWriteConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "config.toml")
	require.NoError(t, WriteConfigFile(path, DefaultConfig()))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	require.Equal(t, DefaultLogLevel, v.GetString("log_level"))
	require.True(t, v.GetBool("json-rpc.enable"))
}

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := GetConfig(v)
	require.NoError(t, err)
	require.Equal(t, *DefaultConfig(), cfg)
}
