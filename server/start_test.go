package server_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ethink/ethink/chain"
	"github.com/ethink/ethink/crypto/keyring"
	"github.com/ethink/ethink/server"
	"github.com/ethink/ethink/server/config"

	dbm "github.com/cosmos/cosmos-db"

	"cosmossdk.io/log"
)

func TestNewKeyring(t *testing.T) {
	devAccounts := keyring.NewDevKeyring().Accounts()

	testCases := []struct {
		name     string
		cfg      func(dir string) config.KeystoreConfig
		expCount int
	}{
		{"in-memory dev keys", func(string) config.KeystoreConfig {
			return config.KeystoreConfig{DevKeys: true}
		}, len(devAccounts)},
		{"in-memory empty", func(string) config.KeystoreConfig {
			return config.KeystoreConfig{}
		}, 0},
		{"keystore dev keys", func(dir string) config.KeystoreConfig {
			return config.KeystoreConfig{Dir: dir, Passphrase: "secret", DevKeys: true}
		}, len(devAccounts)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kr, err := server.NewKeyring(tc.cfg(t.TempDir()))
			require.NoError(t, err)
			require.Len(t, kr.Accounts(), tc.expCount)
			if tc.expCount > 0 {
				require.ElementsMatch(t, devAccounts, kr.Accounts())
			}
		})
	}
}

func TestNewAppReopen(t *testing.T) {
	db := dbm.NewMemDB()
	cfg := *config.DefaultChainConfig()

	app, err := server.NewApp(log.NewNopLogger(), db, cfg)
	require.NoError(t, err)
	genesisHash := app.BestHeader().Hash()

	reopened, err := server.NewApp(log.NewNopLogger(), db, cfg)
	require.NoError(t, err)
	require.Equal(t, genesisHash, reopened.BestHeader().Hash())
}

func TestLoadGenesisFile(t *testing.T) {
	genesis := chain.DefaultGenesis()
	genesis.Time = 1_700_000_000
	bz, err := genesis.ToYAML()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, bz, 0o600))

	loaded, err := server.LoadGenesis(config.ChainConfig{Genesis: path})
	require.NoError(t, err)
	require.Equal(t, genesis.Time, loaded.Time)

	dev, err := server.LoadGenesis(config.ChainConfig{})
	require.NoError(t, err)
	require.NotZero(t, dev.Time)
}

func TestStart(t *testing.T) {
	cfg := *config.DefaultConfig()
	cfg.Chain.DBBackend = "memdb"
	cfg.JSONRPC.Address = "127.0.0.1:0"

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	require.NoError(t, server.Start(ctx, t.TempDir(), cfg, log.NewNopLogger()))
}

func TestStartInvalidConfig(t *testing.T) {
	cfg := *config.DefaultConfig()
	cfg.Chain.DBBackend = "rocksdb"

	err := server.Start(context.Background(), t.TempDir(), cfg, log.NewNopLogger())
	require.ErrorContains(t, err, "unsupported db backend")
}
