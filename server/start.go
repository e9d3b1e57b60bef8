package server

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ethink/ethink/chain"
	"github.com/ethink/ethink/crypto/keyring"
	ethinkrpc "github.com/ethink/ethink/rpc"
	"github.com/ethink/ethink/server/config"

	dbm "github.com/cosmos/cosmos-db"

	"cosmossdk.io/log"
)

// DataDir is the directory under the node home holding the database.
const DataDir = "data"

// OpenDB opens the chain database under home with the configured backend.
func OpenDB(home string, cfg config.ChainConfig) (dbm.DB, error) {
	backend := dbm.BackendType(cfg.DBBackend)
	if backend == dbm.MemDBBackend {
		return dbm.NewMemDB(), nil
	}
	return dbm.NewDB("chain", backend, filepath.Join(home, DataDir))
}

// LoadGenesis returns the configured genesis, or the development genesis
// stamped with the current time when none is set.
func LoadGenesis(cfg config.ChainConfig) (chain.Genesis, error) {
	if cfg.Genesis == "" {
		genesis := chain.DefaultGenesis()
		genesis.Time = uint64(time.Now().Unix())
		return genesis, nil
	}
	return chain.LoadGenesis(cfg.Genesis)
}

// NewKeyring builds the keyring behind eth_accounts, eth_sign and
// eth_sendTransaction.
func NewKeyring(cfg config.KeystoreConfig) (keyring.Keyring, error) {
	if cfg.Dir == "" {
		if cfg.DevKeys {
			return keyring.NewDevKeyring(), nil
		}
		return keyring.NewInMemory(), nil
	}

	ks := keyring.NewKeystore(cfg.Dir, cfg.Passphrase)
	if cfg.DevKeys {
		for name, hexKey := range keyring.DevKeys {
			key, err := keyring.ParseHexKey(hexKey)
			if err != nil {
				return nil, err
			}
			if _, err := ks.Import(key); err != nil {
				return nil, fmt.Errorf("failed to import dev key %s: %w", name, err)
			}
		}
	}
	return ks, nil
}

// NewApp opens the chain and applies the genesis on a fresh database.
func NewApp(logger log.Logger, db dbm.DB, cfg config.ChainConfig) (*chain.App, error) {
	app, err := chain.NewApp(logger, db, chain.DefaultRegistry(), chain.WithPoolCapacity(cfg.PoolCapacity))
	if err != nil {
		return nil, err
	}
	if app.BestHeader() != nil {
		return app, nil
	}

	genesis, err := LoadGenesis(cfg)
	if err != nil {
		return nil, err
	}
	if err := app.InitChain(genesis); err != nil {
		return nil, err
	}
	return app, nil
}

// Start runs block production and, when enabled, the JSON-RPC server until
// ctx is done or one of them fails.
func Start(ctx context.Context, home string, cfg config.Config, logger log.Logger) error {
	if err := cfg.ValidateBasic(); err != nil {
		return err
	}

	db, err := OpenDB(home, cfg.Chain)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err.Error())
		}
	}()

	app, err := NewApp(logger, db, cfg.Chain)
	if err != nil {
		return err
	}

	kr, err := NewKeyring(cfg.Keystore)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Run(ctx, cfg.Chain.BlockTime)
	})

	if cfg.JSONRPC.Enable {
		rpcLogger := logger.With("client", "json-rpc")
		apis := ethinkrpc.GetRPCAPIs(ctx, rpcLogger, app, kr, cfg.JSONRPC.API)
		if _, err := StartJSONRPC(ctx, g, cfg.JSONRPC, apis, logger); err != nil {
			return err
		}
	}

	return g.Wait()
}
