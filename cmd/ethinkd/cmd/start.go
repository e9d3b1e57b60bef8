package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ethink/ethink/server"
	"github.com/ethink/ethink/server/config"

	"cosmossdk.io/log"
)

// start command flags
const (
	FlagDBBackend        = "chain.db-backend"
	FlagBlockTime        = "chain.block-time"
	FlagGenesis          = "chain.genesis"
	FlagJSONRPCEnable    = "json-rpc.enable"
	FlagJSONRPCAddress   = "json-rpc.address"
	FlagJSONRPCAPI       = "json-rpc.api"
	FlagEnableUnsafeCORS = "json-rpc.enable-unsafe-cors"
	FlagDevKeys          = "keystore.dev-keys"
)

// StartCmd runs block production and the JSON-RPC server.
func StartCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Run the node",
		Long: `Run the node. Blocks are sealed on an interval, or as soon as a
transaction enters the pool when the block time is zero. Ethereum tooling
connects to the JSON-RPC server over HTTP or WebSocket (/ws).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.GetConfig(v)
			if err != nil {
				return err
			}

			logger, err := NewLogger(cfg.LogLevel)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Start(ctx, v.GetString(FlagHome), cfg, logger)
		},
	}

	defaults := config.DefaultConfig()
	cmd.Flags().String(FlagDBBackend, defaults.Chain.DBBackend, "database backend (goleveldb|memdb)")
	cmd.Flags().Duration(FlagBlockTime, defaults.Chain.BlockTime, "block sealing interval; 0 seals on every pooled transaction")
	cmd.Flags().String(FlagGenesis, defaults.Chain.Genesis, "YAML genesis file; empty uses the development genesis")
	cmd.Flags().Bool(FlagJSONRPCEnable, defaults.JSONRPC.Enable, "enable the JSON-RPC server")
	cmd.Flags().String(FlagJSONRPCAddress, defaults.JSONRPC.Address, "the JSON-RPC server address to listen on")
	cmd.Flags().StringSlice(FlagJSONRPCAPI, defaults.JSONRPC.API, "defines a list of JSON-RPC namespaces that should be enabled")
	cmd.Flags().Bool(FlagEnableUnsafeCORS, defaults.JSONRPC.EnableUnsafeCORS, "enable unsafe CORS")
	cmd.Flags().Bool(FlagDevKeys, defaults.Keystore.DevKeys, "load the well-known development keys")

	return cmd
}

// NewLogger returns the node logger filtered by level.
func NewLogger(level string) (log.Logger, error) {
	filter, err := log.ParseLogLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewLogger(os.Stderr, log.FilterOption(filter)), nil
}
