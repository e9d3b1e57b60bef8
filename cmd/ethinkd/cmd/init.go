package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ethink/ethink/chain"
	"github.com/ethink/ethink/server/config"
)

const (
	// FlagOverwrite allows init to replace existing files.
	FlagOverwrite = "overwrite"

	genesisFile = "genesis.yaml"
	keystoreDir = "keystore"
)

// InitCmd returns a command that writes the default config and the
// development genesis into the node home.
func InitCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the node's configuration and genesis files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home := v.GetString(FlagHome)
			overwrite, err := cmd.Flags().GetBool(FlagOverwrite)
			if err != nil {
				return err
			}

			configFile := ConfigPath(home)
			genesisPath := filepath.Join(filepath.Dir(configFile), genesisFile)
			if !overwrite {
				for _, path := range []string{configFile, genesisPath} {
					if _, err := os.Stat(path); err == nil {
						return fmt.Errorf("%s already exists; use --%s to replace it", path, FlagOverwrite)
					}
				}
			}

			genesis := chain.DefaultGenesis()
			genesis.Time = uint64(time.Now().Unix())
			bz, err := genesis.ToYAML()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(genesisPath), 0o750); err != nil {
				return err
			}
			if err := os.WriteFile(genesisPath, bz, 0o600); err != nil {
				return err
			}

			cfg := config.DefaultConfig()
			cfg.LogLevel = v.GetString(FlagLogLevel)
			cfg.Chain.Genesis = genesisPath
			cfg.Keystore.Dir = keystoreDir
			if err := config.WriteConfigFile(configFile, cfg); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "initialized node home %s (chain id %d)\n", home, genesis.Ethink.Params.ChainID)
			return nil
		},
	}

	cmd.Flags().Bool(FlagOverwrite, false, "overwrite the config and genesis files")
	return cmd
}
