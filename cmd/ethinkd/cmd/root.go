package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ethink/ethink/server/config"

	"github.com/cosmos/cosmos-sdk/version"
)

const (
	// FlagHome is the node home directory flag.
	FlagHome = "home"
	// FlagLogLevel is the log level flag.
	FlagLogLevel = "log_level"

	envPrefix = "ETHINK"
)

// DefaultNodeHome is the default home directory of the node.
var DefaultNodeHome string

func init() {
	userHomeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	DefaultNodeHome = filepath.Join(userHomeDir, ".ethink")
}

// NewRootCmd creates a new root command for ethinkd. It is called once in the
// main function.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "ethinkd",
		Short: "Ethereum JSON-RPC node for a weight-metered contract chain",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// set the default command outputs
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			return interceptConfigs(v, cmd)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String(FlagHome, DefaultNodeHome, "directory for config and data")
	rootCmd.PersistentFlags().String(FlagLogLevel, config.DefaultLogLevel, "the logging level (debug|info|warn|error)")

	rootCmd.AddCommand(
		InitCmd(v),
		StartCmd(v),
		KeyCommands(v),
		version.NewVersionCommand(),
	)

	return rootCmd
}

// ConfigPath returns the config file path under home.
func ConfigPath(home string) string {
	return filepath.Join(home, "config", "config.toml")
}

// interceptConfigs binds the command flags and the environment to v and
// reads the config file from the node home when there is one. Flags take
// precedence over the environment, which takes precedence over the file.
func interceptConfigs(v *viper.Viper, cmd *cobra.Command) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	config.SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	configFile := ConfigPath(v.GetString(FlagHome))
	if _, err := os.Stat(configFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	v.SetConfigFile(configFile)
	return v.ReadInConfig()
}
