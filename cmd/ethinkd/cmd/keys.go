package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ethink/ethink/crypto/keyring"
	"github.com/ethink/ethink/server/config"
)

// keys command flags
const (
	// FlagPassphrase overrides the configured keystore passphrase.
	FlagPassphrase = "keystore.passphrase"
	FlagMnemonic   = "mnemonic"
	FlagHDPath     = "hd-path"
)

// KeyCommands registers a sub-tree of commands to interact with the node's
// encrypted keystore.
func KeyCommands(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage the keys eth_sendTransaction and eth_sign sign with",
		Long: `Keys are stored encrypted in the keystore directory configured under
[keystore] in config.toml. Every key shares the configured passphrase.`,
	}

	cmd.AddCommand(
		addKeyCmd(v),
		importKeyCmd(v),
		listKeysCmd(v),
	)
	cmd.PersistentFlags().String(FlagPassphrase, config.DefaultKeystorePassphrase, "keystore passphrase")
	return cmd
}

func openKeystore(v *viper.Viper) (*keyring.Keystore, error) {
	cfg, err := config.GetConfig(v)
	if err != nil {
		return nil, err
	}
	if cfg.Keystore.Dir == "" {
		return nil, errors.New("no keystore directory configured; run init or set keystore.dir")
	}
	return keyring.NewKeystore(cfg.Keystore.Dir, cfg.Keystore.Passphrase), nil
}

func addKeyCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Generate a new key from a BIP-39 mnemonic, or recover one",
		Long: `Derive a key from a BIP-39 mnemonic at the given BIP-44 path and store it.
Without --mnemonic a new 24 word mnemonic is generated and printed once.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ks, err := openKeystore(v)
			if err != nil {
				return err
			}

			mnemonic, err := cmd.Flags().GetString(FlagMnemonic)
			if err != nil {
				return err
			}
			hdPath, err := cmd.Flags().GetString(FlagHDPath)
			if err != nil {
				return err
			}
			generated := mnemonic == ""
			if generated {
				if mnemonic, err = keyring.NewMnemonic(); err != nil {
					return err
				}
			}

			key, err := keyring.DeriveKey(mnemonic, "", hdPath)
			if err != nil {
				return err
			}
			addr, err := ks.Import(key)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), addr.Hex())
			if generated {
				fmt.Fprintln(cmd.ErrOrStderr(), "\n**Important** write this mnemonic phrase in a safe place.")
				fmt.Fprintln(cmd.ErrOrStderr(), "It is the only way to recover your account if you ever forget your password.")
				fmt.Fprintln(cmd.ErrOrStderr(), "\n"+mnemonic)
			}
			return nil
		},
	}

	cmd.Flags().String(FlagMnemonic, "", "recover the key from this mnemonic instead of generating one")
	cmd.Flags().String(FlagHDPath, keyring.DefaultHDPath, "BIP-44 derivation path")
	return cmd
}

func importKeyCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "import <hex private key>",
		Short: "Import a hex encoded secp256k1 private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := openKeystore(v)
			if err != nil {
				return err
			}
			key, err := keyring.ParseHexKey(args[0])
			if err != nil {
				return err
			}
			addr, err := ks.Import(key)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), addr.Hex())
			return nil
		},
	}
}

func listKeysCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the accounts in the keystore",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ks, err := openKeystore(v)
			if err != nil {
				return err
			}
			for _, addr := range ks.Accounts() {
				fmt.Fprintln(cmd.OutOrStdout(), addr.Hex())
			}
			return nil
		},
	}
}
