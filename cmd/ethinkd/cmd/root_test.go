package cmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ethink/ethink/chain"
	"github.com/ethink/ethink/cmd/ethinkd/cmd"
	"github.com/ethink/ethink/crypto/keyring"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := new(bytes.Buffer)
	rootCmd := cmd.NewRootCmd()
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInit(t *testing.T) {
	home := t.TempDir()

	out, err := execute(t, "init", "--home", home)
	require.NoError(t, err)
	require.Contains(t, out, "chain id 42")

	genesis, err := chain.LoadGenesis(filepath.Join(home, "config", "genesis.yaml"))
	require.NoError(t, err)
	require.NotZero(t, genesis.Time)

	_, err = os.Stat(cmd.ConfigPath(home))
	require.NoError(t, err)

	_, err = execute(t, "init", "--home", home)
	require.ErrorContains(t, err, "already exists")

	_, err = execute(t, "init", "--home", home, "--overwrite")
	require.NoError(t, err)
}

func TestKeys(t *testing.T) {
	home := t.TempDir()

	_, err := execute(t, "keys", "list", "--home", home)
	require.ErrorContains(t, err, "no keystore directory configured")

	_, err = execute(t, "init", "--home", home)
	require.NoError(t, err)

	out, err := execute(t, "keys", "import", keyring.TestKey, "--home", home)
	require.NoError(t, err)
	require.Equal(t, "0x98fa2838ee6471ae87135880f870a785318e6787", strings.ToLower(strings.TrimSpace(out)))

	out, err = execute(t, "keys", "add", "--home", home)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	added := lines[0]
	require.Len(t, strings.Fields(lines[len(lines)-1]), 24)

	out, err = execute(t, "keys", "add", "--home", home,
		"--mnemonic", "test test test test test test test test test test test junk")
	require.NoError(t, err)
	require.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", strings.TrimSpace(out))

	_, err = execute(t, "keys", "add", "--home", home, "--mnemonic", "not a mnemonic")
	require.ErrorIs(t, err, keyring.ErrInvalidMnemonic)

	out, err = execute(t, "keys", "list", "--home", home)
	require.NoError(t, err)
	require.Contains(t, strings.ToLower(out), "0x98fa2838ee6471ae87135880f870a785318e6787")
	require.Contains(t, out, added)
	require.Contains(t, out, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

	_, err = execute(t, "keys", "import", "0xnothex", "--home", home)
	require.Error(t, err)
}

func TestStartRejectsInvalidConfig(t *testing.T) {
	_, err := execute(t, "start", "--home", t.TempDir(), "--chain.db-backend", "rocksdb")
	require.ErrorContains(t, err, "unsupported db backend")
}
