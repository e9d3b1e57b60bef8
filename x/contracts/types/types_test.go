package types_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	ethink "github.com/ethink/ethink/types"
	"github.com/ethink/ethink/x/contracts/types"
)

type nopProgram struct{}

func (nopProgram) Deploy(types.Env, []byte) (types.ReturnValue, error) {
	return types.ReturnValue{}, nil
}
func (nopProgram) Call(types.Env, []byte) (types.ReturnValue, error) { return types.ReturnValue{}, nil }

func TestGasMeter(t *testing.T) {
	meter := types.NewGasMeter(ethink.NewWeight(100, 10))

	require.NoError(t, meter.Charge(ethink.NewWeight(60, 5), "first"))
	require.NoError(t, meter.Charge(ethink.NewWeight(40, 5), "second"))
	require.Equal(t, ethink.NewWeight(100, 10), meter.Consumed())

	err := meter.Charge(ethink.NewWeight(0, 1), "proof")
	require.ErrorIs(t, err, types.ErrOutOfGas)
	require.Equal(t, meter.Limit(), meter.Consumed())

	unlimited := types.NewGasMeter(ethink.MaxWeight())
	require.NoError(t, unlimited.Charge(ethink.MaxWeight(), "everything"))
	require.NoError(t, unlimited.Charge(ethink.NewWeight(1, 1), "saturated"))
}

func TestGasMeterSingleLane(t *testing.T) {
	meter := types.NewGasMeter(ethink.NewWeight(1_000, 0))
	require.ErrorIs(t, meter.Charge(ethink.NewWeight(1, 1), "proof lane"), types.ErrOutOfGas)
}

func TestRegistry(t *testing.T) {
	registry := types.NewRegistry()
	blob := []byte("nop")

	hash, err := registry.Register("nop", blob, nopProgram{})
	require.NoError(t, err)
	require.Equal(t, crypto.Keccak256Hash(blob), hash)

	code, ok := registry.Get(hash)
	require.True(t, ok)
	require.Equal(t, "nop", code.Name)

	code, ok = registry.Lookup("nop")
	require.True(t, ok)
	require.Equal(t, hash, code.Hash)

	_, err = registry.Register("nop", []byte("other"), nopProgram{})
	require.ErrorIs(t, err, types.ErrDuplicateContract)
	require.Panics(t, func() { registry.MustRegister("nop", blob, nopProgram{}) })

	_, ok = registry.Lookup("missing")
	require.False(t, ok)
}

func TestContractAddress(t *testing.T) {
	deployer := common.HexToAddress("0xf24FF3a9CF04c71Dbc94D0b566f7A27B94566cac")
	codeHash := crypto.Keccak256Hash([]byte("code"))

	addr := types.ContractAddress(deployer, codeHash, nil)
	expected := common.BytesToAddress(crypto.Keccak256(deployer.Bytes(), codeHash.Bytes())[12:])
	require.Equal(t, expected, addr)

	require.NotEqual(t, addr, types.ContractAddress(deployer, codeHash, []byte{1}))
	require.Equal(t, addr, types.ContractAddress(deployer, codeHash, []byte{}))
}

func TestGenesisValidate(t *testing.T) {
	deployer := common.HexToAddress("0xf24FF3a9CF04c71Dbc94D0b566f7A27B94566cac")

	require.NoError(t, types.DefaultGenesisState().Validate())

	gs := types.GenesisState{Contracts: []types.GenesisContract{
		{Code: "flipper", Deployer: deployer},
		{Code: "flipper", Deployer: deployer, Salt: []byte{1}},
	}}
	require.NoError(t, gs.Validate())

	gs.Contracts[1].Salt = nil
	require.ErrorIs(t, gs.Validate(), types.ErrDuplicateContract)

	gs = types.GenesisState{Contracts: []types.GenesisContract{{Deployer: deployer}}}
	require.ErrorIs(t, gs.Validate(), types.ErrCodeNotFound)
}
