package chain

import (
	"os"

	"sigs.k8s.io/yaml"

	"github.com/ethink/ethink/crypto/keyring"
	balancestypes "github.com/ethink/ethink/x/balances/types"
	"github.com/ethink/ethink/x/contracts/programs/flipper"
	contractstypes "github.com/ethink/ethink/x/contracts/types"
	ethinktypes "github.com/ethink/ethink/x/ethink/types"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
)

// DevAccountBalance is what every development account is funded with.
var DevAccountBalance = sdkmath.NewIntWithDecimal(1, 24)

// Genesis is the initial state of the chain.
type Genesis struct {
	// Time is the unix timestamp of the genesis block.
	Time      uint64                      `json:"genesis_time" yaml:"genesis_time"`
	Ethink    ethinktypes.GenesisState    `json:"ethink" yaml:"ethink"`
	Balances  balancestypes.GenesisState  `json:"balances" yaml:"balances"`
	Contracts contractstypes.GenesisState `json:"contracts" yaml:"contracts"`
}

// DefaultGenesis funds the development accounts and deploys a flipper
// owned by the first of them.
func DefaultGenesis() Genesis {
	accounts := keyring.NewDevKeyring().Accounts()

	balances := make([]balancestypes.Balance, 0, len(accounts))
	for _, addr := range accounts {
		balances = append(balances, balancestypes.NewBalance(addr, DevAccountBalance))
	}

	return Genesis{
		Ethink:   *ethinktypes.DefaultGenesisState(),
		Balances: balancestypes.GenesisState{Balances: balances},
		Contracts: contractstypes.GenesisState{
			Contracts: []contractstypes.GenesisContract{
				{
					Code:     flipper.Name,
					Deployer: accounts[0],
					Data:     append(append([]byte{}, flipper.SelectorNew...), contractstypes.EncodeBool(false)...),
				},
			},
		},
	}
}

// Validate performs basic validation of every module's genesis state.
func (g Genesis) Validate() error {
	if err := g.Ethink.Validate(); err != nil {
		return errorsmod.Wrap(ErrInvalidGenesis, err.Error())
	}
	if err := g.Balances.Validate(); err != nil {
		return errorsmod.Wrap(ErrInvalidGenesis, err.Error())
	}
	if err := g.Contracts.Validate(); err != nil {
		return errorsmod.Wrap(ErrInvalidGenesis, err.Error())
	}
	return nil
}

// ToYAML renders the genesis as YAML.
func (g Genesis) ToYAML() ([]byte, error) {
	return yaml.Marshal(g)
}

// ParseGenesis parses and validates a YAML genesis.
func ParseGenesis(bz []byte) (Genesis, error) {
	var g Genesis
	if err := yaml.UnmarshalStrict(bz, &g); err != nil {
		return Genesis{}, errorsmod.Wrap(ErrInvalidGenesis, err.Error())
	}
	if err := g.Validate(); err != nil {
		return Genesis{}, err
	}
	return g, nil
}

// LoadGenesis reads a YAML genesis file.
func LoadGenesis(path string) (Genesis, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}
	return ParseGenesis(bz)
}

// DefaultRegistry returns the registry of programs the node can run.
func DefaultRegistry() *contractstypes.Registry {
	registry := contractstypes.NewRegistry()
	if err := flipper.Register(registry); err != nil {
		panic(err)
	}
	return registry
}
