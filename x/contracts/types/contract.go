package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	errorsmod "cosmossdk.io/errors"
)

// ContractInfo is the stored record of an instantiated contract.
type ContractInfo struct {
	CodeHash common.Hash
	// StorageItems and StorageBytes measure the contract's storage footprint.
	StorageItems uint64
	StorageBytes uint64
	// StorageDeposit is the deposit currently held for that footprint.
	StorageDeposit *big.Int
}

// GenesisContract is a contract instantiated at genesis.
type GenesisContract struct {
	// Code is the name of a registered program.
	Code     string         `json:"code" yaml:"code"`
	Deployer common.Address `json:"deployer" yaml:"deployer"`
	Salt     hexutil.Bytes  `json:"salt" yaml:"salt"`
	// Data is the constructor input (selector and SCALE arguments).
	Data hexutil.Bytes `json:"data" yaml:"data"`
}

// GenesisState defines the contracts module's genesis state.
type GenesisState struct {
	Contracts []GenesisContract `json:"contracts" yaml:"contracts"`
}

// DefaultGenesisState sets default contracts genesis state.
func DefaultGenesisState() *GenesisState {
	return &GenesisState{}
}

// Validate performs basic genesis state validation.
func (gs GenesisState) Validate() error {
	seen := make(map[string]bool, len(gs.Contracts))
	for _, c := range gs.Contracts {
		if c.Code == "" {
			return errorsmod.Wrap(ErrCodeNotFound, "genesis contract without code name")
		}
		key := c.Deployer.Hex() + c.Code + c.Salt.String()
		if seen[key] {
			return errorsmod.Wrapf(ErrDuplicateContract, "code %s deployed twice by %s with salt %s", c.Code, c.Deployer, c.Salt)
		}
		seen[key] = true
	}
	return nil
}
