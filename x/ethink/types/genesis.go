package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// GenesisNonce is the nonce of a single account at genesis.
type GenesisNonce struct {
	Address common.Address `json:"address" yaml:"address"`
	Nonce   uint64         `json:"nonce" yaml:"nonce"`
}

// GenesisState defines the ethink module's genesis state.
type GenesisState struct {
	Params Params         `json:"params" yaml:"params"`
	Nonces []GenesisNonce `json:"nonces,omitempty" yaml:"nonces,omitempty"`
}

// DefaultGenesisState sets default ethink genesis state.
func DefaultGenesisState() *GenesisState {
	return &GenesisState{
		Params: DefaultParams(),
	}
}

// NewGenesisState creates a new genesis state.
func NewGenesisState(params Params, nonces []GenesisNonce) *GenesisState {
	return &GenesisState{
		Params: params,
		Nonces: nonces,
	}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	seen := make(map[common.Address]bool)
	for _, acc := range gs.Nonces {
		if seen[acc.Address] {
			return fmt.Errorf("duplicated nonce for account %s", acc.Address.Hex())
		}
		seen[acc.Address] = true
	}
	return gs.Params.Validate()
}
