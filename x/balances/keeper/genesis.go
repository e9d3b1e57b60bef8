package keeper

import (
	"fmt"

	"github.com/ethink/ethink/x/balances/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// InitGenesis mints the genesis balances.
func (k Keeper) InitGenesis(ctx sdk.Context, gs types.GenesisState) {
	if err := gs.Validate(); err != nil {
		panic(fmt.Errorf("invalid balances genesis: %w", err))
	}
	for _, b := range gs.Balances {
		if err := k.Mint(ctx, b.Address, b.Amount); err != nil {
			panic(err)
		}
	}
}

// ExportGenesis returns the current balances.
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	return &types.GenesisState{Balances: k.GetAllBalances(ctx)}
}
