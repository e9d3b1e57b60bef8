package keeper

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ethink/ethink/x/ethink/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// InitGenesis initializes genesis state based on exported genesis
func (k Keeper) InitGenesis(ctx sdk.Context, data types.GenesisState) {
	if err := k.SetParams(ctx, data.Params); err != nil {
		panic(fmt.Errorf("error setting params %s", err))
	}
	for _, acc := range data.Nonces {
		k.SetNonce(ctx, acc.Address, acc.Nonce)
	}
}

// ExportGenesis exports genesis state of the ethink module
func (k Keeper) ExportGenesis(ctx sdk.Context) *types.GenesisState {
	var nonces []types.GenesisNonce
	k.IterateNonces(ctx, func(addr common.Address, nonce uint64) bool {
		nonces = append(nonces, types.GenesisNonce{Address: addr, Nonce: nonce})
		return false
	})
	return &types.GenesisState{
		Params: k.GetParams(ctx),
		Nonces: nonces,
	}
}
