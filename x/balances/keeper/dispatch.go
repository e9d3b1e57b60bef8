package keeper

import (
	ethinktypes "github.com/ethink/ethink/x/ethink/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// HandleTransfer executes a MsgTransfer on behalf of a signed origin.
func (k Keeper) HandleTransfer(ctx sdk.Context, origin ethinktypes.Origin, msg ethinktypes.MsgTransfer) (ethinktypes.PostDispatchInfo, error) {
	from, err := ethinktypes.EnsureSigned(origin)
	if err != nil {
		return ethinktypes.PostDispatchInfo{}, err
	}
	return ethinktypes.PostDispatchInfo{}, k.Transfer(ctx, from, msg.Dest, msg.Value)
}
