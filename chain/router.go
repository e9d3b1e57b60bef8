package chain

import (
	balanceskeeper "github.com/ethink/ethink/x/balances/keeper"
	contractskeeper "github.com/ethink/ethink/x/contracts/keeper"
	ethinkkeeper "github.com/ethink/ethink/x/ethink/keeper"
	ethinktypes "github.com/ethink/ethink/x/ethink/types"

	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"
	errortypes "github.com/cosmos/cosmos-sdk/types/errors"
)

var _ ethinktypes.Dispatcher = Router{}

// Router dispatches calls to the module that handles them.
type Router struct {
	ethink    *ethinkkeeper.Keeper
	balances  balanceskeeper.Keeper
	contracts contractskeeper.Keeper
}

// NewRouter returns a router over the given keepers.
func NewRouter(
	ethink *ethinkkeeper.Keeper,
	balances balanceskeeper.Keeper,
	contracts contractskeeper.Keeper,
) Router {
	return Router{ethink: ethink, balances: balances, contracts: contracts}
}

// Dispatch executes call under origin. MsgTransact is only accepted under
// an Ethereum-transaction origin.
func (r Router) Dispatch(ctx sdk.Context, origin ethinktypes.Origin, call ethinktypes.Call) (ethinktypes.PostDispatchInfo, error) {
	switch msg := call.(type) {
	case ethinktypes.MsgTransact:
		return r.ethink.Transact(ctx, origin, msg.Tx)
	case *ethinktypes.MsgTransact:
		return r.ethink.Transact(ctx, origin, msg.Tx)
	case ethinktypes.MsgTransfer:
		return r.balances.HandleTransfer(ctx, origin, msg)
	case ethinktypes.MsgContractCall:
		return r.contracts.HandleCall(ctx, origin, msg)
	case ethinktypes.MsgInstantiate:
		return r.contracts.HandleInstantiate(ctx, origin, msg)
	default:
		return ethinktypes.PostDispatchInfo{}, errorsmod.Wrapf(errortypes.ErrUnknownRequest, "unrecognized call type: %T", call)
	}
}
