package keeper

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/ethink/ethink/x/contracts/types"
	ethinktypes "github.com/ethink/ethink/x/ethink/types"

	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// HandleCall dispatches a MsgContractCall under a signed origin.
func (k Keeper) HandleCall(ctx sdk.Context, origin ethinktypes.Origin, msg ethinktypes.MsgContractCall) (ethinktypes.PostDispatchInfo, error) {
	caller, err := ethinktypes.EnsureSigned(origin)
	if err != nil {
		return ethinktypes.PostDispatchInfo{}, err
	}

	res := k.Call(ctx, caller, msg.Dest, msg.Value, msg.GasLimit, msg.StorageDepositLimit, msg.Data)
	return postDispatch(res), resultError(res)
}

// HandleInstantiate dispatches a MsgInstantiate under a signed origin.
func (k Keeper) HandleInstantiate(ctx sdk.Context, origin ethinktypes.Origin, msg ethinktypes.MsgInstantiate) (ethinktypes.PostDispatchInfo, error) {
	deployer, err := ethinktypes.EnsureSigned(origin)
	if err != nil {
		return ethinktypes.PostDispatchInfo{}, err
	}

	addr, res := k.Instantiate(ctx, deployer, msg.Value, msg.GasLimit, msg.StorageDepositLimit, msg.CodeHash, msg.Data, msg.Salt)
	if err := resultError(res); err != nil {
		return postDispatch(res), errorsmod.Wrapf(err, "instantiate %s", addr)
	}
	k.Logger(ctx).Debug("contract instantiated", "address", addr.Hex(), "code_hash", msg.CodeHash.Hex())
	return postDispatch(res), nil
}

func postDispatch(res ethinktypes.ExecResult) ethinktypes.PostDispatchInfo {
	consumed := res.GasConsumed
	return ethinktypes.PostDispatchInfo{ActualWeight: &consumed}
}

func resultError(res ethinktypes.ExecResult) error {
	switch {
	case res.Err != nil:
		return res.Err
	case res.Reverted():
		return errorsmod.Wrap(types.ErrContractReverted, fmt.Sprintf("data %s", hexutil.Encode(res.Data)))
	default:
		return nil
	}
}
