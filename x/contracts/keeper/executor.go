package keeper

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	ethink "github.com/ethink/ethink/types"
	ethinktypes "github.com/ethink/ethink/x/ethink/types"

	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

var _ ethinktypes.ContractExecutor = Keeper{}

// IsContract reports whether a contract is deployed at addr.
func (k Keeper) IsContract(ctx sdk.Context, addr common.Address) bool {
	_, found := k.GetContractInfo(ctx, addr)
	return found
}

// BuildCall routes to a contract call when code is deployed at to and to a
// plain balance transfer otherwise. Contract calls carry the gas limit as a
// weight and no storage deposit limit.
func (k Keeper) BuildCall(
	ctx sdk.Context,
	to common.Address,
	value sdkmath.Int,
	data []byte,
	gasLimit *uint256.Int,
) (ethinktypes.Call, error) {
	if !k.IsContract(ctx, to) {
		return ethinktypes.MsgTransfer{Dest: to, Value: value}, nil
	}
	return ethinktypes.MsgContractCall{
		Dest:     to,
		Value:    value,
		GasLimit: ethink.GasToWeight(gasLimit),
		Data:     data,
	}, nil
}

// BareCall is Call without a storage deposit limit.
func (k Keeper) BareCall(
	ctx sdk.Context,
	from, to common.Address,
	value sdkmath.Int,
	gasLimit ethink.Weight,
	data []byte,
) ethinktypes.ExecResult {
	return k.Call(ctx, from, to, value, gasLimit, nil, data)
}
