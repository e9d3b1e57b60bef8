package keeper

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	ethinktypes "github.com/ethink/ethink/types"
	"github.com/ethink/ethink/x/ethink/types"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// DryRun executes a bare call against a branch of ctx that is never
// written back. A nil or zero gas limit runs with the maximum weight. A
// plain account destination runs as a transfer, which does not draw on
// the gas limit, so the limit is ignored there as well.
func (k Keeper) DryRun(
	ctx sdk.Context,
	from, to common.Address,
	data []byte,
	value, gasLimit *big.Int,
) (types.ExecResult, error) {
	amount, weight, err := dryRunArgs(value, gasLimit)
	if err != nil {
		return types.ExecResult{}, err
	}
	if !k.executor.IsContract(ctx, to) {
		weight = ethinktypes.MaxWeight()
	}
	return k.dryRun(ctx, from, to, amount, weight, data)
}

func (k Keeper) dryRun(
	ctx sdk.Context,
	from, to common.Address,
	amount sdkmath.Int,
	weight ethinktypes.Weight,
	data []byte,
) (types.ExecResult, error) {
	cacheCtx, _ := ctx.CacheContext()
	res := k.executor.BareCall(cacheCtx, from, to, amount, weight, data)

	switch {
	case res.Err != nil:
		return res, errorsmod.Wrap(types.ErrExecution, res.Err.Error())
	case res.Reverted():
		return res, types.NewExecErrorWithReason(res.Data)
	}
	return res, nil
}

func dryRunArgs(value, gasLimit *big.Int) (sdkmath.Int, ethinktypes.Weight, error) {
	amount, err := ToBalance(value)
	if err != nil {
		return sdkmath.Int{}, ethinktypes.Weight{}, status.Error(codes.InvalidArgument, err.Error())
	}
	gas, err := toGas(gasLimit)
	if err != nil {
		return sdkmath.Int{}, ethinktypes.Weight{}, status.Error(codes.InvalidArgument, err.Error())
	}
	return amount, ethinktypes.GasToWeightOrMax(gas), nil
}

// Call simulates a call and returns the engine's encoded return value. No
// nonce is consumed and no event is emitted.
func (k Keeper) Call(
	ctx sdk.Context,
	from, to common.Address,
	data []byte,
	value, gasLimit *big.Int,
) ([]byte, error) {
	res, err := k.DryRun(ctx, from, to, data, value, gasLimit)
	if err != nil {
		return nil, err
	}
	return res.Output, nil
}

// EstimateGas reports the weight consumed by a simulated call, packed into
// the gas unit. Calls to plain accounts cost the configured transfer gas.
func (k Keeper) EstimateGas(
	ctx sdk.Context,
	from, to common.Address,
	data []byte,
	value, gasLimit *big.Int,
) (*uint256.Int, error) {
	amount, weight, err := dryRunArgs(value, gasLimit)
	if err != nil {
		return nil, err
	}
	if !k.executor.IsContract(ctx, to) {
		return uint256.NewInt(k.GetParams(ctx).TransferGas), nil
	}

	res, err := k.dryRun(ctx, from, to, amount, weight, data)
	if err != nil {
		return nil, err
	}
	return ethinktypes.WeightToGas(res.GasConsumed), nil
}
