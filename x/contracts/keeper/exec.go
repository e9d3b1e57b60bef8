package keeper

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/ethink/ethink/store/snapshotkv"
	ethink "github.com/ethink/ethink/types"
	"github.com/ethink/ethink/x/contracts/types"
	ethinktypes "github.com/ethink/ethink/x/ethink/types"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"cosmossdk.io/store/prefix"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// entryPoint selects the program function to run.
type entryPoint func(p types.Program, env types.Env, input []byte) (types.ReturnValue, error)

func deployEntry(p types.Program, env types.Env, input []byte) (types.ReturnValue, error) {
	return p.Deploy(env, input)
}

func callEntry(p types.Program, env types.Env, input []byte) (types.ReturnValue, error) {
	return p.Call(env, input)
}

// invocation describes one top-level execution.
type invocation struct {
	origin       common.Address
	dest         common.Address
	value        sdkmath.Int
	depositLimit *sdkmath.Int
	input        []byte
}

// Call executes the contract at dest, or transfers value if dest holds no
// contract. State changes are written to ctx only if the execution neither
// trapped nor reverted. A nil depositLimit leaves the storage deposit
// unbounded.
func (k Keeper) Call(
	ctx sdk.Context,
	origin, dest common.Address,
	value sdkmath.Int,
	gasLimit ethink.Weight,
	depositLimit *sdkmath.Int,
	input []byte,
) ethinktypes.ExecResult {
	meter := types.NewGasMeter(gasLimit)
	inv := invocation{origin: origin, dest: dest, value: value, depositLimit: depositLimit, input: input}

	if err := k.chargeBase(meter, input); err != nil {
		return failed(meter, err)
	}

	cacheCtx, writeCache := ctx.CacheContext()
	if err := k.transferValue(cacheCtx, origin, dest, value); err != nil {
		return failed(meter, err)
	}

	info, found := k.GetContractInfo(cacheCtx, dest)
	if !found {
		writeCache()
		return finished(meter, types.ReturnValue{}, sdkmath.ZeroInt())
	}

	res := k.execute(cacheCtx, meter, inv, info, callEntry)
	if res.Err == nil && !res.Reverted() {
		cacheCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeCalled,
				sdk.NewAttribute(types.AttributeKeyCaller, origin.Hex()),
				sdk.NewAttribute(types.AttributeKeyContract, dest.Hex()),
			),
		)
		writeCache()
	}
	return res
}

// Instantiate deploys codeHash at the address derived from origin and salt
// and runs the constructor selected by input.
func (k Keeper) Instantiate(
	ctx sdk.Context,
	origin common.Address,
	value sdkmath.Int,
	gasLimit ethink.Weight,
	depositLimit *sdkmath.Int,
	codeHash common.Hash,
	input, salt []byte,
) (common.Address, ethinktypes.ExecResult) {
	meter := types.NewGasMeter(gasLimit)
	addr := types.ContractAddress(origin, codeHash, salt)
	inv := invocation{origin: origin, dest: addr, value: value, depositLimit: depositLimit, input: input}

	if err := k.chargeBase(meter, input); err != nil {
		return addr, failed(meter, err)
	}
	if !k.HasCode(ctx, codeHash) {
		return addr, failed(meter, errorsmod.Wrapf(types.ErrCodeNotFound, "code hash %s", codeHash))
	}
	if k.IsContract(ctx, addr) {
		return addr, failed(meter, errorsmod.Wrapf(types.ErrDuplicateContract, "address %s", addr))
	}

	cacheCtx, writeCache := ctx.CacheContext()
	info := types.ContractInfo{CodeHash: codeHash, StorageDeposit: new(big.Int)}
	k.SetContractInfo(cacheCtx, addr, info)

	if err := k.transferValue(cacheCtx, origin, addr, value); err != nil {
		return addr, failed(meter, err)
	}

	res := k.execute(cacheCtx, meter, inv, info, deployEntry)
	if res.Err == nil && !res.Reverted() {
		cacheCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeInstantiated,
				sdk.NewAttribute(types.AttributeKeyDeployer, origin.Hex()),
				sdk.NewAttribute(types.AttributeKeyContract, addr.Hex()),
				sdk.NewAttribute(types.AttributeKeyCodeHash, codeHash.Hex()),
			),
		)
		writeCache()
	}
	return addr, res
}

// execute runs entry inside a fresh call frame over the contract's storage.
// The frame and the storage deposit are only settled on a clean exit.
func (k Keeper) execute(
	ctx sdk.Context,
	meter *types.GasMeter,
	inv invocation,
	info types.ContractInfo,
	entry entryPoint,
) ethinktypes.ExecResult {
	code, ok := k.registry.Get(info.CodeHash)
	if !ok {
		return failed(meter, errorsmod.Wrapf(types.ErrCodeNotFound, "code hash %s", info.CodeHash))
	}

	storage := prefix.NewStore(ctx.KVStore(k.storeKey), types.ContractStoragePrefix(inv.dest))
	frames := snapshotkv.Wrap(storage)
	snapshot, err := frames.Snapshot()
	if err != nil {
		return failed(meter, err)
	}

	env := &execEnv{
		caller:   inv.origin,
		address:  inv.dest,
		value:    inv.value,
		meter:    meter,
		schedule: k.schedule,
		frames:   frames,
	}

	ret, err := entry(code.Program, env, inv.input)
	if err != nil {
		frames.RevertToSnapshot(snapshot)
		return failed(meter, err)
	}
	if ret.Reverted() {
		frames.RevertToSnapshot(snapshot)
		return finished(meter, ret, sdkmath.ZeroInt())
	}

	deposit := env.deposit()
	if err := k.settleDeposit(ctx, inv, deposit); err != nil {
		frames.RevertToSnapshot(snapshot)
		return failed(meter, err)
	}
	frames.Commit()

	info.StorageItems = applyDelta(info.StorageItems, env.itemsDelta)
	info.StorageBytes = applyDelta(info.StorageBytes, env.bytesDelta)
	held := sdkmath.ZeroInt()
	if info.StorageDeposit != nil {
		held = sdkmath.NewIntFromBigInt(info.StorageDeposit)
	}
	info.StorageDeposit = held.Add(deposit).BigInt()
	k.SetContractInfo(ctx, inv.dest, info)

	return finished(meter, ret, deposit)
}

// settleDeposit moves the storage deposit between the origin and the
// contract account.
func (k Keeper) settleDeposit(ctx sdk.Context, inv invocation, deposit sdkmath.Int) error {
	switch {
	case deposit.IsPositive():
		if inv.depositLimit != nil && deposit.GT(*inv.depositLimit) {
			return errorsmod.Wrapf(types.ErrStorageDepositLimitExhausted, "deposit %s, limit %s", deposit, inv.depositLimit)
		}
		if err := k.bank.Transfer(ctx, inv.origin, inv.dest, deposit); err != nil {
			return errorsmod.Wrap(types.ErrStorageDepositNotEnoughFunds, err.Error())
		}
	case deposit.IsNegative():
		refund := deposit.Neg()
		if balance := k.bank.GetBalance(ctx, inv.dest); balance.LT(refund) {
			refund = balance
		}
		if err := k.bank.Transfer(ctx, inv.dest, inv.origin, refund); err != nil {
			return err
		}
	}
	return nil
}

func (k Keeper) chargeBase(meter *types.GasMeter, input []byte) error {
	cost := k.schedule.CallBase
	cost.RefTime += k.schedule.InputByte.RefTime * uint64(len(input))
	cost.ProofSize += k.schedule.InputByte.ProofSize * uint64(len(input))
	return meter.Charge(cost, "call base")
}

func (k Keeper) transferValue(ctx sdk.Context, from, to common.Address, value sdkmath.Int) error {
	if value.IsNil() || value.IsZero() {
		return nil
	}
	if err := k.bank.Transfer(ctx, from, to, value); err != nil {
		return errorsmod.Wrap(types.ErrTransferFailed, err.Error())
	}
	return nil
}

func failed(meter *types.GasMeter, err error) ethinktypes.ExecResult {
	return ethinktypes.ExecResult{
		GasConsumed:    meter.Consumed(),
		GasRequired:    meter.Consumed(),
		StorageDeposit: sdkmath.ZeroInt(),
		Err:            err,
	}
}

func finished(meter *types.GasMeter, ret types.ReturnValue, deposit sdkmath.Int) ethinktypes.ExecResult {
	return ethinktypes.ExecResult{
		Flags:          ret.Flags,
		Data:           ret.Data,
		Output:         types.EncodeExecReturnValue(ret.Flags, ret.Data),
		GasConsumed:    meter.Consumed(),
		GasRequired:    meter.Consumed(),
		StorageDeposit: deposit,
	}
}

func applyDelta(v uint64, delta int64) uint64 {
	if delta < 0 {
		if d := uint64(-delta); d < v {
			return v - d
		}
		return 0
	}
	return v + uint64(delta)
}
