package keeper

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/ethink/ethink/x/balances/types"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"cosmossdk.io/store/prefix"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Transfer moves amount from one account to another. Balances are left
// unchanged on error.
func (k Keeper) Transfer(ctx sdk.Context, from, to common.Address, amount sdkmath.Int) error {
	if err := types.ValidateAmount(amount); err != nil {
		return err
	}

	fromBalance := k.GetBalance(ctx, from)
	if fromBalance.LT(amount) {
		return errorsmod.Wrapf(
			types.ErrInsufficientFunds,
			"%s is smaller than %s", fromBalance, amount,
		)
	}
	if from == to || amount.IsZero() {
		k.emitTransfer(ctx, from, to, amount)
		return nil
	}

	toBalance := k.GetBalance(ctx, to).Add(amount)
	if err := types.ValidateAmount(toBalance); err != nil {
		return err
	}

	k.setBalance(ctx, from, fromBalance.Sub(amount))
	k.setBalance(ctx, to, toBalance)
	k.emitTransfer(ctx, from, to, amount)
	return nil
}

// Mint credits amount to addr and increases the total issuance.
func (k Keeper) Mint(ctx sdk.Context, addr common.Address, amount sdkmath.Int) error {
	if err := types.ValidateAmount(amount); err != nil {
		return err
	}

	total := k.TotalIssuance(ctx).Add(amount)
	if err := types.ValidateAmount(total); err != nil {
		return errorsmod.Wrap(err, "total issuance")
	}

	k.setBalance(ctx, addr, k.GetBalance(ctx, addr).Add(amount))
	k.setTotalIssuance(ctx, total)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeMint,
			sdk.NewAttribute(types.AttributeKeyTo, addr.Hex()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

func (k Keeper) setBalance(ctx sdk.Context, addr common.Address, amount sdkmath.Int) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.BalancePrefix)
	if amount.IsZero() {
		store.Delete(types.BalanceKey(addr))
		return
	}

	bz, err := amount.Marshal()
	if err != nil {
		panic(err)
	}
	store.Set(types.BalanceKey(addr), bz)
}

func (k Keeper) setTotalIssuance(ctx sdk.Context, total sdkmath.Int) {
	bz, err := total.Marshal()
	if err != nil {
		panic(err)
	}
	ctx.KVStore(k.storeKey).Set(types.TotalIssuanceKey, bz)
}

func (k Keeper) emitTransfer(ctx sdk.Context, from, to common.Address, amount sdkmath.Int) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute(types.AttributeKeyFrom, from.Hex()),
			sdk.NewAttribute(types.AttributeKeyTo, to.Hex()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
}
