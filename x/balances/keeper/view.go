package keeper

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/ethink/ethink/x/balances/types"

	sdkmath "cosmossdk.io/math"
	"cosmossdk.io/store/prefix"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GetBalance returns the free balance of addr. Unknown accounts hold zero.
func (k Keeper) GetBalance(ctx sdk.Context, addr common.Address) sdkmath.Int {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.BalancePrefix)
	bz := store.Get(types.BalanceKey(addr))
	if bz == nil {
		return sdkmath.ZeroInt()
	}

	var amount sdkmath.Int
	if err := amount.Unmarshal(bz); err != nil {
		panic(err)
	}
	return amount
}

// IterateBalances iterates over all non-zero balances until cb returns true.
func (k Keeper) IterateBalances(ctx sdk.Context, cb func(addr common.Address, amount sdkmath.Int) (stop bool)) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.BalancePrefix)
	iterator := store.Iterator(nil, nil)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var amount sdkmath.Int
		if err := amount.Unmarshal(iterator.Value()); err != nil {
			panic(err)
		}
		if cb(common.BytesToAddress(iterator.Key()), amount) {
			break
		}
	}
}

// GetAllBalances returns every stored balance.
func (k Keeper) GetAllBalances(ctx sdk.Context) []types.Balance {
	var balances []types.Balance
	k.IterateBalances(ctx, func(addr common.Address, amount sdkmath.Int) bool {
		balances = append(balances, types.NewBalance(addr, amount))
		return false
	})
	return balances
}

// TotalIssuance returns the sum of all balances.
func (k Keeper) TotalIssuance(ctx sdk.Context) sdkmath.Int {
	bz := ctx.KVStore(k.storeKey).Get(types.TotalIssuanceKey)
	if bz == nil {
		return sdkmath.ZeroInt()
	}

	var total sdkmath.Int
	if err := total.Unmarshal(bz); err != nil {
		panic(err)
	}
	return total
}
