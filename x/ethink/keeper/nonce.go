package keeper

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/ethink/ethink/x/ethink/types"

	"cosmossdk.io/store/prefix"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GetNonce returns the next nonce expected from addr.
func (k Keeper) GetNonce(ctx sdk.Context, addr common.Address) uint64 {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyPrefixNonce)
	bz := store.Get(types.NonceKey(addr))
	if bz == nil {
		return 0
	}
	return sdk.BigEndianToUint64(bz)
}

// SetNonce overwrites the nonce of addr.
func (k Keeper) SetNonce(ctx sdk.Context, addr common.Address, nonce uint64) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyPrefixNonce)
	store.Set(types.NonceKey(addr), sdk.Uint64ToBigEndian(nonce))
}

// IncrementNonce bumps the nonce of addr by one and returns the new value.
func (k Keeper) IncrementNonce(ctx sdk.Context, addr common.Address) uint64 {
	nonce := k.GetNonce(ctx, addr) + 1
	k.SetNonce(ctx, addr, nonce)
	return nonce
}

// IterateNonces iterates over all stored nonces until cb returns true.
func (k Keeper) IterateNonces(ctx sdk.Context, cb func(addr common.Address, nonce uint64) (stop bool)) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyPrefixNonce)
	iterator := store.Iterator(nil, nil)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		if cb(common.BytesToAddress(iterator.Key()), sdk.BigEndianToUint64(iterator.Value())) {
			break
		}
	}
}
