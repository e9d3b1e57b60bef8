package keeper

import (
	"github.com/ethink/ethink/x/balances/types"
	ethinktypes "github.com/ethink/ethink/x/ethink/types"

	storetypes "cosmossdk.io/store/types"
)

// Enforce that Keeper implements the expected keeper interfaces
var _ ethinktypes.BankKeeper = Keeper{}

// Keeper defines the balances module's keeper
type Keeper struct {
	storeKey storetypes.StoreKey
}

// NewKeeper creates a new keeper
func NewKeeper(storeKey storetypes.StoreKey) Keeper {
	return Keeper{storeKey: storeKey}
}

// StoreKey returns the store key of the balances module.
func (k Keeper) StoreKey() storetypes.StoreKey {
	return k.storeKey
}

// ModuleName returns the route served by this keeper.
func (k Keeper) ModuleName() string {
	return types.ModuleName
}
