package keeper

import (
	"github.com/ethink/ethink/x/contracts/types"
	ethinktypes "github.com/ethink/ethink/x/ethink/types"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Keeper runs contract programs against the contracts store.
type Keeper struct {
	storeKey storetypes.StoreKey
	bank     ethinktypes.BankKeeper
	registry *types.Registry
	schedule types.Schedule
}

// NewKeeper creates a new contracts keeper.
func NewKeeper(
	storeKey storetypes.StoreKey,
	bank ethinktypes.BankKeeper,
	registry *types.Registry,
	schedule types.Schedule,
) Keeper {
	if registry == nil {
		panic("contracts keeper needs a program registry")
	}
	return Keeper{
		storeKey: storeKey,
		bank:     bank,
		registry: registry,
		schedule: schedule,
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+types.ModuleName)
}

// Registry returns the program registry.
func (k Keeper) Registry() *types.Registry {
	return k.registry
}

// Schedule returns the cost schedule.
func (k Keeper) Schedule() types.Schedule {
	return k.schedule
}
