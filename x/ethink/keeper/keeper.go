package keeper

import (
	"encoding/json"

	"github.com/ethink/ethink/x/ethink/types"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Keeper routes Ethereum transactions onto native calls and owns the
// account nonces.
type Keeper struct {
	storeKey storetypes.StoreKey

	executor types.ContractExecutor
	// dispatcher is set after construction, the router depends on the keeper
	dispatcher types.Dispatcher
}

// NewKeeper creates a new ethink keeper
func NewKeeper(storeKey storetypes.StoreKey, executor types.ContractExecutor) *Keeper {
	return &Keeper{
		storeKey: storeKey,
		executor: executor,
	}
}

// SetDispatcher sets the dispatcher inner calls are executed with. It panics
// if called twice.
func (k *Keeper) SetDispatcher(d types.Dispatcher) *Keeper {
	if k.dispatcher != nil {
		panic("cannot set ethink dispatcher twice")
	}
	k.dispatcher = d
	return k
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+types.ModuleName)
}

// GetParams returns the total set of ethink parameters.
func (k Keeper) GetParams(ctx sdk.Context) (params types.Params) {
	store := ctx.KVStore(k.storeKey)
	bz := store.Get(types.KeyPrefixParams)
	if bz == nil {
		return types.DefaultParams()
	}
	if err := json.Unmarshal(bz, &params); err != nil {
		panic(err)
	}
	return params
}

// SetParams sets the ethink params in a single key
func (k Keeper) SetParams(ctx sdk.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	bz, err := json.Marshal(params)
	if err != nil {
		return err
	}

	store := ctx.KVStore(k.storeKey)
	store.Set(types.KeyPrefixParams, bz)
	return nil
}
