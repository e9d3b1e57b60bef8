package keeper

import (
	"github.com/ethink/ethink/types"
	contractstypes "github.com/ethink/ethink/x/contracts/types"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// InitGenesis uploads the code of every genesis contract and instantiates
// it. Balances must be initialized first since deployers pay the storage
// deposit.
func (k Keeper) InitGenesis(ctx sdk.Context, gs contractstypes.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return err
	}

	for _, c := range gs.Contracts {
		code, ok := k.registry.Lookup(c.Code)
		if !ok {
			return errorsmod.Wrapf(contractstypes.ErrCodeNotFound, "program %q", c.Code)
		}
		if _, err := k.UploadCode(ctx, code.Blob); err != nil {
			return err
		}

		addr, res := k.Instantiate(ctx, c.Deployer, sdkmath.ZeroInt(), types.MaxWeight(), nil, code.Hash, c.Data, c.Salt)
		if err := resultError(res); err != nil {
			return errorsmod.Wrapf(err, "genesis contract %s", c.Code)
		}
		k.Logger(ctx).Info("genesis contract", "code", c.Code, "address", addr.Hex())
	}
	return nil
}
