package keeper

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/ethink/ethink/x/contracts/types"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/store/prefix"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// UploadCode stores a code blob. Only blobs of registered programs are
// accepted since there is no interpreter for anything else.
func (k Keeper) UploadCode(ctx sdk.Context, code []byte) (common.Hash, error) {
	hash := crypto.Keccak256Hash(code)
	registered, ok := k.registry.Get(hash)
	if !ok {
		return common.Hash{}, errorsmod.Wrapf(types.ErrCodeNotFound, "no program registered for code %s", hash)
	}

	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyPrefixCode)
	store.Set(types.CodeKey(registered.Hash), code)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCodeStored,
			sdk.NewAttribute(types.AttributeKeyCodeHash, registered.Hash.Hex()),
		),
	)
	return registered.Hash, nil
}

// GetCode returns the blob stored under codeHash.
func (k Keeper) GetCode(ctx sdk.Context, codeHash common.Hash) ([]byte, bool) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyPrefixCode)
	bz := store.Get(types.CodeKey(codeHash))
	return bz, bz != nil
}

// HasCode reports whether a blob is stored under codeHash.
func (k Keeper) HasCode(ctx sdk.Context, codeHash common.Hash) bool {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyPrefixCode)
	return store.Has(types.CodeKey(codeHash))
}

// GetContractInfo returns the contract deployed at addr.
func (k Keeper) GetContractInfo(ctx sdk.Context, addr common.Address) (types.ContractInfo, bool) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyPrefixContractInfo)
	bz := store.Get(types.ContractInfoKey(addr))
	if bz == nil {
		return types.ContractInfo{}, false
	}

	var info types.ContractInfo
	if err := rlp.DecodeBytes(bz, &info); err != nil {
		panic(errorsmod.Wrapf(err, "corrupt contract info for %s", addr))
	}
	return info, true
}

// SetContractInfo stores info for addr.
func (k Keeper) SetContractInfo(ctx sdk.Context, addr common.Address, info types.ContractInfo) {
	bz, err := rlp.EncodeToBytes(&info)
	if err != nil {
		panic(err)
	}
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyPrefixContractInfo)
	store.Set(types.ContractInfoKey(addr), bz)
}

// IterateContracts iterates over all deployed contracts until cb returns true.
func (k Keeper) IterateContracts(ctx sdk.Context, cb func(addr common.Address, info types.ContractInfo) (stop bool)) {
	store := prefix.NewStore(ctx.KVStore(k.storeKey), types.KeyPrefixContractInfo)
	iterator := store.Iterator(nil, nil)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var info types.ContractInfo
		if err := rlp.DecodeBytes(iterator.Value(), &info); err != nil {
			panic(err)
		}
		if cb(common.BytesToAddress(iterator.Key()), info) {
			break
		}
	}
}
