package ethink

import (
	"fmt"
	"math"

	"github.com/ethereum/go-ethereum/common"

	anteinterfaces "github.com/ethink/ethink/ante/interfaces"
	"github.com/ethink/ethink/x/ethink/types"

	errorsmod "cosmossdk.io/errors"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Tag identifies a transaction slot in the pool. A valid transaction
// provides the tag of its own (signer, nonce) and may require the tag of its
// predecessor.
type Tag struct {
	Signer common.Address
	Nonce  uint64
}

func (t Tag) String() string {
	return fmt.Sprintf("%s/%d", t.Signer.Hex(), t.Nonce)
}

// ValidTransaction is the pool's view of a transaction that passed validation.
type ValidTransaction struct {
	Priority  uint64
	Requires  []Tag
	Provides  []Tag
	Longevity uint64
	Propagate bool
}

// CheckWeight verifies the extrinsic fits in a block.
func CheckWeight(params types.Params, info types.DispatchInfo, length int) error {
	if info.Weight.AnyGt(params.MaxExtrinsicWeight) {
		return errorsmod.Wrapf(
			types.ErrExhaustsResources,
			"weight %s exceeds max extrinsic weight %s", info.Weight, params.MaxExtrinsicWeight,
		)
	}
	if length < 0 || uint64(length) > params.MaxExtrinsicLength {
		return errorsmod.Wrapf(
			types.ErrExhaustsResources,
			"length %d exceeds max extrinsic length %d", length, params.MaxExtrinsicLength,
		)
	}
	return nil
}

// CheckChainID rejects transactions signed for another chain. Signatures
// without replay protection are accepted.
func CheckChainID(params types.Params, tx types.EthTransaction) error {
	protected, ok := tx.(interface{ ChainID() *uint64 })
	if !ok {
		return nil
	}
	if id := protected.ChainID(); id != nil && *id != params.ChainID {
		return errorsmod.Wrapf(types.ErrInvalidChainID, "got %d, expected %d", *id, params.ChainID)
	}
	return nil
}

// ValidateSelfContained runs the pool validity checks for a self-contained
// call whose signer was already recovered. It returns false for calls that
// are not self-contained.
func ValidateSelfContained(
	ctx sdk.Context,
	k anteinterfaces.EthinkKeeper,
	call types.Call,
	signer common.Address,
	info types.DispatchInfo,
	length int,
) (*ValidTransaction, bool, error) {
	msg, ok := transactMsg(call)
	if !ok {
		return nil, false, nil
	}
	if msg.Tx == nil {
		return nil, true, errorsmod.Wrap(types.ErrBadProof, "missing transaction")
	}

	params := k.GetParams(ctx)
	if err := CheckWeight(params, info, length); err != nil {
		return nil, true, err
	}
	if err := CheckChainID(params, msg.Tx); err != nil {
		return nil, true, err
	}

	txNonce := msg.Tx.GetNonce()
	accountNonce := k.GetNonce(ctx, signer)
	if txNonce < accountNonce {
		return nil, true, errorsmod.Wrapf(
			types.ErrStaleNonce,
			"invalid nonce; got %d, expected %d", txNonce, accountNonce,
		)
	}

	valid := &ValidTransaction{
		Provides:  []Tag{{Signer: signer, Nonce: txNonce}},
		Longevity: math.MaxUint64,
		Propagate: true,
	}
	if txNonce > accountNonce {
		valid.Requires = []Tag{{Signer: signer, Nonce: txNonce - 1}}
	}
	return valid, true, nil
}

// PreDispatchSelfContained repeats the pool checks right before the call is
// applied in a block, where the nonce must match the account exactly.
func PreDispatchSelfContained(
	ctx sdk.Context,
	k anteinterfaces.EthinkKeeper,
	call types.Call,
	signer common.Address,
	info types.DispatchInfo,
	length int,
) (bool, error) {
	valid, ok, err := ValidateSelfContained(ctx, k, call, signer, info, length)
	if !ok || err != nil {
		return ok, err
	}
	if len(valid.Requires) > 0 {
		return true, errorsmod.Wrapf(
			types.ErrFutureNonce,
			"invalid nonce; got %d, expected %d", valid.Provides[0].Nonce, k.GetNonce(ctx, signer),
		)
	}
	return true, nil
}
