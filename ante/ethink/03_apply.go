package ethink

import (
	"github.com/ethink/ethink/x/ethink/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ApplySelfContained dispatches a checked self-contained call under the
// Ethereum-transaction origin of its signer. It returns false for calls that
// are not self-contained.
func ApplySelfContained(
	ctx sdk.Context,
	d types.Dispatcher,
	call types.Call,
	checked CheckedSigner,
) (types.PostDispatchInfo, bool, error) {
	if !IsSelfContained(call) {
		return types.PostDispatchInfo{}, false, nil
	}
	if checked.Err != nil {
		return types.PostDispatchInfo{}, true, checked.Err
	}
	post, err := d.Dispatch(ctx, types.EthTransactionOrigin(checked.Signer), call)
	return post, true, err
}
