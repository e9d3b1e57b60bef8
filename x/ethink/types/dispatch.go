package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	ethinktypes "github.com/ethink/ethink/types"
)

// DispatchClass groups extrinsics for block limits.
type DispatchClass uint8

const (
	DispatchClassNormal DispatchClass = iota
	DispatchClassOperational
	DispatchClassMandatory
)

// DispatchInfo is the pre-dispatch weight information of an extrinsic.
type DispatchInfo struct {
	Weight ethinktypes.Weight
	Class  DispatchClass
}

// PostDispatchInfo reports the weight actually used by a dispatch.
type PostDispatchInfo struct {
	ActualWeight *ethinktypes.Weight
}

// Dispatcher executes native calls under an origin. Implementations must
// not dispatch MsgTransact under anything but an EthTransaction origin.
type Dispatcher interface {
	Dispatch(ctx sdk.Context, origin Origin, call Call) (PostDispatchInfo, error)
}
