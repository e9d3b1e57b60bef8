package interfaces

import (
	"github.com/ethereum/go-ethereum/common"

	ethinktypes "github.com/ethink/ethink/x/ethink/types"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// EthinkKeeper defines the expected keeper interface used on the ethink
// self-contained checks.
type EthinkKeeper interface {
	GetParams(ctx sdk.Context) ethinktypes.Params
	GetNonce(ctx sdk.Context, addr common.Address) uint64
}
