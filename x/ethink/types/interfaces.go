package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	ethinktypes "github.com/ethink/ethink/types"

	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ReturnFlags are the flags a contract sets on its return value.
type ReturnFlags uint32

// ReturnFlagRevert marks a return value whose state changes were reverted.
const ReturnFlagRevert ReturnFlags = 1

// ExecResult is the outcome of a bare (dry-run) contract call.
type ExecResult struct {
	// Flags and Data are the contract's return value.
	Flags ReturnFlags
	Data  []byte
	// Output is the engine's wire encoding of the return value; this is what
	// eth_call hands back to the caller.
	Output []byte
	// GasConsumed is the weight actually used.
	GasConsumed ethinktypes.Weight
	// GasRequired is the weight limit needed for the call to succeed.
	GasRequired ethinktypes.Weight
	// StorageDeposit is the deposit charged (positive) or refunded (negative).
	StorageDeposit sdkmath.Int
	// Err is set if execution trapped or otherwise failed fatally.
	Err error
}

// Reverted reports a clean exit with the revert flag set.
func (r ExecResult) Reverted() bool {
	return r.Err == nil && r.Flags&ReturnFlagRevert != 0
}

// ContractExecutor is the contract-execution engine seen from the router.
type ContractExecutor interface {
	// IsContract reports whether code is deployed at addr.
	IsContract(ctx sdk.Context, addr common.Address) bool
	// BuildCall returns the call routing a transaction to `to`: a contract
	// call if code exists there, a balance transfer otherwise.
	BuildCall(ctx sdk.Context, to common.Address, value sdkmath.Int, data []byte, gasLimit *uint256.Int) (Call, error)
	// BareCall executes a call without an extrinsic. State changes are left in
	// ctx; callers that want a simulation pass a branched context.
	BareCall(ctx sdk.Context, from, to common.Address, value sdkmath.Int, gasLimit ethinktypes.Weight, data []byte) ExecResult
}

// BankKeeper defines the expected balances keeper.
type BankKeeper interface {
	GetBalance(ctx sdk.Context, addr common.Address) sdkmath.Int
	Transfer(ctx sdk.Context, from, to common.Address, amount sdkmath.Int) error
}
