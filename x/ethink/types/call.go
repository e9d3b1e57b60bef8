package types

import (
	"github.com/ethereum/go-ethereum/common"

	ethinktypes "github.com/ethink/ethink/types"

	sdkmath "cosmossdk.io/math"
)

// Call is a dispatchable chain call. The set of implementations is closed:
// the transaction-carrying MsgTransact plus the native calls it can be
// routed to.
type Call interface {
	// Route names the module that handles the call.
	Route() string
	isCall()
}

var (
	_ Call = MsgTransact{}
	_ Call = MsgTransfer{}
	_ Call = MsgContractCall{}
	_ Call = MsgInstantiate{}
)

// MsgTransact carries a signed Ethereum transaction. It is self-contained:
// its origin is recovered from the embedded signature.
type MsgTransact struct {
	Tx EthTransaction
}

// MsgTransfer moves Value from the origin to Dest.
type MsgTransfer struct {
	Dest  common.Address
	Value sdkmath.Int
}

// MsgContractCall calls the contract at Dest. A nil StorageDepositLimit
// leaves the deposit unbounded.
type MsgContractCall struct {
	Dest                common.Address
	Value               sdkmath.Int
	GasLimit            ethinktypes.Weight
	StorageDepositLimit *sdkmath.Int
	Data                []byte
}

// MsgInstantiate deploys a new contract from uploaded code.
type MsgInstantiate struct {
	CodeHash            common.Hash
	Value               sdkmath.Int
	GasLimit            ethinktypes.Weight
	StorageDepositLimit *sdkmath.Int
	Data                []byte
	Salt                []byte
}

func (MsgTransact) Route() string     { return ModuleName }
func (MsgTransfer) Route() string     { return "balances" }
func (MsgContractCall) Route() string { return "contracts" }
func (MsgInstantiate) Route() string  { return "contracts" }

func (MsgTransact) isCall()     {}
func (MsgTransfer) isCall()     {}
func (MsgContractCall) isCall() {}
func (MsgInstantiate) isCall()  {}

// SelfContainedKind names the kinds of call that carry their own signature.
type SelfContainedKind uint8

const (
	// KindEthTransaction is a MsgTransact.
	KindEthTransaction SelfContainedKind = iota + 1
)

// Classify reports whether call is self-contained and of which kind. Every
// other call needs a separate wrapping signature.
func Classify(call Call) (SelfContainedKind, bool) {
	switch call.(type) {
	case MsgTransact, *MsgTransact:
		return KindEthTransaction, true
	default:
		return 0, false
	}
}
