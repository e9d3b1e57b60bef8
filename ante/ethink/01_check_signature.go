package ethink

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/ethink/ethink/x/ethink/types"

	errorsmod "cosmossdk.io/errors"
)

// CheckedSigner is the outcome of checking a self-contained call: either the
// recovered signer or the reason the signature was rejected.
type CheckedSigner struct {
	Signer common.Address
	Err    error
}

// IsSelfContained reports whether call carries its own signature.
func IsSelfContained(call types.Call) bool {
	_, ok := types.Classify(call)
	return ok
}

// CheckSelfContained recovers the signer of a self-contained call. It
// returns false for every call that needs a separate signature. The signing
// hash is chosen by the embedded transaction's own type tag; only legacy
// transactions can be verified.
func CheckSelfContained(call types.Call) (*CheckedSigner, bool) {
	msg, ok := transactMsg(call)
	if !ok {
		return nil, false
	}
	if msg.Tx == nil {
		return &CheckedSigner{Err: errorsmod.Wrap(types.ErrBadProof, "missing transaction")}, true
	}

	switch msg.Tx.Type() {
	case types.LegacyTxType:
		legacy, ok := msg.Tx.(*types.LegacyTx)
		if !ok {
			return &CheckedSigner{Err: types.ErrBadProof}, true
		}
		signer, err := legacy.Sender()
		if err != nil {
			return &CheckedSigner{Err: errorsmod.Wrap(types.ErrBadProof, err.Error())}, true
		}
		return &CheckedSigner{Signer: signer}, true
	default:
		return &CheckedSigner{
			Err: errorsmod.Wrapf(types.ErrBadProof, "transaction type %d is not supported", msg.Tx.Type()),
		}, true
	}
}

func transactMsg(call types.Call) (types.MsgTransact, bool) {
	if _, ok := types.Classify(call); !ok {
		return types.MsgTransact{}, false
	}
	switch msg := call.(type) {
	case types.MsgTransact:
		return msg, true
	case *types.MsgTransact:
		if msg == nil {
			return types.MsgTransact{}, true
		}
		return *msg, true
	}
	return types.MsgTransact{}, false
}
