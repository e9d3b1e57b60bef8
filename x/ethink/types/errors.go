package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/ethink/ethink/crypto/ethsecp256k1"

	errorsmod "cosmossdk.io/errors"
)

const (
	codeErrDecode = uint32(iota) + 2 // NOTE: code 1 is reserved for internal errors
	codeErrTxNotSupported
	codeErrTxExecutionFailed
	codeErrExecution
	codeErrExecutionReverted
	codeErrBadOrigin
	codeErrStaleNonce
	codeErrFutureNonce
	codeErrExhaustsResources
	codeErrValueOverflow
	codeErrInvalidChainID
	codeErrInvalidParams
)

// JSONRPCInternalErrorCode is the single error code every core failure is
// reported with over JSON-RPC.
const JSONRPCInternalErrorCode = -32603

var (
	// ErrDecode returns an error if the transaction bytes are malformed or of
	// an unsupported envelope type.
	ErrDecode = errorsmod.Register(ModuleName, codeErrDecode, "decode transaction failed")

	// ErrBadProof returns an error if the embedded signature cannot be verified.
	ErrBadProof = ethsecp256k1.ErrBadProof

	// ErrTxNotSupported returns an error for structurally valid transactions of
	// an unsupported shape (contract creation, non-legacy type).
	ErrTxNotSupported = errorsmod.Register(ModuleName, codeErrTxNotSupported, "transaction not supported")

	// ErrTxExecutionFailed returns an error if the routed inner dispatch fails.
	ErrTxExecutionFailed = errorsmod.Register(ModuleName, codeErrTxExecutionFailed, "transaction execution failed")

	// ErrExecution returns an error if a dry run failed fatally.
	ErrExecution = errorsmod.Register(ModuleName, codeErrExecution, "execution fatal")

	// ErrExecutionReverted returns an error if a dry run finished with the revert flag set.
	ErrExecutionReverted = errorsmod.Register(ModuleName, codeErrExecutionReverted, "execution reverted")

	// ErrBadOrigin returns an error if a call is dispatched under the wrong origin kind.
	ErrBadOrigin = errorsmod.Register(ModuleName, codeErrBadOrigin, "bad origin")

	// ErrStaleNonce returns an error if the transaction nonce is already used.
	ErrStaleNonce = errorsmod.Register(ModuleName, codeErrStaleNonce, "invalid transaction: stale nonce")

	// ErrFutureNonce returns an error if the transaction nonce is not yet valid.
	ErrFutureNonce = errorsmod.Register(ModuleName, codeErrFutureNonce, "invalid transaction: future nonce")

	// ErrExhaustsResources returns an error if the extrinsic does not fit into the block limits.
	ErrExhaustsResources = errorsmod.Register(ModuleName, codeErrExhaustsResources, "invalid transaction: exhausts resources")

	// ErrValueOverflow returns an error if a value does not fit the native balance type.
	ErrValueOverflow = errorsmod.Register(ModuleName, codeErrValueOverflow, "value overflows balance type")

	// ErrInvalidChainID returns an error if the signature commits to another chain.
	ErrInvalidChainID = errorsmod.Register(ModuleName, codeErrInvalidChainID, "invalid chain id")

	// ErrInvalidParams returns an error for malformed module params.
	ErrInvalidParams = errorsmod.Register(ModuleName, codeErrInvalidParams, "invalid ethink params")
)

// RevertError is a dry-run failure that carries the revert payload returned
// by the contract.
type RevertError struct {
	error
	reason string // hex encoded revert data
}

// NewExecErrorWithReason wraps revert data into a RevertError.
func NewExecErrorWithReason(revertData []byte) *RevertError {
	var err error = ErrExecutionReverted
	if len(revertData) > 0 {
		err = errorsmod.Wrapf(ErrExecutionReverted, "data %s", hexutil.Encode(revertData))
	}
	return &RevertError{
		error:  err,
		reason: hexutil.Encode(revertData),
	}
}

// ErrorCode returns the JSON error code for a revert.
func (e *RevertError) ErrorCode() int {
	return JSONRPCInternalErrorCode
}

// ErrorData returns the hex encoded revert data.
func (e *RevertError) ErrorData() interface{} {
	return e.reason
}

// Unwrap exposes ErrExecutionReverted to errors.Is.
func (e *RevertError) Unwrap() error {
	return e.error
}

// ErrorWithCode is returned over JSON-RPC for every other core error.
type ErrorWithCode struct {
	Msg string
}

// NewRPCError formats err as a generic JSON-RPC error.
func NewRPCError(format string, args ...interface{}) *ErrorWithCode {
	return &ErrorWithCode{Msg: fmt.Sprintf(format, args...)}
}

func (e *ErrorWithCode) Error() string { return e.Msg }

// ErrorCode implements rpc.Error.
func (e *ErrorWithCode) ErrorCode() int { return JSONRPCInternalErrorCode }
