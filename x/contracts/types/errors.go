package types

import (
	errorsmod "cosmossdk.io/errors"
)

var (
	// ErrCodeNotFound returns an error if no program is registered for a code hash.
	ErrCodeNotFound = errorsmod.Register(ModuleName, 2, "code not found")
	// ErrContractNotFound returns an error if there is no contract at an address.
	ErrContractNotFound = errorsmod.Register(ModuleName, 3, "contract not found")
	// ErrDuplicateContract returns an error if the derived address is taken.
	ErrDuplicateContract = errorsmod.Register(ModuleName, 4, "duplicate contract")
	// ErrOutOfGas returns an error if execution exceeds its weight limit.
	ErrOutOfGas = errorsmod.Register(ModuleName, 5, "out of gas")
	// ErrContractTrapped returns an error if the program aborted.
	ErrContractTrapped = errorsmod.Register(ModuleName, 6, "contract trapped during execution")
	// ErrContractReverted returns an error if a dispatched call ended with the revert flag.
	ErrContractReverted = errorsmod.Register(ModuleName, 7, "contract reverted")
	// ErrStorageDepositLimitExhausted returns an error if the deposit exceeds the caller's limit.
	ErrStorageDepositLimitExhausted = errorsmod.Register(ModuleName, 8, "storage deposit limit exhausted")
	// ErrStorageDepositNotEnoughFunds returns an error if the origin cannot pay the deposit.
	ErrStorageDepositNotEnoughFunds = errorsmod.Register(ModuleName, 9, "not enough funds for storage deposit")
	// ErrTransferFailed returns an error if the value could not be moved.
	ErrTransferFailed = errorsmod.Register(ModuleName, 10, "transfer failed")
	// ErrDecodingFailed returns an error for undecodable SCALE input.
	ErrDecodingFailed = errorsmod.Register(ModuleName, 11, "input could not be decoded")
)
