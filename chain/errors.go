package chain

import (
	errorsmod "cosmossdk.io/errors"
)

const codespace = "chain"

var (
	// ErrAlreadyKnown is returned when a transaction, or another one occupying
	// the same (signer, nonce) slot, is already in the pool.
	ErrAlreadyKnown = errorsmod.Register(codespace, 2, "already known")
	// ErrNotFound is returned by block store lookups that miss.
	ErrNotFound = errorsmod.Register(codespace, 3, "not found")
	// ErrInvalidGenesis is returned for a genesis that cannot be applied.
	ErrInvalidGenesis = errorsmod.Register(codespace, 4, "invalid genesis")
	// ErrPoolFull is returned when the pool is at capacity.
	ErrPoolFull = errorsmod.Register(codespace, 5, "txpool is full")
)
