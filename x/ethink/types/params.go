package types

import (
	"fmt"

	ethinktypes "github.com/ethink/ethink/types"

	errorsmod "cosmossdk.io/errors"
)

// NoncePolicy decides whether a transaction of unsupported shape burns the
// sender's nonce.
type NoncePolicy string

const (
	// NoncePolicyCheckShapeFirst rejects contract creation and non-legacy
	// transactions before the nonce is touched.
	NoncePolicyCheckShapeFirst NoncePolicy = "check_shape_first"
	// NoncePolicyIncrementFirst increments the nonce as soon as the signature
	// is valid, so an unsupported transaction still consumes it.
	NoncePolicyIncrementFirst NoncePolicy = "increment_first"
)

var (
	// DefaultChainID is the EIP-155 chain id
	DefaultChainID = ethinktypes.DefaultChainID
	// DefaultTransferGas is reported by gas estimation for plain transfers
	DefaultTransferGas uint64 = 21_000
	// DefaultNoncePolicy validates the transaction shape before mutating state
	DefaultNoncePolicy = NoncePolicyCheckShapeFirst
	// DefaultTransactBaseWeight is the pre-dispatch weight of MsgTransact
	DefaultTransactBaseWeight = ethinktypes.NewWeight(42, 0)
	// DefaultMaxExtrinsicWeight bounds a single extrinsic (2s of ref time, 5MiB proof)
	DefaultMaxExtrinsicWeight = ethinktypes.NewWeight(2_000_000_000_000, 5*1024*1024)
	// DefaultMaxExtrinsicLength bounds the encoded size of an extrinsic (75% of 5MiB)
	DefaultMaxExtrinsicLength uint64 = 3_932_160
)

// Params defines the ethink module parameters.
type Params struct {
	ChainID            uint64             `json:"chain_id" yaml:"chain_id"`
	TransferGas        uint64             `json:"transfer_gas" yaml:"transfer_gas"`
	NoncePolicy        NoncePolicy        `json:"nonce_policy" yaml:"nonce_policy"`
	TransactBaseWeight ethinktypes.Weight `json:"transact_base_weight" yaml:"transact_base_weight"`
	MaxExtrinsicWeight ethinktypes.Weight `json:"max_extrinsic_weight" yaml:"max_extrinsic_weight"`
	MaxExtrinsicLength uint64             `json:"max_extrinsic_length" yaml:"max_extrinsic_length"`
}

// NewParams creates a new Params instance
func NewParams(chainID, transferGas uint64, policy NoncePolicy) Params {
	params := DefaultParams()
	params.ChainID = chainID
	params.TransferGas = transferGas
	params.NoncePolicy = policy
	return params
}

// DefaultParams returns default ethink parameters
func DefaultParams() Params {
	return Params{
		ChainID:            DefaultChainID,
		TransferGas:        DefaultTransferGas,
		NoncePolicy:        DefaultNoncePolicy,
		TransactBaseWeight: DefaultTransactBaseWeight,
		MaxExtrinsicWeight: DefaultMaxExtrinsicWeight,
		MaxExtrinsicLength: DefaultMaxExtrinsicLength,
	}
}

// Validate performs basic validation on ethink parameters.
func (p Params) Validate() error {
	if p.ChainID == 0 {
		return errorsmod.Wrap(ErrInvalidParams, "chain id cannot be zero")
	}
	if err := p.NoncePolicy.Validate(); err != nil {
		return err
	}
	if p.TransactBaseWeight.AnyGt(p.MaxExtrinsicWeight) {
		return errorsmod.Wrapf(ErrInvalidParams, "transact base weight %s exceeds max extrinsic weight %s",
			p.TransactBaseWeight, p.MaxExtrinsicWeight)
	}
	if p.MaxExtrinsicLength == 0 {
		return errorsmod.Wrap(ErrInvalidParams, "max extrinsic length cannot be zero")
	}
	return nil
}

// Validate checks the policy is a known one.
func (np NoncePolicy) Validate() error {
	switch np {
	case NoncePolicyCheckShapeFirst, NoncePolicyIncrementFirst:
		return nil
	default:
		return errorsmod.Wrap(ErrInvalidParams, fmt.Sprintf("invalid nonce policy: %q", string(np)))
	}
}
